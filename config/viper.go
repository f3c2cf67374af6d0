package config

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/ceyewan/azulpay/clog"
	"github.com/ceyewan/azulpay/xerrors"
)

// envKeyReplacer 把配置 key 中的 "." 映射为环境变量里的 "_"
var envKeyReplacer = strings.NewReplacer(".", "_")

// loader Loader 实现（非导出）
type loader struct {
	v      *viper.Viper
	cfg    *Config
	logger clog.Logger

	mu        sync.Mutex
	watches   map[string][]chan Event
	oldValues map[string]any
}

func newLoader(cfg *Config, logger clog.Logger) *loader {
	if logger != nil {
		logger = logger.With(clog.String("component", "config"))
	}
	return &loader{
		v:         viper.New(),
		cfg:       cfg,
		logger:    logger,
		watches:   make(map[string][]chan Event),
		oldValues: make(map[string]any),
	}
}

// Load 从所有来源加载配置并启动文件监听
func (l *loader) Load(_ context.Context) error {
	l.v.SetConfigName(l.cfg.Name)
	l.v.SetConfigType(l.cfg.FileType)
	for _, path := range l.cfg.Paths {
		l.v.AddConfigPath(path)
	}

	// 环境变量优先级最高，先注册才能覆盖后续的文件来源
	l.v.SetEnvPrefix(l.cfg.EnvPrefix)
	l.v.SetEnvKeyReplacer(envKeyReplacer)
	l.v.AutomaticEnv()

	l.loadDotEnv()

	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return xerrors.Wrapf(err, "config: failed to read config file %q", l.cfg.Name)
		}
		if l.logger != nil {
			l.logger.Warn("no configuration file found", clog.String("name", l.cfg.Name))
		}
	}

	if err := l.mergeEnvironmentConfig(); err != nil {
		return err
	}

	l.v.OnConfigChange(func(e fsnotify.Event) {
		if err := l.mergeEnvironmentConfig(); err != nil && l.logger != nil {
			l.logger.Error("failed to reload environment config", clog.Error(err))
		}
		l.loadDotEnv()
		l.notifyWatches(e)
	})
	l.v.WatchConfig()

	return nil
}

// loadDotEnv 尝试加载工作目录与搜索路径下的 .env 文件
//
// .env 缺失不是错误：它只在本地开发环境存在。
func (l *loader) loadDotEnv() {
	_ = godotenv.Load()
	for _, path := range l.cfg.Paths {
		_ = godotenv.Load(filepath.Join(path, ".env"))
	}
}

// mergeEnvironmentConfig 叠加环境特定配置（config.<env>.yaml）
func (l *loader) mergeEnvironmentConfig() error {
	env := os.Getenv(l.cfg.EnvPrefix + "_ENV")
	if env == "" {
		return nil
	}

	envName := l.cfg.Name + "." + env
	l.v.SetConfigName(envName)
	defer l.v.SetConfigName(l.cfg.Name)

	if err := l.v.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return xerrors.Wrapf(err, "config: failed to merge environment config %q", envName)
		}
		if l.logger != nil {
			l.logger.Warn("no environment configuration file found", clog.String("env", env))
		}
		return nil
	}

	if l.logger != nil {
		l.logger.Info("loaded environment configuration", clog.String("env", env))
	}
	return nil
}

// Get 获取原始配置值
func (l *loader) Get(key string) any {
	return l.v.Get(key)
}

// yamlTagName 组件 Config 统一用 yaml 标签声明字段名，
// 反序列化沿用同一套标签，避免两套命名
func yamlTagName(dc *mapstructure.DecoderConfig) {
	dc.TagName = "yaml"
	dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// Unmarshal 将整个配置反序列化到结构体
func (l *loader) Unmarshal(v any) error {
	if err := l.v.Unmarshal(v, yamlTagName); err != nil {
		return xerrors.Wrap(err, "config: failed to unmarshal")
	}
	return nil
}

// UnmarshalKey 将指定 key 的配置反序列化到结构体
func (l *loader) UnmarshalKey(key string, v any) error {
	if err := l.v.UnmarshalKey(key, v, yamlTagName); err != nil {
		return xerrors.Wrapf(err, "config: failed to unmarshal key %q", key)
	}
	return nil
}

// Watch 订阅指定 key 的变更
func (l *loader) Watch(ctx context.Context, key string) (<-chan Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch := make(chan Event, 10)
	l.watches[key] = append(l.watches[key], ch)
	l.oldValues[key] = l.v.Get(key)

	go func() {
		<-ctx.Done()
		l.removeWatch(key, ch)
	}()

	return ch, nil
}

func (l *loader) removeWatch(key string, ch chan Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	chans := l.watches[key]
	for i, c := range chans {
		if c == ch {
			l.watches[key] = append(chans[:i], chans[i+1:]...)
			close(ch)
			break
		}
	}
	if len(l.watches[key]) == 0 {
		delete(l.watches, key)
		delete(l.oldValues, key)
	}
}

// notifyWatches 对比基线值并通知监听者
func (l *loader) notifyWatches(_ fsnotify.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for key, channels := range l.watches {
		newValue := l.v.Get(key)
		oldValue := l.oldValues[key]
		if reflect.DeepEqual(oldValue, newValue) {
			continue
		}

		l.oldValues[key] = newValue
		event := Event{Key: key, Value: newValue, OldValue: oldValue, Timestamp: now}

		for _, ch := range channels {
			select {
			case ch <- event:
			default:
				// 消费不及时就丢弃，监听者永远能从 Get 拿到最新值
				if l.logger != nil {
					l.logger.Warn("watch channel full, event dropped", clog.String("key", key))
				}
			}
		}
	}
}
