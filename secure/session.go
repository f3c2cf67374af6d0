package secure

import (
	"context"
	"encoding/json"

	"github.com/ceyewan/azulpay/kv"
	"github.com/ceyewan/azulpay/xerrors"
)

// sessionPrefix 会话记录的键命名空间
const sessionPrefix = "secure-id:"

// Session 进行中的 3DS 支付会话
//
// 在初始交易返回 method / challenge 中间态时创建，供后续 webhook
// 回调找回网关事务号；交易到达终态后删除，保证已完成的会话无法重放。
type Session struct {
	// AzulOrderID 网关事务号
	AzulOrderID string `json:"azulOrderId"`

	// TermURL 含 secureId 参数的质询回调地址
	TermURL string `json:"termUrl"`

	// MethodNotificationURL 含 secureId 参数的 method 通知地址
	MethodNotificationURL string `json:"methodNotificationUrl"`
}

// SessionStore 会话存储
//
// kv.Store 之上的薄封装，只负责命名空间与序列化。必须与幂等组件
// 使用同一个后端存储，多进程部署下的协调才成立。
type SessionStore struct {
	store kv.Store
}

// NewSessionStore 创建会话存储
func NewSessionStore(store kv.Store) *SessionStore {
	return &SessionStore{store: store}
}

// Put 写入会话
func (s *SessionStore) Put(ctx context.Context, secureID string, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return xerrors.Wrap(err, "secure: failed to marshal session")
	}
	if err := s.store.Set(ctx, sessionPrefix+secureID, string(data)); err != nil {
		return xerrors.Wrap(err, "secure: failed to persist session")
	}
	return nil
}

// Get 读取会话，不存在时返回 ErrSessionNotFound
func (s *SessionStore) Get(ctx context.Context, secureID string) (*Session, error) {
	data, err := s.store.Get(ctx, sessionPrefix+secureID)
	if err == kv.ErrKeyNotFound {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, xerrors.Wrap(err, "secure: failed to read session")
	}

	var session Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, xerrors.Wrap(err, "secure: failed to unmarshal session")
	}
	return &session, nil
}

// Remove 删除会话
//
// 删除不存在的会话不是错误：终态路径上的并发调用方都会尝试删除。
func (s *SessionStore) Remove(ctx context.Context, secureID string) error {
	if err := s.store.Delete(ctx, sessionPrefix+secureID); err != nil {
		return xerrors.Wrap(err, "secure: failed to delete session")
	}
	return nil
}
