package dlock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ceyewan/azulpay/kv"
	"github.com/ceyewan/azulpay/xerrors"
)

func newTestLocker(t *testing.T) (Locker, kv.Store) {
	store, err := kv.New(&kv.Config{Driver: kv.DriverMemory})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	locker, err := New(&Config{PollInterval: 5 * time.Millisecond}, WithStore(store))
	if err != nil {
		t.Fatalf("failed to create locker: %v", err)
	}
	return locker, store
}

// TestAcquireRelease 测试基本加解锁
func TestAcquireRelease(t *testing.T) {
	ctx := context.Background()
	locker, _ := newTestLocker(t)

	if err := locker.Acquire(ctx, "k", time.Second); err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	if err := locker.Release(ctx, "k"); err != nil {
		t.Fatalf("release failed: %v", err)
	}

	// 释放后可再次获取
	if err := locker.Acquire(ctx, "k", time.Second); err != nil {
		t.Fatalf("re-acquire failed: %v", err)
	}
	_ = locker.Release(ctx, "k")
}

// TestMutualExclusion 测试互斥：临界区内同时只有一个持有者
func TestMutualExclusion(t *testing.T) {
	ctx := context.Background()
	locker, _ := newTestLocker(t)

	var inCritical atomic.Int32
	var maxSeen atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := locker.Acquire(ctx, "shared", 5*time.Second); err != nil {
				t.Errorf("acquire failed: %v", err)
				return
			}
			n := inCritical.Add(1)
			if n > maxSeen.Load() {
				maxSeen.Store(n)
			}
			time.Sleep(2 * time.Millisecond)
			inCritical.Add(-1)
			if err := locker.Release(ctx, "shared"); err != nil {
				t.Errorf("release failed: %v", err)
			}
		}()
	}

	wg.Wait()
	if maxSeen.Load() != 1 {
		t.Fatalf("expected at most one holder, saw %d", maxSeen.Load())
	}
}

// TestAcquireTimeout 测试竞争超时
func TestAcquireTimeout(t *testing.T) {
	ctx := context.Background()
	locker, _ := newTestLocker(t)

	if err := locker.Acquire(ctx, "held", time.Second); err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	defer locker.Release(ctx, "held")

	// 锁不可重入：对已持有的键再次获取会轮询到超时
	start := time.Now()
	err := locker.Acquire(ctx, "held", 50*time.Millisecond)
	if err != ErrAcquireTimeout {
		t.Fatalf("expected ErrAcquireTimeout, got %v", err)
	}
	if time.Since(start) < 50*time.Millisecond {
		t.Fatal("acquire returned before timeout elapsed")
	}
}

// TestReleaseNotHeld 测试未持有时释放
func TestReleaseNotHeld(t *testing.T) {
	ctx := context.Background()
	locker, _ := newTestLocker(t)

	if err := locker.Release(ctx, "never-acquired"); err != ErrLockNotHeld {
		t.Fatalf("expected ErrLockNotHeld, got %v", err)
	}
}

// TestReleaseStolen 测试锁记录被他人重建后的释放
func TestReleaseStolen(t *testing.T) {
	ctx := context.Background()
	locker, store := newTestLocker(t)

	if err := locker.Acquire(ctx, "k", time.Second); err != nil {
		t.Fatalf("acquire failed: %v", err)
	}

	// 模拟锁记录被运维清理后另一个持有者重建
	_ = store.Delete(ctx, "payments-locks:k")
	_, _ = store.SetNX(ctx, "payments-locks:k", "someone-else")

	if err := locker.Release(ctx, "k"); err != ErrNotOwner {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

// unstableStore 包装 kv.Store，注入给定次数的 Delete 失败
type unstableStore struct {
	kv.Store

	mu          sync.Mutex
	failDeletes int
}

func (s *unstableStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	if s.failDeletes > 0 {
		s.failDeletes--
		s.mu.Unlock()
		return xerrors.New("store unavailable")
	}
	s.mu.Unlock()
	return s.Store.Delete(ctx, key)
}

// TestReleaseRetryAfterStoreFailure 测试存储瞬时故障后释放可重试：
// 首次释放失败不丢弃本地令牌，重试成功后锁可被再次获取
func TestReleaseRetryAfterStoreFailure(t *testing.T) {
	ctx := context.Background()

	base, err := kv.New(&kv.Config{Driver: kv.DriverMemory})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	store := &unstableStore{Store: base, failDeletes: 1}

	locker, err := New(&Config{PollInterval: 5 * time.Millisecond}, WithStore(store))
	if err != nil {
		t.Fatalf("failed to create locker: %v", err)
	}

	if err := locker.Acquire(ctx, "k", time.Second); err != nil {
		t.Fatalf("acquire failed: %v", err)
	}

	if err := locker.Release(ctx, "k"); err == nil {
		t.Fatal("expected release to fail while store is unavailable")
	}

	// 令牌仍在本地，重试释放成功
	if err := locker.Release(ctx, "k"); err != nil {
		t.Fatalf("retry release failed: %v", err)
	}

	if err := locker.Acquire(ctx, "k", time.Second); err != nil {
		t.Fatalf("re-acquire after retried release failed: %v", err)
	}
	_ = locker.Release(ctx, "k")
}

// TestCrossLockerExclusion 测试共享存储的两个 Locker 实例互斥
func TestCrossLockerExclusion(t *testing.T) {
	ctx := context.Background()
	store, err := kv.New(&kv.Config{Driver: kv.DriverMemory})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	lockerA, _ := New(&Config{PollInterval: 5 * time.Millisecond}, WithStore(store))
	lockerB, _ := New(&Config{PollInterval: 5 * time.Millisecond}, WithStore(store))

	if err := lockerA.Acquire(ctx, "k", time.Second); err != nil {
		t.Fatalf("acquire failed: %v", err)
	}

	if err := lockerB.Acquire(ctx, "k", 30*time.Millisecond); err != ErrAcquireTimeout {
		t.Fatalf("expected ErrAcquireTimeout from second locker, got %v", err)
	}

	if err := lockerA.Release(ctx, "k"); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if err := lockerB.Acquire(ctx, "k", time.Second); err != nil {
		t.Fatalf("second locker should acquire after release: %v", err)
	}
	_ = lockerB.Release(ctx, "k")
}
