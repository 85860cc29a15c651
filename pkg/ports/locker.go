package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a distributed lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker coordinates thread ownership across replicas.
// The Session Coordinator already serializes turns per thread within one
// process; a locker extends that guarantee to multiple instances.
type DistributedLocker interface {
	// Lock acquires the lock for a key, blocking until acquired, the
	// context is canceled, or the TTL expires (implementation specific).
	// The returned UnlockFunc MUST be called to release the lock.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
