package domain

import "context"

//go:generate mockgen -source=check_lock.go -destination=check_lock_mock.go -package=domain

// CheckLock guards against two wake alert checks running at the same time.
type CheckLock interface {
	TryLock(ctx context.Context) (bool, error)
	Unlock(ctx context.Context) error
}
