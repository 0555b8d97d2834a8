package domain

import "context"

//go:generate mockgen -source=notifier.go -destination=notifier_mock.go -package=domain

type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}
