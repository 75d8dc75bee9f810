package mynotify

import (
	"context"
	"time"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is a non-blocking, dismissible message shown to the user.
// Failures of the cart never propagate beyond one of these.
type Notification struct {
	UID       string
	CreatedAt time.Time
	Level     Level
	Message   string
}

//go:generate mockgen -source=api.go -package mynotify -destination notifier_mock.go Notifier
type Notifier interface {
	Notify(c context.Context, level Level, message string)
	List(c context.Context) []Notification
	Dismiss(c context.Context, uid string)
}
