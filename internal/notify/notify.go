// Package notify delivers short user-facing notifications (the toasts of the
// reading UI) to connected websocket clients.
package notify

import (
	"time"

	"github.com/google/uuid"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

type Notification struct {
	ID          string    `json:"id"`
	Level       Level     `json:"level"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Notifier accepts notifications for delivery. Implementations must not block.
type Notifier interface {
	Notify(n Notification)
}

func New(level Level, title, description string) Notification {
	return Notification{
		ID:          uuid.NewString(),
		Level:       level,
		Title:       title,
		Description: description,
		CreatedAt:   time.Now(),
	}
}

func Success(title, description string) Notification {
	return New(LevelSuccess, title, description)
}

func Error(title, description string) Notification {
	return New(LevelError, title, description)
}

func Info(title, description string) Notification {
	return New(LevelInfo, title, description)
}

// Discard drops every notification.
type Discard struct{}

func (Discard) Notify(Notification) {}
