package domain

import "time"

// User represents an account and its profile settings.
type User struct {
	ID                   string    `json:"id"`
	Username             string    `json:"username,omitempty"`
	Email                string    `json:"email,omitempty"`
	Name                 string    `json:"name"`
	Biography            string    `json:"biography,omitempty"`
	PasswordHash         string    `json:"-"`
	ReminderHours        int       `json:"reminder_hours"`
	NotificationsEnabled bool      `json:"notifications_enabled"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}
