package transport

// ItemRequest creates or updates an item in the registry.
type ItemRequest struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Notes    string `json:"notes"`
}

// DefinitionRequest registers a recurring task template.
type DefinitionRequest struct {
	ItemID            string `json:"item_id"`
	TaskCategory      string `json:"task_category"`
	FrequencyKind     string `json:"frequency_kind"`
	FrequencyInterval int    `json:"frequency_interval"`
	StartDate         string `json:"start_date"`
}

// ExtendHorizonRequest pushes a definition's occurrence horizon forward.
type ExtendHorizonRequest struct {
	Horizon string `json:"horizon"`
}

// CompleteRequest marks one occurrence complete.
type CompleteRequest struct {
	Note          string `json:"note"`
	AttachmentURL string `json:"attachment_url"`
}

// RescheduleRequest overrides an occurrence due date.
type RescheduleRequest struct {
	DueDate string `json:"due_date"`
}

// RegisterRequest creates an account.
type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Biography string `json:"biography"`
}

// LoginRequest exchanges credentials for a token and session.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	TTL      int    `json:"ttl_seconds"`
}

// RefreshRequest extends a session.
type RefreshRequest struct {
	SessionID string `json:"session_id"`
	TTL       int    `json:"ttl_seconds"`
}

// ProfileUpdateRequest updates mutable profile fields. Nil pointers leave the
// stored value unchanged.
type ProfileUpdateRequest struct {
	Username             *string `json:"username"`
	Email                *string `json:"email"`
	Name                 *string `json:"name"`
	Biography            *string `json:"biography"`
	ReminderHours        *int    `json:"reminder_hours"`
	NotificationsEnabled *bool   `json:"notifications_enabled"`
}

// ProvisionProfileRequest creates a profile explicitly.
type ProvisionProfileRequest struct {
	Username             string `json:"username"`
	Email                string `json:"email"`
	Name                 string `json:"name"`
	Biography            string `json:"biography"`
	ReminderHours        int    `json:"reminder_hours"`
	NotificationsEnabled *bool  `json:"notifications_enabled"`
}
