package push

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotConfigured = errors.New("push is not configured: VAPID keys missing")
	ErrNotFound      = errors.New("subscription not found")
)

// Subscription is one browser push endpoint. IsActive is cleared when the
// provider reports the subscription gone (404/410), never on transient
// failures.
type Subscription struct {
	ID        uuid.UUID
	UserID    string
	Endpoint  string
	P256dh    string
	Auth      string
	IsActive  bool
	CreatedAt time.Time
}

// Message is the notification envelope delivered to the browser.
type Message struct {
	Title              string `json:"title"`
	Body               string `json:"body"`
	Tag                string `json:"tag,omitempty"`
	URL                string `json:"url,omitempty"`
	RequireInteraction bool   `json:"requireInteraction,omitempty"`
}

// Result counts per-recipient outcomes of a broadcast. A broadcast never
// fails as a whole because some recipients failed.
type Result struct {
	Sent   int
	Failed int
}
