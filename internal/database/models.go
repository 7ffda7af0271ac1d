package database

import "time"

// AnonymousUsername is stored for senders that have no Telegram handle.
const AnonymousUsername = "anonymous"

// Message is one inbound support message. Records are append-only: they are
// created once per incoming text or transcribed voice message and never
// updated.
type Message struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Username  string    `db:"username"`
	Text      string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
}
