package domain

import "time"

// User is a registered chat user. ExternalID is the identity on the chat platform.
type User struct {
	ID         int64     `json:"id"`
	ExternalID string    `json:"external_id"`
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// UserJoke is a joke as seen by its author, including moderation state.
type UserJoke struct {
	ID        int64      `json:"id"`
	Text      string     `json:"text"`
	Status    JokeStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}
