package domain

import "time"

// JokeStatus is the moderation state of a joke.
type JokeStatus string

const (
	JokeStatusPending  JokeStatus = "pending"
	JokeStatusApproved JokeStatus = "approved"
	JokeStatusRejected JokeStatus = "rejected"
)

var ValidJokeStatuses = []JokeStatus{
	JokeStatusPending,
	JokeStatusApproved,
	JokeStatusRejected,
}

// Joke is a stored joke along with its moderation state.
type Joke struct {
	ID        int64      `json:"id"`
	Text      string     `json:"text"`
	AuthorID  *int64     `json:"author_id,omitempty"`
	Status    JokeStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

// JokeView is what gets shown to a user. Theme is set only when the joke was
// picked through a theme filter.
type JokeView struct {
	ID    int64     `json:"id"`
	Text  string    `json:"text"`
	Theme *ThemeRef `json:"theme,omitempty"`
}

// JokeThemeLink says how strongly a joke belongs to a theme.
type JokeThemeLink struct {
	ThemeID int64   `json:"theme_id"`
	Weight  float64 `json:"weight"`
}

// DefaultLinkWeight is used for links stored without an explicit weight.
const DefaultLinkWeight = 1.0

// SubmittedJoke is the result of adding a joke to the moderation queue.
type SubmittedJoke struct {
	JokeID   int64   `json:"joke_id"`
	ThemeIDs []int64 `json:"theme_ids"`
}
