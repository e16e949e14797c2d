package entity

// Mention is one incoming message from the platform's mention stream.
// ConversationID is stable across a reply thread and keys the session.
type Mention struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversation_id"`
	AuthorID       string `json:"author_id"`
	AuthorName     string `json:"author_name,omitempty"`
	Text           string `json:"text"`
	CreatedAt      string `json:"created_at,omitempty"`
}
