package domain

import "time"

// ChatRecord is one answered question, persisted after a successful ask so
// the app can show recent conversations and suggest sample questions.
type ChatRecord struct {
	ID        string
	SectionID string
	UserID    string
	Question  string
	Answer    string
	CreatedAt time.Time
}

// ValidateChatRecord validates a ChatRecord instance
func ValidateChatRecord(c *ChatRecord) error {
	if c == nil {
		return NewDomainError(ErrCodeValidation, "chat record cannot be nil")
	}
	if c.ID == "" {
		return NewDomainError(ErrCodeValidation, "chat record ID is required")
	}
	if c.SectionID == "" {
		return NewDomainError(ErrCodeValidation, "chat record section ID is required")
	}
	if c.UserID == "" {
		return NewDomainError(ErrCodeValidation, "chat record user ID is required")
	}
	if c.Question == "" {
		return NewDomainError(ErrCodeValidation, "chat record question is required")
	}
	return nil
}
