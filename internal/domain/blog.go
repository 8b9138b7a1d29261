package domain

import (
	"fmt"
	"time"
)

// BlogPost is a published article.
type BlogPost struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the client-provided fields.
func (b *BlogPost) Validate() error {
	if b.Title == "" {
		return fmt.Errorf("title is required")
	}
	if b.Content == "" {
		return fmt.Errorf("content is required")
	}
	return nil
}
