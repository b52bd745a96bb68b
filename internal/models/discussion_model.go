package models

import "time"

// Challenge is one wiki markdown file to be turned into a discussion.
type Challenge struct {
	Path    string
	Name    string
	Content string
}

type DiscussionResult struct {
	File    string `json:"file"`
	Title   string `json:"title"`
	URL     string `json:"url,omitempty"`
	Error   string `json:"error,omitempty"`
	Success bool   `json:"success"`
}

type Discussion struct {
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Number    int       `json:"number"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Comments  int       `json:"comments"`
	User      string    `json:"user"`
	Body      string    `json:"body"`
}

type DiscussionCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
