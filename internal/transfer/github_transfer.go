package transfer

import (
	"encoding/json"
	"time"
)

type GraphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type GraphQLError struct {
	Type    string `json:"type,omitempty"`
	Message string `json:"message"`
}

type GraphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

type RepositoryCategories struct {
	Repository struct {
		ID                   string `json:"id"`
		DiscussionCategories struct {
			Nodes []struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"nodes"`
		} `json:"discussionCategories"`
	} `json:"repository"`
}

type CreateDiscussionData struct {
	CreateDiscussion struct {
		Discussion struct {
			ID    string `json:"id"`
			Title string `json:"title"`
			URL   string `json:"url"`
		} `json:"discussion"`
	} `json:"createDiscussion"`
}

type DiscussionNode struct {
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Number    int       `json:"number"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Category  struct {
		Name string `json:"name"`
	} `json:"category"`
	Comments struct {
		TotalCount int `json:"totalCount"`
	} `json:"comments"`
	Author *struct {
		Login string `json:"login"`
	} `json:"author"`
}

type DiscussionsPage struct {
	Repository struct {
		Discussions struct {
			Nodes    []DiscussionNode `json:"nodes"`
			PageInfo struct {
				HasNextPage bool   `json:"hasNextPage"`
				EndCursor   string `json:"endCursor"`
			} `json:"pageInfo"`
		} `json:"discussions"`
	} `json:"repository"`
}
