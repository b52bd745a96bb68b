package models

// ContentDocument holds the three sections of a content markdown file.
type ContentDocument struct {
	Main     string `json:"main"`
	Hashtags string `json:"hashtags"`
	CTA      string `json:"cta"`
}

// ContentItem is one publishable unit, keyed by a stable content identifier.
type ContentItem struct {
	ID        string
	Title     string
	Text      string
	PostType  string
	ImageURL  string
	ImagePath string
}

type PostResult struct {
	ID       string `json:"id"`
	URL      string `json:"url,omitempty"`
	Platform string `json:"platform"`
	PostType string `json:"post_type,omitempty"`
}

// CannedPost is a prepared community post body.
type CannedPost struct {
	Type    string
	Content string
}
