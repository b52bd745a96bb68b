package models

const (
	ItemStatusPosted  = "posted"
	ItemStatusSkipped = "skipped"
	ItemStatusFailed  = "failed"
)

type ItemResult struct {
	Dir    string      `json:"dir"`
	PostID string      `json:"post_id,omitempty"`
	Status string      `json:"status"`
	Reason string      `json:"reason,omitempty"`
	Result *PostResult `json:"result,omitempty"`
}

// RunSummary describes one bulk run. Processed counts items that were
// attempted, skipped items are listed but not counted.
type RunSummary struct {
	Platform   string        `json:"platform"`
	Processed  int           `json:"processed"`
	Successful int           `json:"successful"`
	Items      []*ItemResult `json:"items"`
}

func (s *RunSummary) Failed() int {
	return s.Processed - s.Successful
}
