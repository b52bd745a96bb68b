package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

type PostingLogEntry struct {
	PostID     string    `json:"post_id"`
	LastPosted time.Time `json:"last_posted"`
	LastPostID string    `json:"last_post_id"`
	PostType   string    `json:"post_type,omitempty"`
	Platform   string    `json:"platform,omitempty"`
	Title      string    `json:"title,omitempty"`
	URL        string    `json:"url,omitempty"`
}

// PostingLog maps content identifiers to their latest entry. Keys keep
// insertion order through a JSON round trip.
type PostingLog struct {
	keys    []string
	entries map[string]*PostingLogEntry
}

func NewPostingLog() *PostingLog {
	return &PostingLog{entries: make(map[string]*PostingLogEntry)}
}

func (l *PostingLog) Get(id string) (*PostingLogEntry, bool) {
	e, ok := l.entries[id]
	return e, ok
}

// LastPosted returns nil when the identifier has never been posted.
func (l *PostingLog) LastPosted(id string) *time.Time {
	e, ok := l.entries[id]
	if !ok || e.LastPosted.IsZero() {
		return nil
	}
	t := e.LastPosted
	return &t
}

// Set replaces the entry for id. A new id is appended at the end.
func (l *PostingLog) Set(id string, entry *PostingLogEntry) {
	if l.entries == nil {
		l.entries = make(map[string]*PostingLogEntry)
	}
	if _, ok := l.entries[id]; !ok {
		l.keys = append(l.keys, id)
	}
	l.entries[id] = entry
}

func (l *PostingLog) Len() int {
	return len(l.keys)
}

func (l *PostingLog) Keys() []string {
	return append([]string(nil), l.keys...)
}

// Recent returns up to n entries, most recently posted first.
func (l *PostingLog) Recent(n int) []*PostingLogEntry {
	out := make([]*PostingLogEntry, 0, len(l.keys))
	for _, k := range l.keys {
		out = append(out, l.entries[k])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastPosted.After(out[j].LastPosted)
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

type postingLogDocument struct {
	Posts json.RawMessage `json:"posts"`
}

func (l *PostingLog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"posts":{`)
	for i, k := range l.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(l.entries[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteString(`}}`)
	return buf.Bytes(), nil
}

func (l *PostingLog) UnmarshalJSON(data []byte) error {
	var doc postingLogDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	l.keys = nil
	l.entries = make(map[string]*PostingLogEntry)
	if len(doc.Posts) == 0 || string(doc.Posts) == "null" {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(doc.Posts))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("posts must be an object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected key %v", tok)
		}
		var entry PostingLogEntry
		if err := dec.Decode(&entry); err != nil {
			return fmt.Errorf("entry %q: %w", key, err)
		}
		if entry.PostID == "" {
			entry.PostID = key
		}
		l.Set(key, &entry)
	}
	_, err = dec.Token()
	return err
}
