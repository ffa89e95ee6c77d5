package feed

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidCursor marks a pagination token that cannot be decoded. The read
// API treats it as "no cursor" and restarts from the first page; it never
// reaches a client as an error.
var ErrInvalidCursor = errors.New("invalid cursor")

// Cursor is the self-describing pagination token: the last-seen entry's
// position. Stateless, so serving the next page needs no server-side cursor
// storage even when the feed is re-ranked between requests.
type Cursor struct {
	PostID    int64    `json:"postId"`
	Rank      int      `json:"rank"`
	Score     *float64 `json:"score,omitempty"`
	Timestamp *int64   `json:"timestamp,omitempty"` // unix ms of the entry's post
}

// EncodeCursor renders the cursor as base64 over its JSON form.
func EncodeCursor(c Cursor) string {
	raw, _ := json.Marshal(c)
	return base64.StdEncoding.EncodeToString(raw)
}

// DecodeCursor parses a client-supplied token. Any malformed input maps to
// ErrInvalidCursor so callers have a single condition to branch on.
func DecodeCursor(token string) (*Cursor, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}

	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	if c.PostID == 0 || c.Rank <= 0 {
		return nil, fmt.Errorf("%w: missing position fields", ErrInvalidCursor)
	}
	return &c, nil
}

// CursorForEntry builds the token pointing just past the given entry.
func CursorForEntry(e *FeedEntry) string {
	ts := e.PostCreatedAt.UnixMilli()
	return EncodeCursor(Cursor{
		PostID:    e.PostID,
		Rank:      e.Rank,
		Score:     e.Score,
		Timestamp: &ts,
	})
}
