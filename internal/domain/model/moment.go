package model

import (
	"strconv"
	"time"
)

// Moment types as declared by the export.
const (
	MomentTypeText  = "text"
	MomentTypeShare = "share"
)

// Moment is one timeline entry from a moments export.
type Moment struct {
	ID          string   `json:"id"`
	Content     string   `json:"content"`
	Type        string   `json:"type"`
	Images      []string `json:"images"`
	ShareTitle  string   `json:"share_title"`
	ShareDesc   string   `json:"share_desc"`
	ShareURL    string   `json:"share_url"`
	ShareImage  string   `json:"share_image,omitempty"`
	PublishTime string   `json:"publish_time"`

	// DisplayImages holds the normalized image references: thumbnails with a
	// full-size sibling dropped, remaining entries mapped to remote URLs or
	// local-asset handles.
	DisplayImages []string `json:"display_images,omitempty"`
}

// PublishUnixMilli parses the export's decimal publish timestamp. Entries
// with a malformed timestamp sort first.
func (m *Moment) PublishUnixMilli() int64 {
	ms, err := strconv.ParseInt(m.PublishTime, 10, 64)
	if err != nil {
		return 0
	}

	return ms
}

// PublishedAt returns the publish time as RFC3339 UTC.
func (m *Moment) PublishedAt() string {
	return time.UnixMilli(m.PublishUnixMilli()).UTC().Format(time.RFC3339)
}

// Account is the exported profile record.
type Account struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Bio      string `json:"bio,omitempty"`
	Avatar   string `json:"avatar"`
	Banner   string `json:"banner"`

	// DisplayAvatar and DisplayBanner carry the normalized references, local
	// handles in local mode and the raw URLs otherwise.
	DisplayAvatar string `json:"display_avatar,omitempty"`
	DisplayBanner string `json:"display_banner,omitempty"`
}

// Export is the top-level document of a moments export file.
type Export struct {
	Moments []Moment `json:"moments"`
	Account *Account `json:"account"`
}
