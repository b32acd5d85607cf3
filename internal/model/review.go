package model

import (
	"fmt"
	"strings"
	"time"
)

// Review is a guest comment left on the site.
type Review struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Text    string `json:"text"`
	Created int64  `json:"created"` // unix milliseconds
}

func (r Review) RecordID() string { return r.ID }

// WithID returns a copy carrying the given id.
func (r Review) WithID(id string) Review {
	r.ID = id
	return r
}

func (r Review) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return invalid("name is required")
	}
	if strings.TrimSpace(r.Text) == "" {
		return invalid("text is required")
	}
	return nil
}

// ParseReview builds an unvalidated Review stamped with the current time.
func ParseReview(name, text string) Review {
	return Review{
		Name:    strings.TrimSpace(name),
		Text:    strings.TrimSpace(text),
		Created: time.Now().UnixMilli(),
	}
}

// Age renders the review's creation time relative to now ("3d ago").
func (r Review) Age(now time.Time) string {
	d := now.Sub(time.UnixMilli(r.Created))
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
