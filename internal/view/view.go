// Package view turns a collection into displayable lines. Rendering is
// a pure function of (records, filter): no terminal handle, no state,
// so re-rendering the same input always yields the same output. The
// live-surface adapters (bubbles list delegate, CLI printing) sit on
// top of these nodes.
package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/lmoreno/mesa/internal/model"
)

// Filter narrows a collection before rendering. Query is a
// case-insensitive substring match over name (and category, where one
// exists); Category is an exact match. Zero value matches everything.
type Filter struct {
	Query    string
	Category string
}

// Node is one rendered entry: fixed template text around sanitized
// field values. Name and Category are kept for filtering; Text is the
// display line.
type Node struct {
	ID       string
	Name     string
	Category string
	Text     string
}

// Render produces view nodes for items in collection order, applying
// the filter first. An empty result renders as a single placeholder
// node carrying the given message.
func Render[T any](items []T, f Filter, describe func(T) Node, placeholder string) []Node {
	nodes := make([]Node, 0, len(items))
	for _, it := range items {
		n := describe(it)
		n.Name = Sanitize(n.Name)
		n.Category = Sanitize(n.Category)
		n.Text = Sanitize(n.Text)
		if !matches(n, f) {
			continue
		}
		nodes = append(nodes, n)
	}
	if len(nodes) == 0 {
		return []Node{{Text: placeholder}}
	}
	return nodes
}

func matches(n Node, f Filter) bool {
	if f.Category != "" && n.Category != f.Category {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(n.Name), q) ||
		strings.Contains(strings.ToLower(n.Category), q)
}

// Sanitize strips terminal escape sequences and control characters from
// user-entered text so that markup-like input displays literally
// instead of being interpreted by the terminal.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	skip := false
	for _, r := range s {
		if skip {
			// Inside an ESC [ ... sequence; letters terminate it.
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				skip = false
			}
			continue
		}
		if r == 0x1b {
			skip = true
			continue
		}
		if r < 0x20 && r != '\t' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Fixed templates per collection. Only field values vary, inserted as
// plain text.

// MenuNode describes one dish, e.g. "Paella  €12.50  [Arroces]".
func MenuNode(m model.MenuItem) Node {
	return Node{
		ID:       m.ID,
		Name:     m.Name,
		Category: m.Category,
		Text:     fmt.Sprintf("%s  %s  [%s]", m.Name, m.FormatPrice(), m.Category),
	}
}

// ReservationNode describes one booking, e.g. "Ana  2026-09-01  4 guests".
func ReservationNode(r model.Reservation) Node {
	return Node{
		ID:   r.ID,
		Name: r.Name,
		Text: fmt.Sprintf("%s  %s  %d guests", r.Name, r.Date, r.Guests),
	}
}

// ReviewNode describes one review with its relative age.
func ReviewNode(r model.Review) Node {
	return Node{
		ID:   r.ID,
		Name: r.Name,
		Text: fmt.Sprintf("%s: %s (%s)", r.Name, r.Text, r.Age(time.Now())),
	}
}
