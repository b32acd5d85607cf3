package model

import (
	"strconv"
	"strings"
	"time"
)

// Reservation is a table booking request.
type Reservation struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Date   string `json:"date"` // as entered, must parse with one of the accepted layouts
	Guests int    `json:"guests"`
}

func (r Reservation) RecordID() string { return r.ID }

// WithID returns a copy carrying the given id.
func (r Reservation) WithID(id string) Reservation {
	r.ID = id
	return r
}

// Layouts accepted for the reservation date, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04",
	time.RFC3339,
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (r Reservation) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return invalid("name is required")
	}
	d := strings.TrimSpace(r.Date)
	if d == "" {
		return invalid("date is required")
	}
	if _, ok := parseDate(d); !ok {
		return invalid("date must be a valid date")
	}
	if r.Guests < 1 {
		return invalid("guests must be at least 1")
	}
	return nil
}

// ParseReservation builds an unvalidated Reservation from raw form fields.
// Unparseable guest counts become 0 so Validate rejects them.
func ParseReservation(name, date, guests string) Reservation {
	n, err := strconv.Atoi(strings.TrimSpace(guests))
	if err != nil {
		n = 0
	}
	return Reservation{
		Name:   strings.TrimSpace(name),
		Date:   strings.TrimSpace(date),
		Guests: n,
	}
}
