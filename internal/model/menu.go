package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MenuItem is one dish on the menu.
type MenuItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Image    string  `json:"image"` // URL, may be empty
}

func (m MenuItem) RecordID() string { return m.ID }

// WithID returns a copy carrying the given id.
func (m MenuItem) WithID(id string) MenuItem {
	m.ID = id
	return m
}

// FormatPrice renders the price the way the menu displays it, e.g. "€12.50".
func (m MenuItem) FormatPrice() string {
	return fmt.Sprintf("€%.2f", m.Price)
}

func (m MenuItem) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return invalid("name is required")
	}
	if strings.TrimSpace(m.Category) == "" {
		return invalid("category is required")
	}
	if math.IsNaN(m.Price) || math.IsInf(m.Price, 0) || m.Price < 0 {
		return invalid("price must be a non-negative number")
	}
	return nil
}

// ParseMenuItem builds an unvalidated MenuItem from raw form fields.
// A price that doesn't parse becomes NaN so Validate rejects it.
func ParseMenuItem(name, price, category, image string) MenuItem {
	p, err := strconv.ParseFloat(strings.TrimSpace(price), 64)
	if err != nil {
		p = math.NaN()
	}
	return MenuItem{
		Name:     strings.TrimSpace(name),
		Price:    p,
		Category: strings.TrimSpace(category),
		Image:    strings.TrimSpace(image),
	}
}
