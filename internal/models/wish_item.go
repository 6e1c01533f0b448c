package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput marks client input that fails validation. It never
	// reaches the store.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks a lookup for an id absent from the current snapshot.
	ErrNotFound = errors.New("item not found")
)

type Category string

const (
	CategoryNecessity     Category = "necessity"
	CategoryDiscretionary Category = "discretionary"
)

type Status string

const (
	StatusWanted         Status = "wanted"
	StatusPurchased      Status = "purchased"
	StatusMaybeNotNeeded Status = "maybe_not_needed"
	StatusNotNeeded      Status = "not_needed"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryNecessity, CategoryDiscretionary:
		return true
	}
	return false
}

func (s Status) Valid() bool {
	switch s {
	case StatusWanted, StatusPurchased, StatusMaybeNotNeeded, StatusNotNeeded:
		return true
	}
	return false
}

// WishItem is one desired purchase with its derived priority score.
// Score is always recomputed on write; a client-supplied value is ignored.
type WishItem struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Category    Category `json:"category" yaml:"category"`
	DesireLevel int      `json:"desireLevel" yaml:"desire_level"`
	Status      Status   `json:"status" yaml:"status"`
	Reason      string   `json:"reason" yaml:"reason"`
	Memo        string   `json:"memo" yaml:"memo"`
	Price       float64  `json:"price" yaml:"price"`
	Score       float64  `json:"score" yaml:"score"`
}

// WishItemDraft carries the client-supplied fields for a new item.
// ID and score are assigned by the service.
type WishItemDraft struct {
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	DesireLevel int      `json:"desireLevel"`
	Status      Status   `json:"status"`
	Reason      string   `json:"reason"`
	Memo        string   `json:"memo"`
	Price       float64  `json:"price"`
}

func (d *WishItemDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !d.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, d.Category)
	}
	if d.DesireLevel < 1 || d.DesireLevel > 3 {
		return fmt.Errorf("%w: desireLevel must be 1, 2 or 3", ErrInvalidInput)
	}
	if !d.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, d.Status)
	}
	if d.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	return nil
}

// WishItemPatch carries a partial update. Nil fields are left untouched.
type WishItemPatch struct {
	Name        *string   `json:"name"`
	Category    *Category `json:"category"`
	DesireLevel *int      `json:"desireLevel"`
	Status      *Status   `json:"status"`
	Reason      *string   `json:"reason"`
	Memo        *string   `json:"memo"`
	Price       *float64  `json:"price"`
}

// Apply merges the patch over an existing item and returns the result.
// Score is left stale on purpose; the service recomputes it on every write.
func (p *WishItemPatch) Apply(item WishItem) WishItem {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.DesireLevel != nil {
		item.DesireLevel = *p.DesireLevel
	}
	if p.Status != nil {
		item.Status = *p.Status
	}
	if p.Reason != nil {
		item.Reason = *p.Reason
	}
	if p.Memo != nil {
		item.Memo = *p.Memo
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	return item
}

func (p *WishItemPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
	}
	if p.Category != nil && !p.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, *p.Category)
	}
	if p.DesireLevel != nil && (*p.DesireLevel < 1 || *p.DesireLevel > 3) {
		return fmt.Errorf("%w: desireLevel must be 1, 2 or 3", ErrInvalidInput)
	}
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *p.Status)
	}
	if p.Price != nil && *p.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	return nil
}
