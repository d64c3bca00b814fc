package inventory

import "fmt"

// FilterError means a filter bound is malformed. It is raised before
// any network call is made.
type FilterError struct {
	Field  string
	Reason string
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("invalid filter: %s: %s", e.Field, e.Reason)
}

// Criteria is an optional bundle of bounds ANDed together. A nil
// field imposes no constraint. Bounds are inclusive; category match
// is a case-sensitive exact match on the category name.
type Criteria struct {
	Category *string
	MinStock *float64
	MaxStock *float64
	MinPrice *float64
	MaxPrice *float64
}

func (c Criteria) IsZero() bool {
	return c.Category == nil &&
		c.MinStock == nil && c.MaxStock == nil &&
		c.MinPrice == nil && c.MaxPrice == nil
}

func (c Criteria) Validate() error {
	if c.MinStock != nil && *c.MinStock < 0 {
		return &FilterError{Field: "min_stock", Reason: "must not be negative"}
	}
	if c.MinPrice != nil && *c.MinPrice < 0 {
		return &FilterError{Field: "min_price", Reason: "must not be negative"}
	}
	if c.MinStock != nil && c.MaxStock != nil && *c.MinStock > *c.MaxStock {
		return &FilterError{Field: "min_stock", Reason: "greater than max_stock"}
	}
	if c.MinPrice != nil && c.MaxPrice != nil && *c.MinPrice > *c.MaxPrice {
		return &FilterError{Field: "min_price", Reason: "greater than max_price"}
	}
	return nil
}

func (c Criteria) matches(item Item) bool {
	if c.Category != nil && item.Category != *c.Category {
		return false
	}
	if c.MinStock != nil && item.Quantity < *c.MinStock {
		return false
	}
	if c.MaxStock != nil && item.Quantity > *c.MaxStock {
		return false
	}
	if c.MinPrice != nil && item.SellingPrice < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && item.SellingPrice > *c.MaxPrice {
		return false
	}
	return true
}

// Apply filters items, preserving their relative order. An empty
// result is valid.
func (c Criteria) Apply(items []Item) []Item {
	if c.IsZero() {
		return items
	}
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if c.matches(item) {
			out = append(out, item)
		}
	}
	return out
}
