package domain

import "time"

// Dream is a user-submitted daily entry. Interpretation and uniqueness score
// are computed asynchronously by the interpreter worker; until then the
// record carries a placeholder interpretation and a zero score.
type Dream struct {
	ID              string
	ProfileID       string
	Content         string
	Interpretation  string
	UniquenessScore int // 1-100 once computed, 0 while pending
	InterpretedAt   *time.Time
	CreatedAt       time.Time
}

// Interpreted reports whether the asynchronous enrichment has completed.
func (d Dream) Interpreted() bool {
	return d.InterpretedAt != nil
}
