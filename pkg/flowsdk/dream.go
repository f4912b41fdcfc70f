package flowsdk

import "context"

// MinInterpretationLength is the minimum content length a dream
// interpretation must exceed to count as genuine rather than a stand-in.
const MinInterpretationLength = 50

// DreamIsPlaceholder reports whether a dream still carries the server's
// stand-in interpretation. Genuine results are flagged Interpreted and carry
// an interpretation longer than MinInterpretationLength.
func DreamIsPlaceholder(d DreamResponse) bool {
	if !d.Interpreted {
		return true
	}
	return len(d.Interpretation) <= MinInterpretationLength
}

// MergeDreams folds a fetched dream into the held one. A partial payload
// must not regress known-good data: a positive uniqueness score on the held
// value survives an absent or zero score in the fetched one.
func MergeDreams(prev, fetched DreamResponse) DreamResponse {
	merged := fetched
	if merged.UniquenessScore <= 0 && prev.UniquenessScore > 0 {
		merged.UniquenessScore = prev.UniquenessScore
	}
	if merged.Content == "" {
		merged.Content = prev.Content
	}
	return merged
}

// NewDreamPoller wires a poller for a dream created through the session,
// using the dream predicate and merge rules.
func NewDreamPoller(session *Session, initial DreamResponse) *Poller[DreamResponse] {
	fetch := func(ctx context.Context) (DreamResponse, error) {
		return session.FetchDream(ctx, initial.ID)
	}
	return NewPoller(initial, fetch, DreamIsPlaceholder, MergeDreams)
}
