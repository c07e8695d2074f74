package reconcile

import "context"

// SourceAdapter fetches candidate data for one external source. Adapters
// own network or storage I/O, parsing and field mapping; they deliver
// canonical, typed fields.
//
// Fetch returns an error wrapping ErrSourceUnavailable when the source
// cannot be reached and ErrNoMatch when it has nothing for the identifier.
type SourceAdapter interface {
	// Source returns the tag attached to every candidate this adapter produces.
	Source() Source

	// Fetch looks up a vessel by identifier.
	Fetch(ctx context.Context, idType IdentifierType, value string) (Candidate, error)
}

// AdapterFunc adapts a fetch function to SourceAdapter.
type AdapterFunc struct {
	Tag Source
	Fn  func(ctx context.Context, idType IdentifierType, value string) (Candidate, error)
}

// Source implements SourceAdapter.
func (a AdapterFunc) Source() Source { return a.Tag }

// Fetch implements SourceAdapter.
func (a AdapterFunc) Fetch(ctx context.Context, idType IdentifierType, value string) (Candidate, error) {
	return a.Fn(ctx, idType, value)
}
