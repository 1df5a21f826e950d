package hanzi

import "errors"

var (
	// ErrInvalidArgument marks malformed caller input. Never retried.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound means the input was valid but no record matched.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguous means a grapheme lookup matched more than one record.
	ErrAmbiguous = errors.New("ambiguous match")
	// ErrStoreUnavailable wraps failures of the underlying database.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrEmptyCorpus means there is nothing to sample from.
	ErrEmptyCorpus = errors.New("empty corpus")
)
