package types

import (
	"context"
	"errors"
	"fmt"
)

// InsertLocation says where inserted text goes relative to the target range
// of a document.
type InsertLocation string

// Insert locations understood by document inserters.
const (
	InsertReplace InsertLocation = "replace"
	InsertAppend  InsertLocation = "append"
	InsertBefore  InsertLocation = "before"
	InsertAfter   InsertLocation = "after"
)

// ErrInvalidLocation is returned for an insert location outside the
// declared set.
var ErrInvalidLocation = errors.New("invalid insert location")

// Valid reports whether l is a declared insert location.
func (l InsertLocation) Valid() bool {
	switch l {
	case InsertReplace, InsertAppend, InsertBefore, InsertAfter:
		return true
	}
	return false
}

// ParseInsertLocation converts s into an InsertLocation.
func ParseInsertLocation(s string) (InsertLocation, error) {
	l := InsertLocation(s)
	if !l.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidLocation, s)
	}
	return l, nil
}

// InsertedRange describes text written into a document. Start and End are
// byte offsets into the document body after the write.
type InsertedRange struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

// Inserter writes text into a live document. Implementations are supplied
// by the host binding; the library never calls one directly.
type Inserter interface {
	InsertText(ctx context.Context, text string, location InsertLocation) (InsertedRange, error)
}
