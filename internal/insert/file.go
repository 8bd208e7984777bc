package insert

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mesh-intelligence/clausebook/internal/atomicfile"
	"github.com/mesh-intelligence/clausebook/pkg/types"
)

var _ types.Inserter = (*FileInserter)(nil)

// FileInserter treats a text file as the document body. Replace overwrites
// the file; append and after add at the end; before adds at the start. A
// missing file is an empty document.
type FileInserter struct {
	Path string
}

// InsertText writes text into the file and returns its byte range in the
// new body.
func (f *FileInserter) InsertText(ctx context.Context, text string, location types.InsertLocation) (types.InsertedRange, error) {
	if err := ctx.Err(); err != nil {
		return types.InsertedRange{}, err
	}
	if !location.Valid() {
		return types.InsertedRange{}, fmt.Errorf("%w: %q", types.ErrInvalidLocation, location)
	}

	body, err := os.ReadFile(f.Path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return types.InsertedRange{}, fmt.Errorf("reading %s: %w", f.Path, err)
	}

	var head, tail string
	switch location {
	case types.InsertReplace:
	case types.InsertBefore:
		tail = string(body)
	default:
		head = string(body)
	}

	err = atomicfile.Write(f.Path, 0o644, func(w *bufio.Writer) error {
		for _, s := range []string{head, text, tail} {
			if _, err := w.WriteString(s); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return types.InsertedRange{}, fmt.Errorf("writing %s: %w", f.Path, err)
	}

	return types.InsertedRange{
		Start: len(head),
		End:   len(head) + len(text),
		Text:  text,
	}, nil
}
