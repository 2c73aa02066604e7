package cart

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is returned when an item index does not address an item.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidPermutation is returned by ReorderPanels for anything that is
	// not a permutation of the current indices.
	ErrInvalidPermutation = errors.New("invalid permutation")

	// ErrUnsupportedSchema marks a persisted record written by an unknown schema version.
	ErrUnsupportedSchema = errors.New("unsupported schema version")
)

// IndexError reports which operation received a bad index.
type IndexError struct {
	Op    string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d out of range [0,%d)", e.Op, e.Index, e.Len)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

func checkIndex(op string, index, length int) error {
	if index < 0 || index >= length {
		return &IndexError{Op: op, Index: index, Len: length}
	}
	return nil
}

func checkPermutation(order []int, length int) error {
	if len(order) != length {
		return fmt.Errorf("reorder: %w: got %d indices for %d items", ErrInvalidPermutation, len(order), length)
	}

	seen := make([]bool, length)
	for _, idx := range order {
		if idx < 0 || idx >= length {
			return fmt.Errorf("reorder: %w: index %d out of range [0,%d)", ErrInvalidPermutation, idx, length)
		}
		if seen[idx] {
			return fmt.Errorf("reorder: %w: index %d repeated", ErrInvalidPermutation, idx)
		}
		seen[idx] = true
	}
	return nil
}
