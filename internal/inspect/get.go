package inspect

import (
	"context"
	"fmt"
	"io"

	"github.com/dyluth/goap/internal/journal"
	"github.com/google/uuid"
)

// GetRecord retrieves a single record by full ID and writes it as pretty-printed JSON.
func GetRecord(ctx context.Context, client *journal.Client, recordID string, w io.Writer) error {
	if _, err := uuid.Parse(recordID); err != nil {
		return fmt.Errorf("invalid record ID format: must be a valid UUID")
	}

	r, err := client.GetRecord(ctx, recordID)
	if err != nil {
		if journal.IsNotFound(err) {
			return &RecordNotFoundError{RecordID: recordID}
		}
		return fmt.Errorf("failed to fetch record: %w", err)
	}

	if err := FormatSingleJSON(w, r); err != nil {
		return fmt.Errorf("failed to format record: %w", err)
	}

	return nil
}

// RecordNotFoundError represents a specific "record not found" error.
type RecordNotFoundError struct {
	RecordID string
}

func (e *RecordNotFoundError) Error() string {
	return fmt.Sprintf("record with ID '%s' not found", e.RecordID)
}

// IsNotFound returns true if the error is a RecordNotFoundError.
func IsNotFound(err error) bool {
	_, ok := err.(*RecordNotFoundError)
	return ok
}
