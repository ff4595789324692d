package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dyluth/goap/internal/journal"
)

// MinShortIDLength is the minimum required length for short ID prefixes.
const MinShortIDLength = 6

// RecordLookup is the part of the journal client the resolver needs.
type RecordLookup interface {
	ScanRecords(ctx context.Context, prefix string) ([]string, error)
}

// ResolveRecordID resolves a short record ID prefix to a full UUID.
//
// A full UUID (36 chars, 4 hyphens) must exist. Shorter input must be at least
// MinShortIDLength characters and match exactly one record. Input is
// lowercased and may only contain hex digits and hyphens.
func ResolveRecordID(ctx context.Context, records RecordLookup, shortID string) (string, error) {
	shortID = strings.ToLower(shortID)
	if i := strings.IndexFunc(shortID, func(r rune) bool { return !isIDRune(r) }); i >= 0 {
		return "", fmt.Errorf("invalid record ID '%s': unexpected character %q (use hex digits and hyphens)", shortID, shortID[i])
	}

	if len(shortID) == 36 && strings.Count(shortID, "-") == 4 {
		matches, err := records.ScanRecords(ctx, shortID)
		if err != nil {
			return "", fmt.Errorf("failed to verify record existence: %w", err)
		}
		if len(matches) == 0 {
			return "", &NotFoundError{ShortID: shortID}
		}
		return shortID, nil
	}

	if len(shortID) < MinShortIDLength {
		return "", fmt.Errorf("short ID must be at least %d characters (got %d)", MinShortIDLength, len(shortID))
	}

	matches, err := records.ScanRecords(ctx, shortID)
	if err != nil {
		return "", fmt.Errorf("failed to search for record: %w", err)
	}

	switch len(matches) {
	case 0:
		return "", &NotFoundError{ShortID: shortID}
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguousError{ShortID: shortID, Matches: matches}
	}
}

func isIDRune(r rune) bool {
	return r == '-' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')
}

var _ RecordLookup = (*journal.Client)(nil)

// NotFoundError indicates no records matched the short ID.
type NotFoundError struct {
	ShortID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no records found matching '%s'", e.ShortID)
}

// AmbiguousError indicates multiple records matched the short ID.
type AmbiguousError struct {
	ShortID string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous short ID '%s' matches %d records", e.ShortID, len(e.Matches))
}

// FormatAmbiguousError creates a user-friendly error message for ambiguous short IDs.
// Lists all matching UUIDs (up to 10, then "...and N more").
func FormatAmbiguousError(err *AmbiguousError) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Error: ambiguous short ID '%s' matches %d records:\n", err.ShortID, len(err.Matches))

	displayCount := len(err.Matches)
	if displayCount > 10 {
		displayCount = 10
	}
	for i := 0; i < displayCount; i++ {
		fmt.Fprintf(&b, "  %s\n", err.Matches[i])
	}
	if len(err.Matches) > 10 {
		fmt.Fprintf(&b, "  ...and %d more\n", len(err.Matches)-10)
	}

	b.WriteString("\nUse a longer prefix to uniquely identify the record.")
	return b.String()
}

// IsNotFoundError checks if an error is a NotFoundError.
func IsNotFoundError(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsAmbiguousError checks if an error is an AmbiguousError.
func IsAmbiguousError(err error) bool {
	var amb *AmbiguousError
	return errors.As(err, &amb)
}
