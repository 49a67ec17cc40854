package parser

import (
	"context"
	"io"
)

// RecordSource provides a forward-only iterator over parsed records.
// Implementations must be safe for sequential access (not concurrent).
type RecordSource interface {
	// Next returns the next record in transcript order.
	// Returns io.EOF when no more records are available.
	Next(ctx context.Context) (*Record, error)

	// Close releases any resources held by the source.
	Close() error
}

// Collect drains src into a slice.
func Collect(ctx context.Context, src RecordSource) ([]Record, error) {
	var records []Record
	for {
		rec, err := src.Next(ctx)
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
}
