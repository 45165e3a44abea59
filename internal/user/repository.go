package user

import "context"

// Repository persists the full list of records as a single document.
type Repository interface {
	// Load returns every record. A document that does not exist yet yields an empty list.
	Load(ctx context.Context) ([]Record, error)

	// Save overwrites the whole document.
	Save(ctx context.Context, records []Record) error

	// Update loads the document, applies fn and saves the result as one unit.
	// When fn returns an error nothing is written and the error is returned as is.
	// Calls through the same Repository are serialized.
	Update(ctx context.Context, fn func(records []Record) ([]Record, error)) ([]Record, error)
}
