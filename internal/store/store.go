// Package store provides user.Repository implementations that keep the whole
// record list as a single document.
package store

import (
	"context"
	"sync"

	"github.com/nekogravitycat/vehicle-booking-board/internal/user"
)

// DefaultDocumentKey is the fixed name the record list is stored under.
const DefaultDocumentKey = "users"

// documentIO is the minimal load/save pair shared by the document backed stores.
type documentIO interface {
	Load(ctx context.Context) ([]user.Record, error)
	Save(ctx context.Context, records []user.Record) error
}

// serializedUpdate runs load → fn → save while holding mu.
func serializedUpdate(
	ctx context.Context,
	mu *sync.Mutex,
	doc documentIO,
	fn func(records []user.Record) ([]user.Record, error),
) ([]user.Record, error) {
	mu.Lock()
	defer mu.Unlock()

	records, err := doc.Load(ctx)
	if err != nil {
		return nil, err
	}

	out, err := fn(records)
	if err != nil {
		return nil, err
	}

	if err := doc.Save(ctx, out); err != nil {
		return nil, err
	}
	return user.CloneAll(out), nil
}
