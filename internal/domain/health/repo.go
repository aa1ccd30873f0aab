package health

import "context"

// ReadingRepository persists HealthReading documents. Implementations assign
// the identifier and creation time in Create, return ErrNotFound for absent
// or malformed identifiers, and wrap driver failures in *StoreError.
type ReadingRepository interface {
	Create(ctx context.Context, r *HealthReading) error
	GetByID(ctx context.Context, id string) (*HealthReading, error)
	// Latest returns the most recently created document.
	Latest(ctx context.Context) (*HealthReading, error)
	// List returns documents newest first together with the total count.
	List(ctx context.Context, limit, offset int) ([]*HealthReading, int, error)
}
