package catalog

import (
	"context"
)

// Repository persists the condition catalog.
//
// List returns conditions in insertion order (id ascending) with each
// condition's symptoms in stored order; ranking depends on that order for
// tie-breaks. Create and Update return apperr.ErrConflict on a duplicate
// disease name; Update returns apperr.ErrNotFound for an unknown id.
type Repository interface {
	List(ctx context.Context) ([]*Condition, error)
	GetByID(ctx context.Context, id int64) (*Condition, error)
	Symptoms(ctx context.Context) ([]string, error)
	Create(ctx context.Context, c *Condition) error
	Update(ctx context.Context, c *Condition) error
	// Upsert inserts c or, when a condition with the same disease name exists,
	// replaces its specialty, red flag and symptoms. c.ID is set either way.
	Upsert(ctx context.Context, c *Condition) (created bool, err error)
}
