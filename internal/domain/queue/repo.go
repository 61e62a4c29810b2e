package queue

import (
	"context"
)

// Repository persists triage entries.
//
// Append assigns e.ID and e.CreatedAt atomically with the write; ids strictly
// increase and creation times never decrease in insertion order. List returns
// at most limit entries in service order (see Less). Recent returns at most
// limit entries newest first by id. Clear deletes every entry in one atomic
// step and reports how many were removed.
type Repository interface {
	Append(ctx context.Context, e *Entry) error
	List(ctx context.Context, limit int) ([]*Entry, error)
	Recent(ctx context.Context, limit int) ([]*Entry, error)
	Clear(ctx context.Context) (int64, error)
}
