package workspace

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store is the workspace persistence backend contract: Get returns nil,
// nil for a missing id.
type Store interface {
	Get(ctx context.Context, id string) (*Document, error)
	Set(ctx context.Context, doc *Document) error
	Delete(ctx context.Context, id string) error
	Close() error
}

// New creates a Document with a fresh id, the current schema version, and
// Timestamp set to now.
func New() *Document {
	return &Document{
		ID:        uuid.NewString(),
		Version:   CurrentVersion,
		Timestamp: time.Now().UTC(),
	}
}
