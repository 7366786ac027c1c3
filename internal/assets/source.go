package assets

import (
	"context"
	"errors"
)

// ErrNotFound signals that a source has no bytes for the requested path.
// The orchestrator records the path and keeps going; a missing asset never
// aborts an export.
var ErrNotFound = errors.New("asset not found")

// Source loads asset bytes for a project. Implementations may hit the local
// filesystem or a remote bridge; the pipeline only sees bytes or ErrNotFound.
type Source interface {
	// Read returns the raw bytes of sourcePath within the project identified
	// by slug. Returns ErrNotFound (possibly wrapped) when the asset does not
	// exist.
	Read(ctx context.Context, slug, sourcePath string) ([]byte, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, slug, sourcePath string) ([]byte, error)

// Read implements Source.
func (f SourceFunc) Read(ctx context.Context, slug, sourcePath string) ([]byte, error) {
	return f(ctx, slug, sourcePath)
}
