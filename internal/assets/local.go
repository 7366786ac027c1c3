package assets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalSource reads assets from the local filesystem. Project assets live
// under <basePath>/projects/<slug>/assets/ but references may carry the full
// prefix already, so both spellings are tried.
type LocalSource struct {
	basePath string
}

// NewLocalSource creates a filesystem-backed asset source rooted at basePath.
func NewLocalSource(basePath string) (*LocalSource, error) {
	info, err := os.Stat(basePath)
	if err != nil {
		return nil, fmt.Errorf("asset directory not accessible: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("asset path is not a directory: %s", basePath)
	}
	return &LocalSource{basePath: basePath}, nil
}

// Read implements Source.
func (ls *LocalSource) Read(ctx context.Context, slug, sourcePath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	normalized := NormalizePath(StripQueryAndHash(sourcePath))
	if normalized == "" {
		return nil, ErrNotFound
	}
	if strings.Contains(normalized, "..") {
		return nil, fmt.Errorf("refusing path outside asset root: %s", sourcePath)
	}

	candidates := []string{
		filepath.Join(ls.basePath, filepath.FromSlash(normalized)),
	}
	if slug != "" && !strings.HasPrefix(normalized, "projects/") {
		candidates = append(candidates,
			filepath.Join(ls.basePath, "projects", slug, "assets", filepath.FromSlash(normalized)))
	}

	for _, candidate := range candidates {
		data, err := os.ReadFile(candidate)
		if err == nil {
			return data, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read asset %s: %w", sourcePath, err)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, sourcePath)
}
