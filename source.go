package jxtmpl

import (
	"context"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Source is a named input. PublicID and SystemID show up in error
// messages. When Reader is nil the parser resolves SystemID itself.
type Source struct {
	PublicID string
	SystemID string
	Reader   io.Reader
}

// Resolver opens the input named by a system identifier.
type Resolver interface {
	Resolve(ctx context.Context, publicID, systemID string) (io.ReadCloser, error)
}

type ResolverFunc func(ctx context.Context, publicID, systemID string) (io.ReadCloser, error)

func (f ResolverFunc) Resolve(ctx context.Context, publicID, systemID string) (io.ReadCloser, error) {
	return f(ctx, publicID, systemID)
}

// FileResolver resolves local paths and file:// URLs. Relative paths
// are taken relative to BaseDir when it is set.
type FileResolver struct {
	BaseDir string
}

func (r FileResolver) Resolve(ctx context.Context, _, systemID string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := systemID
	if u, err := url.Parse(systemID); err == nil && len(u.Scheme) > 1 {
		if !strings.EqualFold(u.Scheme, "file") {
			return nil, errors.Errorf("unsupported scheme %q in system identifier %q", u.Scheme, systemID)
		}
		path = filepath.FromSlash(u.Path)
	}

	if !filepath.IsAbs(path) && r.BaseDir != "" {
		path = filepath.Join(r.BaseDir, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %q", systemID)
	}
	return f, nil
}
