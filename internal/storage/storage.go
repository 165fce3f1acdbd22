// Package storage contains the file storage used by document slots. Each
// entity category gets its own Storage rooted at a directory (local backend)
// or a key prefix (S3-compatible backend).
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"mobilityapi/internal/config"
	"mobilityapi/internal/model"
)

// ErrObjectNotFound is returned by Get when the key has no stored object.
var ErrObjectNotFound = errors.New("object not found")

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1.
// ContentType and Metadata are optional.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the file store of one entity category.
type Storage interface {
	// Put stores the content of r under key, replacing any previous object.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	// A missing key yields ErrObjectNotFound.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Exists reports whether key has a stored object.
	Exists(ctx context.Context, key string) (bool, error)
}

// Roots maps entity categories to their storage.
type Roots map[model.Category]Storage

// For returns the storage of category c.
func (r Roots) For(c model.Category) (Storage, error) {
	s, ok := r[c]
	if !ok {
		return nil, fmt.Errorf("no storage configured for %s", c)
	}
	return s, nil
}

// NewRoots opens the storage of every category. The local backend uses one
// directory per category below Root; minio uses one bucket with a key
// prefix per category.
func NewRoots(st config.StorageConfig, mc config.MinIOConfig) (Roots, error) {
	roots := make(Roots, len(st.Dirs()))
	if st.Backend == "minio" {
		base, err := NewMinIO(mc)
		if err != nil {
			return nil, err
		}
		for c, dir := range st.Dirs() {
			roots[c] = WithPrefix(base, dir)
		}
		return roots, nil
	}
	for c := range st.Dirs() {
		s, err := NewLocal(st.Path(c))
		if err != nil {
			return nil, fmt.Errorf("%s storage: %w", c, err)
		}
		roots[c] = s
	}
	return roots, nil
}

// prefixed scopes a shared Storage to keys below prefix.
type prefixed struct {
	base   Storage
	prefix string
}

// WithPrefix returns a Storage that stores every key below prefix in base.
func WithPrefix(base Storage, prefix string) Storage {
	return &prefixed{base: base, prefix: strings.Trim(prefix, "/") + "/"}
}

func (p *prefixed) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	info, err := p.base.Put(ctx, p.prefix+key, r, opt)
	info.Key = key
	return info, err
}

func (p *prefixed) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	rc, info, err := p.base.Get(ctx, p.prefix+key)
	info.Key = key
	return rc, info, err
}

func (p *prefixed) Delete(ctx context.Context, key string) error {
	return p.base.Delete(ctx, p.prefix+key)
}

func (p *prefixed) Exists(ctx context.Context, key string) (bool, error) {
	return p.base.Exists(ctx, p.prefix+key)
}
