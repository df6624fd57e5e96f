package blob

import (
	"context"
	"io"
)

// Store abstracts where uploaded bytes live. Keys are the stored names
// generated at upload time; metadata records reference keys, never paths.
type Store interface {
	Upload(ctx context.Context, key string, data io.Reader) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the object. Deleting an absent object is not an error.
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	// Path returns a human-readable location for the key, recorded in
	// metadata for operators.
	Path(key string) string
}
