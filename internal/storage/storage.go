package storage

import (
	"context"
	"io"
)

// Upload is one incoming file, already size- and type-checked by the HTTP
// layer.
type Upload struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// ObjectStore relays file bytes to an external store and returns the public
// reference URL. The ledger only ever persists the returned reference.
type ObjectStore interface {
	Put(ctx context.Context, key string, upload Upload) (string, error)
}
