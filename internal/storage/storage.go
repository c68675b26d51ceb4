// Package storage abstracts the object store holding evidence photos.
// Production uses S3 (or any S3-compatible endpoint); tests and local
// development can use the in-memory store.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"
)

// PhotoStore is the contract for photo blob storage.
type PhotoStore interface {
	// Put uploads a blob under the given key.
	Put(ctx context.Context, key, contentType string, body io.Reader) error
	// Delete removes a blob. Used to compensate a failed evidence insert.
	Delete(ctx context.Context, key string) error
	// SignedURL issues a time-boxed read URL for a stored blob.
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// ObjectKey builds the storage key for an evidence photo. Keys are
// namespaced by project and submitting user, with a millisecond timestamp
// to keep concurrent uploads from the same user from colliding:
//
//	<projectID>/<userID>/<unixMilli>-<filename>
func ObjectKey(projectID, userID, filename string, now time.Time) string {
	return fmt.Sprintf("%s/%s/%d-%s", projectID, userID, now.UnixMilli(), path.Base(filename))
}
