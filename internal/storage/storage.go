// Package storage keeps uploaded file contents outside the relational store.
// Records only hold the key a blob was saved under.
package storage

import (
	"context"
	"io"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// BlobStore saves, removes and locates blobs by key
type BlobStore interface {
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	// URL returns where the blob can be fetched. It is either absolute or a
	// path relative to the server's own origin.
	URL(key string) string
}

const maxNameLength = 200

// UploadKey builds a unique key for an uploaded file while keeping its name readable
func UploadKey(filename string) string {
	name := strings.ToValidUTF8(filename, "_")
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" {
		name = "upload"
	}
	// Keys must fit the 255 character file column and a single path element;
	// keep the tail so the extension survives, starting on a character boundary
	if len(name) > maxNameLength {
		i := len(name) - maxNameLength
		for i < len(name) && !utf8.RuneStart(name[i]) {
			i++
		}
		name = name[i:]
	}
	return "uploads/" + uuid.NewString() + "_" + name
}
