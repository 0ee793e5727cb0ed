// Package batch analyzes many resumes concurrently and ranks them.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Document is one resume to analyze. Fetch makes it available on local disk and
// returns a release func that must be called once the document is processed.
// release is never nil, even when err is not.
type Document interface {
	Name() string
	Fetch(ctx context.Context) (path string, release func(), err error)
}

func noRelease() {}

// LocalDocument is a file already on disk. Releasing it leaves the file in place.
type LocalDocument struct {
	Path string
}

// Name returns the file's base name.
func (d LocalDocument) Name() string {
	return filepath.Base(d.Path)
}

// Fetch returns the path unchanged.
func (d LocalDocument) Fetch(_ context.Context) (string, func(), error) {
	return d.Path, noRelease, nil
}

// UploadedDocument holds the bytes of an uploaded file. Fetch spools it to a temp
// file whose extension matches Filename, and release deletes it.
type UploadedDocument struct {
	Filename string
	Data     []byte
}

// Name returns the uploaded file name.
func (d UploadedDocument) Name() string {
	return d.Filename
}

// Fetch writes the upload to a temp file.
func (d UploadedDocument) Fetch(_ context.Context) (string, func(), error) {
	return spool(d.Filename, d.Data)
}

// ObjectStore downloads objects by key.
type ObjectStore interface {
	Download(ctx context.Context, key string) ([]byte, error)
}

// ObjectDocument is a resume held in object storage.
type ObjectDocument struct {
	Key         string
	DisplayName string
	Store       ObjectStore
}

// Name returns the display name, or the key's base name when none is set.
func (d ObjectDocument) Name() string {
	if d.DisplayName != "" {
		return d.DisplayName
	}
	return filepath.Base(d.Key)
}

// Fetch downloads the object to a temp file.
func (d ObjectDocument) Fetch(ctx context.Context) (string, func(), error) {
	data, err := d.Store.Download(ctx, d.Key)
	if err != nil {
		return "", noRelease, fmt.Errorf("failed to download %s: %w", d.Key, err)
	}
	// Extension comes from the key: the display name is user supplied.
	return spool(d.Key, data)
}

func spool(name string, data []byte) (string, func(), error) {
	f, err := os.CreateTemp("", "talentsphere-*"+filepath.Ext(name))
	if err != nil {
		return "", noRelease, fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()
	release := func() { _ = os.Remove(path) }

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		release()
		return "", noRelease, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		release()
		return "", noRelease, fmt.Errorf("failed to close temp file: %w", err)
	}
	return path, release, nil
}
