package app

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dshills/scrub/internal/engine/buffer"
)

// Document is a file being edited.
type Document struct {
	// Path is the file path; empty for a scratch document.
	Path string

	// Name is the display name.
	Name string

	Buffer *buffer.Buffer
}

// NewDocument creates a document from content.
func NewDocument(path string, content []byte) *Document {
	name := "[scratch]"
	if path != "" {
		name = filepath.Base(path)
	}
	return &Document{
		Path:   path,
		Name:   name,
		Buffer: buffer.NewBufferFromString(string(content)),
	}
}

// OpenDocument reads path. A missing file yields an empty document that
// is created on first save.
func OpenDocument(path string) (*Document, error) {
	if path == "" {
		return NewDocument("", nil), nil
	}
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, &FileError{Op: "open", Path: path, Err: err}
	}
	return NewDocument(path, data), nil
}

// IsScratch returns true if the document has no file.
func (d *Document) IsScratch() bool {
	return d.Path == ""
}

// IsModified reports unsaved changes.
func (d *Document) IsModified() bool {
	return d.Buffer.IsModified()
}

// Save writes the buffer to its file.
func (d *Document) Save() error {
	if d.IsScratch() {
		return &FileError{Op: "save", Err: ErrNoFilePath}
	}
	mode := fs.FileMode(0o644)
	if fi, err := os.Stat(d.Path); err == nil {
		mode = fi.Mode().Perm()
	}
	f, err := os.OpenFile(d.Path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return &FileError{Op: "save", Path: d.Path, Err: err}
	}
	if _, err := d.Buffer.WriteTo(f); err != nil {
		f.Close()
		return &FileError{Op: "save", Path: d.Path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &FileError{Op: "save", Path: d.Path, Err: err}
	}
	d.Buffer.MarkSaved()
	return nil
}
