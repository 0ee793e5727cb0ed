// Package ingestion extracts plain text from resume documents (PDF, DOCX, plain text).
package ingestion

import (
	"errors"
	"fmt"
)

// NotFoundError is returned when the document does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("document not found: %s", e.Path)
}

// UnreadableError is returned when the document is corrupt, encrypted or of an unsupported type.
type UnreadableError struct {
	Path    string
	Message string
	Cause   error
}

func (e *UnreadableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("unreadable document %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("unreadable document %s: %s", e.Path, e.Message)
}

func (e *UnreadableError) Unwrap() error {
	return e.Cause
}

// EmptyContentError is returned when a document yields no selectable text, such as an image-only scan.
type EmptyContentError struct {
	Path string
}

func (e *EmptyContentError) Error() string {
	return fmt.Sprintf("no text extracted from %s: document may be a scanned image", e.Path)
}

// IsInputError reports whether err means the document has no usable text.
func IsInputError(err error) bool {
	var notFound *NotFoundError
	var unreadable *UnreadableError
	var empty *EmptyContentError
	return errors.As(err, &notFound) || errors.As(err, &unreadable) || errors.As(err, &empty)
}
