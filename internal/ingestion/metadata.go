package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Metadata describes an extracted document.
type Metadata struct {
	Source    string `json:"source"`
	Format    string `json:"format"`
	Pages     int    `json:"pages,omitempty"`
	Timestamp string `json:"timestamp"` // RFC3339 format
	Hash      string `json:"hash"`      // SHA256 hex digest of the extracted text
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(source, format, content string, pages int) *Metadata {
	return &Metadata{
		Source:    source,
		Format:    format,
		Pages:     pages,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
	}
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
