package ingestion

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Supported document formats.
const (
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
	FormatText = "text"
)

var formatsByExt = map[string]string{
	".pdf":  FormatPDF,
	".docx": FormatDOCX,
	".txt":  FormatText,
	".md":   FormatText,
}

var (
	xmlTagPattern = regexp.MustCompile(`<[^>]+>`)
	paragraphEnd  = regexp.MustCompile(`</w:p>|<w:br/>|<w:tab/>`)
)

// pageMarker precedes the text of each non-empty PDF page.
const pageMarker = "--- Page %d ---"

// FormatForPath returns the document format for path's extension, or "" when unsupported.
func FormatForPath(path string) string {
	return formatsByExt[strings.ToLower(filepath.Ext(path))]
}

// Extractor reads documents from disk.
type Extractor struct {
	// ValidatePDF runs a structural check before text extraction so corrupt and
	// encrypted files surface as UnreadableError instead of partial text.
	ValidatePDF bool
}

var pdfcpuSetup sync.Once

// NewExtractor returns an Extractor with PDF validation enabled.
func NewExtractor() *Extractor {
	return &Extractor{ValidatePDF: true}
}

// ExtractText extracts text from path with a default Extractor.
func ExtractText(path string) (string, *Metadata, error) {
	return NewExtractor().Extract(path)
}

// Extract returns the raw text of the document at path and its metadata.
// It fails with NotFoundError, UnreadableError or EmptyContentError.
func (e *Extractor) Extract(path string) (string, *Metadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil, &NotFoundError{Path: path}
		}
		return "", nil, &UnreadableError{Path: path, Message: "failed to stat file", Cause: err}
	}
	if info.IsDir() {
		return "", nil, &UnreadableError{Path: path, Message: "path is a directory"}
	}

	format := FormatForPath(path)
	var (
		text  string
		pages int
	)
	switch format {
	case FormatPDF:
		text, pages, err = e.extractPDF(path)
	case FormatDOCX:
		text, err = extractDOCX(path)
	case FormatText:
		text, err = extractPlain(path)
	default:
		return "", nil, &UnreadableError{Path: path, Message: fmt.Sprintf("unsupported file type %q", filepath.Ext(path))}
	}
	if err != nil {
		return "", nil, err
	}

	if strings.TrimSpace(text) == "" {
		return "", nil, &EmptyContentError{Path: path}
	}

	return text, NewMetadata(filepath.Base(path), format, text, pages), nil
}

func (e *Extractor) extractPDF(path string) (text string, pages int, err error) {
	if e.ValidatePDF {
		// pdfcpu runs on its built-in configuration and never touches the user config dir.
		pdfcpuSetup.Do(api.DisableConfigDir)
		conf := model.NewDefaultConfiguration()
		conf.ValidationMode = model.ValidationRelaxed
		if verr := api.ValidateFile(path, conf); verr != nil {
			return "", 0, &UnreadableError{Path: path, Message: "pdf failed validation", Cause: verr}
		}
		if n, perr := api.PageCountFile(path); perr == nil {
			pages = n
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", 0, &UnreadableError{Path: path, Message: "failed to read file", Cause: err}
	}

	// The pdf reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text, pages = "", 0
			err = &UnreadableError{Path: path, Message: fmt.Sprintf("pdf parser panic: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, &UnreadableError{Path: path, Message: "failed to read pdf", Cause: err}
	}

	numPages := reader.NumPage()
	if pages == 0 {
		pages = numPages
	}

	parts := make([]string, 0, numPages*2)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, perr := page.GetPlainText(nil)
		if perr != nil || strings.TrimSpace(pageText) == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf(pageMarker, i), pageText)
	}
	return strings.Join(parts, "\n"), pages, nil
}

func extractDOCX(path string) (string, error) {
	doc, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", &UnreadableError{Path: path, Message: "failed to parse docx", Cause: err}
	}
	defer func() { _ = doc.Close() }()

	return docxPlainText(doc.Editable().GetContent()), nil
}

// docxPlainText turns WordprocessingML into text, one line per paragraph.
func docxPlainText(xml string) string {
	xml = paragraphEnd.ReplaceAllString(xml, "\n")
	return html.UnescapeString(xmlTagPattern.ReplaceAllString(xml, ""))
}

func extractPlain(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &UnreadableError{Path: path, Message: "failed to read file", Cause: err}
	}
	return string(data), nil
}
