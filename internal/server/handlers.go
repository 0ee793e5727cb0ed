package server

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/talentsphere/internal/analysis"
	"github.com/jonathan/talentsphere/internal/batch"
	"github.com/jonathan/talentsphere/internal/guidance"
	"github.com/jonathan/talentsphere/internal/ingestion"
	"github.com/jonathan/talentsphere/internal/parsing"
	"github.com/jonathan/talentsphere/internal/ranking"
	"github.com/jonathan/talentsphere/internal/server/middleware"
	"github.com/jonathan/talentsphere/internal/types"
)

// AnalyzeResponse is the response for POST /analyze
type AnalyzeResponse struct {
	Filename   string                `json:"filename"`
	Steps      string                `json:"steps"`
	Record     *types.AnalysisRecord `json:"record"`
	Metadata   *ingestion.Metadata   `json:"metadata,omitempty"`
	EmailDraft *types.EmailDraft     `json:"email_draft,omitempty"`
	ScanID     *uuid.UUID            `json:"scan_id,omitempty"`
}

// handleAnalyze analyzes a single uploaded resume.
//
// Form fields: file (required), keywords (comma separated), steps (optional,
// defaults by role), job_role (stored with the scan).
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !s.parseUpload(w, r) {
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "file is required")
		return
	}
	doc, err := readUpload(file, header)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	principal, authenticated := middleware.GetPrincipal(r)
	opts, err := s.stepsFor(r.FormValue("steps"), principal, authenticated)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	keywords := parsing.SplitKeywords(r.FormValue("keywords"))

	path, release, err := doc.Fetch(r.Context())
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "failed to stage upload")
		return
	}
	defer release()

	res, err := s.analyzer.AnalyzeFile(r.Context(), path, keywords, opts)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if res.Metadata != nil {
		res.Metadata.Source = doc.Filename
	}

	resp := AnalyzeResponse{
		Filename: doc.Filename,
		Steps:    opts.String(),
		Record:   res.Record,
		Metadata: res.Metadata,
	}

	if authenticated {
		if principal.GetRole() == types.RoleRecruiter {
			draft, err := s.draftFor(r, principal, res.Record)
			if err != nil {
				errorResponse(w, http.StatusInternalServerError, "failed to load account")
				return
			}
			resp.EmailDraft = draft
		}

		scan := &types.Scan{
			Username: principal.GetUsername(),
			JobRole:  r.FormValue("job_role"),
			Score:    res.Record.MatchScore,
			Filename: doc.Filename,
		}
		if err := s.store.SaveScan(r.Context(), scan); err != nil {
			log.Printf("[analyze] failed to save scan for %s: %v", scan.Username, err)
		} else {
			resp.ScanID = &scan.ID
		}
	}

	jsonResponse(w, http.StatusOK, resp)
}

// handleRank analyzes every uploaded resume and returns the leaderboard.
// ?format=csv returns the leaderboard as CSV.
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "csv" {
		errorResponse(w, http.StatusBadRequest, fmt.Sprintf("unsupported format %q", format))
		return
	}

	if !s.parseUpload(w, r) {
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		errorResponse(w, http.StatusBadRequest, "at least one file is required")
		return
	}

	docs := make([]batch.Document, 0, len(headers))
	for _, h := range headers {
		f, err := h.Open()
		if err != nil {
			errorResponse(w, http.StatusBadRequest, fmt.Sprintf("failed to open %s", h.Filename))
			return
		}
		doc, err := readUpload(f, h)
		if err != nil {
			errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		docs = append(docs, doc)
	}

	steps := r.FormValue("steps")
	opts := analysis.BatchOptions()
	if steps != "" {
		var err error
		if opts, err = analysis.ParseSteps(steps); err != nil {
			errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
	}

	result, err := s.processor.Run(r.Context(), docs, parsing.SplitKeywords(r.FormValue("keywords")), opts)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	log.Printf("[rank] batch %s ranked %d candidates", result.ID, len(result.Ranked))

	if format == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="leaderboard.csv"`)
		if err := ranking.WriteCSV(w, result.Ranked); err != nil {
			log.Printf("[rank] failed to write CSV: %v", err)
		}
		return
	}
	jsonResponse(w, http.StatusOK, result)
}

// handleListScans lists the caller's scan history, newest first.
func (s *Server) handleListScans(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r)
	if !ok {
		errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	scans, err := s.store.ListScans(r.Context(), principal.GetUsername(), limit)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "failed to list scans")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{"scans": scans})
}

// parseUpload parses a multipart body within the upload limit. It writes the
// error response itself and reports whether the handler should continue.
func (s *Server) parseUpload(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			errorResponse(w, http.StatusRequestEntityTooLarge, "upload too large")
			return false
		}
		errorResponse(w, http.StatusBadRequest, "expected multipart form data")
		return false
	}
	return true
}

// stepsFor resolves the requested steps, falling back to the caller's role preset.
func (s *Server) stepsFor(requested string, p middleware.Principal, authenticated bool) (analysis.Options, error) {
	if requested != "" {
		return analysis.ParseSteps(requested)
	}
	if authenticated && p.GetRole() == types.RoleRecruiter {
		return analysis.RecruiterOptions(), nil
	}
	return analysis.SeekerOptions(), nil
}

func (s *Server) draftFor(r *http.Request, p middleware.Principal, rec *types.AnalysisRecord) (*types.EmailDraft, error) {
	acc, err := s.store.GetAccountByUsername(r.Context(), p.GetUsername())
	if err != nil {
		return nil, err
	}
	company := ""
	if acc != nil {
		company = acc.CompanyName
	}
	draft := guidance.DraftEmail(company, rec)
	return &draft, nil
}

func readUpload(f multipart.File, h *multipart.FileHeader) (batch.UploadedDocument, error) {
	defer func() { _ = f.Close() }()

	name := filepath.Base(h.Filename)
	if name == "." || name == string(filepath.Separator) {
		return batch.UploadedDocument{}, fmt.Errorf("upload has no file name")
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return batch.UploadedDocument{}, fmt.Errorf("failed to read %s", name)
	}
	return batch.UploadedDocument{Filename: name, Data: data}, nil
}
