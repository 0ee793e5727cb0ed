package server

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talentsphere/internal/config"
	"github.com/jonathan/talentsphere/internal/guidance"
	"github.com/jonathan/talentsphere/internal/ranking"
	"github.com/jonathan/talentsphere/internal/types"
)

const strongResume = `Jane Doe
jane.doe@example.com | +1 (555) 123-4567

Experience
Senior Engineer, Acme (2019-2024): 5+ years building Python and SQL services on AWS.

Education
BSc Computer Science`

const weakResume = `John Smith
john@example.com

Experience
2 years of Java support work.`

func setupTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := NewWithDependencies(Config{Store: openTestStore(t), Workers: 2}, Dependencies{
		Password:  &config.PasswordConfig{BcryptCost: 10},
		JWT:       &config.JWTConfig{Secret: testJWTSecret, ExpirationHours: 24},
		RateLimit: &config.RateLimitConfig{RequestsPerMinute: 600, Burst: 100},
	})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

type upload struct {
	field, name, content string
}

func multipartRequest(t *testing.T, path string, fields map[string]string, files ...upload) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		part, err := mw.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serveRequest(s *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

// registerToken registers an account through the API and returns its token.
func registerToken(t *testing.T, s *Server, body map[string]string) string {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(raw))
	w := serveRequest(s, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func TestHealth(t *testing.T) {
	s := setupTestServer(t)

	w := serveRequest(s, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
}

func TestCORSPreflight(t *testing.T) {
	s := setupTestServer(t)

	w := serveRequest(s, httptest.NewRequest(http.MethodOptions, "/analyze", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestAnalyze_Anonymous(t *testing.T) {
	s := setupTestServer(t)

	req := multipartRequest(t, "/analyze",
		map[string]string{"keywords": "Python, SQL, AWS, Kubernetes"},
		upload{"file", "jane.txt", strongResume})
	w := serveRequest(s, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "jane.txt", resp.Filename)
	assert.Equal(t, "contact,skills,audit,roadmap", resp.Steps)
	assert.Equal(t, 75.0, resp.Record.MatchScore)
	assert.Equal(t, []string{"Kubernetes"}, resp.Record.MissingKeywords)
	assert.Equal(t, "jane.doe@example.com", resp.Record.ContactInfo.Email)
	require.NotNil(t, resp.Metadata)
	assert.Equal(t, "jane.txt", resp.Metadata.Source)
	assert.Nil(t, resp.EmailDraft)
	assert.Nil(t, resp.ScanID)
	assert.NotEmpty(t, w.Header().Get("X-RateLimit-Limit"))
}

func TestAnalyze_BadRequests(t *testing.T) {
	s := setupTestServer(t)

	w := serveRequest(s, multipartRequest(t, "/analyze", map[string]string{"keywords": "Python"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "file is required")

	w = serveRequest(s, multipartRequest(t, "/analyze",
		map[string]string{"steps": "telepathy"},
		upload{"file", "jane.txt", strongResume}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown analysis step")

	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	w = serveRequest(s, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyze_UnsupportedFileIsDegraded(t *testing.T) {
	s := setupTestServer(t)

	w := serveRequest(s, multipartRequest(t, "/analyze",
		map[string]string{"keywords": "Python"},
		upload{"file", "resume.rtf", "{\\rtf1 Python}"}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Record.Degraded)
	assert.Equal(t, 0.0, resp.Record.MatchScore)
	assert.Nil(t, resp.Metadata)
}

func TestAnalyze_RecruiterGetsDraftAndScan(t *testing.T) {
	s := setupTestServer(t)
	token := registerToken(t, s, map[string]string{
		"username":     "hr_lead",
		"password":     "password123",
		"role":         types.RoleRecruiter,
		"company_name": "Acme",
	})

	req := multipartRequest(t, "/analyze",
		map[string]string{"keywords": "Python, SQL, AWS, Kubernetes", "job_role": "Backend Engineer"},
		upload{"file", "jane.txt", strongResume})
	req.Header.Set("Authorization", "Bearer "+token)
	w := serveRequest(s, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "contact,experience,skills,questions", resp.Steps)
	require.NotNil(t, resp.EmailDraft)
	assert.Equal(t, guidance.RecommendInterview, resp.EmailDraft.Recommendation)
	assert.Contains(t, resp.EmailDraft.Subject, "Acme")
	require.NotNil(t, resp.ScanID)

	listReq := httptest.NewRequest(http.MethodGet, "/scans", nil)
	listReq.Header.Set("Authorization", "Bearer "+token)
	w = serveRequest(s, listReq)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var scans struct {
		Scans []types.Scan `json:"scans"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scans))
	require.Len(t, scans.Scans, 1)
	assert.Equal(t, *resp.ScanID, scans.Scans[0].ID)
	assert.Equal(t, "Backend Engineer", scans.Scans[0].JobRole)
	assert.Equal(t, "jane.txt", scans.Scans[0].Filename)
	assert.Equal(t, 75.0, scans.Scans[0].Score)
}

func TestAnalyze_InvalidToken(t *testing.T) {
	s := setupTestServer(t)

	req := multipartRequest(t, "/analyze", nil, upload{"file", "jane.txt", strongResume})
	req.Header.Set("Authorization", "Bearer forged")
	w := serveRequest(s, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListScans(t *testing.T) {
	s := setupTestServer(t)

	w := serveRequest(s, httptest.NewRequest(http.MethodGet, "/scans", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := registerToken(t, s, map[string]string{
		"username": "seeker1",
		"password": "password123",
		"role":     types.RoleJobSeeker,
	})

	req := httptest.NewRequest(http.MethodGet, "/scans", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = serveRequest(s, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"scans":[]}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/scans?limit=zero", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = serveRequest(s, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRank_JSON(t *testing.T) {
	s := setupTestServer(t)

	req := multipartRequest(t, "/rank",
		map[string]string{"keywords": "Python, SQL, AWS, Java"},
		upload{"files", "john.txt", weakResume},
		upload{"files", "jane.txt", strongResume})
	w := serveRequest(s, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result types.BatchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result.Ranked, 2)
	assert.Equal(t, 1, result.Ranked[0].Rank)
	assert.Equal(t, "jane.txt", result.Ranked[0].Name)
	assert.Equal(t, 75.0, result.Ranked[0].Score)
	assert.Equal(t, "john.txt", result.Ranked[1].Name)
	assert.Equal(t, 25.0, result.Ranked[1].Score)
	require.Len(t, result.Records, 2)
	assert.Equal(t, "john.txt", result.Records[0].Name)
}

func TestRank_CSV(t *testing.T) {
	s := setupTestServer(t)

	req := multipartRequest(t, "/rank?format=csv",
		map[string]string{"keywords": "Python"},
		upload{"files", "jane.txt", strongResume})
	w := serveRequest(s, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))

	rows, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, ranking.CSVHeader, rows[0])
	assert.Equal(t, "jane.txt", rows[1][1])
}

func TestRank_Errors(t *testing.T) {
	s := setupTestServer(t)

	w := serveRequest(s, multipartRequest(t, "/rank?format=xml", nil, upload{"files", "a.txt", weakResume}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serveRequest(s, multipartRequest(t, "/rank", map[string]string{"keywords": "Java"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "at least one file")
}

func TestRateLimit(t *testing.T) {
	s := setupTestServer(t)

	// POST /rank allows a burst of two
	codes := make([]int, 0, 3)
	for range 3 {
		w := serveRequest(s, multipartRequest(t, "/rank", nil, upload{"files", "a.txt", weakResume}))
		codes = append(codes, w.Code)
		if w.Code == http.StatusTooManyRequests {
			assert.NotEmpty(t, w.Header().Get("Retry-After"))
			assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
		}
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestUploadTooLarge(t *testing.T) {
	s := setupTestServer(t)
	s.maxUpload = 64

	w := serveRequest(s, multipartRequest(t, "/analyze", nil, upload{"file", "jane.txt", strongResume}))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
