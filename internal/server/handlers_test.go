package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-processor/internal/blob"
	"github.com/jonathan/resume-processor/internal/config"
	"github.com/jonathan/resume-processor/internal/engine"
	"github.com/jonathan/resume-processor/internal/store"
)

const testAdminKey = "letmein"

// fakeStore is an in-memory ResumeStore.
type fakeStore struct {
	records map[string]*store.ResumeRecord
	nextID  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[string]*store.ResumeRecord)}
}

func (f *fakeStore) SaveResume(_ context.Context, id, userID string, data json.RawMessage) (string, error) {
	if id == "" {
		f.nextID++
		id = fmt.Sprintf("resume-%d", f.nextID)
	}
	f.records[id] = &store.ResumeRecord{ID: id, UserID: userID, Data: data}
	return id, nil
}

func (f *fakeStore) GetResume(_ context.Context, id string) (*store.ResumeRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return rec, nil
}

func (f *fakeStore) ListResumes(_ context.Context, userID string) ([]store.ResumeRecord, error) {
	var out []store.ResumeRecord
	for _, rec := range f.records {
		if rec.UserID == userID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteResume(_ context.Context, id string) error {
	if _, ok := f.records[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakeStore) SetBlobKey(_ context.Context, id, blobKey string) error {
	rec, ok := f.records[id]
	if !ok {
		return store.ErrNotFound
	}
	rec.BlobKey = blobKey
	return nil
}

// fakeLLM returns canned records and counts calls.
type fakeLLM struct {
	extractCalls       int
	tailorCalls        int
	lastJobDescription string
}

func (f *fakeLLM) ExtractResume(_ context.Context, _ string) (map[string]any, error) {
	f.extractCalls++
	return map[string]any{"name": "Ada Lovelace", "summary": "Engineer"}, nil
}

func (f *fakeLLM) AnalyzeJob(_ context.Context, title, description string) (map[string]any, error) {
	f.lastJobDescription = description
	return map[string]any{"title": title, "keywords": []any{"Go"}}, nil
}

func (f *fakeLLM) TailorResume(_ context.Context, resume, _ map[string]any) (map[string]any, error) {
	f.tailorCalls++
	resume["summary"] = "Engineer tailored for the role"
	return resume, nil
}

func (f *fakeLLM) Close() error { return nil }

type serverFixture struct {
	srv   *Server
	store *fakeStore
	blobs blob.Store
	llm   *fakeLLM
}

func newTestServer(t *testing.T) *serverFixture {
	t.Helper()

	blobs, err := blob.NewFSStore(t.TempDir())
	require.NoError(t, err)

	hash, err := config.HashKey(testAdminKey)
	require.NoError(t, err)

	st := newFakeStore()
	client := &fakeLLM{}
	signer := blob.NewSigner(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1})
	srv := newServer(st, blobs, signer, client, engine.New(1), &config.AdminKeyConfig{KeyHash: hash})

	return &serverFixture{srv: srv, store: st, blobs: blobs, llm: client}
}

func (f *serverFixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.srv.routes().ServeHTTP(rec, req)
	return rec
}

// multipartResume builds a multipart request body with a resume file and
// extra form fields.
func multipartResume(t *testing.T, filename string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("resume", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestHandleHealth_OK(t *testing.T) {
	f := newTestServer(t)

	rec := f.do(httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestHandleProcessAll_FullPipeline(t *testing.T) {
	f := newTestServer(t)

	body, contentType := multipartResume(t, "resume.txt", []byte("Ada Lovelace\nEngineer"), map[string]string{
		"job_title":       "Backend Engineer",
		"job_description": "Build services in Go",
		"user_id":         "user-1",
	})
	req := httptest.NewRequest("POST", "/process-all", body)
	req.Header.Set("Content-Type", contentType)

	rec := f.do(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp ProcessAllResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ResumeID)
	assert.NotEmpty(t, resp.BlobName)
	assert.Contains(t, resp.DownloadURL, "/blob/"+resp.BlobName)

	assert.Equal(t, 1, f.llm.extractCalls)
	assert.Equal(t, 1, f.llm.tailorCalls)

	stored, err := f.store.GetResume(context.Background(), resp.ResumeID)
	require.NoError(t, err)
	assert.Equal(t, "user-1", stored.UserID)
	assert.Equal(t, resp.BlobName, stored.BlobKey)
	assert.Contains(t, string(stored.Data), "tailored for the role")

	pdfBytes, err := f.blobs.Get(resp.BlobName)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdfBytes, []byte("%PDF-")))

	// The returned download URL must pass token verification.
	blobRec := f.do(httptest.NewRequest("GET", resp.DownloadURL, nil))
	assert.Equal(t, http.StatusOK, blobRec.Code)
	assert.Equal(t, "application/pdf", blobRec.Header().Get("Content-Type"))
}

func TestHandleProcessAll_FetchesJobPostingFromURL(t *testing.T) {
	f := newTestServer(t)

	// Long enough that the plain HTTP fetch satisfies the extraction and no
	// browser fallback is attempted.
	posting := "Design and run Go services. " + strings.Repeat("Ship reliable software. ", 30)
	jobSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, "<html><body><main>%s</main></body></html>", posting)
	}))
	defer jobSrv.Close()

	body, contentType := multipartResume(t, "resume.txt", []byte("Ada Lovelace"), map[string]string{
		"job_title": "Backend Engineer",
		"job_url":   jobSrv.URL,
		"user_id":   "user-1",
	})
	req := httptest.NewRequest("POST", "/process-all", body)
	req.Header.Set("Content-Type", contentType)

	rec := f.do(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, f.llm.lastJobDescription, "Design and run Go services.")
}

func TestHandleProcessAll_UnreachableJobURLIsBadGateway(t *testing.T) {
	f := newTestServer(t)

	jobSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer jobSrv.Close()

	body, contentType := multipartResume(t, "resume.txt", []byte("Ada"), map[string]string{
		"job_title": "Backend Engineer",
		"job_url":   jobSrv.URL,
		"user_id":   "user-1",
	})
	req := httptest.NewRequest("POST", "/process-all", body)
	req.Header.Set("Content-Type", contentType)

	rec := f.do(req)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandleProcessAll_InlineDescriptionSkipsFetch(t *testing.T) {
	f := newTestServer(t)

	body, contentType := multipartResume(t, "resume.txt", []byte("Ada"), map[string]string{
		"job_title":       "Backend Engineer",
		"job_description": "Build services in Go",
		"job_url":         "http://job-url.invalid/never-fetched",
		"user_id":         "user-1",
	})
	req := httptest.NewRequest("POST", "/process-all", body)
	req.Header.Set("Content-Type", contentType)

	rec := f.do(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Build services in Go", f.llm.lastJobDescription)
}

func TestHandleProcessAll_MissingFieldsRejected(t *testing.T) {
	f := newTestServer(t)

	body, contentType := multipartResume(t, "resume.txt", []byte("Ada"), map[string]string{
		"job_title": "Backend Engineer",
	})
	req := httptest.NewRequest("POST", "/process-all", body)
	req.Header.Set("Content-Type", contentType)

	rec := f.do(req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleProcessAll_MissingFileRejected(t *testing.T) {
	f := newTestServer(t)

	req := httptest.NewRequest("POST", "/process-all", bytes.NewBufferString("not multipart"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := f.do(req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleUploadResume_JSONSkipsExtraction(t *testing.T) {
	f := newTestServer(t)

	body, contentType := multipartResume(t, "resume.json", []byte(`{"name": "Ada"}`), map[string]string{
		"user_id": "user-2",
	})
	req := httptest.NewRequest("POST", "/upload-resume", body)
	req.Header.Set("Content-Type", contentType)

	rec := f.do(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ResumeID)
	assert.Equal(t, 0, f.llm.extractCalls)
}

func TestHandleUploadResume_TextUsesExtraction(t *testing.T) {
	f := newTestServer(t)

	body, contentType := multipartResume(t, "resume.txt", []byte("Ada Lovelace"), map[string]string{
		"user_id": "user-2",
	})
	req := httptest.NewRequest("POST", "/upload-resume", body)
	req.Header.Set("Content-Type", contentType)

	rec := f.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, f.llm.extractCalls)
}

func TestHandleUploadResume_RequiresUserID(t *testing.T) {
	f := newTestServer(t)

	body, contentType := multipartResume(t, "resume.txt", []byte("Ada"), nil)
	req := httptest.NewRequest("POST", "/upload-resume", body)
	req.Header.Set("Content-Type", contentType)

	rec := f.do(req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleListResumes_EmptyIsArray(t *testing.T) {
	f := newTestServer(t)

	rec := f.do(httptest.NewRequest("GET", "/resumes/nobody", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandleGetResume_NotFound(t *testing.T) {
	f := newTestServer(t)

	rec := f.do(httptest.NewRequest("GET", "/resume/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleGetResume_ReturnsRecord(t *testing.T) {
	f := newTestServer(t)
	id, err := f.store.SaveResume(context.Background(), "", "user-3", json.RawMessage(`{"name": "Ada"}`))
	require.NoError(t, err)

	rec := f.do(httptest.NewRequest("GET", "/resume/"+id, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user-3"`)
}

func TestHandleDeleteResume_RequiresAdminKey(t *testing.T) {
	f := newTestServer(t)
	id, err := f.store.SaveResume(context.Background(), "", "user-4", json.RawMessage(`{}`))
	require.NoError(t, err)

	rec := f.do(httptest.NewRequest("DELETE", "/resume/"+id, nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest("DELETE", "/resume/"+id, nil)
	req.Header.Set("X-Admin-Key", "wrong-key")
	assert.Equal(t, http.StatusUnauthorized, f.do(req).Code)

	_, err = f.store.GetResume(context.Background(), id)
	assert.NoError(t, err)
}

func TestHandleDeleteResume_RemovesRecordAndBlob(t *testing.T) {
	f := newTestServer(t)
	id, err := f.store.SaveResume(context.Background(), "", "user-4", json.RawMessage(`{}`))
	require.NoError(t, err)
	require.NoError(t, f.blobs.Put("old.pdf", []byte("%PDF-stub")))
	require.NoError(t, f.store.SetBlobKey(context.Background(), id, "old.pdf"))

	req := httptest.NewRequest("DELETE", "/resume/"+id, nil)
	req.Header.Set("X-Admin-Key", testAdminKey)
	rec := f.do(req)
	require.Equal(t, http.StatusOK, rec.Code)

	_, err = f.store.GetResume(context.Background(), id)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = f.blobs.Get("old.pdf")
	assert.ErrorIs(t, err, blob.ErrNotFound)
}

func TestHandleDownloadResume_RegeneratesMissingBlob(t *testing.T) {
	f := newTestServer(t)
	id, err := f.store.SaveResume(context.Background(), "", "user-5", json.RawMessage(`{"name": "Ada", "summary": "Engineer"}`))
	require.NoError(t, err)
	require.NoError(t, f.store.SetBlobKey(context.Background(), id, "vanished.pdf"))

	rec := f.do(httptest.NewRequest("GET", "/download-resume/"+id, nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))

	// The recovered blob name is written back to the record.
	stored, err := f.store.GetResume(context.Background(), id)
	require.NoError(t, err)
	assert.NotEqual(t, "vanished.pdf", stored.BlobKey)
	_, err = f.blobs.Get(stored.BlobKey)
	assert.NoError(t, err)
}

func TestHandleDownloadResume_NotFound(t *testing.T) {
	f := newTestServer(t)

	rec := f.do(httptest.NewRequest("GET", "/download-resume/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleBlob_RejectsBadTokens(t *testing.T) {
	f := newTestServer(t)
	require.NoError(t, f.blobs.Put("doc.pdf", []byte("%PDF-stub")))

	rec := f.do(httptest.NewRequest("GET", "/blob/doc.pdf", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(httptest.NewRequest("GET", "/blob/doc.pdf?token=garbage", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// A token signed for another blob must not grant access.
	other, err := f.srv.signer.Sign("other.pdf")
	require.NoError(t, err)
	rec = f.do(httptest.NewRequest("GET", "/blob/doc.pdf?token="+other, nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleBlob_ServesWithValidToken(t *testing.T) {
	f := newTestServer(t)
	require.NoError(t, f.blobs.Put("doc.pdf", []byte("%PDF-stub")))

	token, err := f.srv.signer.Sign("doc.pdf")
	require.NoError(t, err)

	rec := f.do(httptest.NewRequest("GET", "/blob/doc.pdf?token="+token, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "%PDF-stub", rec.Body.String())
}

func TestHandleBlob_MissingBlobIs404(t *testing.T) {
	f := newTestServer(t)

	token, err := f.srv.signer.Sign("gone.pdf")
	require.NoError(t, err)

	rec := f.do(httptest.NewRequest("GET", "/blob/gone.pdf?token="+token, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
