package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-processor/internal/blob"
	"github.com/jonathan/resume-processor/internal/fetch"
	"github.com/jonathan/resume-processor/internal/ingestion"
	"github.com/jonathan/resume-processor/internal/schemas"
	"github.com/jonathan/resume-processor/internal/store"
)

// maxUploadBytes caps uploaded resume files at 10 MB.
const maxUploadBytes = 10 << 20

// ProcessAllRequest is the multipart form for /process-all. The job
// description may be given inline or as a posting URL to fetch.
type ProcessAllRequest struct {
	JobTitle       string `validate:"required"`
	JobDescription string `validate:"required"`
	JobURL         string `validate:"omitempty,url"`
	UserID         string `validate:"required"`
	Theme          string
}

// ProcessAllResponse is the response for /process-all.
type ProcessAllResponse struct {
	ResumeID    string `json:"resume_id"`
	BlobName    string `json:"blob_name"`
	DownloadURL string `json:"download_url"`
}

// UploadResponse is the response for /upload-resume.
type UploadResponse struct {
	ResumeID string `json:"resume_id"`
}

// handleProcessAll runs the full pipeline for one job application: the
// uploaded resume is extracted and the job posting analyzed in parallel, the
// resume is tailored against the analysis, then stored, rendered, and made
// available under a signed download URL. When the description is not inline,
// a job_url form value is fetched and reduced to posting text first.
func (s *Server) handleProcessAll(w http.ResponseWriter, r *http.Request) {
	upload, err := s.readResumeUpload(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()

	req := ProcessAllRequest{
		JobTitle:       r.FormValue("job_title"),
		JobDescription: r.FormValue("job_description"),
		JobURL:         r.FormValue("job_url"),
		UserID:         r.FormValue("user_id"),
		Theme:          r.FormValue("theme"),
	}
	if req.JobDescription == "" && req.JobURL != "" {
		text, err := fetch.JobPosting(ctx, req.JobURL, true)
		if err != nil {
			s.errorResponse(w, http.StatusBadGateway, "Failed to fetch job posting: "+err.Error())
			return
		}
		req.JobDescription = text
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing required field: "+err.Error())
		return
	}

	// Resume extraction and job analysis are independent LLM calls.
	var resume, job map[string]any
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		resume, err = s.extractUpload(gctx, upload)
		return err
	})
	g.Go(func() error {
		var err error
		job, err = s.llm.AnalyzeJob(gctx, req.JobTitle, req.JobDescription)
		return err
	})
	if err := g.Wait(); err != nil {
		s.errorResponse(w, http.StatusBadGateway, "Processing failed: "+err.Error())
		return
	}

	tailored, err := s.llm.TailorResume(ctx, resume, job)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "Tailoring failed: "+err.Error())
		return
	}
	s.flagSchemaViolations(tailored)

	data, err := json.Marshal(tailored)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to encode record")
		return
	}

	id, err := s.store.SaveResume(ctx, "", req.UserID, data)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	pdfBytes, err := s.engine.RenderJSON(ctx, data, req.Theme)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Rendering failed: "+err.Error())
		return
	}

	name := blob.NewName()
	if err := s.blobs.Put(name, pdfBytes); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.store.SetBlobKey(ctx, id, name); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	token, err := s.signer.Sign(name)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, ProcessAllResponse{
		ResumeID:    id,
		BlobName:    name,
		DownloadURL: fmt.Sprintf("/blob/%s?token=%s", name, token),
	})
}

// handleUploadResume extracts and stores an uploaded resume without tailoring.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	upload, err := s.readResumeUpload(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	userID := r.FormValue("user_id")
	if userID == "" {
		s.errorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}

	record, err := s.extractUpload(r.Context(), upload)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "Extraction failed: "+err.Error())
		return
	}
	s.flagSchemaViolations(record)

	data, err := json.Marshal(record)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to encode record")
		return
	}

	id, err := s.store.SaveResume(r.Context(), "", userID, data)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, UploadResponse{ResumeID: id})
}

// handleListResumes returns all resume records for a user.
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.ListResumes(r.Context(), r.PathValue("user_id"))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if records == nil {
		records = []store.ResumeRecord{}
	}
	s.jsonResponse(w, http.StatusOK, records)
}

// handleGetResume returns one resume record.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.GetResume(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "resume not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, rec)
}

// handleDeleteResume removes a resume record and its blob.
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	rec, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "resume not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	if rec.BlobKey != "" {
		if err := s.blobs.Delete(rec.BlobKey); err != nil {
			log.Printf("[blob] failed to delete %s: %v", rec.BlobKey, err)
		}
	}

	if err := s.store.DeleteResume(r.Context(), id); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"deleted": id})
}

// handleDownloadResume streams the rendered PDF for a resume, regenerating
// the blob from the stored record when it has gone missing.
func (s *Server) handleDownloadResume(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	rec, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "resume not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	data, name, err := s.recoverer.Fetch(r.Context(), rec.BlobKey, rec.Data)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if name != rec.BlobKey {
		if err := s.store.SetBlobKey(r.Context(), id, name); err != nil {
			log.Printf("[blob] failed to record recovered blob %s: %v", name, err)
		}
	}

	s.writePDF(w, name, data)
}

// handleBlob serves a stored blob to holders of a valid download token.
func (s *Server) handleBlob(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	granted, err := s.signer.Verify(r.URL.Query().Get("token"))
	if err != nil || granted != name {
		s.errorResponse(w, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	data, err := s.blobs.Get(name)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "blob not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writePDF(w, name, data)
}

// readResumeUpload pulls the "resume" file out of a multipart request.
func (s *Server) readResumeUpload(r *http.Request) (*ingestion.Upload, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, fmt.Errorf("invalid multipart form: %w", err)
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		return nil, fmt.Errorf("resume file is required: %w", err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	return ingestion.FromUpload(header.Filename, data)
}

// extractUpload turns an upload into a structured record, calling the LLM
// only when the upload was plain text.
func (s *Server) extractUpload(ctx context.Context, upload *ingestion.Upload) (map[string]any, error) {
	if upload.Record != nil {
		var record map[string]any
		if err := json.Unmarshal(upload.Record, &record); err != nil {
			return nil, fmt.Errorf("failed to decode uploaded record: %w", err)
		}
		return record, nil
	}
	return s.llm.ExtractResume(ctx, upload.Text)
}

// flagSchemaViolations logs where an extracted record deviates from the
// resume schema. Invalid records are still stored and rendered.
func (s *Server) flagSchemaViolations(record map[string]any) {
	err := schemas.ValidateResume(record)
	if err == nil {
		return
	}
	var verr *schemas.ValidationError
	if errors.As(err, &verr) {
		for _, fe := range verr.Errors {
			log.Printf("[schema] %s: %s", fe.Field, fe.Message)
		}
		return
	}
	log.Printf("[schema] validation did not run: %v", err)
}

// writePDF streams PDF bytes with download headers.
func (s *Server) writePDF(w http.ResponseWriter, name string, data []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	if _, err := w.Write(data); err != nil {
		log.Printf("Error streaming PDF %s: %v", name, err)
	}
}
