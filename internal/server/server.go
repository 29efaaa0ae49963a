// Package server provides the HTTP REST API for the resume processor.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-processor/internal/blob"
	"github.com/jonathan/resume-processor/internal/config"
	"github.com/jonathan/resume-processor/internal/engine"
	"github.com/jonathan/resume-processor/internal/llm"
	"github.com/jonathan/resume-processor/internal/store"
)

// ResumeStore is the persistence surface the handlers need.
type ResumeStore interface {
	SaveResume(ctx context.Context, id, userID string, data json.RawMessage) (string, error)
	GetResume(ctx context.Context, id string) (*store.ResumeRecord, error)
	ListResumes(ctx context.Context, userID string) ([]store.ResumeRecord, error)
	DeleteResume(ctx context.Context, id string) error
	SetBlobKey(ctx context.Context, id, blobKey string) error
}

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server

	store     ResumeStore
	blobs     blob.Store
	signer    *blob.Signer
	recoverer *blob.Recoverer
	llm       llm.Client
	engine    *engine.Engine
	admin     *config.AdminKeyConfig
	validate  *validator.Validate
}

// New creates a server instance with all its collaborators wired from
// configuration.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	st, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := st.EnsureSchema(ctx); err != nil {
		st.Close()
		return nil, err
	}

	blobs, err := blob.NewFSStore(cfg.BlobDir)
	if err != nil {
		st.Close()
		return nil, err
	}

	client, err := llm.NewClient(ctx, nil, cfg.GeminiAPIKey)
	if err != nil {
		st.Close()
		return nil, err
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		st.Close()
		return nil, err
	}

	adminConfig, err := config.NewAdminKeyConfig()
	if err != nil {
		st.Close()
		return nil, err
	}

	eng := engine.New(cfg.RenderConcurrency)

	s := newServer(st, blobs, blob.NewSigner(jwtConfig), client, eng, adminConfig)
	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.withLogging(s.withCORS(s.routes())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // extraction + tailoring can take minutes
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// newServer wires the handler state without any network setup.
func newServer(st ResumeStore, blobs blob.Store, signer *blob.Signer, client llm.Client, eng *engine.Engine, admin *config.AdminKeyConfig) *Server {
	s := &Server{
		store:    st,
		blobs:    blobs,
		signer:   signer,
		llm:      client,
		engine:   eng,
		admin:    admin,
		validate: validator.New(),
	}
	s.recoverer = blob.NewRecoverer(blobs, func(ctx context.Context, record []byte) ([]byte, error) {
		return s.engine.RenderJSON(ctx, record, "")
	})
	return s
}

// routes builds the request mux.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /process-all", s.handleProcessAll)
	mux.HandleFunc("POST /upload-resume", s.handleUploadResume)
	mux.HandleFunc("GET /resumes/{user_id}", s.handleListResumes)
	mux.HandleFunc("GET /resume/{id}", s.handleGetResume)
	mux.HandleFunc("DELETE /resume/{id}", s.withAdmin(s.handleDeleteResume))
	mux.HandleFunc("GET /download-resume/{id}", s.handleDownloadResume)
	mux.HandleFunc("GET /blob/{name}", s.handleBlob)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if err := s.llm.Close(); err != nil {
		log.Printf("Error closing LLM client: %v", err)
	}
	if closer, ok := s.store.(interface{ Close() }); ok {
		closer.Close()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Admin-Key")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// withAdmin gates destructive endpoints behind the bcrypt-hashed admin key.
func (s *Server) withAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("X-Admin-Key")
		if key == "" || !s.admin.VerifyKey(key) {
			s.errorResponse(w, http.StatusUnauthorized, "invalid admin key")
			return
		}
		next(w, r)
	}
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
