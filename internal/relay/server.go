package relay

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"enigmasim/internal/domain"
)

type listResponse struct {
	Names []domain.KeySheetName `json:"names"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server stores sealed key sheets in memory and serves them over HTTP. It
// never sees a passphrase or plaintext settings.
type Server struct {
	mu        sync.RWMutex
	blobs     map[domain.KeySheetName][]byte
	tokenHash []byte
	log       *slog.Logger
}

// NewServer returns a server. Publishing requires a bearer token equal to
// token; an empty token disables publishing. Only a bcrypt hash of the token
// is kept.
func NewServer(token string, log *slog.Logger) (*Server, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Server{blobs: make(map[domain.KeySheetName][]byte), log: log}
	if token != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		s.tokenHash = h
	}
	return s, nil
}

// Handler returns the routed HTTP handler wrapped in the access log.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/keysheets", s.handleList).Methods(http.MethodGet)
	router.HandleFunc("/keysheets/{name}", s.handleGet).Methods(http.MethodGet)
	router.HandleFunc("/keysheets/{name}", s.handlePut).Methods(http.MethodPut)
	return s.accessLog(router)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	names := make([]domain.KeySheetName, 0, len(s.blobs))
	for n := range s.blobs {
		names = append(names, n)
	}
	s.mu.RUnlock()
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	writeJSON(w, http.StatusOK, listResponse{Names: names})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	name, ok := nameVar(w, r)
	if !ok {
		return
	}
	s.mu.RLock()
	b, found := s.blobs[name]
	s.mu.RUnlock()
	if !found {
		writeError(w, http.StatusNotFound, "no key sheet named "+string(name))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(b)
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	if s.tokenHash == nil {
		writeError(w, http.StatusForbidden, "publishing is disabled")
		return
	}
	token := extractToken(r.Header.Get("Authorization"))
	if token == "" || bcrypt.CompareHashAndPassword(s.tokenHash, []byte(token)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	name, ok := nameVar(w, r)
	if !ok {
		return
	}

	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBlobBytes))
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, "key sheet too large")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !json.Valid(b) {
		writeError(w, http.StatusBadRequest, "body is not a sealed key sheet")
		return
	}

	s.mu.Lock()
	_, replaced := s.blobs[name]
	s.blobs[name] = b
	s.mu.Unlock()

	status := http.StatusCreated
	if replaced {
		status = http.StatusOK
	}
	writeJSON(w, status, map[string]string{"name": string(name)})
}

func nameVar(w http.ResponseWriter, r *http.Request) (domain.KeySheetName, bool) {
	name := domain.KeySheetName(mux.Vars(r)["name"])
	if err := name.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return name, true
}

// extractToken extracts the token from "Bearer <token>" format
func extractToken(authHeader string) string {
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusRecorder captures the status code and body size for the access log.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
			"status", rec.status,
			"bytes", rec.bytes,
			"duration", time.Since(start),
		)
	})
}
