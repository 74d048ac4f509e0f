package server

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hyperjump/screener/internal/models"
	"github.com/hyperjump/screener/internal/screening"
)

const (
	msgMissingInput    = "Please provide JD and at least one resume."
	msgInternalError   = "internal error"
	multipartMemory    = 8 << 20
	defaultMaxUploadMB = 32
)

func (s *Server) handleCreateScreening(w http.ResponseWriter, r *http.Request) {
	maxMB := s.config.MaxUploadMB
	if maxMB <= 0 {
		maxMB = defaultMaxUploadMB
	}
	limit := int64(maxMB) << 20
	if r.ContentLength > limit {
		s.respondError(w, http.StatusRequestEntityTooLarge, "upload too large")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.respondError(w, http.StatusRequestEntityTooLarge, "upload too large")
			return
		}
		s.respondError(w, http.StatusBadRequest, msgMissingInput)
		return
	}
	defer r.MultipartForm.RemoveAll()

	jdText := strings.TrimSpace(r.FormValue("jd_text"))
	files := r.MultipartForm.File["resumes"]
	if jdText == "" || len(files) == 0 {
		s.respondError(w, http.StatusBadRequest, msgMissingInput)
		return
	}

	resumes := make([]screening.Resume, 0, len(files))
	var skipped []string
	for _, fh := range files {
		text, err := s.readResume(fh)
		if err != nil {
			s.logger.Warn("skipping upload", zap.String("filename", fh.Filename), zap.Error(err))
			skipped = append(skipped, fh.Filename)
			continue
		}
		resumes = append(resumes, screening.Resume{Filename: fh.Filename, Text: text})
	}
	s.logger.Debug("screening request", zap.Int("files", len(files)), zap.Int("readable", len(resumes)))

	result, err := s.screener.Screen(r.Context(), jdText, resumes)
	if err != nil {
		if errors.Is(err, screening.ErrEmptyJobDescription) {
			s.respondError(w, http.StatusBadRequest, msgMissingInput)
			return
		}
		s.logger.Error("screening failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	result.Received = len(files)
	result.Skipped = append(skipped, result.Skipped...)

	if err := s.sessions.Put(r.Context(), result); err != nil {
		s.logger.Error("store session failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	s.respondJSON(w, http.StatusCreated, summary(result))
}

// readResume extracts the text of one uploaded file. Disallowed types are reported as errors.
func (s *Server) readResume(fh *multipart.FileHeader) (string, error) {
	if fh.Filename == "" || !s.extractor.Allowed(fh.Filename) {
		return "", errors.New("file type not allowed")
	}
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return s.extractor.ExtractFile(fh.Filename, content)
}

func (s *Server) handleGetScreening(w http.ResponseWriter, r *http.Request) {
	result, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusNotFound, "screening not found")
		return
	}
	s.respondJSON(w, http.StatusOK, summary(result))
}

func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid candidate index")
		return
	}
	candidate, err := s.sessions.Candidate(chi.URLParam(r, "id"), index)
	switch {
	case errors.Is(err, screening.ErrSessionNotFound):
		s.respondError(w, http.StatusNotFound, "screening not found")
		return
	case errors.Is(err, screening.ErrCandidateNotFound):
		s.respondError(w, http.StatusNotFound, "candidate not found")
		return
	case err != nil:
		s.logger.Error("candidate lookup failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	s.respondJSON(w, http.StatusOK, candidate)
}

func (s *Server) handleSearchCandidates(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		s.respondError(w, http.StatusBadRequest, "q is required")
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	hits, err := s.sessions.Search(r.Context(), chi.URLParam(r, "id"), query, limit)
	if err != nil {
		if errors.Is(err, screening.ErrSessionNotFound) {
			s.respondError(w, http.StatusNotFound, "screening not found")
			return
		}
		s.logger.Error("candidate search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"query": query, "hits": hits})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status":       "ok",
		"scoring_mode": s.screener.ScoringMode(),
	})
}

// summary returns a copy of result whose candidates omit raw text.
func summary(result *models.ScreeningResult) *models.ScreeningResult {
	out := *result
	out.Candidates = result.Summaries()
	return &out
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
