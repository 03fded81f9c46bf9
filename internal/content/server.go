package content

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	tbtypes "github.com/confio/tbounty/types"
)

// PutResponse is the body returned on upload
type PutResponse struct {
	Hash tbtypes.ContentHash `json:"hash"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewHandler serves the store over HTTP:
//
//	PUT /content          stores the request body, responds with its hash
//	GET /content/{hash}   responds with the stored bytes
func NewHandler(store *Store, logger zerolog.Logger) http.Handler {
	s := &server{store: store, logger: logger}
	r := mux.NewRouter()
	r.HandleFunc("/content", s.put).Methods(http.MethodPut)
	r.HandleFunc("/content/{hash}", s.get).Methods(http.MethodGet, http.MethodHead)
	r.Use(s.logRequests)
	return r
}

type server struct {
	store  *Store
	logger zerolog.Logger
}

func (s *server) put(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, int64(s.store.maxSize)+1))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	h, err := s.store.Put(data)
	if err != nil {
		s.writeError(w, statusOf(err), err)
		return
	}
	s.logger.Debug().Str("hash", h.String()).Int("size", len(data)).Msg("content stored")
	s.writeJSON(w, http.StatusCreated, PutResponse{Hash: h})
}

func (s *server) get(w http.ResponseWriter, r *http.Request) {
	h, err := tbtypes.ParseContentHash(mux.Vars(r)["hash"])
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	data, err := s.store.Get(h)
	if err != nil {
		s.writeError(w, statusOf(err), err)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("ETag", `"`+h.String()+`"`)
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(data); err != nil {
		s.logger.Error().Err(err).Str("hash", h.String()).Msg("write response")
	}
}

func (s *server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("encode response")
	}
}

func (s *server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Msg("request failed")
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, tbtypes.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, tbtypes.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
