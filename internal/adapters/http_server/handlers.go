// internal/adapters/http_server/handlers.go
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"gastropath/internal/domain"
)

const maxRequestBody = 16 << 10

// Adder runs the add-restaurant pipeline.
type Adder interface {
	Add(ctx context.Context, ref domain.LocationReference) (domain.Outcome, error)
}

type Handlers struct{ P Adder }

type addRequest struct {
	URL string `json:"url"` // json matching is case-insensitive, so "URL" works too
}

var expectedFormat = map[string]string{"url": "https://maps.app.goo.gl/example"}

type problem struct {
	Type           string            `json:"type"`
	Title          string            `json:"title"`
	Status         int               `json:"status"`
	Detail         string            `json:"detail,omitempty"`
	Kind           string            `json:"kind,omitempty"`
	ExpectedFormat map[string]string `json:"expected_format,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/health", health)
	s.mux.Post("/add_restaurant", h.addRestaurant)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeProblem(w http.ResponseWriter, status int, title, detail string, kind domain.ErrorKind) {
	p := problem{Type: "about:blank", Title: title, Status: status, Detail: detail, Kind: string(kind)}
	if status == http.StatusBadRequest {
		p.ExpectedFormat = expectedFormat
	}
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "message": "Server is running"})
}

func (h *Handlers) addRestaurant(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "could not read request body", "")
		return
	}
	var req addRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "Invalid request format: "+err.Error(), "")
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "Invalid request format: missing url", "")
		return
	}

	out, err := h.P.Add(r.Context(), domain.LocationReference(req.URL))
	if err != nil {
		status, title := statusFor(err)
		writeProblem(w, status, title, err.Error(), domain.KindOf(err))
		return
	}

	msg := "Restaurant added successfully"
	if !out.Created {
		msg = "Restaurant already present"
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": msg})
}

func statusFor(err error) (int, string) {
	var e *domain.Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError, "Internal Server Error"
	}
	switch e.Kind {
	case domain.TooLong, domain.InvalidFormat, domain.UntrustedDomain, domain.InvalidPath:
		return http.StatusBadRequest, "Bad Request"
	case domain.NotFound:
		return http.StatusNotFound, "Not Found"
	case domain.NetworkFailure, domain.UpstreamFailure, domain.PersistFailure:
		return http.StatusBadGateway, "Bad Gateway"
	default:
		return http.StatusInternalServerError, "Internal Server Error"
	}
}
