package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sehha/chicalc/internal/backend"
)

func (s *Server) backendRoutes(r chi.Router) {
	r.Post("/chat", s.chat)
	r.Get("/search", s.search)
	r.Get("/insurance-status/{nationalId}", s.insuranceStatus)
}

func (s *Server) requireBackend(w http.ResponseWriter, r *http.Request) bool {
	if s.backend == nil {
		writeCalcError(r.Context(), w, backend.ErrNotConfigured)
		return false
	}
	return true
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	if !s.requireBackend(w, r) {
		return
	}
	var req backend.ChatRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(r.Context(), w, newError("invalid_request", "message is required", http.StatusBadRequest))
		return
	}

	resp, err := s.backend.Chat(r.Context(), req)
	if err != nil {
		writeCalcError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	if !s.requireBackend(w, r) {
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(r.Context(), w, newError("invalid_request", "query parameter q is required", http.StatusBadRequest))
		return
	}

	resp, err := s.backend.Search(r.Context(), query)
	if err != nil {
		writeCalcError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) insuranceStatus(w http.ResponseWriter, r *http.Request) {
	if !s.requireBackend(w, r) {
		return
	}
	nationalID := chi.URLParam(r, "nationalId")
	if !backend.ValidNationalID(nationalID) {
		writeCalcError(r.Context(), w, backend.ErrInvalidNationalID)
		return
	}

	resp, err := s.backend.InsuranceStatus(r.Context(), nationalID)
	if err != nil {
		writeCalcError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
