package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) catalogRoutes(r chi.Router) {
	r.Route("/catalog", func(r chi.Router) {
		r.Get("/sub-limits", s.listSubLimits)
		r.Get("/exclusions", s.listExclusions)
		r.Get("/services", s.listServices)
		r.Get("/privileges/{specialty}", s.getPrivileges)
	})
}

func (s *Server) listSubLimits(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"subLimits": s.catalog.SubLimits()})
}

func (s *Server) listExclusions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"exclusions": s.catalog.Exclusions()})
}

// listServices returns every service; ?preventive=true keeps only those with eligibility rules
func (s *Server) listServices(w http.ResponseWriter, r *http.Request) {
	services := s.catalog.Services()
	if r.URL.Query().Get("preventive") == "true" {
		services = s.catalog.PreventiveServices()
	}
	writeJSON(w, http.StatusOK, map[string]any{"services": services})
}

func (s *Server) getPrivileges(w http.ResponseWriter, r *http.Request) {
	specialty := chi.URLParam(r, "specialty")
	privilege, ok := s.catalog.Privileges(specialty)
	if !ok {
		writeError(r.Context(), w, newError("not_found", "unknown specialty "+specialty, http.StatusNotFound))
		return
	}
	writeJSON(w, http.StatusOK, privilege)
}
