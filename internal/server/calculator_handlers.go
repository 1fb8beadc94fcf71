package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/sehha/chicalc/internal/breakeven"
	"github.com/sehha/chicalc/internal/calculation"
	"github.com/sehha/chicalc/internal/domain"
)

// pricing carries the group size and base premium shared by the premium calculators.
// Omitted values fall back to 1000 members and 5000 SAR.
type pricing struct {
	MemberCount    *int             `json:"memberCount,omitempty"`
	BasePremiumSAR *decimal.Decimal `json:"basePremiumSAR,omitempty"`
}

func (p pricing) resolve() (int, decimal.Decimal) {
	members := defaultMemberCount
	if p.MemberCount != nil {
		members = *p.MemberCount
	}
	base := defaultBasePremium
	if p.BasePremiumSAR != nil {
		base = *p.BasePremiumSAR
	}
	return members, base
}

type premiumImpactRequest struct {
	pricing
	ServiceID string          `json:"serviceId,omitempty"`
	Service   *domain.Service `json:"service,omitempty"`
}

type subLimitImpactRequest struct {
	pricing
	domain.SubLimitChangeSpec
}

type portfolioImpactRequest struct {
	pricing
	Changes []domain.SubLimitChangeSpec `json:"changes"`
}

type exclusionImpactRequest struct {
	pricing
	domain.ExclusionSpec
}

type breakEvenRequest struct {
	pricing
	domain.SubLimitChangeSpec
	Target string `json:"target"`
}

type eligibilityRequest struct {
	ServiceID string         `json:"serviceId"`
	Profile   domain.Profile `json:"profile"`
}

type screenRequest struct {
	Profile  domain.Profile `json:"profile"`
	Services []string       `json:"services,omitempty"`
}

func (s *Server) calculatorRoutes(r chi.Router) {
	r.Post("/premium-impact", s.premiumImpact)
	r.Post("/sub-limit-impact", s.subLimitImpact)
	r.Post("/portfolio-impact", s.portfolioImpact)
	r.Post("/exclusion-impact", s.exclusionImpact)
	r.Post("/break-even", s.breakEven)
	r.Post("/eligibility", s.eligibility)
	r.Post("/eligibility/screen", s.screen)
}

func (s *Server) engine() *calculation.Engine {
	return calculation.NewEngine(s.catalog)
}

func (s *Server) premiumImpact(w http.ResponseWriter, r *http.Request) {
	var req premiumImpactRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var service domain.Service
	switch {
	case req.Service != nil:
		service = *req.Service
	case req.ServiceID != "":
		svc, ok := s.catalog.Service(req.ServiceID)
		if !ok {
			writeCalcError(r.Context(), w, fmt.Errorf("service %q: %w", req.ServiceID, calculation.ErrUnknownReference))
			return
		}
		service = svc
	default:
		writeError(r.Context(), w, newError("invalid_request", "serviceId or service is required", http.StatusBadRequest))
		return
	}

	members, base := req.resolve()
	result, err := calculation.CalculatePremiumImpact(service, members, base)
	if err != nil {
		writeCalcError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) subLimitImpact(w http.ResponseWriter, r *http.Request) {
	var req subLimitImpactRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.SubLimitID == "" {
		writeError(r.Context(), w, newError("invalid_request", "subLimit is required", http.StatusBadRequest))
		return
	}

	changes, err := s.engine().ResolveChanges([]domain.SubLimitChangeSpec{req.SubLimitChangeSpec})
	if err != nil {
		writeCalcError(r.Context(), w, err)
		return
	}
	members, base := req.resolve()
	result, err := calculation.CalculateSubLimitImpact(changes[0], members, base)
	if err != nil {
		writeCalcError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) portfolioImpact(w http.ResponseWriter, r *http.Request) {
	var req portfolioImpactRequest
	if !decodeBody(w, r, &req) {
		return
	}

	changes, err := s.engine().ResolveChanges(req.Changes)
	if err != nil {
		writeCalcError(r.Context(), w, err)
		return
	}
	members, base := req.resolve()
	result, err := calculation.CalculatePortfolioImpact(changes, members, base)
	if err != nil {
		writeCalcError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// exclusionImpact accepts either a catalog exclusion ID (with optional overrides)
// or raw prevalence and cost figures
func (s *Server) exclusionImpact(w http.ResponseWriter, r *http.Request) {
	var req exclusionImpactRequest
	if !decodeBody(w, r, &req) {
		return
	}
	_, base := req.resolve()

	if req.ExclusionID != "" {
		sc := &domain.Scenario{
			Name:               "exclusion-impact",
			BasePremiumSAR:     base,
			ExclusionAdditions: []domain.ExclusionSpec{req.ExclusionSpec},
		}
		report, err := s.engine().Evaluate(r.Context(), sc)
		if err != nil {
			writeCalcError(r.Context(), w, err)
			return
		}
		writeJSON(w, http.StatusOK, report.Exclusions[0])
		return
	}

	if req.PrevalencePerThousand == nil || req.AvgTreatmentCostSAR == nil {
		writeError(r.Context(), w, newError("invalid_request",
			"exclusion or prevalencePerThousand and avgTreatmentCostSAR are required", http.StatusBadRequest))
		return
	}
	utilization := calculation.DefaultUtilizationRate
	if req.UtilizationRate != nil {
		utilization = *req.UtilizationRate
	}
	result, err := calculation.PredictExclusionAdditionImpact(*req.PrevalencePerThousand, *req.AvgTreatmentCostSAR, utilization, base)
	if err != nil {
		writeCalcError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// breakEven solves for the copayment (default) or limit that makes a sub-limit change premium-neutral
func (s *Server) breakEven(w http.ResponseWriter, r *http.Request) {
	var req breakEvenRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.SubLimitID == "" {
		writeError(r.Context(), w, newError("invalid_request", "subLimit is required", http.StatusBadRequest))
		return
	}
	if req.Target == "" {
		req.Target = string(breakeven.TargetCopay)
	}
	target, err := breakeven.ParseTarget(req.Target)
	if err != nil {
		writeError(r.Context(), w, newError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}
	sl, ok := s.catalog.SubLimit(req.SubLimitID)
	if !ok {
		writeCalcError(r.Context(), w, fmt.Errorf("sub-limit %q: %w", req.SubLimitID, calculation.ErrUnknownReference))
		return
	}

	members, base := req.resolve()
	result, err := breakeven.NewDefaultSolver().Solve(r.Context(), breakeven.Request{
		SubLimit:            sl,
		Target:              target,
		NewLimitSAR:         req.NewLimitSAR,
		NewCopaymentPercent: req.NewCopaymentPercent,
		MemberCount:         members,
		BasePremiumSAR:      base,
	})
	if err != nil {
		writeCalcError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) eligibility(w http.ResponseWriter, r *http.Request) {
	var req eligibilityRequest
	if !decodeBody(w, r, &req) {
		return
	}
	profile, ok := s.normalizeProfile(w, r, req.Profile)
	if !ok {
		return
	}

	service, found := s.catalog.Service(req.ServiceID)
	if !found || service.Eligibility == nil {
		writeCalcError(r.Context(), w, fmt.Errorf("preventive service %q: %w", req.ServiceID, calculation.ErrUnknownReference))
		return
	}
	writeJSON(w, http.StatusOK, calculation.CheckEligibility(service, profile))
}

func (s *Server) screen(w http.ResponseWriter, r *http.Request) {
	var req screenRequest
	if !decodeBody(w, r, &req) {
		return
	}
	profile, ok := s.normalizeProfile(w, r, req.Profile)
	if !ok {
		return
	}

	sc := &domain.Scenario{
		Name:              "eligibility-screen",
		EligibilityChecks: []domain.EligibilityCheckSpec{{Profile: profile, Services: req.Services}},
	}
	report, err := s.engine().Evaluate(r.Context(), sc)
	if err != nil {
		writeCalcError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": report.Eligibility[0].Results})
}

func (s *Server) normalizeProfile(w http.ResponseWriter, r *http.Request, p domain.Profile) (domain.Profile, bool) {
	gender, err := domain.ParseGender(string(p.Gender))
	if err != nil {
		writeError(r.Context(), w, newError("invalid_input", err.Error(), http.StatusBadRequest))
		return p, false
	}
	p.Gender = gender
	for i, c := range p.Conditions {
		p.Conditions[i] = strings.TrimSpace(c)
	}
	if err := p.Validate(); err != nil {
		writeError(r.Context(), w, newError("invalid_input", err.Error(), http.StatusBadRequest))
		return p, false
	}
	return p, true
}
