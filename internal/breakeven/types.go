// Package breakeven solves for the sub-limit terms at which a change is premium-neutral.
package breakeven

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/sehha/chicalc/internal/domain"
)

// Target names the parameter the solver varies
type Target string

const (
	// TargetCopay holds the new limit and solves for the copayment percent
	TargetCopay Target = "copay"
	// TargetLimit holds the new copayment and solves for the limit within the sub-limit's range
	TargetLimit Target = "limit"
)

// ParseTarget accepts "copay"/"copayment" and "limit"
func ParseTarget(s string) (Target, error) {
	switch s {
	case "copay", "copayment":
		return TargetCopay, nil
	case "limit":
		return TargetLimit, nil
	}
	return "", &BreakEvenError{Operation: "parse_target", Message: "target must be copay or limit, got " + s}
}

// ErrNoBreakEven is returned when the premium impact keeps one sign across the whole search range
var ErrNoBreakEven = errors.New("no break-even point in range")

// Request describes one break-even search. The fixed parameter is
// NewLimitSAR for TargetCopay and NewCopaymentPercent for TargetLimit;
// a nil fixed parameter keeps the sub-limit's current value.
type Request struct {
	SubLimit            domain.SubLimit
	Target              Target
	NewLimitSAR         *decimal.Decimal
	NewCopaymentPercent *decimal.Decimal
	MemberCount         int
	BasePremiumSAR      decimal.Decimal
}

// Result is the solved parameter and the impact evaluated at it
type Result struct {
	Target     Target                `json:"target"`
	SubLimitID string                `json:"subLimitId"`
	Value      decimal.Decimal       `json:"value"`
	LowerBound decimal.Decimal       `json:"lowerBound"`
	UpperBound decimal.Decimal       `json:"upperBound"`
	Impact     domain.SubLimitImpact `json:"impact"`
	Iterations int                   `json:"iterations"`
	Converged  bool                  `json:"converged"`
}

// SolverOptions configures the bisection
type SolverOptions struct {
	// Tolerance is the per-member premium impact, in SAR, treated as zero
	Tolerance     decimal.Decimal
	MaxIterations int
}

func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromFloat(0.01),
		MaxIterations: 60,
	}
}

// BreakEvenError represents errors from the break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
