package breakeven

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sehha/chicalc/internal/calculation"
	"github.com/sehha/chicalc/internal/domain"
)

var two = decimal.NewFromInt(2)

// Solver bisects a sub-limit parameter until the premium impact reaches zero.
// Impact falls as copayment rises and rises with the limit, so a sign change
// between the bounds brackets exactly one break-even point.
type Solver struct {
	Options SolverOptions
}

func NewSolver(options SolverOptions) *Solver {
	return &Solver{Options: options}
}

func NewDefaultSolver() *Solver {
	return NewSolver(DefaultSolverOptions())
}

// searchSpace is the bracket and precision for one target
type searchSpace struct {
	lo, hi     decimal.Decimal
	resolution decimal.Decimal
	places     int32
	change     func(x decimal.Decimal) domain.SubLimitChange
}

func (s *Solver) space(req Request) (searchSpace, error) {
	sl := req.SubLimit
	base := sl.Unchanged()
	if req.NewLimitSAR != nil {
		base.NewLimitSAR = *req.NewLimitSAR
	}
	if req.NewCopaymentPercent != nil {
		base.NewCopaymentPercent = *req.NewCopaymentPercent
	}

	switch req.Target {
	case TargetCopay:
		return searchSpace{
			lo:         decimal.Zero,
			hi:         decimal.NewFromInt(100),
			resolution: decimal.New(1, -2),
			places:     2,
			change: func(x decimal.Decimal) domain.SubLimitChange {
				c := base
				c.NewCopaymentPercent = x
				return c
			},
		}, nil
	case TargetLimit:
		if sl.MaxLimitSAR.LessThan(sl.MinLimitSAR) {
			return searchSpace{}, &calculation.ValidationError{Field: "limit range", Reason: "maximum is below minimum"}
		}
		return searchSpace{
			lo:         sl.MinLimitSAR,
			hi:         sl.MaxLimitSAR,
			resolution: decimal.NewFromInt(1),
			places:     0,
			change: func(x decimal.Decimal) domain.SubLimitChange {
				c := base
				c.NewLimitSAR = x
				return c
			},
		}, nil
	}
	return searchSpace{}, fmt.Errorf("unsupported target %q", req.Target)
}

// Solve finds the value of the target parameter at which the change is premium-neutral
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	op := "solve_" + string(req.Target)
	sp, err := s.space(req)
	if err != nil {
		return nil, &BreakEvenError{Operation: op, Message: "invalid request", Cause: err}
	}

	maxIter := s.Options.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultSolverOptions().MaxIterations
	}
	tol := s.Options.Tolerance
	if !tol.IsPositive() {
		tol = DefaultSolverOptions().Tolerance
	}

	impactAt := func(x decimal.Decimal) (domain.SubLimitImpact, error) {
		return calculation.CalculateSubLimitImpact(sp.change(x), req.MemberCount, req.BasePremiumSAR)
	}

	result := &Result{
		Target:     req.Target,
		SubLimitID: req.SubLimit.ID,
		LowerBound: sp.lo,
		UpperBound: sp.hi,
	}
	finish := func(x decimal.Decimal, converged bool) (*Result, error) {
		x = x.Round(sp.places)
		impact, err := impactAt(x)
		if err != nil {
			return nil, &BreakEvenError{Operation: op, Message: "failed to evaluate solution", Cause: err}
		}
		result.Value = x
		result.Impact = impact
		result.Converged = converged
		return result, nil
	}

	lo, hi := sp.lo, sp.hi
	loImpact, err := impactAt(lo)
	if err != nil {
		return nil, &BreakEvenError{Operation: op, Message: "failed to evaluate lower bound", Cause: err}
	}
	hiImpact, err := impactAt(hi)
	if err != nil {
		return nil, &BreakEvenError{Operation: op, Message: "failed to evaluate upper bound", Cause: err}
	}
	fLo, fHi := loImpact.PremiumImpactSAR, hiImpact.PremiumImpactSAR

	switch {
	case fLo.Abs().LessThanOrEqual(tol):
		return finish(lo, true)
	case fHi.Abs().LessThanOrEqual(tol):
		return finish(hi, true)
	case fLo.Sign() == fHi.Sign():
		return nil, &BreakEvenError{
			Operation: op,
			Message:   fmt.Sprintf("impact is %s SAR at %s and %s SAR at %s", fLo, lo, fHi, hi),
			Cause:     ErrNoBreakEven,
		}
	}

	for result.Iterations < maxIter {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result.Iterations++

		mid := lo.Add(hi).Div(two)
		impact, err := impactAt(mid)
		if err != nil {
			return nil, &BreakEvenError{Operation: op, Message: "failed to evaluate midpoint", Cause: err}
		}
		fMid := impact.PremiumImpactSAR
		if fMid.Abs().LessThanOrEqual(tol) {
			return finish(mid, true)
		}
		if fMid.Sign() == fLo.Sign() {
			lo, fLo = mid, fMid
		} else {
			hi = mid
		}
		if hi.Sub(lo).LessThan(sp.resolution) {
			return finish(lo.Add(hi).Div(two), true)
		}
	}
	return finish(lo.Add(hi).Div(two), false)
}
