package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput matches every *InvalidInputError.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoFeasibleSolution matches every *NoFeasibleSolutionError.
	ErrNoFeasibleSolution = errors.New("no feasible solution")
	// ErrNonConvexResult matches every *NonConvexResultError.
	ErrNonConvexResult = errors.New("non-convex result")
)

// InvalidInputError reports a parameter outside its domain.
type InvalidInputError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidInput) succeed.
func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// NoFeasibleSolutionError reports that the cost function has no positive
// real critical point.
type NoFeasibleSolutionError struct {
	Reason string
}

func (e *NoFeasibleSolutionError) Error() string {
	return "no feasible lot size: " + e.Reason
}

func (e *NoFeasibleSolutionError) Is(target error) bool { return target == ErrNoFeasibleSolution }

// NonConvexResultError reports a critical point that is not a local minimum.
type NonConvexResultError struct {
	Candidate        float64
	SecondDerivative float64
}

func (e *NonConvexResultError) Error() string {
	return fmt.Sprintf("critical point Q=%g is not a minimum (second derivative %g)", e.Candidate, e.SecondDerivative)
}

func (e *NonConvexResultError) Is(target error) bool { return target == ErrNonConvexResult }
