package service

import (
	"errors"
	"fmt"

	"aquafund/internal/models"
)

var (
	// ErrDuplicateOperation: a distribution was already run for the cycle.
	ErrDuplicateOperation = errors.New("distribution already initiated for this cycle")
	// ErrNotEligible: the cycle has no investments to distribute to.
	ErrNotEligible = errors.New("no investments found for this cycle")
)

type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

type InvalidTransitionError struct {
	From models.PayoutStatus
	To   models.PayoutStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid payout transition %s -> %s", e.From, e.To)
}

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
