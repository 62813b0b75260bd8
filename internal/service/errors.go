package service

import (
	"errors"

	"nnx1/internal/diagnostic"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrOutOfOrder      = errors.New("answer out of order")
	ErrNothingToUndo   = errors.New("no answer to undo")
	ErrIncomplete      = errors.New("session has unanswered questions")
	ErrSessionComplete = errors.New("session already completed")
	ErrDeliveryFailure = errors.New("report delivery failed")

	// ErrInvalidInput is the engine's sentinel so callers need only one errors.Is check
	ErrInvalidInput = diagnostic.ErrInvalidInput
)
