package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Dataset errors
	ErrEmptyDataset   = errors.New("dataset has no launch records")
	ErrMissingColumn  = errors.New("required column missing")
	ErrInvalidRecord  = errors.New("invalid launch record")
	ErrInvalidPayload = fmt.Errorf("%w: payload mass", ErrInvalidRecord)
	ErrInvalidOutcome = fmt.Errorf("%w: outcome", ErrInvalidRecord)
)
