package srs

import (
	"errors"
	"time"

	"github.com/truongtuankiet1/AIFlashCard/internal/domain"
)

// Common errors
var (
	ErrNilState = errors.New("review state cannot be nil")
)

// Service defines the interface for SRS algorithm operations.
// The algorithm itself is a pure function over (state, quality): it touches
// no shared state and is safe to call from any number of goroutines.
type Service interface {
	// Next computes the schedule state following one review at the given
	// quality. Quality is clamped into [0,5] before use; the only error is
	// a nil input state.
	Next(state *domain.ReviewState, quality int, now time.Time) (*domain.ReviewState, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new SRS service with default parameters.
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new SRS service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// Next implements the Service interface.
func (s *defaultService) Next(state *domain.ReviewState, quality int, now time.Time) (*domain.ReviewState, error) {
	if state == nil {
		return nil, ErrNilState
	}

	return calculateNextState(state, quality, now, s.params), nil
}
