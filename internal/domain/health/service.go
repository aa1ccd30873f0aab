package health

import (
	"context"
	"fmt"
)

type Service struct {
	readings ReadingRepository
}

func NewService(readings ReadingRepository) *Service {
	return &Service{readings: readings}
}

// CreateReading validates the whole input before touching the store, so a
// rejected request never leaves a partial document behind.
func (s *Service) CreateReading(ctx context.Context, in *ReadingInput) (*HealthReading, error) {
	if in == nil {
		return nil, &ValidationError{Reason: "request body must be a JSON object"}
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	r := in.Reading()
	if err := s.readings.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) GetReading(ctx context.Context, id string) (*HealthReading, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	return s.readings.GetByID(ctx, id)
}

func (s *Service) LatestReading(ctx context.Context) (*HealthReading, error) {
	return s.readings.Latest(ctx)
}

func (s *Service) ListReadings(ctx context.Context, limit, offset int) ([]*HealthReading, int, error) {
	if limit <= 0 {
		return nil, 0, fmt.Errorf("%w: limit must be positive", ErrValidation)
	}
	if offset < 0 {
		offset = 0
	}
	return s.readings.List(ctx, limit, offset)
}
