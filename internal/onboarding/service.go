package onboarding

import (
	"context"

	"colabatr_backend/internal/cities"
	"colabatr_backend/internal/events"
	"colabatr_backend/internal/geocode"
	"colabatr_backend/platform/logger"

	"github.com/google/uuid"
)

// SelectCallback receives the finalized location once per successful
// continue. The caller owns persistence and navigation.
type SelectCallback func(ctx context.Context, userID uuid.UUID, record LocationRecord)

// Service owns the per-user steps and emits finalized locations upward.
type Service struct {
	store    *Store
	mode     Mode
	dataset  *cities.Dataset
	resolver *geocode.Resolver
	bus      events.Bus
	log      *logger.Logger
	onSelect SelectCallback
}

// NewService creates the onboarding service.
func NewService(mode Mode, dataset *cities.Dataset, resolver *geocode.Resolver, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		store:    NewStore(),
		mode:     mode,
		dataset:  dataset,
		resolver: resolver,
		bus:      bus,
		log:      log,
	}
}

// SetSelectCallback registers the completion callback.
func (s *Service) SetSelectCallback(cb SelectCallback) {
	s.onSelect = cb
}

// StepFor returns the user's step, creating it on first access.
func (s *Service) StepFor(userID uuid.UUID) *Step {
	return s.store.GetOrCreate(userID, func() *Step {
		return newStep(s.mode, s.dataset, s.resolver)
	})
}

// Destroy removes the user's step.
func (s *Service) Destroy(userID uuid.UUID) {
	s.store.Delete(userID)
}

// Continue finalizes the user's step and emits the record: once to the
// completion callback and once as a domain event. The step is destroyed
// afterwards; navigation is the caller's concern.
func (s *Service) Continue(ctx context.Context, userID uuid.UUID) (LocationRecord, error) {
	step := s.StepFor(userID)

	record, err := step.Continue()
	if err != nil {
		return LocationRecord{}, err
	}

	if s.onSelect != nil {
		s.onSelect(ctx, userID, record)
	}

	event := events.LocationSelectedEvent{
		BaseEvent: events.NewBaseEvent(),
		UserID:    userID.String(),
		City:      record.City,
		State:     record.State,
		Pincode:   record.Pincode,
		Address:   record.Address,
	}
	if record.Coordinates != nil {
		event.Lat = record.Coordinates.Lat
		event.Lng = record.Coordinates.Lng
	}
	s.bus.Publish(ctx, event)

	s.log.Info("onboarding location selected",
		"user_id", userID.String(),
		"city", record.City,
		"state", record.State,
	)

	s.store.Delete(userID)
	return record, nil
}
