// README: Rider service; lookups and emergency-contact registration.
package rider

import (
	"context"
	"errors"
)

var ErrNoEmergencyContact = errors.New("rider has no emergency contact")

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) FindByUUID(ctx context.Context, uuid string) (*Rider, error) {
	return s.store.FindByUUID(ctx, uuid)
}

func (s *Service) Upsert(ctx context.Context, r *Rider) error {
	return s.store.Upsert(ctx, r)
}

// RegisterEmergencyContact normalizes and stores the trusted contact number.
func (s *Service) RegisterEmergencyContact(ctx context.Context, uuid, raw string) (string, error) {
	contact, err := NormalizePhone(raw)
	if err != nil {
		return "", err
	}
	if err := s.store.SetEmergencyContact(ctx, uuid, contact); err != nil {
		return "", err
	}
	return contact, nil
}
