package services

import (
	"context"
	"sync"

	"tailor-shop/models"

	"go.uber.org/zap"
)

// AddressSource is the remote address list, read-only from the client's
// side.
type AddressSource interface {
	ListAddresses(ctx context.Context) ([]models.Address, error)
}

// AddressService is a read-through cache over the remote address list. The
// cache lives for one checkout session and is invalidated when the wizard is
// dismissed or completes.
type AddressService struct {
	source AddressSource
	logger *zap.Logger

	mu     sync.Mutex
	cached []models.Address
	loaded bool
}

func NewAddressService(source AddressSource, logger *zap.Logger) *AddressService {
	return &AddressService{
		source: source,
		logger: logger,
	}
}

func (s *AddressService) List(ctx context.Context) ([]models.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return append([]models.Address(nil), s.cached...), nil
	}

	addresses, err := s.source.ListAddresses(ctx)
	if err != nil {
		return nil, err
	}

	s.cached = addresses
	s.loaded = true
	s.logger.Debug("address cache primed", zap.Int("count", len(addresses)))
	return append([]models.Address(nil), addresses...), nil
}

// Get resolves an address id against the cached list.
func (s *AddressService) Get(ctx context.Context, id string) (*models.Address, error) {
	addresses, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range addresses {
		if addresses[i].ID == id {
			return &addresses[i], nil
		}
	}
	return nil, ErrAddressNotFound
}

// Default returns the address flagged default, or nil when none is.
func (s *AddressService) Default(ctx context.Context) (*models.Address, error) {
	addresses, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range addresses {
		if addresses[i].IsDefault {
			return &addresses[i], nil
		}
	}
	return nil, nil
}

// Invalidate drops the cached copy so the next checkout session re-fetches.
func (s *AddressService) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.loaded = false
	s.mu.Unlock()
}
