// README: Delivery-fee service; caches the active rule snapshot and invalidates on every admin write.
package deliveryfee

import (
	"context"
	"sync"

	"breadrun/internal/logger"
	"breadrun/internal/types"
)

// Rules is the storage contract the service needs; implemented by *Store.
type Rules interface {
	ActiveSnapshot(ctx context.Context) (RuleSnapshot, error)
	List(ctx context.Context) ([]Rule, error)
	Create(ctx context.Context, r *Rule) error
	Update(ctx context.Context, r *Rule) error
	Delete(ctx context.Context, id types.ID) error
}

type Service struct {
	store Rules
	log   *logger.Logger

	mu   sync.RWMutex
	snap *RuleSnapshot
}

func NewService(store Rules, log *logger.Logger) *Service {
	return &Service{store: store, log: log}
}

// Calculate applies the charge engine against the current active rule
// snapshot. A rule-storage read failure is not surfaced: the engine runs
// against an empty snapshot and prices with the fixed fallback, favouring
// availability over precision.
func (s *Service) Calculate(ctx context.Context, distanceKm float64, orderValue types.Money) Result {
	snap, err := s.snapshot(ctx)
	if err != nil {
		s.log.WithError(err).Error("loading delivery charge rules failed, using fallback pricing")
		snap = RuleSnapshot{}
	}
	return CalculateCharge(snap, distanceKm, orderValue)
}

// snapshot returns the cached rule snapshot, loading it on first use.
func (s *Service) snapshot(ctx context.Context) (RuleSnapshot, error) {
	s.mu.RLock()
	if s.snap != nil {
		snap := *s.snap
		s.mu.RUnlock()
		return snap, nil
	}
	s.mu.RUnlock()

	snap, err := s.store.ActiveSnapshot(ctx)
	if err != nil {
		return RuleSnapshot{}, err
	}

	s.mu.Lock()
	s.snap = &snap
	s.mu.Unlock()
	return snap, nil
}

// InvalidateRules drops the cached snapshot so the next calculation reads
// the latest rules. Called after every rule mutation.
func (s *Service) InvalidateRules() {
	s.mu.Lock()
	s.snap = nil
	s.mu.Unlock()
}

func (s *Service) ListRules(ctx context.Context) ([]Rule, error) {
	return s.store.List(ctx)
}

func (s *Service) CreateRule(ctx context.Context, r *Rule) error {
	if err := s.store.Create(ctx, r); err != nil {
		return err
	}
	s.InvalidateRules()
	return nil
}

func (s *Service) UpdateRule(ctx context.Context, r *Rule) error {
	if err := s.store.Update(ctx, r); err != nil {
		return err
	}
	s.InvalidateRules()
	return nil
}

func (s *Service) DeleteRule(ctx context.Context, id types.ID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.InvalidateRules()
	return nil
}
