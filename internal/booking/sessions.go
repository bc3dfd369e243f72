package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/harentsoaR/hyno-health-api/internal/cache"
)

const (
	sessionKeyPrefix = "wizard:"
	paymentKeyPrefix = "wizard-payment:"
	lockKeyPrefix    = "wizard-lock:"

	// lockTTL bounds how long a crashed writer can hold a wizard.
	lockTTL = 30 * time.Second
)

type SessionStore interface {
	Save(ctx context.Context, w *Wizard) error
	Load(ctx context.Context, id string) (*Wizard, error)
	// Lock claims the wizard for writing. It returns ErrWizardBusy while
	// another claim is held.
	Lock(ctx context.Context, id string) (unlock func(), err error)
}

// CacheSessions keeps wizards in a cache.Store as JSON. Card details and
// OTPs live under their own key that expires after paymentTTL; once it lapses
// the wizard survives with only the scrubbed payment fields.
type CacheSessions struct {
	store      cache.Store
	ttl        time.Duration
	paymentTTL time.Duration
}

func NewCacheSessions(store cache.Store, ttl, paymentTTL time.Duration) *CacheSessions {
	if paymentTTL <= 0 || (ttl > 0 && paymentTTL > ttl) {
		paymentTTL = ttl
	}
	return &CacheSessions{store: store, ttl: ttl, paymentTTL: paymentTTL}
}

func (s *CacheSessions) Save(ctx context.Context, w *Wizard) error {
	body := *w
	body.Payment = w.Payment.Scrubbed()
	raw, err := json.Marshal(&body)
	if err != nil {
		return fmt.Errorf("encode wizard %s: %w", w.ID, err)
	}
	if err := s.store.Set(ctx, sessionKeyPrefix+w.ID, raw, s.ttl); err != nil {
		return fmt.Errorf("save wizard %s: %w", w.ID, err)
	}

	if w.Payment == body.Payment {
		if err := s.store.Delete(ctx, paymentKeyPrefix+w.ID); err != nil {
			return fmt.Errorf("clear wizard payment %s: %w", w.ID, err)
		}
		return nil
	}
	secret, err := json.Marshal(w.Payment)
	if err != nil {
		return fmt.Errorf("encode wizard payment %s: %w", w.ID, err)
	}
	if err := s.store.Set(ctx, paymentKeyPrefix+w.ID, secret, s.paymentTTL); err != nil {
		return fmt.Errorf("save wizard payment %s: %w", w.ID, err)
	}
	return nil
}

func (s *CacheSessions) Load(ctx context.Context, id string) (*Wizard, error) {
	raw, err := s.store.Get(ctx, sessionKeyPrefix+id)
	if errors.Is(err, cache.ErrMiss) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load wizard %s: %w", id, err)
	}
	var w Wizard
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("decode wizard %s: %w", id, err)
	}

	secret, err := s.store.Get(ctx, paymentKeyPrefix+id)
	switch {
	case errors.Is(err, cache.ErrMiss):
	case err != nil:
		return nil, fmt.Errorf("load wizard payment %s: %w", id, err)
	default:
		if err := json.Unmarshal(secret, &w.Payment); err != nil {
			return nil, fmt.Errorf("decode wizard payment %s: %w", id, err)
		}
	}
	return &w, nil
}

func (s *CacheSessions) Lock(ctx context.Context, id string) (func(), error) {
	key := lockKeyPrefix + id
	ok, err := s.store.SetNX(ctx, key, []byte("1"), lockTTL)
	if err != nil {
		return nil, fmt.Errorf("lock wizard %s: %w", id, err)
	}
	if !ok {
		return nil, ErrWizardBusy
	}
	return func() { _ = s.store.Delete(context.WithoutCancel(ctx), key) }, nil
}
