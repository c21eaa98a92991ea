// Package session keeps invoice drafts in memory while they are being edited.
package session

import (
	"sync"
	"time"

	"github.com/garyjia/facturly/internal/invoice"
	"github.com/google/uuid"
	goCache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	DefaultTTL             = 2 * time.Hour
	DefaultCleanupInterval = 10 * time.Minute
)

// Config holds store settings
type Config struct {
	TTL             time.Duration
	CleanupInterval time.Duration
}

// Store holds drafts with a sliding expiration
type Store struct {
	// mu serializes deletes so only one caller observes the draft as present
	mu     sync.Mutex
	cache  *goCache.Cache
	ttl    time.Duration
	calc   *invoice.Calculator
	logger *zap.Logger
	now    func() time.Time
}

// NewStore creates a new Store
func NewStore(cfg Config, calc *invoice.Calculator, logger *zap.Logger) *Store {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultCleanupInterval
	}

	c := goCache.New(cfg.TTL, cfg.CleanupInterval)
	c.OnEvicted(func(id string, _ interface{}) {
		logger.Debug("Draft evicted", zap.String("draft_id", id))
	})

	return &Store{
		cache:  c,
		ttl:    cfg.TTL,
		calc:   calc,
		logger: logger,
		now:    time.Now,
	}
}

// Create starts a draft. A nil record starts from the form defaults;
// a record without items gets one blank item.
func (s *Store) Create(init *invoice.Record) *Draft {
	var record *invoice.Record
	if init == nil {
		record = invoice.NewRecord(invoice.DateOf(s.now()))
	} else {
		record = init.Clone()
		if record.Items.Len() == 0 {
			_, _ = record.Items.Add(invoice.BlankLineItem())
		}
	}

	d := newDraft(uuid.NewString(), record, s.calc, s.now)
	s.cache.Set(d.ID, d, s.ttl)

	s.logger.Info("Draft created",
		zap.String("draft_id", d.ID),
		zap.Int("items", record.Items.Len()))

	return d
}

// Get returns a draft and extends its lifetime
func (s *Store) Get(id string) (*Draft, error) {
	v, found := s.cache.Get(id)
	if !found {
		return nil, ErrDraftNotFound
	}
	d, ok := v.(*Draft)
	if !ok {
		return nil, ErrDraftNotFound
	}
	// Replace fails when the draft was deleted or expired since the lookup
	if err := s.cache.Replace(id, d, s.ttl); err != nil {
		return nil, ErrDraftNotFound
	}
	return d, nil
}

// Delete discards a draft
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.cache.Get(id); !found {
		return ErrDraftNotFound
	}
	s.cache.Delete(id)
	s.logger.Info("Draft deleted", zap.String("draft_id", id))
	return nil
}

// Count returns the number of live drafts
func (s *Store) Count() int {
	return s.cache.ItemCount()
}
