// Package catalog serves form definitions: saved definitions when available,
// built-in defaults otherwise, and admin edits to both.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/sujay090/Dynamic-form-sub001/internal/domain"
	"github.com/sujay090/Dynamic-form-sub001/internal/service/schema"
)

type formRepo interface {
	// Get returns domain.ErrNotFound when no definition is saved.
	Get(ctx context.Context, formType domain.FormType) (*domain.FormDefinition, error)
	List(ctx context.Context) ([]*domain.FormDefinition, error)
	// Create returns domain.ErrAlreadyExists when formType is taken.
	Create(ctx context.Context, def *domain.FormDefinition) (*domain.FormDefinition, error)
	// Save upserts def and returns the stored row.
	Save(ctx context.Context, def *domain.FormDefinition) (*domain.FormDefinition, error)
}

type fallbackObserver interface {
	DefaultsApplied(formType domain.FormType)
}

type entry struct {
	state domain.LoadState
	def   domain.FormDefinition
	done  chan struct{} // closed when a Loading entry settles
}

// Service is the form catalog manager. Safe for concurrent use.
type Service struct {
	repo         formRepo
	defaults     Defaults
	validators   *schema.Cache
	fetchTimeout time.Duration
	observer     fallbackObserver
	log          *slog.Logger

	mu      sync.Mutex
	entries map[domain.FormType]*entry

	// writeMu serializes read-modify-write edits of definitions.
	writeMu sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithFetchTimeout bounds each definition fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Service) { s.fetchTimeout = d }
}

// WithObserver reports defaults fallbacks, e.g. to metrics.
func WithObserver(o fallbackObserver) Option {
	return func(s *Service) { s.observer = o }
}

// WithValidatorCache shares a validator cache between services.
func WithValidatorCache(c *schema.Cache) Option {
	return func(s *Service) { s.validators = c }
}

// NewService creates a catalog backed by repo, falling back to defaults.
func NewService(log *slog.Logger, repo formRepo, defaults Defaults, opts ...Option) *Service {
	s := &Service{
		repo:         repo,
		defaults:     defaults,
		fetchTimeout: 5 * time.Second,
		log:          log.With("service", "catalog"),
		entries:      make(map[domain.FormType]*entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.validators == nil {
		s.validators = schema.NewCache(0)
	}
	return s
}

// State reports the load state of formType.
func (s *Service) State(formType domain.FormType) domain.LoadState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[formType]; ok {
		return e.state
	}
	return domain.LoadStateUnloaded
}

// Get returns the current definition of formType, loading it on first use.
//
// A saved definition moves the form to Ready. A built-in (or configured)
// form with nothing saved gets its defaults and is also Ready. When the
// fetch fails, the defaults are used, a warning is logged and the form is
// DefaultsApplied. Other forms with nothing saved yield domain.ErrNotFound.
func (s *Service) Get(ctx context.Context, formType domain.FormType) (domain.FormDefinition, error) {
	for {
		s.mu.Lock()
		e, ok := s.entries[formType]
		if ok && e.state.Settled() {
			def := e.def.Clone()
			s.mu.Unlock()
			return def, nil
		}
		if ok && e.state == domain.LoadStateLoading {
			done := e.done
			s.mu.Unlock()
			select {
			case <-done:
				continue
			case <-ctx.Done():
				return domain.FormDefinition{}, ctx.Err()
			}
		}

		e = &entry{state: domain.LoadStateLoading, done: make(chan struct{})}
		s.entries[formType] = e
		s.mu.Unlock()

		def, state, err := s.load(ctx, formType)

		s.mu.Lock()
		if err != nil {
			if s.entries[formType] == e {
				delete(s.entries, formType)
			}
		} else {
			e.def = def
			e.state = state
		}
		close(e.done)
		s.mu.Unlock()

		if err != nil {
			return domain.FormDefinition{}, err
		}
		return def.Clone(), nil
	}
}

func (s *Service) load(ctx context.Context, formType domain.FormType) (domain.FormDefinition, domain.LoadState, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	saved, err := s.repo.Get(fetchCtx, formType)
	if err == nil {
		return *saved, domain.LoadStateReady, nil
	}

	def, hasDefaults := s.defaults.Get(formType)
	switch {
	case errors.Is(err, domain.ErrNotFound) && hasDefaults:
		return def, domain.LoadStateReady, nil
	case errors.Is(err, domain.ErrNotFound):
		return domain.FormDefinition{}, "", fmt.Errorf("form %s: %w", formType, domain.ErrNotFound)
	case hasDefaults && ctx.Err() == nil:
		s.log.WarnContext(ctx, "form definition fetch failed, using defaults",
			slog.String("form_type", formType.String()),
			slog.String("error", err.Error()),
		)
		if s.observer != nil {
			s.observer.DefaultsApplied(formType)
		}
		return def, domain.LoadStateDefaultsApplied, nil
	}
	return domain.FormDefinition{}, "", fmt.Errorf("load form %s: %w", formType, err)
}

// Reload drops the cached definition so the next Get fetches it again.
func (s *Service) Reload(formType domain.FormType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[formType]; ok && e.state.Settled() {
		delete(s.entries, formType)
	}
}

// List returns the built-in forms, then other forms with defaults, then
// saved custom forms. A failed listing of saved forms is logged and the
// forms known so far are still returned.
func (s *Service) List(ctx context.Context) ([]domain.FormDefinition, error) {
	out := make([]domain.FormDefinition, 0, len(s.defaults))
	seen := make(map[domain.FormType]bool)

	known := domain.BuiltinFormTypes()
	for _, ft := range slices.Sorted(maps.Keys(s.defaults)) {
		if !ft.IsBuiltin() {
			known = append(known, ft)
		}
	}
	for _, ft := range known {
		def, err := s.Get(ctx, ft)
		if err != nil {
			return nil, err
		}
		out = append(out, def)
		seen[ft] = true
	}

	listCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()
	saved, err := s.repo.List(listCtx)
	if err != nil {
		s.log.WarnContext(ctx, "list saved forms failed", slog.String("error", err.Error()))
		return out, nil
	}
	for _, def := range saved {
		if seen[def.FormType] {
			continue
		}
		seen[def.FormType] = true
		out = append(out, *def)
	}
	return out, nil
}

// Validator returns the cached validator for formType's current definition
// together with that definition.
func (s *Service) Validator(ctx context.Context, formType domain.FormType) (*schema.Validator, domain.FormDefinition, error) {
	def, err := s.Get(ctx, formType)
	if err != nil {
		return nil, domain.FormDefinition{}, err
	}
	return s.validators.For(def.Fields), def, nil
}

// store replaces the in-memory definition after a successful save.
func (s *Service) store(def domain.FormDefinition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[def.FormType] = &entry{state: domain.LoadStateReady, def: def.Clone()}
}
