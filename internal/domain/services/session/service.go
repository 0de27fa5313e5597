package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/pisquared/dashboard_service/internal/domain/entities"
	"github.com/pisquared/dashboard_service/internal/infrastructure/config"
	apperrors "github.com/pisquared/dashboard_service/pkg/errors"
	"github.com/pisquared/dashboard_service/pkg/logger"
	"github.com/pisquared/dashboard_service/pkg/metrics"
)

// Store keeps all live dashboard sessions in memory. State is scoped to one
// interactive session and discarded on expiry; there is no persistence.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*entities.Session
	ttl      time.Duration
	schedule string
	cron     *cron.Cron
	logger   *logger.Logger
	now      func() time.Time
}

// NewStore creates a session store from config
func NewStore(cfg config.SessionConfig, log *logger.Logger) *Store {
	return &Store{
		sessions: make(map[uuid.UUID]*entities.Session),
		ttl:      time.Duration(cfg.TTLMinutes) * time.Minute,
		schedule: cfg.SweepSchedule,
		logger:   log,
		now:      time.Now,
	}
}

// StartSweeper schedules the periodic expiry sweep
func (s *Store) StartSweeper() error {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(s.schedule, s.Sweep); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// StopSweeper stops the expiry sweep and waits for a running sweep to finish
func (s *Store) StopSweeper() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// Create starts a fresh session with one empty draft row, mirroring the
// initial editing state of the portfolio page.
func (s *Store) Create() *entities.Session {
	now := s.now()
	sess := &entities.Session{
		ID:         uuid.New(),
		Draft:      []entities.DraftRow{{}},
		CreatedAt:  now,
		LastSeenAt: now,
		ExpiresAt:  now.Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	metrics.ActiveSessionsGauge.Set(float64(len(s.sessions)))
	s.mu.Unlock()

	s.logger.ForSession(sess.ID.String()).Debug("Session created")
	return sess
}

// Get returns a snapshot of the session for an ID, bumping its expiry.
// Expired or unknown IDs report SESSION_NOT_FOUND and the caller starts over
// with Create. The snapshot copies the mutable slices; Validated, Metrics and
// Stats are rebuilt wholesale on each validation and never edited in place,
// so sharing those pointers is safe.
func (s *Store) Get(id uuid.UUID) (*entities.Session, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || sess.Expired(now) {
		if ok {
			delete(s.sessions, id)
			metrics.ActiveSessionsGauge.Set(float64(len(s.sessions)))
		}
		return nil, apperrors.New(apperrors.ErrCodeSessionNotFound, "session not found or expired")
	}

	sess.LastSeenAt = now
	sess.ExpiresAt = now.Add(s.ttl)

	snapshot := *sess
	snapshot.Wishlist = append([]string(nil), sess.Wishlist...)
	snapshot.Draft = append([]entities.DraftRow(nil), sess.Draft...)
	return &snapshot, nil
}

// Apply runs one command against a session under the store lock. Commands
// are synchronous: the handler that applies one renders the resulting state
// before returning, so there is never re-entrant mutation mid-render.
func (s *Store) Apply(id uuid.UUID, command func(*entities.Session) error) error {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || sess.Expired(now) {
		return apperrors.New(apperrors.ErrCodeSessionNotFound, "session not found or expired")
	}

	sess.LastSeenAt = now
	sess.ExpiresAt = now.Add(s.ttl)
	return command(sess)
}

// Sweep drops expired sessions
func (s *Store) Sweep() {
	now := s.now()

	s.mu.Lock()
	var dropped int
	for id, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, id)
			dropped++
		}
	}
	remaining := len(s.sessions)
	metrics.ActiveSessionsGauge.Set(float64(remaining))
	s.mu.Unlock()

	if dropped > 0 {
		s.logger.Infow("Session sweep", "dropped", dropped, "remaining", remaining)
	}
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
