package session

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pisquared/dashboard_service/internal/domain/entities"
	"github.com/pisquared/dashboard_service/internal/infrastructure/config"
	apperrors "github.com/pisquared/dashboard_service/pkg/errors"
	"github.com/pisquared/dashboard_service/pkg/logger"
)

func newTestStore() (*Store, *time.Time) {
	store := NewStore(config.SessionConfig{TTLMinutes: 30, SweepSchedule: "@every 5m"}, logger.NewNop())
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	return store, &now
}

func TestCreateSeedsOneEmptyRow(t *testing.T) {
	store, _ := newTestStore()

	sess := store.Create()
	require.Len(t, sess.Draft, 1)
	assert.Equal(t, entities.DraftRow{}, sess.Draft[0])
	assert.Equal(t, 1, store.Len())
}

func TestGetUnknownSession(t *testing.T) {
	store, _ := newTestStore()

	_, err := store.Get(uuid.New())
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeSessionNotFound))
}

func TestGetBumpsExpiry(t *testing.T) {
	store, now := newTestStore()
	sess := store.Create()

	// 20 minutes later the session is still inside its 30 minute TTL, and
	// touching it pushes the expiry out again
	*now = now.Add(20 * time.Minute)
	_, err := store.Get(sess.ID)
	require.NoError(t, err)

	*now = now.Add(20 * time.Minute)
	_, err = store.Get(sess.ID)
	require.NoError(t, err)
}

func TestGetExpiredSession(t *testing.T) {
	store, now := newTestStore()
	sess := store.Create()

	*now = now.Add(31 * time.Minute)
	_, err := store.Get(sess.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeSessionNotFound))
	assert.Equal(t, 0, store.Len())
}

func TestGetReturnsSnapshotCopy(t *testing.T) {
	store, _ := newTestStore()
	sess := store.Create()

	snap, err := store.Get(sess.ID)
	require.NoError(t, err)

	// Mutating the snapshot must not leak into the stored session
	snap.Wishlist = append(snap.Wishlist, "AAPL")
	snap.Draft[0].Ticker = "AAPL"

	fresh, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Empty(t, fresh.Wishlist)
	assert.Equal(t, "", fresh.Draft[0].Ticker)
}

func TestApplyMutatesUnderLock(t *testing.T) {
	store, _ := newTestStore()
	sess := store.Create()

	err := store.Apply(sess.ID, func(s *entities.Session) error {
		s.Wishlist = append(s.Wishlist, "AAPL")
		return nil
	})
	require.NoError(t, err)

	snap, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL"}, snap.Wishlist)
}

func TestApplyOnExpiredSession(t *testing.T) {
	store, now := newTestStore()
	sess := store.Create()

	*now = now.Add(time.Hour)
	err := store.Apply(sess.ID, func(s *entities.Session) error { return nil })
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeSessionNotFound))
}

func TestSweepDropsExpired(t *testing.T) {
	store, now := newTestStore()
	store.Create()
	store.Create()

	*now = now.Add(time.Hour)
	kept := store.Create()

	store.Sweep()
	assert.Equal(t, 1, store.Len())

	_, err := store.Get(kept.ID)
	assert.NoError(t, err)
}
