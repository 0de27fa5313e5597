package wishlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pisquared/dashboard_service/internal/domain/entities"
	"github.com/pisquared/dashboard_service/pkg/logger"
)

func TestAddNormalizesSymbol(t *testing.T) {
	svc := NewService(logger.NewNop())
	sess := &entities.Session{}

	notice, err := svc.Add(sess, "  aapl ")
	require.NoError(t, err)
	assert.Equal(t, "info", notice.Level)
	assert.Equal(t, []string{"AAPL"}, sess.Wishlist)
}

func TestAddDuplicateIsNoOp(t *testing.T) {
	svc := NewService(logger.NewNop())
	sess := &entities.Session{Wishlist: []string{"AAPL"}}

	notice, err := svc.Add(sess, "aapl")
	require.NoError(t, err)
	assert.Equal(t, "warning", notice.Level)
	assert.Equal(t, []string{"AAPL"}, sess.Wishlist)
}

func TestAddEmptyTicker(t *testing.T) {
	svc := NewService(logger.NewNop())

	_, err := svc.Add(&entities.Session{}, "  ")
	assert.Error(t, err)
}

func TestRemove(t *testing.T) {
	svc := NewService(logger.NewNop())
	sess := &entities.Session{Wishlist: []string{"AAPL", "MSFT", "NVDA"}}

	svc.Remove(sess, "msft")
	assert.Equal(t, []string{"AAPL", "NVDA"}, sess.Wishlist)
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	svc := NewService(logger.NewNop())
	sess := &entities.Session{Wishlist: []string{"AAPL"}}

	notice := svc.Remove(sess, "MSFT")
	require.NotNil(t, notice)
	assert.Equal(t, []string{"AAPL"}, sess.Wishlist)
}

func TestContains(t *testing.T) {
	svc := NewService(logger.NewNop())
	sess := &entities.Session{Wishlist: []string{"AAPL"}}

	assert.True(t, svc.Contains(sess, " aapl"))
	assert.False(t, svc.Contains(sess, "MSFT"))
}
