package builder

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pisquared/dashboard_service/internal/domain/entities"
	"github.com/pisquared/dashboard_service/pkg/logger"
)

func newSession(tickers ...string) *entities.Session {
	sess := &entities.Session{}
	for _, t := range tickers {
		sess.Draft = append(sess.Draft, entities.DraftRow{Ticker: t})
	}
	return sess
}

func TestAppendRow(t *testing.T) {
	svc := NewService(logger.NewNop())
	sess := newSession("AAPL")

	svc.AppendRow(sess)

	require.Len(t, sess.Draft, 2)
	assert.Equal(t, entities.DraftRow{}, sess.Draft[1])
}

func TestRemoveRowShiftsLaterRows(t *testing.T) {
	svc := NewService(logger.NewNop())
	sess := newSession("AAPL", "MSFT", "NVDA")

	svc.RemoveRow(sess, 1)

	require.Len(t, sess.Draft, 2)
	assert.Equal(t, "AAPL", sess.Draft[0].Ticker)
	assert.Equal(t, "NVDA", sess.Draft[1].Ticker)
}

func TestRemoveRowOutOfBoundsIsNoOp(t *testing.T) {
	svc := NewService(logger.NewNop())
	sess := newSession("AAPL")

	svc.RemoveRow(sess, 5)
	svc.RemoveRow(sess, -1)

	assert.Len(t, sess.Draft, 1)
}

func TestSetTickerAndWeight(t *testing.T) {
	svc := NewService(logger.NewNop())
	sess := newSession("AAPL", "MSFT")

	require.NoError(t, svc.SetTicker(sess, 1, "nvda"))
	require.NoError(t, svc.SetWeight(sess, 1, decimal.NewFromInt(40)))

	// The draft stores what it is given; normalization happens at validation
	assert.Equal(t, "nvda", sess.Draft[1].Ticker)
	assert.True(t, sess.Draft[1].Weight.Equal(decimal.NewFromInt(40)))
}

func TestSetOnMissingRowFails(t *testing.T) {
	svc := NewService(logger.NewNop())
	sess := newSession("AAPL")

	assert.Error(t, svc.SetTicker(sess, 3, "MSFT"))
	assert.Error(t, svc.SetWeight(sess, -1, decimal.NewFromInt(10)))
}

func TestAddFromWishlist(t *testing.T) {
	svc := NewService(logger.NewNop())
	sess := newSession("AAPL")

	notice, err := svc.AddFromWishlist(sess, " msft ")
	require.NoError(t, err)
	require.NotNil(t, notice)
	assert.Equal(t, "info", notice.Level)

	require.Len(t, sess.Draft, 2)
	assert.Equal(t, "MSFT", sess.Draft[1].Ticker)
	assert.True(t, sess.Draft[1].Weight.IsZero())
}

func TestAddFromWishlistDuplicateWarnsWithoutMutating(t *testing.T) {
	svc := NewService(logger.NewNop())
	sess := newSession("aapl")

	notice, err := svc.AddFromWishlist(sess, "AAPL")
	require.NoError(t, err)
	require.NotNil(t, notice)
	assert.Equal(t, "warning", notice.Level)
	assert.Len(t, sess.Draft, 1)
}

func TestAddFromWishlistEmptyTicker(t *testing.T) {
	svc := NewService(logger.NewNop())

	_, err := svc.AddFromWishlist(newSession(), "   ")
	assert.Error(t, err)
}

func TestTotalWeight(t *testing.T) {
	svc := NewService(logger.NewNop())
	sess := &entities.Session{Draft: []entities.DraftRow{
		{Ticker: "AAPL", Weight: decimal.NewFromInt(60)},
		{Ticker: "MSFT", Weight: decimal.NewFromFloat(25.5)},
		{Ticker: ""},
	}}

	assert.True(t, svc.TotalWeight(sess).Equal(decimal.NewFromFloat(85.5)))
}
