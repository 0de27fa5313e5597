package builder

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pisquared/dashboard_service/internal/domain/entities"
	apperrors "github.com/pisquared/dashboard_service/pkg/errors"
	"github.com/pisquared/dashboard_service/pkg/logger"
)

// Service applies draft-portfolio commands to a session. The draft is the
// loose editing state: tickers may be empty or lowercase and weights may be
// zero; the validator enforces the real invariants later.
type Service struct {
	logger *logger.Logger
}

func NewService(log *logger.Logger) *Service {
	return &Service{logger: log}
}

// AppendRow adds an empty row at the end of the draft
func (s *Service) AppendRow(sess *entities.Session) {
	sess.Draft = append(sess.Draft, entities.DraftRow{})
}

// RemoveRow deletes the row at position, shifting later rows down. An
// out-of-bounds position is a silent no-op: a remove trigger can reference a
// row already deleted by a prior action in the same update cycle.
func (s *Service) RemoveRow(sess *entities.Session, position int) {
	if position < 0 || position >= len(sess.Draft) {
		return
	}
	sess.Draft = append(sess.Draft[:position], sess.Draft[position+1:]...)
}

// SetTicker overwrites the ticker at position
func (s *Service) SetTicker(sess *entities.Session, position int, ticker string) error {
	if position < 0 || position >= len(sess.Draft) {
		return apperrors.InvalidInput(fmt.Sprintf("row %d does not exist", position))
	}
	sess.Draft[position].Ticker = ticker
	return nil
}

// SetWeight overwrites the weight at position. The input layer clamps to
// [0, 100]; the builder trusts it and stores what it is given.
func (s *Service) SetWeight(sess *entities.Session, position int, weight decimal.Decimal) error {
	if position < 0 || position >= len(sess.Draft) {
		return apperrors.InvalidInput(fmt.Sprintf("row %d does not exist", position))
	}
	sess.Draft[position].Weight = weight
	return nil
}

// AddFromWishlist appends a zero-weight row for a wishlist ticker unless the
// draft already holds it (case-insensitive). A duplicate surfaces a warning
// and leaves the draft unchanged.
func (s *Service) AddFromWishlist(sess *entities.Session, ticker string) (*entities.Notice, error) {
	symbol := strings.ToUpper(strings.TrimSpace(ticker))
	if symbol == "" {
		return nil, apperrors.InvalidInput("ticker must not be empty")
	}

	for _, row := range sess.Draft {
		if strings.EqualFold(strings.TrimSpace(row.Ticker), symbol) {
			return entities.WarningNotice(fmt.Sprintf("%s is already in your portfolio", symbol)), nil
		}
	}

	sess.Draft = append(sess.Draft, entities.DraftRow{Ticker: symbol})
	return entities.InfoNotice(fmt.Sprintf("%s added to your portfolio, set its weight", symbol)), nil
}

// TotalWeight sums the draft weights for the live progress indicator. It is
// advisory only; nothing is enforced until validation.
func (s *Service) TotalWeight(sess *entities.Session) decimal.Decimal {
	total := decimal.Zero
	for _, row := range sess.Draft {
		total = total.Add(row.Weight)
	}
	return total
}
