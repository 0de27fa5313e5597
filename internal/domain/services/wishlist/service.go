package wishlist

import (
	"fmt"
	"strings"

	"github.com/pisquared/dashboard_service/internal/domain/entities"
	apperrors "github.com/pisquared/dashboard_service/pkg/errors"
	"github.com/pisquared/dashboard_service/pkg/logger"
)

// Service manages the per-session wishlist: an insertion-ordered set of
// uppercase ticker symbols.
type Service struct {
	logger *logger.Logger
}

func NewService(log *logger.Logger) *Service {
	return &Service{logger: log}
}

// Add inserts the uppercased symbol if absent. A duplicate is a no-op that
// surfaces an "already present" notice instead of mutating the set.
func (s *Service) Add(sess *entities.Session, ticker string) (*entities.Notice, error) {
	symbol := normalize(ticker)
	if symbol == "" {
		return nil, apperrors.InvalidInput("ticker must not be empty")
	}

	for _, existing := range sess.Wishlist {
		if existing == symbol {
			return entities.WarningNotice(fmt.Sprintf("%s is already in your wishlist", symbol)), nil
		}
	}

	sess.Wishlist = append(sess.Wishlist, symbol)
	return entities.InfoNotice(fmt.Sprintf("%s added to your wishlist", symbol)), nil
}

// Remove deletes the symbol if present; removing an absent symbol is a no-op
func (s *Service) Remove(sess *entities.Session, ticker string) *entities.Notice {
	symbol := normalize(ticker)
	for i, existing := range sess.Wishlist {
		if existing == symbol {
			sess.Wishlist = append(sess.Wishlist[:i], sess.Wishlist[i+1:]...)
			return entities.InfoNotice(fmt.Sprintf("%s removed from your wishlist", symbol))
		}
	}
	return entities.InfoNotice(fmt.Sprintf("%s was not in your wishlist", symbol))
}

// Contains reports wishlist membership, used by the stock page's toggle
func (s *Service) Contains(sess *entities.Session, ticker string) bool {
	symbol := normalize(ticker)
	for _, existing := range sess.Wishlist {
		if existing == symbol {
			return true
		}
	}
	return false
}

func normalize(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
