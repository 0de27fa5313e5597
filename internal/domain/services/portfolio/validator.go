package portfolio

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pisquared/dashboard_service/internal/domain/entities"
	apperrors "github.com/pisquared/dashboard_service/pkg/errors"
	"github.com/pisquared/dashboard_service/pkg/logger"
)

var hundred = decimal.NewFromInt(100)

// NameResolver resolves a ticker to its descriptive snapshot; a symbol whose
// snapshot has no long name is treated as unresolvable.
type NameResolver interface {
	Snapshot(ctx context.Context, symbol string) (*entities.Snapshot, error)
}

// Validator turns a draft into a ValidatedPortfolio or a validation error.
// Each run rebuilds the portfolio from scratch; nothing is mutated
// incrementally.
type Validator struct {
	resolver  NameResolver
	tolerance decimal.Decimal
	logger    *logger.Logger
}

func NewValidator(resolver NameResolver, tolerance float64, log *logger.Logger) *Validator {
	return &Validator{
		resolver:  resolver,
		tolerance: decimal.NewFromFloat(tolerance),
		logger:    log,
	}
}

// Validate applies the full validation sequence to the draft rows:
// trim/uppercase and drop empty tickers, reject duplicates, reject a zero
// weight sum, reject non-positive weights, rescale weights to sum to 100,
// and resolve every ticker against the market data accessor. Failures list
// the offending symbols and produce no partial portfolio.
func (v *Validator) Validate(ctx context.Context, rows []entities.DraftRow) (*entities.ValidatedPortfolio, error) {
	type cleaned struct {
		ticker string
		weight decimal.Decimal
	}

	var kept []cleaned
	for _, row := range rows {
		ticker := strings.ToUpper(strings.TrimSpace(row.Ticker))
		if ticker == "" {
			continue
		}
		kept = append(kept, cleaned{ticker: ticker, weight: row.Weight})
	}
	if len(kept) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeEmptyPortfolio, "no tickers to validate")
	}

	// Duplicates fail the whole run; the offenders are reported as a set
	seen := make(map[string]int)
	for _, c := range kept {
		seen[c.ticker]++
	}
	var duplicates []string
	for ticker, count := range seen {
		if count > 1 {
			duplicates = append(duplicates, ticker)
		}
	}
	if len(duplicates) > 0 {
		sort.Strings(duplicates)
		return nil, apperrors.New(apperrors.ErrCodeDuplicateTickers,
			"portfolio contains duplicate tickers: "+strings.Join(duplicates, ", ")).
			AddDetail("tickers", duplicates)
	}

	rawSum := decimal.Zero
	for _, c := range kept {
		rawSum = rawSum.Add(c.weight)
	}
	if rawSum.IsZero() {
		return nil, apperrors.New(apperrors.ErrCodeZeroWeightSum,
			"weight sum is zero, nothing can be allocated")
	}

	var nonPositive []string
	for _, c := range kept {
		if c.weight.LessThanOrEqual(decimal.Zero) {
			nonPositive = append(nonPositive, c.ticker)
		}
	}
	if len(nonPositive) > 0 {
		sort.Strings(nonPositive)
		return nil, apperrors.New(apperrors.ErrCodeNonPositiveWeight,
			"every weight must be strictly positive: "+strings.Join(nonPositive, ", ")).
			AddDetail("tickers", nonPositive)
	}

	// Weights are always rescaled by 100/sum before any metric computation;
	// the response flags whether the draft needed it.
	normalized := rawSum.Sub(hundred).Abs().GreaterThan(v.tolerance)

	var invalid []string
	holdings := make([]entities.ValidatedHolding, 0, len(kept))
	for _, c := range kept {
		name, err := v.resolveName(ctx, c.ticker)
		if err != nil {
			return nil, err
		}
		if name == "" {
			invalid = append(invalid, c.ticker)
			continue
		}

		weight := c.weight
		if normalized {
			weight = weight.Mul(hundred).Div(rawSum)
		}
		holdings = append(holdings, entities.ValidatedHolding{
			Ticker:  c.ticker,
			Company: name,
			Weight:  weight,
		})
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return nil, apperrors.New(apperrors.ErrCodeInvalidTickers,
			"tickers are not valid or have no data: "+strings.Join(invalid, ", ")).
			AddDetail("tickers", invalid)
	}

	return &entities.ValidatedPortfolio{
		Holdings:    holdings,
		Normalized:  normalized,
		RawSum:      rawSum,
		ValidatedAt: time.Now().UTC(),
	}, nil
}

// resolveName returns the provider's long name for a ticker, or "" when the
// symbol is unknown or carries no usable name. Transport-level failures
// abort the run: the accessor is down, not the ticker wrong.
func (v *Validator) resolveName(ctx context.Context, ticker string) (string, error) {
	snap, err := v.resolver.Snapshot(ctx, ticker)
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrCodeDataUnavailable) {
			return "", nil
		}
		return "", err
	}
	if snap.LongName == nil || strings.TrimSpace(*snap.LongName) == "" {
		return "", nil
	}
	return *snap.LongName, nil
}

// Stats derives the weight summary tiles from a validated portfolio
func Stats(p *entities.ValidatedPortfolio) *entities.WeightStats {
	if len(p.Holdings) == 0 {
		return nil
	}

	total := decimal.Zero
	max := p.Holdings[0].Weight
	min := p.Holdings[0].Weight
	for _, h := range p.Holdings {
		total = total.Add(h.Weight)
		if h.Weight.GreaterThan(max) {
			max = h.Weight
		}
		if h.Weight.LessThan(min) {
			min = h.Weight
		}
	}

	return &entities.WeightStats{
		Total: total,
		Mean:  total.Div(decimal.NewFromInt(int64(len(p.Holdings)))),
		Max:   max,
		Min:   min,
	}
}
