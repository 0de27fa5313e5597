package charts

import (
	"fmt"
	"strings"

	charts "github.com/vicanso/go-charts/v2"

	"github.com/pisquared/dashboard_service/internal/domain/entities"
	apperrors "github.com/pisquared/dashboard_service/pkg/errors"
	"github.com/pisquared/dashboard_service/pkg/metrics"
)

const (
	chartWidth  = 1000
	chartHeight = 600
)

// Renderer turns series and allocations into PNG images.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// PriceLine renders the adjusted close history of one symbol.
func (r *Renderer) PriceLine(series *entities.PriceSeries, period entities.Period) ([]byte, error) {
	if series.Empty() {
		return nil, apperrors.DataUnavailable(series.Symbol)
	}

	values := make([]float64, len(series.Bars))
	labels := make([]string, len(series.Bars))
	for i, bar := range series.Bars {
		values[i] = bar.AdjClose
		labels[i] = bar.Date.Format("2006-01-02")
	}
	yMin, yMax := padRange(values)

	painter, err := charts.LineRender([][]float64{values},
		charts.TitleTextOptionFunc(strings.ToUpper(series.Symbol)+" • "+strings.ToUpper(string(period))),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: labels, BoundaryGap: charts.FalseFlag(), SplitNumber: splitFor(period)}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(chartWidth),
		charts.HeightOptionFunc(chartHeight),
	)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "render price chart")
	}
	buf, err := painter.Bytes()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode price chart")
	}
	metrics.ChartsRenderedTotal.WithLabelValues("price").Inc()
	return buf, nil
}

// Performance renders the portfolio's cumulative growth-of-one-unit curve.
func (r *Renderer) Performance(m *entities.PortfolioMetrics) ([]byte, error) {
	if m == nil || len(m.Cumulative) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeEmptyPortfolio, "no validated portfolio to chart")
	}

	values := make([]float64, len(m.Cumulative))
	labels := make([]string, len(m.Cumulative))
	for i, pt := range m.Cumulative {
		values[i] = pt.Value
		labels[i] = pt.Date.Format("2006-01-02")
	}
	yMin, yMax := padRange(values)

	painter, err := charts.LineRender([][]float64{values},
		charts.TitleTextOptionFunc("Portfolio • cumulative return • "+strings.ToUpper(string(m.Lookback))),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: labels, BoundaryGap: charts.FalseFlag(), SplitNumber: splitFor(m.Lookback)}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(chartWidth),
		charts.HeightOptionFunc(chartHeight),
	)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "render performance chart")
	}
	buf, err := painter.Bytes()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode performance chart")
	}
	metrics.ChartsRenderedTotal.WithLabelValues("performance").Inc()
	return buf, nil
}

// Allocation renders the validated holdings as a weight pie.
func (r *Renderer) Allocation(p *entities.ValidatedPortfolio) ([]byte, error) {
	if p == nil || len(p.Holdings) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeEmptyPortfolio, "no validated portfolio to chart")
	}

	values := make([]float64, len(p.Holdings))
	labels := make([]string, len(p.Holdings))
	for i, h := range p.Holdings {
		w := h.Weight.InexactFloat64()
		values[i] = w
		labels[i] = fmt.Sprintf("%s (%.1f%%)", h.Ticker, w)
	}

	painter, err := charts.PieRender(
		values,
		charts.TitleTextOptionFunc("Portfolio allocation"),
		charts.LegendOptionFunc(charts.LegendOption{
			Data: labels,
			Top:  charts.PositionTop,
		}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(800),
		charts.HeightOptionFunc(chartHeight),
	)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "render allocation chart")
	}
	buf, err := painter.Bytes()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode allocation chart")
	}
	metrics.ChartsRenderedTotal.WithLabelValues("allocation").Inc()
	return buf, nil
}

// padRange widens the observed min/max by 5% so lines do not hug the frame.
func padRange(values []float64) (float64, float64) {
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	pad := (max - min) * 0.05
	if pad < max*0.002 {
		pad = max * 0.002
	}
	min -= pad
	if min < 0 {
		min = 0
	}
	return min, max + pad
}

func splitFor(period entities.Period) int {
	switch period {
	case entities.Period1Month, entities.Period3Months, entities.Period6Months:
		return 10
	default:
		return 12
	}
}
