package reference

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pisquared/dashboard_service/internal/domain/entities"
	apperrors "github.com/pisquared/dashboard_service/pkg/errors"
	"github.com/pisquared/dashboard_service/pkg/logger"
)

// Service holds the static company/ticker/index table. It is loaded once at
// startup and read-only afterwards, so no locking is needed.
type Service struct {
	rows    []entities.ReferenceRow
	indices []string
	logger  *logger.Logger
}

// Load reads the reference CSV (columns Company, Ticker, Ind) and builds the
// selectable-asset universe.
func Load(path string, log *logger.Logger) (*Service, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reference table: %w", err)
	}
	defer f.Close()

	svc, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse reference table %s: %w", path, err)
	}
	svc.logger = log
	log.Infow("Reference table loaded", "path", path, "companies", len(svc.rows), "indices", len(svc.indices))
	return svc, nil
}

func parse(r io.Reader) (*Service, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	companyCol, tickerCol, indexCol := -1, -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "Company":
			companyCol = i
		case "Ticker":
			tickerCol = i
		case "Ind":
			indexCol = i
		}
	}
	if companyCol < 0 || tickerCol < 0 || indexCol < 0 {
		return nil, fmt.Errorf("missing required columns (need Company, Ticker, Ind), got %v", header)
	}

	svc := &Service{}
	seenIndex := make(map[string]bool)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		row := entities.ReferenceRow{
			Company: strings.TrimSpace(record[companyCol]),
			Ticker:  strings.ToUpper(strings.TrimSpace(record[tickerCol])),
			Index:   strings.TrimSpace(record[indexCol]),
		}
		if row.Company == "" || row.Ticker == "" {
			continue
		}
		svc.rows = append(svc.rows, row)
		if !seenIndex[row.Index] {
			seenIndex[row.Index] = true
			svc.indices = append(svc.indices, row.Index)
		}
	}

	if len(svc.rows) == 0 {
		return nil, fmt.Errorf("reference table is empty")
	}
	return svc, nil
}

// Indices returns the known index names in first-appearance order
func (s *Service) Indices() []string {
	out := make([]string, len(s.indices))
	copy(out, s.indices)
	return out
}

// Companies returns the rows belonging to an index. An empty or "all"
// selector returns the full universe.
func (s *Service) Companies(index string) []entities.ReferenceRow {
	if index == "" || strings.EqualFold(index, "all") {
		out := make([]entities.ReferenceRow, len(s.rows))
		copy(out, s.rows)
		return out
	}

	var out []entities.ReferenceRow
	for _, row := range s.rows {
		if row.Index == index {
			out = append(out, row)
		}
	}
	return out
}

// Resolve returns the ticker for a company name
func (s *Service) Resolve(company string) (string, error) {
	for _, row := range s.rows {
		if row.Company == company {
			return row.Ticker, nil
		}
	}
	return "", apperrors.New(apperrors.ErrCodeCompanyNotFound,
		fmt.Sprintf("company %q is not in the reference table", company))
}

// Size returns the number of reference rows, used by health checks
func (s *Service) Size() int {
	return len(s.rows)
}
