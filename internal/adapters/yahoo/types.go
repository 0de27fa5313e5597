package yahoo

// Wire types for the v8 chart and v10 quoteSummary endpoints. Numeric
// quoteSummary fields arrive as {"raw": n, "fmt": "..."} objects; only the
// raw value is consumed.

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open  []*float64 `json:"open"`
					High  []*float64 `json:"high"`
					Low   []*float64 `json:"low"`
					Close []*float64 `json:"close"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"chart"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price *struct {
				LongName  *string   `json:"longName"`
				MarketCap *rawValue `json:"marketCap"`
			} `json:"price"`
			AssetProfile *struct {
				Sector              *string `json:"sector"`
				Industry            *string `json:"industry"`
				LongBusinessSummary *string `json:"longBusinessSummary"`
			} `json:"assetProfile"`
			SummaryDetail *struct {
				TrailingPE    *rawValue `json:"trailingPE"`
				DividendYield *rawValue `json:"dividendYield"`
			} `json:"summaryDetail"`
			DefaultKeyStatistics *struct {
				PEGRatio *rawValue `json:"pegRatio"`
			} `json:"defaultKeyStatistics"`
			FinancialData *struct {
				ReturnOnEquity *rawValue `json:"returnOnEquity"`
				DebtToEquity   *rawValue `json:"debtToEquity"`
			} `json:"financialData"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"quoteSummary"`
}

type rawValue struct {
	Raw *float64 `json:"raw"`
}

func (v *rawValue) value() *float64 {
	if v == nil {
		return nil
	}
	return v.Raw
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
