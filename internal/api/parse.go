package api

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/finchat/internal/errors"
	"github.com/diogo/finchat/internal/models"
)

// checkEnvelope validates the JSON and looks for the throttling marker.
// It is shared by the quote and history shapers.
func checkEnvelope(body []byte, endpoint string) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, apierrors.NewParseError("response is not valid JSON", "")
	}

	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return gjson.Result{}, apierrors.NewParseError("response is not a JSON object", "")
	}

	for _, marker := range []string{PathRateLimitNote, PathRateLimitInfo} {
		if note := root.Get(marker); note.Exists() {
			return gjson.Result{}, apierrors.NewRateLimitError(endpoint, note.String())
		}
	}

	return root, nil
}

// isEmptyObject reports whether r is missing, null, or an object with no keys
func isEmptyObject(r gjson.Result) bool {
	if !r.Exists() || r.Type == gjson.Null {
		return true
	}
	if !r.IsObject() {
		return false
	}
	empty := true
	r.ForEach(func(_, _ gjson.Result) bool {
		empty = false
		return false
	})
	return empty
}

// parseFloat reads a numeric field that the service encodes as a string
func parseFloat(obj gjson.Result, path string) (float64, error) {
	field := obj.Get(path)
	if !field.Exists() {
		return 0, apierrors.NewParseError("missing field", path)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(field.String()), 64)
	// ParseFloat accepts "NaN" and "Inf", which are not prices
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, apierrors.NewParseError(fmt.Sprintf("invalid number %q", field.String()), path)
	}
	return v, nil
}

// ParseQuote shapes a GLOBAL_QUOTE payload into a Quote.
// It returns a RateLimitError for the throttling marker, a NotFoundError when
// the quote object is absent or empty, and a ParseError for malformed data.
func ParseQuote(body []byte, symbol string) (*models.Quote, error) {
	root, err := checkEnvelope(body, models.FunctionGlobalQuote)
	if err != nil {
		return nil, err
	}

	obj := root.Get(PathQuote)
	if isEmptyObject(obj) {
		return nil, apierrors.NewNotFoundError(symbol, PathQuote)
	}
	if !obj.IsObject() {
		return nil, apierrors.NewParseError("quote is not an object", PathQuote)
	}

	q := &models.Quote{
		Symbol:        symbol,
		ChangePercent: obj.Get(PathQuoteChangePercent).String(),
	}
	if s := obj.Get(PathQuoteSymbol).String(); s != "" {
		q.Symbol = strings.ToUpper(s)
	}

	fields := []struct {
		path string
		dst  *float64
	}{
		{PathQuotePrice, &q.Price},
		{PathQuoteChange, &q.Change},
		{PathQuoteHigh, &q.High},
		{PathQuoteLow, &q.Low},
	}
	for _, f := range fields {
		v, err := parseFloat(obj, f.path)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}

	return q, nil
}

// ParseHistory shapes a TIME_SERIES_MONTHLY payload into at most months
// points in chronological order. The service lists months newest first, so
// the first months entries are taken in document order and then reversed.
func ParseHistory(body []byte, symbol string, months int) ([]models.PricePoint, error) {
	root, err := checkEnvelope(body, models.FunctionMonthlySeries)
	if err != nil {
		return nil, err
	}

	series := root.Get(PathMonthlySeries)
	if isEmptyObject(series) {
		return nil, apierrors.NewNotFoundError(symbol, PathMonthlySeries)
	}
	if !series.IsObject() {
		return nil, apierrors.NewParseError("series is not an object", PathMonthlySeries)
	}
	if months <= 0 {
		months = models.DefaultHistoryMonths
	}

	points := make([]models.PricePoint, 0, months)
	var parseErr error
	series.ForEach(func(date, ohlc gjson.Result) bool {
		if len(points) == months {
			return false
		}
		d := date.String()
		if len(d) < 7 {
			parseErr = apierrors.NewParseError(fmt.Sprintf("invalid date %q", d), PathMonthlySeries)
			return false
		}
		price, err := parseFloat(ohlc, PathSeriesClose)
		if err != nil {
			parseErr = err
			return false
		}
		points = append(points, models.PricePoint{Period: d[:7], Price: price})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}

	return points, nil
}
