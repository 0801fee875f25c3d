package ocr

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// NormalizedFields is a canonicalized extraction: amount rounded to two
// decimal places, date resolved to a calendar day, code validated.
type NormalizedFields struct {
	Amount float64
	Date   time.Time
	Code   string
}

var (
	ErrInvalidAmount = errors.New("invalid amount format")
	ErrInvalidDate   = errors.New("date format is incorrect")
	ErrInvalidCode   = errors.New("invalid unique code")
)

// IncompleteExtractionError names the fields no pattern matched.
type IncompleteExtractionError struct {
	Missing []string
}

func (e *IncompleteExtractionError) Error() string {
	return fmt.Sprintf("could not extract required fields: %s", strings.Join(e.Missing, ", "))
}

// dateFormats is tried in fixed order, two-digit year first, mirroring the
// precedence of the extraction rules. Go maps two-digit years 00-68 to 20xx
// and 69-99 to 19xx.
var dateFormats = []string{"2/1/06", "2/1/2006"}

var codeShape = regexp.MustCompile(`^[A-Z0-9]{10}$`)

// Normalize canonicalizes a raw extraction. Rejection is all-or-nothing: a
// single unparseable field rejects the whole extraction, nothing is defaulted.
func Normalize(raw RawExtraction) (*NormalizedFields, error) {
	if missing := raw.MissingFields(); len(missing) > 0 {
		return nil, &IncompleteExtractionError{Missing: missing}
	}

	amount, err := normalizeAmount(raw[FieldAmount])
	if err != nil {
		return nil, err
	}
	date, err := normalizeDate(raw[FieldDate])
	if err != nil {
		return nil, err
	}
	code := raw[FieldCode]
	if !codeShape.MatchString(code) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCode, code)
	}

	return &NormalizedFields{Amount: amount, Date: date, Code: code}, nil
}

func normalizeAmount(raw string) (float64, error) {
	cleaned := strings.ReplaceAll(raw, ",", "")
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || amount < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	return math.Round(amount*100) / 100, nil
}

func normalizeDate(raw string) (time.Time, error) {
	for _, format := range dateFormats {
		if date, err := time.Parse(format, raw); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
}
