package ocr

import "time"

// MatchResult carries the match decision plus both compared value sets so a
// mismatch can be reported back with full diagnostics.
type MatchResult struct {
	Match bool

	Amount1 float64   `json:"amount1"`
	Amount2 float64   `json:"amount2"`
	Date1   time.Time `json:"date1"`
	Date2   time.Time `json:"date2"`
	Code1   string    `json:"code1"`
	Code2   string    `json:"code2"`
}

// Reconcile compares two independently sourced extractions under an exact
// match policy: amount, calendar date and code must all be equal. No fuzzy
// matching; a false positive here confirms a payment that never happened.
func Reconcile(a, b *NormalizedFields) MatchResult {
	return MatchResult{
		Match: a.Amount == b.Amount &&
			a.Date.Equal(b.Date) &&
			a.Code == b.Code,
		Amount1: a.Amount,
		Amount2: b.Amount,
		Date1:   a.Date,
		Date2:   b.Date,
		Code1:   a.Code,
		Code2:   b.Code,
	}
}
