package ocr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func raw(amount, date, code string) RawExtraction {
	return RawExtraction{FieldAmount: amount, FieldDate: date, FieldCode: code}
}

func TestNormalizeStripsThousandsSeparators(t *testing.T) {
	withCommas, err := Normalize(raw("1,200.50", "5/6/24", "AB12345678"))
	assert.Nil(t, err)
	withoutCommas, err := Normalize(raw("1200.50", "5/6/24", "AB12345678"))
	assert.Nil(t, err)

	assert.Equal(t, 1200.50, withCommas.Amount)
	assert.Equal(t, withoutCommas.Amount, withCommas.Amount)
}

func TestNormalizeTwoAndFourDigitYearsAgree(t *testing.T) {
	short, err := Normalize(raw("100.00", "5/6/24", "AB12345678"))
	assert.Nil(t, err)
	long, err := Normalize(raw("100.00", "5/6/2024", "AB12345678"))
	assert.Nil(t, err)

	want := time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC)
	assert.True(t, short.Date.Equal(want), "got %s", short.Date)
	assert.True(t, long.Date.Equal(want), "got %s", long.Date)
}

func TestNormalizeRejectsBadAmount(t *testing.T) {
	_, err := Normalize(raw("12,34,xx", "5/6/24", "AB12345678"))

	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestNormalizeRejectsBadDate(t *testing.T) {
	_, err := Normalize(raw("100.00", "31/13/24", "AB12345678"))

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestNormalizeRevalidatesCode(t *testing.T) {
	_, err := Normalize(raw("100.00", "5/6/24", "ab12345678"))

	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestNormalizeRejectsIncompleteExtraction(t *testing.T) {
	_, err := Normalize(RawExtraction{FieldAmount: "100.00"})

	var incomplete *IncompleteExtractionError
	assert.ErrorAs(t, err, &incomplete)
	assert.Equal(t, []string{FieldDate, FieldCode}, incomplete.Missing)
}

func TestNormalizeRoundsToTwoDecimals(t *testing.T) {
	fields, err := Normalize(raw("5000.00", "1/2/24", "AB12345678"))

	assert.Nil(t, err)
	assert.Equal(t, 5000.00, fields.Amount)
	assert.Equal(t, "AB12345678", fields.Code)
}
