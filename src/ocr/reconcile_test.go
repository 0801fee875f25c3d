package ocr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func normalized(amount float64, date time.Time, code string) *NormalizedFields {
	return &NormalizedFields{Amount: amount, Date: date, Code: code}
}

func TestReconcileAgreement(t *testing.T) {
	date := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	result := Reconcile(
		normalized(5000.00, date, "AB12345678"),
		normalized(5000.00, date, "AB12345678"),
	)

	assert.True(t, result.Match)
}

func TestReconcileAcrossSourceFormats(t *testing.T) {
	// "KES 5,000.00 on 1/2/24" and "KES 5000.00 on 1/2/2024" describe the
	// same payment and must reconcile once normalized.
	a, err := Normalize(raw("5,000.00", "1/2/24", "AB12345678"))
	assert.Nil(t, err)
	b, err := Normalize(raw("5000.00", "1/2/2024", "AB12345678"))
	assert.Nil(t, err)

	assert.True(t, Reconcile(a, b).Match)
}

func TestReconcileSingleFieldFlipsResult(t *testing.T) {
	date := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	base := normalized(5000.00, date, "AB12345678")

	t.Run("amount", func(t *testing.T) {
		result := Reconcile(base, normalized(5000.01, date, "AB12345678"))
		assert.False(t, result.Match)
		assert.Equal(t, 5000.00, result.Amount1)
		assert.Equal(t, 5000.01, result.Amount2)
	})
	t.Run("date", func(t *testing.T) {
		other := date.AddDate(0, 0, 1)
		result := Reconcile(base, normalized(5000.00, other, "AB12345678"))
		assert.False(t, result.Match)
	})
	t.Run("code", func(t *testing.T) {
		result := Reconcile(base, normalized(5000.00, date, "CD98765432"))
		assert.False(t, result.Match)
		assert.Equal(t, "AB12345678", result.Code1)
		assert.Equal(t, "CD98765432", result.Code2)
	})
}
