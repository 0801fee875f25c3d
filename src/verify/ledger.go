package verify

import (
	"errors"

	"lvs/src/models"
	"lvs/src/ocr"
	"lvs/src/types"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WriteVerifiedTransaction records an agreed extraction exactly once per
// (amount, date) pair and reports whether the record was created or found.
// The completed-rows unique index on the pair plus the on-conflict re-read
// make the operation idempotent under retries and single-writer under races.
func WriteVerifiedTransaction(gdb *gorm.DB, fields *ocr.NormalizedFields) (*models.Transaction, bool, error) {
	var txn models.Transaction
	created := false
	err := gdb.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where("amount = ? AND transaction_date = ?", fields.Amount, fields.Date).
			First(&txn).
			Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			txn = models.Transaction{
				Amount:          fields.Amount,
				TransactionDate: fields.Date,
				UniqueCode:      fields.Code,
				Status:          types.TRANSACTION_COMPLETE,
				IsVerified:      true,
			}
			result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&txn)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected > 0 {
				created = true
				return nil
			}
			// Lost the insert race; continue with the winner's row.
			if err := tx.
				Where("amount = ? AND transaction_date = ?", fields.Amount, fields.Date).
				First(&txn).
				Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		return tx.Model(&txn).Updates(map[string]any{
			"status":      types.TRANSACTION_COMPLETE,
			"unique_code": fields.Code,
			"is_verified": true,
		}).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &txn, created, nil
}
