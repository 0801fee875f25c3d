package models

import (
	"time"

	"lvs/src/types"

	"gorm.io/gorm"
)

// Transaction is the system of record for one land-sale payment event.
// The (amount, transaction_date) pair is the natural dedup key for records
// written by OCR reconciliation; the richer fields are populated by the
// external creation path and stay empty on the reconciliation path.
type Transaction struct {
	ID uint `gorm:"primarykey" json:"id"`

	Buyer           string                  `json:"buyer,omitempty"`
	Seller          string                  `json:"seller,omitempty"`
	Amount          float64                 `gorm:"index:idx_transactions_amount_date" json:"amount"`
	TransactionDate time.Time               `gorm:"index:idx_transactions_amount_date" json:"transaction_date"`
	UniqueCode      string                  `json:"unique_code,omitempty"`
	Status          types.TransactionStatus `gorm:"default:pending" json:"status"`

	ProofOfPayment       string `json:"proof_of_payment,omitempty"`
	LawyerDetails        string `json:"lawyer_details,omitempty"`
	SellerDetails        string `json:"seller_details,omitempty"`
	IsVerified           bool   `gorm:"default:false" json:"is_verified"`
	SmartContractAddress string `json:"smart_contract_address,omitempty"`

	types.Timestamps
}

// The dedup constraint only binds rows that reconciliation has marked
// complete. Externally created transactions stay pending and may share an
// amount before a date is known, so they must not collide on it. gorm's
// uniqueIndex tag cannot express the predicate, hence the raw DDL.
const completeDedupIndexDDL = "CREATE UNIQUE INDEX IF NOT EXISTS idx_transactions_complete_amount_date " +
	"ON transactions (amount, transaction_date) WHERE status = 'complete'"

// MigrateIndexes creates the indexes AutoMigrate cannot. Call it after
// AutoMigrate has built the transactions table.
func MigrateIndexes(gdb *gorm.DB) error {
	return gdb.Exec(completeDedupIndexDDL).Error
}
