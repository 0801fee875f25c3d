package types

import (
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type TransactionStatus string

const (
	TRANSACTION_PENDING  TransactionStatus = "pending"
	TRANSACTION_COMPLETE TransactionStatus = "complete"
)

// VerificationState is the orchestrator's position in the single-transaction
// verification flow. The machine runs once per request and is not resumable;
// a rejected caller restarts from pending.
type VerificationState string

const (
	VERIFICATION_PENDING          VerificationState = "pending"
	VERIFICATION_DOCUMENT_CHECKED VerificationState = "document_checked"
	VERIFICATION_CHAIN_CHECKED    VerificationState = "chain_checked"
	VERIFICATION_VERIFIED         VerificationState = "verified"
	VERIFICATION_REJECTED         VerificationState = "rejected"
)

const (
	REASON_DOCUMENT_FAILED   = "document verification failed"
	REASON_BLOCKCHAIN_FAILED = "blockchain verification failed"
)

type CreateTransactionRequestBody struct {
	Buyer                string  `form:"buyer" binding:"required"`
	Seller               string  `form:"seller" binding:"required"`
	Amount               float64 `form:"amount" binding:"required,gte=0"`
	TransactionDate      string  `form:"transaction_date" binding:"omitempty,datetime=2006-01-02"`
	LawyerDetails        string  `form:"lawyer_details"`
	SellerDetails        string  `form:"seller_details"`
	SmartContractAddress string  `form:"smart_contract_address" binding:"omitempty,ethaddr"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}
