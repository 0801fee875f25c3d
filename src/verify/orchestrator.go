package verify

import (
	"context"
	"log"

	"lvs/src/lib"
	"lvs/src/models"
	"lvs/src/types"

	"gorm.io/gorm"
)

// Outcome is the terminal result of one verification run: Verified, or
// Rejected with the reason the caller gets back. Reached records the last
// checkpoint the run cleared before stopping, so a rejection tells the
// caller which gate it fell at.
type Outcome struct {
	State   types.VerificationState
	Reached types.VerificationState
	Reason  string
}

// Orchestrator drives a single transaction through
// pending -> document_checked -> chain_checked -> verified. The machine is
// not resumable: any rejection sends the caller back to pending.
type Orchestrator struct {
	DB       *gorm.DB
	Images   lib.ProofImageSource
	Detector lib.TextDetector
	Chain    lib.ChainBackend
}

// VerifyPayment runs the state machine once. The returned error is reserved
// for store failures while persisting the verified flag; every document or
// chain problem is expressed as a Rejected outcome instead.
func (o *Orchestrator) VerifyPayment(ctx context.Context, txn *models.Transaction) (Outcome, error) {
	reached := types.VERIFICATION_PENDING

	ok, err := CompareDetailsWithVision(ctx, o.Images, o.Detector, txn)
	if err != nil {
		log.Printf("Document check errored for transaction %d: %s\n", txn.ID, err.Error())
		return Outcome{State: types.VERIFICATION_REJECTED, Reached: reached, Reason: types.REASON_DOCUMENT_FAILED}, nil
	}
	if !ok {
		return Outcome{State: types.VERIFICATION_REJECTED, Reached: reached, Reason: types.REASON_DOCUMENT_FAILED}, nil
	}
	reached = types.VERIFICATION_DOCUMENT_CHECKED

	result := VerifyPaymentOnChain(ctx, o.Chain, txn)
	if result.Err != nil {
		log.Printf("Chain verification inconclusive for transaction %d: %s\n", txn.ID, result.Err.Error())
	}
	if !result.Verified {
		return Outcome{State: types.VERIFICATION_REJECTED, Reached: reached, Reason: types.REASON_BLOCKCHAIN_FAILED}, nil
	}
	reached = types.VERIFICATION_CHAIN_CHECKED

	if err := o.DB.Model(txn).Update("is_verified", true).Error; err != nil {
		return Outcome{State: reached, Reached: reached}, err
	}
	return Outcome{State: types.VERIFICATION_VERIFIED, Reached: reached}, nil
}
