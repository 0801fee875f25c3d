package verify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/big"

	"lvs/src/config"
	"lvs/src/lib"
	"lvs/src/models"
	"lvs/src/utils"

	"github.com/ethereum/go-ethereum/common"
)

// ChainResult separates "contract answered false" from "could not determine".
// Callers treat both as not-yet-verified, but only the latter is worth a
// retry with the same inputs.
type ChainResult struct {
	Verified bool
	Err      error
}

// VerifyPaymentOnChain submits verifyPayment(id, amount in minor units) to
// the transaction's escrow contract, waits for inclusion, then reads
// isPaymentVerified(id). No failure propagates past this boundary: every
// error path is folded into a not-verified ChainResult.
func VerifyPaymentOnChain(ctx context.Context, backend lib.ChainBackend, txn *models.Transaction) ChainResult {
	if backend == nil {
		return ChainResult{Err: errors.New("chain backend unavailable")}
	}
	if txn.SmartContractAddress == "" {
		return ChainResult{Err: errors.New("transaction has no smart contract address")}
	}
	contract := common.HexToAddress(txn.SmartContractAddress)
	transactionID := new(big.Int).SetUint64(uint64(txn.ID))

	ctx, cancel := context.WithTimeout(ctx, config.GetChainConfirmTimeout())
	defer cancel()

	txHash, err := backend.Submit(ctx, contract, "verifyPayment", transactionID, utils.MinorUnits(txn.Amount))
	if err != nil {
		log.Printf("[chain] Error submitting verifyPayment for transaction %d: %s\n", txn.ID, err.Error())
		return ChainResult{Err: fmt.Errorf("submit verifyPayment: %w", err)}
	}
	if err := backend.WaitMined(ctx, txHash); err != nil {
		log.Printf("[chain] Error confirming %s for transaction %d: %s\n", txHash.Hex(), txn.ID, err.Error())
		return ChainResult{Err: fmt.Errorf("confirm verifyPayment: %w", err)}
	}

	var verified bool
	if err := backend.Call(ctx, contract, "isPaymentVerified", &verified, transactionID); err != nil {
		log.Printf("[chain] Error querying isPaymentVerified for transaction %d: %s\n", txn.ID, err.Error())
		return ChainResult{Err: fmt.Errorf("call isPaymentVerified: %w", err)}
	}
	return ChainResult{Verified: verified}
}
