package verify

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"lvs/src/models"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

type fakeChainBackend struct {
	submitErr error
	waitErr   error
	callErr   error
	verified  bool

	submitCalls int
	submitArgs  []any
	callCalls   int
}

func (f *fakeChainBackend) Submit(ctx context.Context, contract common.Address, method string, args ...any) (common.Hash, error) {
	f.submitCalls++
	f.submitArgs = args
	if f.submitErr != nil {
		return common.Hash{}, f.submitErr
	}
	return common.HexToHash("0x01"), nil
}

func (f *fakeChainBackend) WaitMined(ctx context.Context, tx common.Hash) error {
	return f.waitErr
}

func (f *fakeChainBackend) Call(ctx context.Context, contract common.Address, method string, result any, args ...any) error {
	f.callCalls++
	if f.callErr != nil {
		return f.callErr
	}
	if out, ok := result.(*bool); ok {
		*out = f.verified
	}
	return nil
}

func chainTxn() *models.Transaction {
	return &models.Transaction{
		ID:                   7,
		Amount:               5000.00,
		SmartContractAddress: "0xC11D335a2C3977909eC2E8aBDfADE4AC84e4370C",
	}
}

func TestVerifyPaymentOnChainConfirms(t *testing.T) {
	backend := &fakeChainBackend{verified: true}

	result := VerifyPaymentOnChain(context.Background(), backend, chainTxn())

	assert.Nil(t, result.Err)
	assert.True(t, result.Verified)
}

func TestVerifyPaymentOnChainSendsMinorUnits(t *testing.T) {
	backend := &fakeChainBackend{verified: true}

	VerifyPaymentOnChain(context.Background(), backend, chainTxn())

	assert.Len(t, backend.submitArgs, 2)
	assert.Zero(t, backend.submitArgs[0].(*big.Int).Cmp(big.NewInt(7)))
	assert.Zero(t, backend.submitArgs[1].(*big.Int).Cmp(big.NewInt(500000)))
}

func TestVerifyPaymentOnChainNeverRaises(t *testing.T) {
	t.Run("submission failure", func(t *testing.T) {
		backend := &fakeChainBackend{submitErr: errors.New("connection refused"), verified: true}
		result := VerifyPaymentOnChain(context.Background(), backend, chainTxn())
		assert.False(t, result.Verified)
		assert.NotNil(t, result.Err)
		assert.Zero(t, backend.callCalls)
	})
	t.Run("confirmation timeout", func(t *testing.T) {
		backend := &fakeChainBackend{waitErr: context.DeadlineExceeded, verified: true}
		result := VerifyPaymentOnChain(context.Background(), backend, chainTxn())
		assert.False(t, result.Verified)
		assert.NotNil(t, result.Err)
		assert.Zero(t, backend.callCalls)
	})
	t.Run("query error", func(t *testing.T) {
		backend := &fakeChainBackend{callErr: errors.New("execution reverted")}
		result := VerifyPaymentOnChain(context.Background(), backend, chainTxn())
		assert.False(t, result.Verified)
		assert.NotNil(t, result.Err)
	})
	t.Run("nil backend", func(t *testing.T) {
		result := VerifyPaymentOnChain(context.Background(), nil, chainTxn())
		assert.False(t, result.Verified)
		assert.NotNil(t, result.Err)
	})
}

func TestVerifyPaymentOnChainRequiresContractAddress(t *testing.T) {
	backend := &fakeChainBackend{verified: true}
	txn := chainTxn()
	txn.SmartContractAddress = ""

	result := VerifyPaymentOnChain(context.Background(), backend, txn)

	assert.False(t, result.Verified)
	assert.NotNil(t, result.Err)
	assert.Zero(t, backend.submitCalls)
}

func TestVerifyPaymentOnChainContractSaysNo(t *testing.T) {
	backend := &fakeChainBackend{verified: false}

	result := VerifyPaymentOnChain(context.Background(), backend, chainTxn())

	assert.Nil(t, result.Err, "a definite false is not a failure")
	assert.False(t, result.Verified)
}
