package utils

import (
	"io"
	"math"
	"math/big"
	"mime/multipart"
	"os"
	"path"
	"strings"

	"lvs/src/config"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/google/uuid"
)

// defaultEscrowABI covers the two contract entry points the verifier uses.
// A full ABI can be supplied through LAND_CONTRACT_ABI_PATH instead.
const defaultEscrowABI = `[
	{"type":"function","name":"verifyPayment","stateMutability":"nonpayable","inputs":[{"name":"transactionId","type":"uint256"},{"name":"amount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"isPaymentVerified","stateMutability":"view","inputs":[{"name":"transactionId","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]}
]`

func LoadContractABI() (abi.ABI, error) {
	abiPath := config.GetContractABIPath()
	if abiPath == "" {
		return abi.JSON(strings.NewReader(defaultEscrowABI))
	}
	file, err := os.Open(abiPath)
	if err != nil {
		return abi.ABI{}, err
	}
	defer file.Close()
	return abi.JSON(file)
}

// MinorUnits converts a two-decimal currency amount to the contract's integer
// minor-unit convention (amount x 100).
func MinorUnits(amount float64) *big.Int {
	return big.NewInt(int64(math.Round(amount * 100)))
}

func ReadMultipartFile(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// ProofObjectKey builds a collision-free object key for an uploaded proof of
// payment, keeping the original extension.
func ProofObjectKey(filename string) string {
	return "proof_of_payments/" + uuid.New().String() + path.Ext(filename)
}
