package lib

import (
	"context"

	awslib "lvs/src/lib/aws"
	"lvs/src/models"
)

// ProofImageSource resolves a transaction's stored proof-of-payment reference
// to raw image bytes.
type ProofImageSource interface {
	OpenProofImage(ctx context.Context, txn *models.Transaction) ([]byte, error)
}

var proofImageSource ProofImageSource

func GetProofImageSource() ProofImageSource {
	if proofImageSource != nil {
		return proofImageSource
	}
	proofImageSource = awslib.S3ProofStore{}
	return proofImageSource
}

// NewProofImageSource Replace proof image source with custom implementation
func NewProofImageSource(s ProofImageSource) {
	proofImageSource = s
}

// ProofImageStore persists an uploaded proof-of-payment image under a key.
type ProofImageStore interface {
	SaveProofImage(ctx context.Context, key string, content []byte, contentType string) error
}

var proofImageStore ProofImageStore

func GetProofImageStore() ProofImageStore {
	if proofImageStore != nil {
		return proofImageStore
	}
	proofImageStore = awslib.S3ProofStore{}
	return proofImageStore
}

// NewProofImageStore Replace proof image store with custom implementation
func NewProofImageStore(s ProofImageStore) {
	proofImageStore = s
}
