package verify

import (
	"context"
	"strconv"
	"strings"

	"lvs/src/config"
	"lvs/src/lib"
	"lvs/src/models"
)

// CompareDetailsWithVision checks that the stored proof of payment mentions
// the transaction's recorded amount, buyer and seller, as literal
// case-insensitive substrings of the detected text. No detected text fails
// the check outright.
func CompareDetailsWithVision(ctx context.Context, source lib.ProofImageSource, detector lib.TextDetector, txn *models.Transaction) (bool, error) {
	image, err := source.OpenProofImage(ctx, txn)
	if err != nil {
		return false, err
	}

	dctx, cancel := context.WithTimeout(ctx, config.DETECTION_TIMEOUT)
	defer cancel()
	text, err := lib.DetectTextCached(dctx, detector, image)
	if err != nil {
		return false, err
	}
	if text == "" {
		return false, nil
	}

	fullText := strings.ToLower(text)
	details := []string{
		strconv.FormatFloat(txn.Amount, 'f', 2, 64),
		strings.ToLower(txn.Buyer),
		strings.ToLower(txn.Seller),
	}
	for _, detail := range details {
		if detail == "" || !strings.Contains(fullText, detail) {
			return false, nil
		}
	}
	return true, nil
}
