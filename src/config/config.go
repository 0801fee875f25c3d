package config

import (
	"fmt"
	"os"
	"time"
)

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

func GetChainRPCURL() string {
	url := os.Getenv("CHAIN_RPC_URL")
	if url == "" {
		url = "http://localhost:8545"
	}
	return url
}

// GetChainFromAccount returns the node-managed account that verification
// transactions are submitted from. Empty means first account on the node.
func GetChainFromAccount() string {
	return os.Getenv("CHAIN_FROM_ACCOUNT")
}

func GetContractABIPath() string {
	return os.Getenv("LAND_CONTRACT_ABI_PATH")
}

func GetProofsBucket() string {
	return os.Getenv("S3_PROOFS_BUCKET")
}

// GetChainConfirmTimeout bounds submit-and-wait-for-receipt. Block inclusion
// on the dev chain is normally sub-second; the default covers a slow node.
func GetChainConfirmTimeout() time.Duration {
	d, err := time.ParseDuration(os.Getenv("CHAIN_CONFIRM_TIMEOUT"))
	if err != nil || d <= 0 {
		return 90 * time.Second
	}
	return d
}

const (
	DETECTION_TIMEOUT = 30 * time.Second

	DATE_STORE_FORMAT = "2006-01-02"
)
