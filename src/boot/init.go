package boot

import (
	"context"
	"log"
	"time"

	"lvs/src/db"
	"lvs/src/lib"
	"lvs/src/models"
	"lvs/src/verify"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	gdb := db.GetDb()

	err := gdb.AutoMigrate(
		&models.Transaction{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}
	if err := models.MigrateIndexes(gdb); err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return gdb
}

// InitScheduler starts the sweep that retries chain verification for
// transactions that have a contract address but are not verified yet. A
// transient chain failure on the request path degrades to "try again later";
// this is the later.
func InitScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	j, err := sched.NewJob(
		gocron.DurationJob(10*time.Minute),
		gocron.NewTask(ReverifyPendingTransactions),
	)
	if err != nil {
		log.Printf("Error scheduling re-verification job: %s\n", err.Error())
		return
	}
	log.Printf("Job ID: %s\n", j.ID().String())
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	if err := sched.Shutdown(); err != nil {
		log.Println("An error has occurred while stopping Scheduler. Check logs for info")
	}
}

func ReverifyPendingTransactions() {
	gdb := db.GetDb()
	var txns []models.Transaction
	err := gdb.
		Model(&models.Transaction{}).
		Where("is_verified = ? AND smart_contract_address <> ''", false).
		Limit(50).
		Find(&txns).
		Error
	if err != nil {
		log.Printf("Error retrieving unverified transactions: %s\n", err.Error())
		return
	}
	if len(txns) == 0 {
		return
	}
	log.Printf("Re-verifying %d pending transactions\n", len(txns))
	backend, err := lib.GetChainBackend()
	if err != nil {
		log.Printf("Chain backend unavailable, skipping sweep: %s\n", err.Error())
		return
	}
	for _, txn := range txns {
		result := verify.VerifyPaymentOnChain(context.Background(), backend, &txn)
		if result.Err != nil || !result.Verified {
			continue
		}
		if err := gdb.Model(&txn).Update("is_verified", true).Error; err != nil {
			log.Printf("Error persisting verified flag for transaction %d: %s\n", txn.ID, err.Error())
			continue
		}
		log.Printf("Transaction %d verified by sweep\n", txn.ID)
	}
}
