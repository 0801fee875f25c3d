package main

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"lvs/src/config"
	"lvs/src/db"
	"lvs/src/lib"
	"lvs/src/models"
	"lvs/src/ocr"
	"lvs/src/types"
	"lvs/src/utils"
	"lvs/src/verify"

	"github.com/gin-gonic/gin"
)

func transactionHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/transactions/verify", func(ctx *gin.Context) {
			file1, err1 := ctx.FormFile("file1")
			file2, err2 := ctx.FormFile("file2")
			if err1 != nil || err2 != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Both files (file1 and file2) must be provided"})
				return
			}
			content1, err := utils.ReadMultipartFile(file1)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file1: " + err.Error()})
				return
			}
			content2, err := utils.ReadMultipartFile(file2)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file2: " + err.Error()})
				return
			}
			detector, err := lib.GetTextDetector()
			if err != nil {
				ctx.JSON(http.StatusBadGateway, gin.H{"error": "Text detection service unavailable"})
				return
			}

			// The two detections are independent; run them concurrently and
			// join before reconciling.
			extractions := make([]ocr.RawExtraction, 2)
			detectErrs := make([]error, 2)
			var wg sync.WaitGroup
			for i, content := range [][]byte{content1, content2} {
				wg.Add(1)
				go func(i int, content []byte) {
					defer wg.Done()
					dctx, cancel := context.WithTimeout(ctx.Request.Context(), config.DETECTION_TIMEOUT)
					defer cancel()
					text, err := lib.DetectTextCached(dctx, detector, content)
					if err != nil {
						detectErrs[i] = err
						return
					}
					extractions[i] = ocr.ExtractFields(text)
				}(i, content)
			}
			wg.Wait()
			for i, err := range detectErrs {
				if err != nil {
					log.Printf("Error detecting text in file%d: %s\n", i+1, err.Error())
					ctx.JSON(http.StatusBadRequest, gin.H{"error": "Failed to process image: " + err.Error()})
					return
				}
			}

			missing1 := extractions[0].MissingFields()
			missing2 := extractions[1].MissingFields()
			if len(missing1) > 0 || len(missing2) > 0 {
				ctx.JSON(http.StatusBadRequest, gin.H{
					"error": "Could not extract all required information from both images",
					"missing_fields": gin.H{
						"file1": missing1,
						"file2": missing2,
					},
				})
				return
			}

			fields1, err := ocr.Normalize(extractions[0])
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			fields2, err := ocr.Normalize(extractions[1])
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			result := ocr.Reconcile(fields1, fields2)
			if !result.Match {
				ctx.JSON(http.StatusBadRequest, gin.H{
					"error":   "The amounts, dates, or unique codes do not match",
					"amount1": result.Amount1,
					"amount2": result.Amount2,
					"date1":   result.Date1.Format(config.DATE_STORE_FORMAT),
					"date2":   result.Date2.Format(config.DATE_STORE_FORMAT),
					"code1":   result.Code1,
					"code2":   result.Code2,
				})
				return
			}

			txn, created, err := verify.WriteVerifiedTransaction(db.GetDb(), fields1)
			if err != nil {
				log.Printf("Error saving transaction: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save transaction: " + err.Error()})
				return
			}
			message := "Transaction updated and marked as complete"
			if created {
				message = "Transaction created and marked as complete"
			}
			ctx.JSON(http.StatusCreated, gin.H{"message": message, "id": txn.ID, "amount": txn.Amount})
		}).
		POST("/transactions", func(ctx *gin.Context) {
			var body types.CreateTransactionRequestBody
			if err := ctx.ShouldBind(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			proof, err := ctx.FormFile("proof_of_payment")
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "proof_of_payment image must be provided"})
				return
			}
			content, err := utils.ReadMultipartFile(proof)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read proof_of_payment: " + err.Error()})
				return
			}
			var txnDate time.Time
			if body.TransactionDate != "" {
				txnDate, err = time.Parse(config.DATE_STORE_FORMAT, body.TransactionDate)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": "transaction_date must use the format YYYY-MM-DD"})
					return
				}
			}
			key := utils.ProofObjectKey(proof.Filename)
			contentType := proof.Header.Get("Content-Type")
			if err := lib.GetProofImageStore().SaveProofImage(ctx.Request.Context(), key, content, contentType); err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store proof of payment"})
				return
			}

			txn := models.Transaction{
				Buyer:                body.Buyer,
				Seller:               body.Seller,
				Amount:               body.Amount,
				TransactionDate:      txnDate,
				LawyerDetails:        body.LawyerDetails,
				SellerDetails:        body.SellerDetails,
				SmartContractAddress: body.SmartContractAddress,
				ProofOfPayment:       key,
				Status:               types.TRANSACTION_PENDING,
			}
			if err := db.GetDb().Create(&txn).Error; err != nil {
				log.Printf("Error creating transaction: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save transaction: " + err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": txn})
		}).
		GET("/transactions", func(ctx *gin.Context) {
			var txns []models.Transaction
			if err := db.GetDb().Model(&models.Transaction{}).Order("id asc").Find(&txns).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": txns})
		}).
		GET("/transactions/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var txn models.Transaction
			if err := db.GetDb().Model(&models.Transaction{}).Where("id = ?", params.ID).First(&txn).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": txn})
		}).
		POST("/transactions/:id/verify-payment", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			gdb := db.GetDb()
			var txn models.Transaction
			if err := gdb.Model(&models.Transaction{}).Where("id = ?", params.ID).First(&txn).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}

			detector, err := lib.GetTextDetector()
			if err != nil {
				ctx.JSON(http.StatusBadGateway, gin.H{"error": "Text detection service unavailable"})
				return
			}
			// An unreachable chain node is the same as an unconfirmed
			// payment: the orchestrator rejects and the caller retries.
			backend, err := lib.GetChainBackend()
			if err != nil {
				log.Printf("Chain backend unavailable: %s\n", err.Error())
			}

			orchestrator := verify.Orchestrator{
				DB:       gdb,
				Images:   lib.GetProofImageSource(),
				Detector: detector,
				Chain:    backend,
			}
			outcome, err := orchestrator.VerifyPayment(ctx.Request.Context(), &txn)
			if err != nil {
				log.Printf("Error persisting verification for transaction %d: %s\n", txn.ID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save transaction: " + err.Error()})
				return
			}
			if outcome.State != types.VERIFICATION_VERIFIED {
				ctx.JSON(http.StatusBadRequest, gin.H{"message": outcome.Reason, "state": outcome.Reached})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Payment verified successfully."})
		})
	return g
}
