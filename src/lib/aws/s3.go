package aws

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"time"

	lvsconfig "lvs/src/config"
	"lvs/src/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ErrProofNotFound means the transaction has no stored proof of payment or
// the stored reference no longer resolves to an object.
var ErrProofNotFound = errors.New("proof of payment not found")

func GetS3Client() *s3.Client {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Printf("Could not load default config: %s\n", err.Error())
		return nil
	}
	svc := s3.NewFromConfig(cfg)
	return svc
}

// S3ProofStore reads and writes proof-of-payment images in the proofs bucket.
type S3ProofStore struct{}

func (S3ProofStore) OpenProofImage(ctx context.Context, txn *models.Transaction) ([]byte, error) {
	if txn.ProofOfPayment == "" {
		return nil, ErrProofNotFound
	}
	client := GetS3Client()
	if client == nil {
		return nil, errors.New("s3 client unavailable")
	}
	result, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(lvsconfig.GetProofsBucket()),
		Key:    aws.String(txn.ProofOfPayment),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, ErrProofNotFound
		}
		return nil, err
	}
	defer result.Body.Close()
	return io.ReadAll(result.Body)
}

func (S3ProofStore) SaveProofImage(ctx context.Context, key string, content []byte, contentType string) error {
	bucket := lvsconfig.GetProofsBucket()
	client := GetS3Client()
	if client == nil {
		return errors.New("s3 client unavailable")
	}
	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Printf("Could not put object to S3 bucket: %s\n", err.Error())
		return err
	}
	err = s3.NewObjectExistsWaiter(client).Wait(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, time.Minute)
	if err != nil {
		log.Printf("Failed attempt to wait for object %s to exist: %s\n", key, err.Error())
		return err
	}
	log.Printf("Added object '%s' to bucket '%s'", key, bucket)
	return nil
}
