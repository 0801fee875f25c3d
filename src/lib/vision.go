package lib

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"os"
	"time"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"
)

// TextDetector returns the full text detected in an image, or empty when the
// service finds nothing readable.
type TextDetector interface {
	DetectText(ctx context.Context, image []byte) (string, error)
}

type visionTextDetector struct {
	client *vision.ImageAnnotatorClient
}

func (d *visionTextDetector) DetectText(ctx context.Context, image []byte) (string, error) {
	res, err := d.client.BatchAnnotateImages(ctx, &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{{
			Image:    &visionpb.Image{Content: image},
			Features: []*visionpb.Feature{{Type: visionpb.Feature_TEXT_DETECTION}},
		}},
	})
	if err != nil {
		return "", err
	}
	responses := res.GetResponses()
	if len(responses) == 0 {
		return "", nil
	}
	if status := responses[0].GetError(); status != nil {
		return "", errors.New(status.GetMessage())
	}
	// The first annotation carries the full detected text; the rest are
	// per-word fragments.
	annotations := responses[0].GetTextAnnotations()
	if len(annotations) == 0 {
		return "", nil
	}
	return annotations[0].GetDescription(), nil
}

var textDetector TextDetector

func GetTextDetector() (TextDetector, error) {
	if textDetector != nil {
		return textDetector, nil
	}
	var opts []option.ClientOption
	if credentials := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credentials != "" {
		opts = append(opts, option.WithCredentialsFile(credentials))
	}
	client, err := vision.NewImageAnnotatorClient(context.Background(), opts...)
	if err != nil {
		log.Printf("[vision] Error creating annotator client: %s\n", err.Error())
		return nil, err
	}
	textDetector = &visionTextDetector{client: client}
	return textDetector, nil
}

// NewTextDetector Replace detector instance with custom implementation
func NewTextDetector(d TextDetector) {
	textDetector = d
}

// DetectTextCached consults redis by image content hash before paying for a
// Vision call. A missing or unreachable redis degrades to direct detection.
func DetectTextCached(ctx context.Context, detector TextDetector, image []byte) (string, error) {
	rdb := GetRedisClient()
	var key string
	if rdb != nil {
		sum := sha256.Sum256(image)
		key = "ocr:text:" + hex.EncodeToString(sum[:])
		val, err := rdb.Get(ctx, key).Result()
		if err == nil {
			return val, nil
		}
		if !errors.Is(err, redis.Nil) {
			log.Printf("[redis] Error reading cached detection: %s\n", err.Error())
		}
	}
	text, err := detector.DetectText(ctx, image)
	if err != nil {
		return "", err
	}
	if rdb != nil {
		if err := rdb.Set(ctx, key, text, 24*time.Hour).Err(); err != nil {
			log.Printf("[redis] Error caching detection for %s: %s\n", key, err.Error())
		}
	}
	return text, nil
}
