package storage

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioClient is nil when report archiving is not configured.
var MinioClient *minio.Client

const ReportBucket = "messbook-reports"

// InitMinio connects to the object store used for frozen monthly reports.
// Archiving is optional: when MINIO_ENDPOINT is unset the client stays nil
// and the archive endpoint reports itself unconfigured.
func InitMinio() {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		slog.Info("report archiving disabled, MINIO_ENDPOINT not set")
		return
	}

	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	if accessKey == "" {
		accessKey = "minioadmin"
	}
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	if secretKey == "" {
		secretKey = "minioadmin"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: os.Getenv("MINIO_USE_SSL") == "true",
	})
	if err != nil {
		slog.Error("failed to connect to MinIO", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, ReportBucket)
	if err != nil {
		slog.Warn("failed to check report bucket", "error", err)
	} else if !exists {
		if err := client.MakeBucket(ctx, ReportBucket, minio.MakeBucketOptions{}); err != nil {
			slog.Warn("failed to create report bucket", "error", err)
		} else {
			slog.Info("created report bucket", "bucket", ReportBucket)
		}
	}

	MinioClient = client
	slog.Info("connected to MinIO", "endpoint", endpoint)
}

// PutReport stores one JSON report object.
func PutReport(ctx context.Context, name string, body []byte) error {
	_, err := MinioClient.PutObject(
		ctx,
		ReportBucket,
		name,
		bytes.NewReader(body),
		int64(len(body)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	return err
}
