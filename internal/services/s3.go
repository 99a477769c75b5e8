package services

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/ESPSA/El-Wataneya/internal/config"
	"github.com/ESPSA/El-Wataneya/internal/models"
	"github.com/ESPSA/El-Wataneya/internal/utils/logger"
)

// Ensure S3Service implements FileURLGenerator
var _ models.FileURLGenerator = (*S3Service)(nil)

// S3Service stores catalog and portfolio images in S3-compatible storage
// (AWS S3 or Cloudflare R2).
type S3Service struct {
	client     *s3.Client
	bucketName string
	endpoint   string
	region     string
	provider   string
	logger     *logger.Logger
}

func NewS3Service(cfg config.StorageConfig) (*S3Service, error) {
	log := logger.New("s3_service")

	if cfg.S3.AccessKey == "" || cfg.S3.SecretKey == "" {
		return nil, log.Error("S3 credentials are empty ❌", fmt.Errorf("accessKey or secretKey is empty"))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.S3.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3.AccessKey,
			cfg.S3.SecretKey,
			"",
		)),
		awsconfig.WithRetryMode(aws.RetryModeStandard),
		awsconfig.WithRetryMaxAttempts(3),
	)
	if err != nil {
		return nil, log.Error("Unable to load SDK config ❌", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s", cfg.S3.Endpoint))
		}
	})

	// Verify credentials by making a test API call
	_, err = client.ListObjectsV2(context.TODO(), &s3.ListObjectsV2Input{
		Bucket: aws.String(cfg.S3.BucketName),
	})
	if err != nil {
		return nil, log.Error("Failed to verify S3 credentials ❌", err)
	}

	log.Success("S3 service initialized successfully ✅")

	return &S3Service{
		client:     client,
		bucketName: cfg.S3.BucketName,
		endpoint:   cfg.S3.Endpoint,
		region:     cfg.S3.Region,
		provider:   cfg.Provider,
		logger:     log,
	}, nil
}

// UploadFile uploads a file and returns the stored key and public URL. The
// stored key is a fresh UUID so uploaded filenames never collide.
func (s *S3Service) UploadFile(ctx context.Context, file []byte, filename string, contentType string) (string, string, error) {
	ext := filepath.Ext(filename)
	key := fmt.Sprintf("%s%s", uuid.New().String(), ext)

	s.logger.Info("📤 Uploading %s as %s", filename, key)

	acl := types.ObjectCannedACLPrivate
	if s.provider == "r2" {
		// R2 ignores most canned ACLs; public-read is the working subset.
		acl = types.ObjectCannedACLPublicRead
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(file),
		ACL:         acl,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", "", s.logger.Error("Failed to upload file to storage ❌", err)
	}

	var url string
	if s.endpoint != "" {
		url = fmt.Sprintf("https://%s/%s/%s", s.endpoint, s.bucketName, key)
	} else {
		url = fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucketName, s.region, key)
	}

	s.logger.Success("✅ File uploaded: %s", url)
	return key, url, nil
}

// GetSignedURL implements FileURLGenerator interface
func (s *S3Service) GetSignedURL(ctx context.Context, path string, duration time.Duration) (string, error) {
	presignClient := s3.NewPresignClient(s.client)

	presignedURL, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(path),
	}, s3.WithPresignExpires(duration))
	if err != nil {
		return "", s.logger.Error("Failed to generate pre-signed URL ❌", err)
	}

	return presignedURL.URL, nil
}
