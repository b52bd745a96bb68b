package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/h2non/filetype"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sirupsen/logrus"

	config "github.com/maheshrc27/community-automation/configs"
)

// MediaUploader makes a local image reachable by URL.
type MediaUploader interface {
	Upload(ctx context.Context, path string) (string, error)
}

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type R2Service struct {
	config config.R2
	client objectPutter
}

func NewR2Service(cfg config.R2) *R2Service {
	return &R2Service{config: cfg}
}

// Configured reports whether enough settings are present to upload.
func (r *R2Service) Configured() bool {
	return r.config.AccountID != "" && r.config.AccessKey != "" && r.config.SecretKey != "" &&
		r.config.BucketName != "" && r.config.PublicURL != ""
}

func (r *R2Service) R2Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(r.config.AccessKey, r.config.SecretKey, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r.config.AccountID))
	}), nil
}

// Upload stores an image under a random key and returns its public URL.
func (r *R2Service) Upload(ctx context.Context, path string) (string, error) {
	if !r.Configured() {
		return "", errors.New("R2 storage is not configured")
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	kind, err := filetype.Match(file)
	if err != nil || !filetype.IsImage(file) {
		return "", fmt.Errorf("%s is not a supported image", path)
	}

	id, err := gonanoid.New()
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("posts/%s.%s", id, kind.Extension)

	if err := r.UploadToR2(ctx, key, file, kind.MIME.Value); err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return strings.TrimRight(r.config.PublicURL, "/") + "/" + key, nil
}

func (r *R2Service) UploadToR2(ctx context.Context, key string, file []byte, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(r.config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(file),
		ContentType: aws.String(contentType),
	}

	if r.client == nil {
		client, err := r.R2Client(ctx)
		if err != nil {
			return err
		}
		r.client = client
	}

	if _, err := r.client.PutObject(ctx, input); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("r2 upload failed")
		return err
	}
	return nil
}
