package store

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/HighCheeseBaseball/trackman-portal-backend/pkg/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

var log = logger.Get("ObjectStore")

type (
	// S3Config holds the bucket and credential configuration for the
	// production object store. AccessKeyID/SecretAccessKey may be left
	// blank to fall back to the ambient AWS credential chain.
	S3Config struct {
		Bucket          string `yaml:"bucket" env:"S3_BUCKET_NAME"`
		Region          string `yaml:"region" env:"S3_REGION" env-default:"us-east-1"`
		AccessKeyID     string `yaml:"access_key_id" env:"AWS_ACCESS_KEY_ID"`
		SecretAccessKey string `yaml:"secret_access_key" env:"AWS_SECRET_ACCESS_KEY"`
	}

	s3Store struct {
		bucket   string
		client   *s3.Client
		uploader *manager.Uploader
	}
)

// IsConfigured reports whether enough configuration is present to
// construct the S3 store at all.
func (config *S3Config) IsConfigured() bool {
	return config.Bucket != ""
}

// NewS3Store constructs the S3-backed ObjectStore. An unset bucket is
// a configuration error; credential problems will additionally surface
// on first use as transport errors.
func NewS3Store(ctx context.Context, config S3Config) (ObjectStore, error) {
	if !config.IsConfigured() {
		return nil, errors.New("cannot construct S3 store: no bucket name configured")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(config.Region)}
	if config.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(config.AccessKeyID, config.SecretAccessKey, ""),
		))
	}

	awsConfig, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(awsConfig)
	return &s3Store{
		bucket:   config.Bucket,
		client:   client,
		uploader: manager.NewUploader(client),
	}, nil
}

func (store *s3Store) Exists(ctx context.Context, key string) (bool, error) {
	_, err := store.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(store.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}

		return false, fmt.Errorf("failed to check existence of object %s: %w", key, err)
	}

	return true, nil
}

func (store *s3Store) Put(ctx context.Context, key string, contentType string, content io.Reader) error {
	// The upload manager consumes the reader in chunks, so arbitrarily
	// large recordings never need to be resident in memory all at once.
	_, err := store.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(store.bucket),
		Key:         aws.String(key),
		Body:        content,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	log.Debugf("Uploaded object %s to bucket %s\n", key, store.bucket)
	return nil
}

func (store *s3Store) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	output, err := store.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(store.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("object %s: %w", key, ErrObjectNotFound)
		}

		return nil, fmt.Errorf("failed to fetch object %s: %w", key, err)
	}

	return output.Body, nil
}

// isNotFound distinguishes the S3 family of "no such object" responses
// from genuine transport/auth failures. HeadObject reports a missing
// key as types.NotFound, GetObject as types.NoSuchKey, and some S3
// compatible backends only populate the generic API error code.
func isNotFound(err error) bool {
	var notFound *s3types.NotFound
	if errors.As(err, &notFound) {
		return true
	}

	var noSuchKey *s3types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NotFound" || code == "NoSuchKey"
	}

	return false
}
