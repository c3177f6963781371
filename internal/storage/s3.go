package storage

import (
	"bytes"
	"context"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
)

// S3Store keeps raw uploads in a bucket. Credentials, region and endpoint
// come from the default AWS configuration chain.
type S3Store struct {
	client *s3.Client
	bucket string
	prefix string
}

func NewS3Store(ctx context.Context, bucket string, prefix string) (*S3Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load AWS SDK config")
	}

	client := s3.New(s3.Options{
		Region:       cfg.Region,
		Credentials:  cfg.Credentials,
		HTTPClient:   cfg.HTTPClient,
		BaseEndpoint: cfg.BaseEndpoint,
		UsePathStyle: true,
	})
	return &S3Store{client: client, bucket: bucket, prefix: prefix}, nil
}

func (store *S3Store) Save(ctx context.Context, filename string, content []byte) (string, error) {
	key := store.prefix + objectName(filename)
	_, err := store.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(store.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(http.DetectContentType(content)),
	})
	if err != nil {
		return "", errors.Wrapf(err, "put object %s", key)
	}
	return "s3://" + store.bucket + "/" + key, nil
}
