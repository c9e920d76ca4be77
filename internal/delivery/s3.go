// Package delivery stores delivery records of finished units of work.
package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/sachnun/translator-bot/internal/relay"
)

// Config locates the bucket. An empty Bucket disables reporting.
type Config struct {
	Bucket   string `mapstructure:"bucket"`
	Region   string `mapstructure:"region"`
	Endpoint string `mapstructure:"endpoint"`
	Prefix   string `mapstructure:"prefix"`
}

// PutObjectAPI is the part of the S3 client the reporter uses.
type PutObjectAPI interface {
	PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
}

// S3Reporter writes one JSON object per record, keyed by day and unit id.
type S3Reporter struct {
	client PutObjectAPI
	bucket string
	prefix string
}

// NewS3Client builds an S3 client for cfg. Credentials come from the default
// provider chain; a custom endpoint switches to path-style addressing.
func NewS3Client(cfg Config) (*s3.S3, error) {
	awsCfg := &aws.Config{}
	if cfg.Region != "" {
		awsCfg.Region = aws.String(cfg.Region)
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}
	return s3.New(sess), nil
}

// NewS3Reporter returns a reporter writing to bucket under prefix.
func NewS3Reporter(client PutObjectAPI, bucket, prefix string) *S3Reporter {
	if prefix == "" {
		prefix = "logs"
	}
	return &S3Reporter{client: client, bucket: bucket, prefix: prefix}
}

// Key returns the object key for rec.
func (r *S3Reporter) Key(rec relay.Record) string {
	return path.Join(r.prefix, rec.StartedAt.UTC().Format("2006/01/02"), rec.Unit+".json")
}

// Report uploads rec.
func (r *S3Reporter) Report(ctx context.Context, rec relay.Record) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal delivery record: %w", err)
	}
	_, err = r.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(r.Key(rec)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload delivery record to S3: %w", err)
	}
	return nil
}
