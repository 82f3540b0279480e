package storage

import (
	"context"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Disk stores files in an S3-compatible bucket (Cloudflare R2 in
// production) served through a public URL.
type S3Disk struct {
	Client    *s3.Client
	Bucket    string
	PublicURL string
}

func NewS3Disk(endpoint, region, accessKeyID, secretAccessKey, bucket, publicURL string) *S3Disk {
	client := s3.New(s3.Options{
		BaseEndpoint: aws.String(endpoint),
		Credentials: credentials.NewStaticCredentialsProvider(
			accessKeyID,
			secretAccessKey,
			"",
		),
		Region: region,
	})

	return &S3Disk{
		Client:    client,
		Bucket:    bucket,
		PublicURL: strings.TrimSuffix(publicURL, "/"),
	}
}

func (d *S3Disk) Put(ctx context.Context, path string, r io.Reader) (string, error) {
	path = strings.TrimPrefix(path, "/")
	_, err := d.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(d.Bucket),
		Key:    aws.String(path),
		Body:   r,
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

func (d *S3Disk) URL(path string) string {
	return d.PublicURL + "/" + strings.TrimPrefix(path, "/")
}

func (d *S3Disk) Delete(ctx context.Context, path string) error {
	_, err := d.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(d.Bucket),
		Key:    aws.String(path),
	})
	return err
}

func (d *S3Disk) PathFromURL(url string) string {
	prefix := d.PublicURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return ""
	}
	return strings.TrimPrefix(url, prefix)
}
