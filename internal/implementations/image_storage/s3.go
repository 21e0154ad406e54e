package imagestorage

import (
	"bytes"
	"context"
	"io"
	"ums/internal/core/domain/user"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const KEY_PREFIX = "profile-images/"

type S3 struct {
	client *s3.Client
	bucket string
}

// NewS3 stores images in bucket. A non-empty endpoint points the client to an
// S3 compatible server such as MinIO.
func NewS3(awsConfig aws.Config, bucket string, endpoint string) *S3 {
	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3{client: client, bucket: bucket}
}

func (s *S3) Save(ctx context.Context, image user.Image) (ref user.ImageRef, err error) {
	sniffed, err := sniff(image)
	if err != nil {
		return ref, err
	}
	ref = sniffed.ref
	content, err := io.ReadAll(sniffed.content)
	if err != nil {
		return ref, err
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(KEY_PREFIX + string(ref)),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(sniffed.contentType),
	})
	return ref, err
}

func (s *S3) Delete(ctx context.Context, ref user.ImageRef) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(KEY_PREFIX + string(ref)),
	})
	return err
}
