package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gliphic/internal/permissions"
	sc "github.com/dmitrijs2005/gliphic/internal/server/config"
	"github.com/dmitrijs2005/gliphic/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const (
	imageKeyPrefix = "images/"
	presignExpiry  = 15 * time.Minute
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// ImageService hands out presigned object storage URLs for custom group
// images and attaches uploaded images to groups.
type ImageService struct {
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewImageService(m repomanager.RepositoryManager, config *sc.Config) *ImageService {
	return &ImageService{
		repomanager: m,
		config:      config,
	}
}

// NewImageKey returns a fresh, date-partitioned storage key.
func NewImageKey() string {
	d := time.Now()
	return fmt.Sprintf("%s%d/%d/%d/%v", imageKeyPrefix, d.Year(), d.Month(), d.Day(), uuid.New())
}

func checkImageKey(key string) error {
	if !strings.HasPrefix(key, imageKeyPrefix) || len(key) == len(imageKeyPrefix) {
		return invalidArgument("%q is not an image key", key)
	}
	return nil
}

func (s *ImageService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// GetUploadURL reserves a new image key and returns a presigned PUT URL
// for it.
func (s *ImageService) GetUploadURL(ctx context.Context) (key, url string, err error) {
	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key = NewImageKey()

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// GetDownloadURL returns a presigned GET URL for an image key.
func (s *ImageService) GetDownloadURL(ctx context.Context, key string) (string, error) {
	if err := checkImageKey(key); err != nil {
		return "", err
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket
	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

// SetGroupImage attaches an uploaded image to a group. Only active owners
// may change the image.
func (s *ImageService) SetGroupImage(ctx context.Context, userID string, groupNumber int64, key string) error {
	if err := checkImageKey(key); err != nil {
		return err
	}
	db := s.repomanager.Conn()
	ms, err := membershipByNumber(ctx, s.repomanager, db, userID, groupNumber)
	if err != nil {
		return err
	}
	state, err := membershipState(ms)
	if err != nil {
		return err
	}
	if state != permissions.ActiveOwner {
		return forbidden("%s members cannot change the image of group %d", state, groupNumber)
	}
	return s.repomanager.Groups(db).SetImageKey(ctx, ms.GroupID, key)
}
