package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/RaivoMihlenovs/capstone-project/internal/server/config"
	"github.com/RaivoMihlenovs/capstone-project/internal/server/models"
	"github.com/RaivoMihlenovs/capstone-project/internal/server/repositories/repomanager"
	"github.com/RaivoMihlenovs/capstone-project/internal/validate"
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

// CatalogService covers the product catalog: public reads and the admin
// create/update/delete operations, plus presigned URLs for product images
// stored in S3-compatible object storage.
type CatalogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	stats       *StatsService
	config      *sc.Config
}

func NewCatalogService(db *sql.DB, m repomanager.RepositoryManager, stats *StatsService, config *sc.Config) *CatalogService {
	return &CatalogService{
		db:          db,
		repomanager: m,
		stats:       stats,
		config:      config,
	}
}

func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {
	return s.repomanager.Products(s.db).List(ctx)
}

func (s *CatalogService) Get(ctx context.Context, id int64) (*models.Product, error) {
	return s.repomanager.Products(s.db).Get(ctx, id)
}

func (s *CatalogService) Search(ctx context.Context, query string) ([]models.Product, error) {
	return s.repomanager.Products(s.db).Search(ctx, query)
}

// optional maps an empty sanitized field to NULL.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (s *CatalogService) Create(ctx context.Context, in validate.ProductData) (*models.Product, error) {
	product := &models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Category:    optional(in.Category),
		ImageURL:    optional(in.ImageURL),
	}

	created, err := s.repomanager.Products(s.db).Create(ctx, product)
	if err != nil {
		return nil, err
	}

	s.stats.Refresh(ctx)

	return created, nil
}

func (s *CatalogService) Update(ctx context.Context, id int64, in validate.ProductData) (*models.Product, error) {
	product := &models.Product{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Category:    optional(in.Category),
		ImageURL:    optional(in.ImageURL),
	}

	return s.repomanager.Products(s.db).Update(ctx, product)
}

func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	if err := s.repomanager.Products(s.db).Delete(ctx, id); err != nil {
		return err
	}

	s.stats.Refresh(ctx)

	return nil
}

// GetRandomStorageKey returns a date-partitioned object key for an uploaded
// product image.
func GetRandomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("products/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *CatalogService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,     // MINIO_ROOT_USER
			s.config.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// GetPresignedPutUrl returns a fresh object key and a URL the admin client
// can PUT the image bytes to directly, valid for 15 minutes.
func (s *CatalogService) GetPresignedPutUrl(ctx context.Context) (string, string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := GetRandomStorageKey()

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// GetPresignedGetUrl returns a short-lived download URL for a stored image.
func (s *CatalogService) GetPresignedGetUrl(ctx context.Context, key string) (string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
