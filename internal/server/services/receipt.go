package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/learnbudget/server/internal/common"
	sc "github.com/learnbudget/server/internal/server/config"
	"github.com/learnbudget/server/internal/server/models"
	"github.com/learnbudget/server/internal/server/repositories/repomanager"
)

// Seams for testing the AWS presign plumbing without network access.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

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

// ReceiptUpload is returned when attaching a receipt: the created metadata
// row plus a presigned URL the client PUTs the file bytes to.
type ReceiptUpload struct {
	Receipt   *models.Receipt
	UploadURL string
}

// ReceiptService stores receipt metadata in Postgres and the attachment
// bytes in S3-compatible storage via presigned URLs.
type ReceiptService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewReceiptService(db *sql.DB, m repomanager.RepositoryManager, config *sc.Config) *ReceiptService {
	return &ReceiptService{db: db, repomanager: m, config: config}
}

// RandomStorageKey builds a date-partitioned object key for a new receipt.
func RandomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("receipts/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *ReceiptService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
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

// Attach creates the receipt row for an expense the user owns and returns
// a presigned PUT URL for the attachment bytes. One receipt per expense.
func (s *ReceiptService) Attach(ctx context.Context, expenseID, userID int64, fileName string) (*ReceiptUpload, error) {
	expense, err := s.repomanager.Expenses(s.db).GetByID(ctx, expenseID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error finding expense: %w", err)
	}
	if expense.UserID != userID {
		return nil, common.ErrorUnauthorized
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return nil, err
	}

	bucket := s.config.S3Bucket
	key := RandomStorageKey()

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return nil, err
	}

	receipt := &models.Receipt{ExpenseID: expenseID, FileName: fileName, StorageKey: key}
	receipt, err = s.repomanager.Receipts(s.db).Create(ctx, receipt)
	if err != nil {
		return nil, fmt.Errorf("error creating receipt: %w", err)
	}

	return &ReceiptUpload{Receipt: receipt, UploadURL: req.URL}, nil
}

// DownloadURL returns a presigned GET URL for the receipt attached to the
// given expense, after the usual existence-then-ownership sequence.
func (s *ReceiptService) DownloadURL(ctx context.Context, expenseID, userID int64) (string, error) {
	expense, err := s.repomanager.Expenses(s.db).GetByID(ctx, expenseID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("error finding expense: %w", err)
	}
	if expense.UserID != userID {
		return "", common.ErrorUnauthorized
	}

	receipt, err := s.repomanager.Receipts(s.db).GetByExpense(ctx, expenseID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("error finding receipt: %w", err)
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &receipt.StorageKey,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
