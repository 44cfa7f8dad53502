// Package receipts provides the PostgreSQL-backed receipt metadata
// repository. Attachment bytes live in object storage, not here.
package receipts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/learnbudget/server/internal/common"
	"github.com/learnbudget/server/internal/dbx"
	"github.com/learnbudget/server/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, receipt *models.Receipt) (*models.Receipt, error) {
	query := `
		INSERT INTO receipts (expense_id, file_name, storage_key)
		VALUES ($1, $2, $3)
		RETURNING id, uploaded_at
	`
	err := r.db.QueryRowContext(ctx, query,
		receipt.ExpenseID, receipt.FileName, receipt.StorageKey).
		Scan(&receipt.ID, &receipt.UploadedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return receipt, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Receipt, error) {
	query := `
		SELECT id, expense_id, file_name, storage_key, ocr_text, ocr_data, is_processed, uploaded_at
		FROM receipts
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByExpense(ctx context.Context, expenseID int64) (*models.Receipt, error) {
	query := `
		SELECT id, expense_id, file_name, storage_key, ocr_text, ocr_data, is_processed, uploaded_at
		FROM receipts
		WHERE expense_id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, expenseID))
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM receipts WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Receipt, error) {
	receipt := &models.Receipt{}
	var ocrText sql.NullString
	err := row.Scan(&receipt.ID, &receipt.ExpenseID, &receipt.FileName, &receipt.StorageKey,
		&ocrText, &receipt.OCRData, &receipt.IsProcessed, &receipt.UploadedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	receipt.OCRText = ocrText.String
	return receipt, nil
}
