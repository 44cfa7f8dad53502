package categories

import (
	"context"

	"github.com/learnbudget/server/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, category *models.Category) (*models.Category, error)
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	// ListForUser returns the default categories plus the ones the user owns.
	ListForUser(ctx context.Context, userID int64) ([]*models.Category, error)
	Delete(ctx context.Context, id int64) error
}
