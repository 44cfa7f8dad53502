package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/learnbudget/server/internal/common"
	"github.com/learnbudget/server/internal/server/models"
	"github.com/learnbudget/server/internal/server/repositories/repomanager"
)

// CategoryService manages expense categories. Default categories are global
// and read-only; user-created ones may only be deleted by their owner.
type CategoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCategoryService(db *sql.DB, m repomanager.RepositoryManager) *CategoryService {
	return &CategoryService{db: db, repomanager: m}
}

func (s *CategoryService) Create(ctx context.Context, userID int64, category *models.Category) (*models.Category, error) {
	category.IsDefault = false
	category.UserID = &userID

	c, err := s.repomanager.Categories(s.db).Create(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("error creating category: %w", err)
	}
	return c, nil
}

func (s *CategoryService) List(ctx context.Context, userID int64) ([]*models.Category, error) {
	return s.repomanager.Categories(s.db).ListForUser(ctx, userID)
}

func (s *CategoryService) Delete(ctx context.Context, id, userID int64) error {
	repo := s.repomanager.Categories(s.db)

	c, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error finding category: %w", err)
	}
	if c.IsDefault || c.UserID == nil || *c.UserID != userID {
		return common.ErrorUnauthorized
	}

	if err := repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting category: %w", err)
	}
	return nil
}
