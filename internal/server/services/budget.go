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

// BudgetService manages budgets and their per-category allocations. Every
// operation on an existing budget verifies ownership by user id after the
// existence check.
type BudgetService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewBudgetService(db *sql.DB, m repomanager.RepositoryManager) *BudgetService {
	return &BudgetService{db: db, repomanager: m}
}

func (s *BudgetService) Create(ctx context.Context, budget *models.Budget) (*models.Budget, error) {
	b, err := s.repomanager.Budgets(s.db).Create(ctx, budget)
	if err != nil {
		return nil, fmt.Errorf("error creating budget: %w", err)
	}
	return b, nil
}

func (s *BudgetService) Get(ctx context.Context, id, userID int64) (*models.Budget, error) {
	return s.ownedBudget(ctx, id, userID)
}

func (s *BudgetService) ListByUser(ctx context.Context, userID int64) ([]*models.Budget, error) {
	return s.repomanager.Budgets(s.db).ListByUser(ctx, userID)
}

func (s *BudgetService) Update(ctx context.Context, budget *models.Budget) (*models.Budget, error) {
	if _, err := s.ownedBudget(ctx, budget.ID, budget.UserID); err != nil {
		return nil, err
	}

	b, err := s.repomanager.Budgets(s.db).Update(ctx, budget)
	if err != nil {
		return nil, fmt.Errorf("error updating budget: %w", err)
	}
	return b, nil
}

func (s *BudgetService) Delete(ctx context.Context, id, userID int64) error {
	if _, err := s.ownedBudget(ctx, id, userID); err != nil {
		return err
	}
	if err := s.repomanager.Budgets(s.db).Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting budget: %w", err)
	}
	return nil
}

// Allocate assigns part of a budget to a category.
func (s *BudgetService) Allocate(ctx context.Context, userID int64, allocation *models.BudgetAllocation) (*models.BudgetAllocation, error) {
	if _, err := s.ownedBudget(ctx, allocation.BudgetID, userID); err != nil {
		return nil, err
	}

	a, err := s.repomanager.Allocations(s.db).Create(ctx, allocation)
	if err != nil {
		return nil, fmt.Errorf("error creating allocation: %w", err)
	}
	return a, nil
}

// Allocations lists the per-category allocations of a budget.
func (s *BudgetService) Allocations(ctx context.Context, budgetID, userID int64) ([]*models.BudgetAllocation, error) {
	if _, err := s.ownedBudget(ctx, budgetID, userID); err != nil {
		return nil, err
	}
	return s.repomanager.Allocations(s.db).ListByBudget(ctx, budgetID)
}

// ownedBudget loads the budget and enforces existence before ownership:
// a missing budget is ErrorNotFound, somebody else's is ErrorUnauthorized.
func (s *BudgetService) ownedBudget(ctx context.Context, id, userID int64) (*models.Budget, error) {
	b, err := s.repomanager.Budgets(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error finding budget: %w", err)
	}
	if b.UserID != userID {
		return nil, common.ErrorUnauthorized
	}
	return b, nil
}
