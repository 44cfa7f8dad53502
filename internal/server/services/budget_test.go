package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/learnbudget/server/internal/common"
	"github.com/learnbudget/server/internal/server/models"
)

type fakeBudgetsRepo struct {
	byID      map[int64]*models.Budget
	getErr    error
	createErr error
	list      []*models.Budget
	updateErr error
	deletedID int64
	deleteErr error
}

func (f *fakeBudgetsRepo) Create(ctx context.Context, b *models.Budget) (*models.Budget, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	b.ID = 1
	return b, nil
}

func (f *fakeBudgetsRepo) GetByID(ctx context.Context, id int64) (*models.Budget, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if b, ok := f.byID[id]; ok {
		return b, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeBudgetsRepo) ListByUser(ctx context.Context, userID int64) ([]*models.Budget, error) {
	return f.list, nil
}

func (f *fakeBudgetsRepo) Update(ctx context.Context, b *models.Budget) (*models.Budget, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return b, nil
}

func (f *fakeBudgetsRepo) Delete(ctx context.Context, id int64) error {
	f.deletedID = id
	return f.deleteErr
}

type fakeAllocationsRepo struct {
	createErr error
	list      []*models.BudgetAllocation

	addSpentCalls    int
	spentBudgetID    int64
	spentCategoryID  int64
	spentAmount      float64
	addSpentErr      error
	deletedID        int64
	deleteErr        error
}

func (f *fakeAllocationsRepo) Create(ctx context.Context, a *models.BudgetAllocation) (*models.BudgetAllocation, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	a.ID = 1
	return a, nil
}

func (f *fakeAllocationsRepo) ListByBudget(ctx context.Context, budgetID int64) ([]*models.BudgetAllocation, error) {
	return f.list, nil
}

func (f *fakeAllocationsRepo) AddSpent(ctx context.Context, budgetID, categoryID int64, amount float64) error {
	f.addSpentCalls++
	f.spentBudgetID = budgetID
	f.spentCategoryID = categoryID
	f.spentAmount = amount
	return f.addSpentErr
}

func (f *fakeAllocationsRepo) Delete(ctx context.Context, id int64) error {
	f.deletedID = id
	return f.deleteErr
}

func TestBudgetGet_NotFoundBeforeOwnership(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{budgets: &fakeBudgetsRepo{}}
	s := NewBudgetService(db, rm)

	_, err := s.Get(context.Background(), 99, 1)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestBudgetGet_NotOwner(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{budgets: &fakeBudgetsRepo{
		byID: map[int64]*models.Budget{5: {ID: 5, UserID: 2}},
	}}
	s := NewBudgetService(db, rm)

	_, err := s.Get(context.Background(), 5, 1)
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("expected ErrorUnauthorized, got %v", err)
	}
}

func TestBudgetCreate_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{budgets: &fakeBudgetsRepo{}}
	s := NewBudgetService(db, rm)

	b, err := s.Create(context.Background(), &models.Budget{
		UserID:      1,
		Name:        "groceries",
		TotalAmount: 500,
		PeriodStart: time.Now(),
		PeriodEnd:   time.Now().AddDate(0, 1, 0),
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if b.ID == 0 {
		t.Fatalf("expected assigned id")
	}
}

func TestBudgetDelete_NotOwnerLeavesRow(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	budgets := &fakeBudgetsRepo{byID: map[int64]*models.Budget{5: {ID: 5, UserID: 2}}}
	s := NewBudgetService(db, &fakeRepoManager{budgets: budgets})

	err := s.Delete(context.Background(), 5, 1)
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("expected ErrorUnauthorized, got %v", err)
	}
	if budgets.deletedID != 0 {
		t.Fatalf("delete must not reach the repository")
	}
}

func TestAllocate_OwnershipEnforced(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{
		budgets:     &fakeBudgetsRepo{byID: map[int64]*models.Budget{5: {ID: 5, UserID: 2}}},
		allocations: &fakeAllocationsRepo{},
	}
	s := NewBudgetService(db, rm)

	_, err := s.Allocate(context.Background(), 1, &models.BudgetAllocation{BudgetID: 5, CategoryID: 3, AllocatedAmount: 100})
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("expected ErrorUnauthorized, got %v", err)
	}
}

func TestAllocate_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{
		budgets:     &fakeBudgetsRepo{byID: map[int64]*models.Budget{5: {ID: 5, UserID: 1}}},
		allocations: &fakeAllocationsRepo{},
	}
	s := NewBudgetService(db, rm)

	a, err := s.Allocate(context.Background(), 1, &models.BudgetAllocation{BudgetID: 5, CategoryID: 3, AllocatedAmount: 100})
	if err != nil {
		t.Fatalf("Allocate error: %v", err)
	}
	if a.ID == 0 {
		t.Fatalf("expected assigned id")
	}
}

func TestAllocations_UnknownBudget(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{
		budgets:     &fakeBudgetsRepo{},
		allocations: &fakeAllocationsRepo{},
	}
	s := NewBudgetService(db, rm)

	_, err := s.Allocations(context.Background(), 99, 1)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}
