package allocations

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/learnbudget/server/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_SpentStartsAtZero(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "spent_amount", "created_at", "updated_at"}).
		AddRow(7, 0.0, now, now)

	mock.ExpectQuery(`INSERT\s+INTO\s+budget_allocations.*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*0\)`).
		WithArgs(int64(5), int64(3), 100.0).
		WillReturnRows(rows)

	a, err := repo.Create(context.Background(), &models.BudgetAllocation{BudgetID: 5, CategoryID: 3, AllocatedAmount: 100})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if a.ID != 7 || a.SpentAmount != 0 {
		t.Fatalf("unexpected allocation: %+v", a)
	}
}

func TestAddSpent_IncrementsInPlace(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+budget_allocations\s+SET\s+spent_amount\s*=\s*spent_amount\s*\+\s*\$1`).
		WithArgs(42.5, int64(5), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.AddSpent(context.Background(), 5, 3, 42.5); err != nil {
		t.Fatalf("AddSpent error: %v", err)
	}
}

func TestAddSpent_NegativeAmountReverses(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+budget_allocations\s+SET\s+spent_amount\s*=\s*spent_amount\s*\+\s*\$1`).
		WithArgs(-42.5, int64(5), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.AddSpent(context.Background(), 5, 3, -42.5); err != nil {
		t.Fatalf("AddSpent error: %v", err)
	}
}

func TestAddSpent_NoMatchingAllocationIsNotAnError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+budget_allocations`).
		WithArgs(10.0, int64(5), int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.AddSpent(context.Background(), 5, 99, 10); err != nil {
		t.Fatalf("AddSpent error: %v", err)
	}
}

func TestListByBudget_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "budget_id", "category_id", "allocated_amount", "spent_amount", "created_at", "updated_at"}).
		AddRow(1, 5, 3, 100.0, 42.5, now, now).
		AddRow(2, 5, 4, 50.0, 0.0, now, now)

	mock.ExpectQuery(`SELECT\s+id,\s*budget_id,\s*category_id.*FROM\s+budget_allocations\s+WHERE\s+budget_id\s*=\s*\$1`).
		WithArgs(int64(5)).
		WillReturnRows(rows)

	got, err := repo.ListByBudget(context.Background(), 5)
	if err != nil {
		t.Fatalf("ListByBudget error: %v", err)
	}
	if len(got) != 2 || got[0].SpentAmount != 42.5 {
		t.Fatalf("unexpected allocations: %+v", got)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+budget_allocations`).
		WithArgs(int64(5), int64(3), 100.0).
		WillReturnError(errors.New("duplicate key"))

	_, err := repo.Create(context.Background(), &models.BudgetAllocation{BudgetID: 5, CategoryID: 3, AllocatedAmount: 100})
	if err == nil || !regexp.MustCompile(`db error: .*duplicate key`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
