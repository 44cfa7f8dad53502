package repomanager

import (
	"context"
	"database/sql"

	"github.com/learnbudget/server/internal/dbx"
	"github.com/learnbudget/server/internal/server/repositories/allocations"
	"github.com/learnbudget/server/internal/server/repositories/budgets"
	"github.com/learnbudget/server/internal/server/repositories/categories"
	"github.com/learnbudget/server/internal/server/repositories/expenses"
	"github.com/learnbudget/server/internal/server/repositories/receipts"
	"github.com/learnbudget/server/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to an arbitrary DBTX so that
// services can run the same repository code inside or outside transactions.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Budgets(db dbx.DBTX) budgets.Repository
	Categories(db dbx.DBTX) categories.Repository
	Allocations(db dbx.DBTX) allocations.Repository
	Expenses(db dbx.DBTX) expenses.Repository
	Receipts(db dbx.DBTX) receipts.Repository
}
