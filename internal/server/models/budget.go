package models

import "time"

type Budget struct {
	ID          int64
	UserID      int64
	Name        string
	TotalAmount float64
	PeriodStart time.Time
	PeriodEnd   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BudgetAllocation assigns a slice of a budget to a category. SpentAmount
// is maintained by the expense service inside the same transaction that
// records the expense.
type BudgetAllocation struct {
	ID              int64
	BudgetID        int64
	CategoryID      int64
	AllocatedAmount float64
	SpentAmount     float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
