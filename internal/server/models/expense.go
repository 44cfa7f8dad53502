package models

import "time"

type Expense struct {
	ID          int64
	UserID      int64
	BudgetID    int64
	CategoryID  int64
	Amount      float64
	Description string
	ExpenseDate time.Time
	CreatedAt   time.Time
}
