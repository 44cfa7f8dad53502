package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/learnbudget/server/internal/server/models"
)

type expenseRequest struct {
	BudgetID    int64     `json:"budgetId"`
	CategoryID  int64     `json:"categoryId"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	ExpenseDate time.Time `json:"expenseDate"`
}

type expenseResponse struct {
	ID          int64     `json:"id"`
	BudgetID    int64     `json:"budgetId"`
	CategoryID  int64     `json:"categoryId"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	ExpenseDate time.Time `json:"expenseDate"`
	CreatedAt   time.Time `json:"createdAt"`
}

type attachReceiptRequest struct {
	FileName string `json:"fileName"`
}

type receiptUploadResponse struct {
	ReceiptID int64  `json:"receiptId"`
	UploadURL string `json:"uploadUrl"`
}

type receiptURLResponse struct {
	DownloadURL string `json:"downloadUrl"`
}

func toExpenseResponse(e *models.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		BudgetID:    e.BudgetID,
		CategoryID:  e.CategoryID,
		Amount:      e.Amount,
		Description: e.Description,
		ExpenseDate: e.ExpenseDate,
		CreatedAt:   e.CreatedAt,
	}
}

// POST /api/expenses
func (s *Server) handleCreateExpense(c *fiber.Ctx) error {
	var req expenseRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Amount <= 0 {
		return respondError(c, fiber.StatusBadRequest, "amount must be positive")
	}

	expense, err := s.expenses.Create(c.Context(), &models.Expense{
		UserID:      authedUserID(c),
		BudgetID:    req.BudgetID,
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Description: req.Description,
		ExpenseDate: req.ExpenseDate,
	})
	if err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toExpenseResponse(expense))
}

// GET /api/expenses
func (s *Server) handleListExpenses(c *fiber.Ctx) error {
	expenses, err := s.expenses.ListByUser(c.Context(), authedUserID(c))
	if err != nil {
		return s.fail(c, err)
	}

	resp := make([]expenseResponse, 0, len(expenses))
	for _, e := range expenses {
		resp = append(resp, toExpenseResponse(e))
	}
	return c.JSON(resp)
}

// GET /api/expenses/:id
func (s *Server) handleGetExpense(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid id")
	}

	expense, err := s.expenses.Get(c.Context(), int64(id), authedUserID(c))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(toExpenseResponse(expense))
}

// DELETE /api/expenses/:id
func (s *Server) handleDeleteExpense(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := s.expenses.Delete(c.Context(), int64(id), authedUserID(c)); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// POST /api/expenses/:id/receipt
func (s *Server) handleAttachReceipt(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid id")
	}

	var req attachReceiptRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.FileName == "" {
		return respondError(c, fiber.StatusBadRequest, "fileName is required")
	}

	upload, err := s.receipts.Attach(c.Context(), int64(id), authedUserID(c), req.FileName)
	if err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(receiptUploadResponse{
		ReceiptID: upload.Receipt.ID,
		UploadURL: upload.UploadURL,
	})
}

// GET /api/expenses/:id/receipt/url
func (s *Server) handleReceiptURL(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid id")
	}

	url, err := s.receipts.DownloadURL(c.Context(), int64(id), authedUserID(c))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(receiptURLResponse{DownloadURL: url})
}
