package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/learnbudget/server/internal/server/models"
)

type budgetRequest struct {
	Name        string    `json:"name"`
	TotalAmount float64   `json:"totalAmount"`
	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`
}

type budgetResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	TotalAmount float64   `json:"totalAmount"`
	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`
	CreatedAt   time.Time `json:"createdAt"`
}

type allocationRequest struct {
	CategoryID      int64   `json:"categoryId"`
	AllocatedAmount float64 `json:"allocatedAmount"`
}

type allocationResponse struct {
	ID              int64   `json:"id"`
	BudgetID        int64   `json:"budgetId"`
	CategoryID      int64   `json:"categoryId"`
	AllocatedAmount float64 `json:"allocatedAmount"`
	SpentAmount     float64 `json:"spentAmount"`
}

func toBudgetResponse(b *models.Budget) budgetResponse {
	return budgetResponse{
		ID:          b.ID,
		Name:        b.Name,
		TotalAmount: b.TotalAmount,
		PeriodStart: b.PeriodStart,
		PeriodEnd:   b.PeriodEnd,
		CreatedAt:   b.CreatedAt,
	}
}

func toAllocationResponse(a *models.BudgetAllocation) allocationResponse {
	return allocationResponse{
		ID:              a.ID,
		BudgetID:        a.BudgetID,
		CategoryID:      a.CategoryID,
		AllocatedAmount: a.AllocatedAmount,
		SpentAmount:     a.SpentAmount,
	}
}

// POST /api/budgets
func (s *Server) handleCreateBudget(c *fiber.Ctx) error {
	var req budgetRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return respondError(c, fiber.StatusBadRequest, "name is required")
	}

	budget, err := s.budgets.Create(c.Context(), &models.Budget{
		UserID:      authedUserID(c),
		Name:        req.Name,
		TotalAmount: req.TotalAmount,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
	})
	if err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toBudgetResponse(budget))
}

// GET /api/budgets
func (s *Server) handleListBudgets(c *fiber.Ctx) error {
	budgets, err := s.budgets.ListByUser(c.Context(), authedUserID(c))
	if err != nil {
		return s.fail(c, err)
	}

	resp := make([]budgetResponse, 0, len(budgets))
	for _, b := range budgets {
		resp = append(resp, toBudgetResponse(b))
	}
	return c.JSON(resp)
}

// GET /api/budgets/:id
func (s *Server) handleGetBudget(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid id")
	}

	budget, err := s.budgets.Get(c.Context(), int64(id), authedUserID(c))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(toBudgetResponse(budget))
}

// PUT /api/budgets/:id
func (s *Server) handleUpdateBudget(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid id")
	}

	var req budgetRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid request body")
	}

	budget, err := s.budgets.Update(c.Context(), &models.Budget{
		ID:          int64(id),
		UserID:      authedUserID(c),
		Name:        req.Name,
		TotalAmount: req.TotalAmount,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
	})
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(toBudgetResponse(budget))
}

// DELETE /api/budgets/:id
func (s *Server) handleDeleteBudget(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := s.budgets.Delete(c.Context(), int64(id), authedUserID(c)); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// POST /api/budgets/:id/allocations
func (s *Server) handleAllocate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid id")
	}

	var req allocationRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid request body")
	}

	allocation, err := s.budgets.Allocate(c.Context(), authedUserID(c), &models.BudgetAllocation{
		BudgetID:        int64(id),
		CategoryID:      req.CategoryID,
		AllocatedAmount: req.AllocatedAmount,
	})
	if err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toAllocationResponse(allocation))
}

// GET /api/budgets/:id/allocations
func (s *Server) handleListAllocations(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid id")
	}

	allocations, err := s.budgets.Allocations(c.Context(), int64(id), authedUserID(c))
	if err != nil {
		return s.fail(c, err)
	}

	resp := make([]allocationResponse, 0, len(allocations))
	for _, a := range allocations {
		resp = append(resp, toAllocationResponse(a))
	}
	return c.JSON(resp)
}
