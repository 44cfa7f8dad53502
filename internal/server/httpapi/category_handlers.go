package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/learnbudget/server/internal/server/models"
)

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IconName    string `json:"iconName"`
	Color       string `json:"color"`
}

type categoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IconName    string `json:"iconName"`
	Color       string `json:"color"`
	IsDefault   bool   `json:"isDefault"`
}

func toCategoryResponse(cat *models.Category) categoryResponse {
	return categoryResponse{
		ID:          cat.ID,
		Name:        cat.Name,
		Description: cat.Description,
		IconName:    cat.IconName,
		Color:       cat.Color,
		IsDefault:   cat.IsDefault,
	}
}

// POST /api/categories
func (s *Server) handleCreateCategory(c *fiber.Ctx) error {
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return respondError(c, fiber.StatusBadRequest, "name is required")
	}

	category, err := s.categories.Create(c.Context(), authedUserID(c), &models.Category{
		Name:        req.Name,
		Description: req.Description,
		IconName:    req.IconName,
		Color:       req.Color,
	})
	if err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCategoryResponse(category))
}

// GET /api/categories
func (s *Server) handleListCategories(c *fiber.Ctx) error {
	categories, err := s.categories.List(c.Context(), authedUserID(c))
	if err != nil {
		return s.fail(c, err)
	}

	resp := make([]categoryResponse, 0, len(categories))
	for _, cat := range categories {
		resp = append(resp, toCategoryResponse(cat))
	}
	return c.JSON(resp)
}

// DELETE /api/categories/:id
func (s *Server) handleDeleteCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := s.categories.Delete(c.Context(), int64(id), authedUserID(c)); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
