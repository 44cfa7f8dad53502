package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/learnbudget/server/internal/server/services"
)

type updateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

// GET /api/users
func (s *Server) handleListUsers(c *fiber.Ctx) error {
	users, err := s.users.List(c.Context())
	if err != nil {
		return s.fail(c, err)
	}

	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}
	return c.JSON(resp)
}

// GET /api/users/me
func (s *Server) handleCurrentUser(c *fiber.Ctx) error {
	user, err := s.users.FindByEmail(c.Context(), authedEmail(c))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(toUserResponse(user))
}

// GET /api/users/email/:email
func (s *Server) handleUserByEmail(c *fiber.Ctx) error {
	user, err := s.users.FindByEmail(c.Context(), c.Params("email"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(toUserResponse(user))
}

// GET /api/users/:id
func (s *Server) handleUserByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid id")
	}

	user, err := s.users.FindByID(c.Context(), int64(id))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(toUserResponse(user))
}

// PUT /api/users/:id
func (s *Server) handleUpdateUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid id")
	}

	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := s.users.Update(c.Context(), int64(id), services.UpdateUserRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	}, authedEmail(c))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(toUserResponse(user))
}

// DELETE /api/users/:id
func (s *Server) handleDeleteUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := s.users.Delete(c.Context(), int64(id), authedEmail(c)); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
