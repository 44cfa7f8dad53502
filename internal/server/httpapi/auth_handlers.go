package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/learnbudget/server/internal/server/models"
)

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
}

type authResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	Type         string       `json:"type"`
	User         userResponse `json:"user"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
	}
}

// POST /api/auth/register
func (s *Server) handleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return respondError(c, fiber.StatusBadRequest, "email and password are required")
	}

	user, err := s.users.Register(c.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		return s.fail(c, err)
	}

	s.logger.Info(c.Context(), "user registered", "user_id", user.ID)

	return c.Status(fiber.StatusCreated).JSON(toUserResponse(user))
}

// POST /api/auth/login
func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid request body")
	}

	pair, user, err := s.users.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(authResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Type:         "Bearer",
		User:         toUserResponse(user),
	})
}

// POST /api/auth/refresh
func (s *Server) handleRefresh(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid request body")
	}

	pair, user, err := s.users.RefreshToken(c.Context(), req.RefreshToken)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(authResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Type:         "Bearer",
		User:         toUserResponse(user),
	})
}
