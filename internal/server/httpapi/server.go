// Package httpapi exposes the application over JSON/HTTP using fiber.
// Handlers translate requests to service calls and service errors to
// status codes; all business rules live below this layer.
package httpapi

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/learnbudget/server/internal/logging"
	"github.com/learnbudget/server/internal/server/auth"
	"github.com/learnbudget/server/internal/server/models"
	"github.com/learnbudget/server/internal/server/services"
)

// UserAPI is the slice of the user service consumed by the handlers.
type UserAPI interface {
	Register(ctx context.Context, email, password, firstName, lastName string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.TokenPair, *models.User, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, *models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, id int64, req services.UpdateUserRequest, authenticatedEmail string) (*models.User, error)
	Delete(ctx context.Context, id int64, authenticatedEmail string) error
}

type BudgetAPI interface {
	Create(ctx context.Context, budget *models.Budget) (*models.Budget, error)
	Get(ctx context.Context, id, userID int64) (*models.Budget, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Budget, error)
	Update(ctx context.Context, budget *models.Budget) (*models.Budget, error)
	Delete(ctx context.Context, id, userID int64) error
	Allocate(ctx context.Context, userID int64, allocation *models.BudgetAllocation) (*models.BudgetAllocation, error)
	Allocations(ctx context.Context, budgetID, userID int64) ([]*models.BudgetAllocation, error)
}

type CategoryAPI interface {
	Create(ctx context.Context, userID int64, category *models.Category) (*models.Category, error)
	List(ctx context.Context, userID int64) ([]*models.Category, error)
	Delete(ctx context.Context, id, userID int64) error
}

type ExpenseAPI interface {
	Create(ctx context.Context, expense *models.Expense) (*models.Expense, error)
	Get(ctx context.Context, id, userID int64) (*models.Expense, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Expense, error)
	Delete(ctx context.Context, id, userID int64) error
}

type ReceiptAPI interface {
	Attach(ctx context.Context, expenseID, userID int64, fileName string) (*services.ReceiptUpload, error)
	DownloadURL(ctx context.Context, expenseID, userID int64) (string, error)
}

type Server struct {
	app        *fiber.App
	address    string
	logger     logging.Logger
	tokens     *auth.Manager
	users      UserAPI
	budgets    BudgetAPI
	categories CategoryAPI
	expenses   ExpenseAPI
	receipts   ReceiptAPI
}

// NewServer builds the fiber app and registers all routes.
func NewServer(address string, l logging.Logger, tokens *auth.Manager,
	users UserAPI, budgets BudgetAPI, categories CategoryAPI,
	expenses ExpenseAPI, receipts ReceiptAPI) *Server {

	s := &Server{
		app:        fiber.New(fiber.Config{DisableStartupMessage: true}),
		address:    address,
		logger:     l.With("module", "http_server"),
		tokens:     tokens,
		users:      users,
		budgets:    budgets,
		categories: categories,
		expenses:   expenses,
		receipts:   receipts,
	}

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", s.handleRegister)
	authGroup.Post("/login", s.handleLogin)
	authGroup.Post("/refresh", s.handleRefresh)

	protected := api.Group("", s.requireAuth)

	usersGroup := protected.Group("/users")
	usersGroup.Get("/", s.handleListUsers)
	usersGroup.Get("/me", s.handleCurrentUser)
	usersGroup.Get("/email/:email", s.handleUserByEmail)
	usersGroup.Get("/:id", s.handleUserByID)
	usersGroup.Put("/:id", s.handleUpdateUser)
	usersGroup.Delete("/:id", s.handleDeleteUser)

	budgetsGroup := protected.Group("/budgets")
	budgetsGroup.Post("/", s.handleCreateBudget)
	budgetsGroup.Get("/", s.handleListBudgets)
	budgetsGroup.Get("/:id", s.handleGetBudget)
	budgetsGroup.Put("/:id", s.handleUpdateBudget)
	budgetsGroup.Delete("/:id", s.handleDeleteBudget)
	budgetsGroup.Post("/:id/allocations", s.handleAllocate)
	budgetsGroup.Get("/:id/allocations", s.handleListAllocations)

	categoriesGroup := protected.Group("/categories")
	categoriesGroup.Post("/", s.handleCreateCategory)
	categoriesGroup.Get("/", s.handleListCategories)
	categoriesGroup.Delete("/:id", s.handleDeleteCategory)

	expensesGroup := protected.Group("/expenses")
	expensesGroup.Post("/", s.handleCreateExpense)
	expensesGroup.Get("/", s.handleListExpenses)
	expensesGroup.Get("/:id", s.handleGetExpense)
	expensesGroup.Delete("/:id", s.handleDeleteExpense)
	expensesGroup.Post("/:id/receipt", s.handleAttachReceipt)
	expensesGroup.Get("/:id/receipt/url", s.handleReceiptURL)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		_ = s.app.ShutdownWithTimeout(5 * time.Second)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.app.Listen(s.address); err != nil {
		return err
	}

	return nil
}
