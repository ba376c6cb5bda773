package candidateapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SafalBhandari12/jd-cv-backend/pkg/iam/auth"
	"github.com/SafalBhandari12/jd-cv-backend/pkg/kernel"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/candidate"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/candidate/candidateauth"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/candidate/candidatesrv"
)

// Handlers provides HTTP handlers for candidate operations
type Handlers struct {
	service *candidatesrv.Service
	auth    *candidateauth.Service
}

func NewHandlers(service *candidatesrv.Service, authService *candidateauth.Service) *Handlers {
	return &Handlers{
		service: service,
		auth:    authService,
	}
}

// Register creates a candidate profile for a position
// POST /api/candidates/register
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req candidate.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return candidate.ErrInvalidRequest(err).WithDetail("parse_error", err.Error())
	}

	profile, err := h.service.Register(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(candidate.ToProfileResponse(profile))
}

// Login exchanges credentials for a session token
// POST /api/candidates/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req candidate.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return candidate.ErrInvalidRequest(err).WithDetail("parse_error", err.Error())
	}

	resp, err := h.auth.Login(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// GetProfile retrieves one candidate profile
// GET /api/candidates/:position/:id
func (h *Handlers) GetProfile(c *fiber.Ctx) error {
	position := kernel.Position(c.Params("position"))
	id := kernel.CandidateID(c.Params("id"))

	profile, err := h.service.Profile(c.Context(), position, id)
	if err != nil {
		return err
	}

	return c.JSON(candidate.ToProfileResponse(profile))
}

// ListByPosition lists the candidate pool for a position
// GET /api/candidates/:position
func (h *Handlers) ListByPosition(c *fiber.Ctx) error {
	position := kernel.Position(c.Params("position"))
	pagination := parsePaginationOptions(c)

	page, err := h.service.ProfilesByPosition(c.Context(), position, pagination)
	if err != nil {
		return err
	}

	return c.JSON(page)
}

// parsePaginationOptions extracts pagination options from query parameters
func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	return kernel.PaginationOptions{
		Page:     page,
		PageSize: pageSize,
	}
}

// RegisterRoutes registers all candidate routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/candidates")

	api.Post("/register", handlers.Register)
	api.Post("/login", handlers.Login)

	api.Get("/:position",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.RoleRecruiter),
		handlers.ListByPosition,
	)

	api.Get("/:position/:id",
		authMiddleware.Authenticate(),
		handlers.GetProfile,
	)
}
