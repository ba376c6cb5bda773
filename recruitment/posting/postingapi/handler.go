package postingapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SafalBhandari12/jd-cv-backend/pkg/iam/auth"
	"github.com/SafalBhandari12/jd-cv-backend/pkg/kernel"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/posting"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/posting/postingauth"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/posting/postingsrv"
)

// Handlers provides HTTP handlers for posting operations
type Handlers struct {
	service *postingsrv.Service
	auth    *postingauth.Service
}

func NewHandlers(service *postingsrv.Service, authService *postingauth.Service) *Handlers {
	return &Handlers{
		service: service,
		auth:    authService,
	}
}

// Signup creates a recruiter account
// POST /api/postings/signup
func (h *Handlers) Signup(c *fiber.Ctx) error {
	var req posting.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return posting.ErrInvalidRequest(err).WithDetail("parse_error", err.Error())
	}

	if err := h.auth.Signup(c.Context(), req); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusCreated)
}

// Login exchanges recruiter credentials for a session token
// POST /api/postings/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req posting.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return posting.ErrInvalidRequest(err).WithDetail("parse_error", err.Error())
	}

	resp, err := h.auth.Login(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// Register processes a job posting and ranks the candidate pool
// POST /api/postings
func (h *Handlers) Register(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return posting.ErrAuthenticationFailed()
	}

	var req posting.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return posting.ErrInvalidRequest(err).WithDetail("parse_error", err.Error())
	}

	// The posting is always owned by the authenticated recruiter.
	req.Email = authContext.Email

	p, err := h.service.Register(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(posting.ToPostingResponse(p))
}

// GetPosting retrieves one posting with its ranked candidates
// GET /api/postings/:position/:recruiter
func (h *Handlers) GetPosting(c *fiber.Ctx) error {
	position := kernel.Position(c.Params("position"))
	recruiter := kernel.RecruiterID(c.Params("recruiter"))

	p, err := h.service.Posting(c.Context(), position, recruiter)
	if err != nil {
		return err
	}

	return c.JSON(posting.ToPostingResponse(p))
}

// ListByPosition lists postings for a position
// GET /api/postings/:position
func (h *Handlers) ListByPosition(c *fiber.Ctx) error {
	position := kernel.Position(c.Params("position"))
	pagination := parsePaginationOptions(c)

	page, err := h.service.PostingsByPosition(c.Context(), position, pagination)
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

// RegisterRoutes registers all posting routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/postings")

	api.Post("/signup", handlers.Signup)
	api.Post("/login", handlers.Login)

	api.Post("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.RoleRecruiter),
		handlers.Register,
	)

	api.Get("/:position",
		authMiddleware.Authenticate(),
		handlers.ListByPosition,
	)

	api.Get("/:position/:recruiter",
		authMiddleware.Authenticate(),
		handlers.GetPosting,
	)
}
