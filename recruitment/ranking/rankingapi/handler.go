package rankingapi

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/SafalBhandari12/jd-cv-backend/pkg/iam/auth"
	"github.com/SafalBhandari12/jd-cv-backend/pkg/kernel"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/ranking"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/ranking/rankingsrv"
)

// Handlers provides HTTP handlers for global rankings and reports
type Handlers struct {
	service *rankingsrv.Service
}

func NewHandlers(service *rankingsrv.Service) *Handlers {
	return &Handlers{service: service}
}

// GetRanking retrieves the global ranking for a position
// GET /api/rankings/:position
func (h *Handlers) GetRanking(c *fiber.Ctx) error {
	position := kernel.Position(c.Params("position"))

	g, err := h.service.Ranking(c.Context(), position)
	if err != nil {
		return err
	}

	return c.JSON(ranking.ToGlobalRankingResponse(g))
}

// Rebuild forces a synchronous rebuild of a position's ranking
// POST /api/rankings/:position/rebuild
func (h *Handlers) Rebuild(c *fiber.Ctx) error {
	position := kernel.Position(c.Params("position"))

	g, err := h.service.Rebuild(c.Context(), position)
	if err != nil {
		return err
	}

	return c.JSON(ranking.ToGlobalRankingResponse(g))
}

// UniversityReport lists the standing of a university's candidates
// GET /api/reports/university/:university
func (h *Handlers) UniversityReport(c *fiber.Ctx) error {
	// University names contain spaces, so the param arrives URL-encoded.
	university, err := url.QueryUnescape(c.Params("university"))
	if err != nil {
		return ranking.ErrInvalidRequest(err)
	}

	report, err := h.service.UniversityReport(c.Context(), kernel.University(university))
	if err != nil {
		return err
	}

	return c.JSON(report)
}

// RegisterRoutes registers ranking and report routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	rankings := app.Group("/api/rankings")

	rankings.Get("/:position",
		authMiddleware.Authenticate(),
		handlers.GetRanking,
	)

	rankings.Post("/:position/rebuild",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.RoleRecruiter),
		handlers.Rebuild,
	)

	reports := app.Group("/api/reports")

	reports.Get("/university/:university",
		authMiddleware.Authenticate(),
		handlers.UniversityReport,
	)
}
