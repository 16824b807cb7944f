package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/reviewlens/reviewlens/internal/domain"
	"github.com/reviewlens/reviewlens/internal/port"
	"github.com/reviewlens/reviewlens/internal/service"
)

// ReviewHandler handles review ingestion endpoints.
type ReviewHandler struct {
	ingestService *service.IngestService
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(ingestService *service.IngestService) *ReviewHandler {
	return &ReviewHandler{ingestService: ingestService}
}

// Register sets up review routes.
func (h *ReviewHandler) Register(router fiber.Router) {
	router.Post("/reviews", h.Insert)
	router.Post("/reviews/bulk", h.InsertBulk)
}

// Insert stores a single review and returns its id.
func (h *ReviewHandler) Insert(c fiber.Ctx) error {
	var body struct {
		Review domain.Review `json:"review"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	id, err := h.ingestService.InsertOne(c.Context(), body.Review)
	if err != nil {
		if errors.Is(err, port.ErrInvalidReview) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"id": id})
}

// InsertBulk stores reviews in order, aborting on the first failure. The
// response always carries how many reviews made it in.
func (h *ReviewHandler) InsertBulk(c fiber.Ctx) error {
	var body struct {
		Reviews []domain.Review `json:"reviews"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	inserted, err := h.ingestService.InsertBulk(c.Context(), body.Reviews)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, port.ErrInvalidReview) {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error(), "inserted": inserted})
	}

	return c.JSON(fiber.Map{"inserted": inserted})
}
