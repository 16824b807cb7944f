package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/reviewlens/reviewlens/internal/service"
)

// SearchHandler handles semantic search endpoints.
type SearchHandler struct {
	searchService *service.SearchService
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Register sets up search routes.
func (h *SearchHandler) Register(router fiber.Router) {
	router.Post("/search", h.Search)
}

// Search ranks stored reviews against the query text.
func (h *SearchHandler) Search(c fiber.Ctx) error {
	var body struct {
		Query string `json:"query"`
		TopK  int    `json:"top_k"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	hits := h.searchService.Search(c.Context(), body.Query, body.TopK)
	return c.JSON(fiber.Map{"hits": hits})
}
