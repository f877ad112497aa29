package news

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles news HTTP requests
type Handler struct {
	repo *Repository
}

// NewHandler creates a new news handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// List handles GET /api/news?page=1&page_size=20
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	items, totalCount, err := h.repo.GetAll(c.Request.Context(), page, pageSize)
	if err != nil {
		log.Printf("Failed to list news: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list news"})
		return
	}

	c.JSON(http.StatusOK, PaginatedItemsResponse{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
	})
}

// Get handles GET /api/news/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid news item ID"})
		return
	}

	item, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "news item not found"})
			return
		}
		log.Printf("Failed to get news item %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get news item"})
		return
	}

	c.JSON(http.StatusOK, item)
}
