package products

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shopfront/internal/storage"
)

const uploadURLTTL = 15 * time.Minute

// Image content types accepted for product uploads
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Handler handles catalog HTTP requests
type Handler struct {
	service *Service
	images  storage.Service
}

// NewHandler creates a new products handler. images may be nil when no
// object storage is configured; upload URLs are then unavailable.
func NewHandler(service *Service, images storage.Service) *Handler {
	return &Handler{service: service, images: images}
}

// List handles GET /api/products?page=1&page_size=20
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	resp, err := h.service.List(c.Request.Context(), page, pageSize)
	if err != nil {
		log.Printf("Failed to list products: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list products"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/products/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product ID"})
		return
	}

	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "product not found"})
			return
		}
		log.Printf("Failed to get product %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get product"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// Create handles POST /api/products (admin only)
func (h *Handler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		log.Printf("Failed to create product: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, p)
}

// Update handles PATCH /api/products/:id (admin only)
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product ID"})
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "product not found"})
			return
		}
		log.Printf("Failed to update product %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to update product"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /api/products/:id (admin only)
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrProductNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "product not found"})
			return
		}
		log.Printf("Failed to delete product %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

// UploadURLRequest is the request body for requesting an image upload URL
type UploadURLRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

// UploadURLResponse carries the presigned upload URL for a product image
type UploadURLResponse struct {
	UploadURL string `json:"upload_url"`
	ImageKey  string `json:"image_key"`
	ExpiresAt int64  `json:"expires_at"`
}

// UploadURL handles POST /api/products/upload-url (admin only)
func (h *Handler) UploadURL(c *gin.Context) {
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "image storage is not available"})
		return
	}

	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := validateImageFilename(req.Filename); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if !allowedImageTypes[req.ContentType] {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("content type %s is not allowed", req.ContentType)})
		return
	}

	imageKey := fmt.Sprintf("%s-%s", uuid.New(), req.Filename)

	uploadURL, err := h.images.PresignUpload(c.Request.Context(), imageKey, req.ContentType, uploadURLTTL)
	if err != nil {
		log.Printf("Failed to presign upload: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to generate upload URL"})
		return
	}

	c.JSON(http.StatusOK, UploadURLResponse{
		UploadURL: uploadURL,
		ImageKey:  imageKey,
		ExpiresAt: time.Now().Add(uploadURLTTL).Unix(),
	})
}

func validateImageFilename(filename string) error {
	if len(filename) > 255 {
		return fmt.Errorf("filename too long")
	}
	if strings.Contains(filename, "..") || strings.ContainsAny(filename, "/\\") {
		return fmt.Errorf("filename contains invalid characters")
	}
	if filepath.Ext(filename) == "" {
		return fmt.Errorf("filename must have an extension")
	}
	return nil
}
