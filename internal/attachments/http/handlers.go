package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/admetrics-hub/admetrics-backend/internal/attachments/service"
	"github.com/admetrics-hub/admetrics-backend/internal/auth"
	authdomain "github.com/admetrics-hub/admetrics-backend/internal/auth/domain"
)

type Handler struct {
	attachmentService *service.AttachmentService
}

func New(attachmentService *service.AttachmentService) *Handler {
	return &Handler{attachmentService: attachmentService}
}

// Register wires the document routes onto the customers group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/:id/documents", h.UploadDocument)
	rg.GET("/:id/documents", h.ListDocuments)
	rg.DELETE("/:id/documents/*key", h.DeleteDocument)
}

func (h *Handler) UploadDocument(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload"})
		return
	}
	defer src.Close()

	attachment, err := h.attachmentService.Upload(
		c.Request.Context(), auth.CurrentUser(c), c.Param("id"),
		file.Filename, file.Header.Get("Content-Type"), file.Size, src,
	)
	if err != nil {
		respondError(c, err, "failed to upload document")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"document": attachment})
}

func (h *Handler) ListDocuments(c *gin.Context) {
	documents, err := h.attachmentService.List(c.Request.Context(), auth.CurrentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to list documents")
		return
	}

	c.JSON(http.StatusOK, gin.H{"documents": documents})
}

func (h *Handler) DeleteDocument(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")

	if err := h.attachmentService.Delete(c.Request.Context(), auth.CurrentUser(c), c.Param("id"), key); err != nil {
		respondError(c, err, "failed to delete document")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrInvalidFilename):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, authdomain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
