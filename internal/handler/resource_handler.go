package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutortrack-api/internal/middleware"
	"github.com/noah-isme/tutortrack-api/internal/service"
	appErrors "github.com/noah-isme/tutortrack-api/pkg/errors"
	"github.com/noah-isme/tutortrack-api/pkg/response"
)

// ResourceHandler manages student resource endpoints.
type ResourceHandler struct {
	service *service.ResourceService
}

// NewResourceHandler constructs handler.
func NewResourceHandler(svc *service.ResourceService) *ResourceHandler {
	return &ResourceHandler{service: svc}
}

// AddLink godoc
// @Summary Share a link resource with a student
// @Tags Resources
// @Accept json
// @Success 204
// @Router /resources/links [post]
func (h *ResourceHandler) AddLink(c *gin.Context) {
	identity := middleware.Identity(c)
	var req service.AddLinkResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.AddLink(identity.OwnerID, req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Upload godoc
// @Summary Upload a file resource for a student
// @Tags Resources
// @Accept multipart/form-data
// @Produce json
// @Param studentId formData string true "Student ID"
// @Param title formData string true "Resource title"
// @Param file formData file true "File content"
// @Success 201 {object} response.Envelope
// @Router /resources/files [post]
func (h *ResourceHandler) Upload(c *gin.Context) {
	identity := middleware.Identity(c)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file is required"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload"))
		return
	}
	defer file.Close() //nolint:errcheck
	content, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload"))
		return
	}

	resourceID, err := h.service.Upload(identity.OwnerID, c.PostForm("studentId"), c.PostForm("title"), fileHeader.Filename, content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"id": resourceID})
}

// Delete godoc
// @Summary Remove a resource from a student
// @Tags Resources
// @Param studentId path string true "Student ID"
// @Param id path string true "Resource ID"
// @Success 204
// @Router /students/{studentId}/resources/{id} [delete]
func (h *ResourceHandler) Delete(c *gin.Context) {
	identity := middleware.Identity(c)
	if err := h.service.Delete(identity.OwnerID, c.Param("studentId"), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DownloadURL godoc
// @Summary Issue a signed download token for a file resource
// @Tags Resources
// @Produce json
// @Param studentId path string true "Student ID"
// @Param id path string true "Resource ID"
// @Success 200 {object} response.Envelope
// @Router /students/{studentId}/resources/{id}/download-url [get]
func (h *ResourceHandler) DownloadURL(c *gin.Context) {
	identity := middleware.Identity(c)
	token, expiresAt, err := h.service.DownloadURL(identity.OwnerID, c.Param("studentId"), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"token":      token,
		"expires_at": expiresAt,
	}, nil)
}

// Download godoc
// @Summary Stream a file resource by signed token
// @Tags Resources
// @Param token query string true "Signed download token"
// @Success 200
// @Router /resources/download [get]
func (h *ResourceHandler) Download(c *gin.Context) {
	file, err := h.service.OpenByToken(c.Query("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck
	c.Header("Content-Disposition", "attachment")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, file)
}
