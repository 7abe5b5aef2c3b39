package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/turkmasale/backend/internal/application/catalog"
)

// UploadHandler handles product image uploads
type UploadHandler struct {
	BaseHandler
	imageService *catalogapp.ImageService
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(imageService *catalogapp.ImageService) *UploadHandler {
	return &UploadHandler{
		imageService: imageService,
	}
}

// Upload accepts a multipart image under the "image" field and stores it
// in the object store. Size and content-type checks happen in the service.
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		h.BadRequest(c, "An image file is required under the 'image' field")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Could not read the uploaded file")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")

	result, err := h.imageService.Upload(c.Request.Context(), fileHeader.Filename, contentType, file)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}
