package api

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chef-fest/backend/internal/service"
)

const uploadField = "image"

// multipart framing on top of the file itself
const maxUploadBody = service.MaxImageSize + 1<<20

var errImagesDisabled = errors.New("image uploads are not configured")

// readUpload opens the uploaded image. The caller must close the returned
// file.
func readUpload(c *gin.Context) (service.Upload, multipart.File, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBody)

	header, err := c.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image is too large"})
			return service.Upload{}, nil, false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return service.Upload{}, nil, false
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read image"})
		return service.Upload{}, nil, false
	}

	return service.Upload{
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	}, file, true
}

func imagesDisabled(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": errImagesDisabled.Error()})
}
