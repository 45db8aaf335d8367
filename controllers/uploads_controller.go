package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UploadImage hosts a multipart "image" file and returns its URL, which
// clients then send as a campaign's image field.
func UploadImage(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		if env.Images == nil {
			c.JSON(http.StatusNotImplemented, gin.H{"error": "image uploads are not configured"})
			return
		}

		fileHeader, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
			return
		}
		defer file.Close()

		url, err := env.Images.Upload(c.Request.Context(), file)
		if err != nil {
			env.fail(c, "upload image", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "image upload failed",
				"details": err.Error(),
				"file":    fileHeader.Filename,
			})
			return
		}

		env.Log.Info("image uploaded", zap.String("url", url), zap.Int64("size", fileHeader.Size))
		c.JSON(http.StatusCreated, gin.H{"url": url})
	}
}
