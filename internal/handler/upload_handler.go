package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/agencysite/internal/media"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UploadImage 处理后台图片上传，校验真实的图片格式后交给存储
func (a *API) UploadImage(c *gin.Context) {
	if a.storage == nil {
		respondError(c, http.StatusServiceUnavailable, "Image uploads are not configured")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "No image was uploaded")
		return
	}
	if file.Size > media.MaxImageBytes {
		respondError(c, http.StatusRequestEntityTooLarge, media.ErrTooLarge.Error())
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Failed to read upload")
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, media.MaxImageBytes+1))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Failed to read upload")
		return
	}

	img, err := media.Inspect(data)
	if err != nil {
		switch {
		case errors.Is(err, media.ErrTooLarge):
			respondError(c, http.StatusRequestEntityTooLarge, err.Error())
		default:
			respondError(c, http.StatusBadRequest, media.ErrUnsupportedImage.Error())
		}
		return
	}

	url, err := a.storage.Save(c.Request.Context(), media.ObjectName(a.now(), img), img)
	if err != nil {
		a.logger.Error("image upload failed", zap.Error(err), zap.String("filename", file.Filename))
		respondError(c, http.StatusInternalServerError, "Failed to save image")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Image uploaded",
		"url":     url,
		"width":   img.Width,
		"height":  img.Height,
	})
}
