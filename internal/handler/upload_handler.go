package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/portfoliocms/internal/service"
)

// UploadImage stores the multipart field "image".
func (a *API) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "No image was uploaded")
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Could not read the uploaded image")
		return
	}
	defer src.Close()

	img, err := a.uploads.UploadImage(c.Request.Context(), file.Filename, file.Header.Get("Content-Type"), src)
	switch {
	case errors.Is(err, service.ErrNotImage):
		respondError(c, http.StatusBadRequest, "Only image files can be uploaded")
		return
	case errors.Is(err, service.ErrUploadTooLarge):
		respondError(c, http.StatusRequestEntityTooLarge, "The image is too large")
		return
	case err != nil:
		c.Error(err)
		log.Error().Err(err).Str("filename", file.Filename).Msg("image upload failed")
		respondError(c, http.StatusInternalServerError, "Error uploading image")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":   img.URL,
		"image": img,
	})
}
