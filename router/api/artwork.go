package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"prism/service"
)

// Artwork artwork generation API
func Artwork(e *gin.Engine, svc *service.ArtworkService) {
	e.POST("/generate-artwork", generateArtwork(svc))
}

// @Tags         artwork
// @Summary      Generate palette artwork
// @Description  Generates an image that uses only the given 1 to 5 colors and returns it as a base64 data URL
// @Accept       json
// @Produce      json
// @Param        body  body      service.ArtworkReq  true  "palette"
// @Success      200   {object}  service.ArtworkRes
// @Failure      400   {object}  service.ErrRes
// @Failure      401   {object}  service.ErrRes
// @Failure      429   {object}  service.ErrRes
// @Failure      500   {object}  service.ErrRes
// @Router       /generate-artwork [post]
func generateArtwork(svc *service.ArtworkService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ArtworkReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, service.ErrRes{Error: "Invalid JSON body"})
			return
		}
		res, err := svc.Generate(c.Request.Context(), req.Colors)
		if err != nil {
			var aerr *service.ArtworkError
			if !errors.As(err, &aerr) {
				aerr = &service.ArtworkError{Status: http.StatusInternalServerError, Msg: "Failed to generate artwork. Please try again."}
			}
			c.JSON(aerr.Status, service.ErrRes{Error: aerr.Msg})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}
