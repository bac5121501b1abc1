package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"prism/middleware"
	"prism/service"
)

// RelayRes successful relay response
type RelayRes struct {
	Success bool                `json:"success"`
	Message string              `json:"message" example:"NFT minted successfully"`
	Data    *service.MintResult `json:"data"`
}

// Relay relay API
func Relay(e *gin.Engine, svc *service.RelayService) {
	e.POST("/relay", relay(svc))
}

// @Tags         relay
// @Summary      Mint a Prism artwork
// @Description  Resolves the payer of txHash, pays royalties to the owners of the matching color tokens, pins image and metadata on IPFS and mints the artwork to the payer
// @Accept       json
// @Produce      json
// @Param        body  body      service.MintRequest  true  "payment transaction, palette and generated image"
// @Success      200   {object}  RelayRes
// @Failure      400   {object}  service.ErrRes
// @Failure      500   {object}  service.ErrRes
// @Router       /relay [post]
func relay(svc *service.RelayService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.MintRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, service.ErrRes{Error: "Invalid JSON body"})
			return
		}
		res, err := svc.Relay(c.Request.Context(), middleware.GetRequestId(c), req)
		if err != nil {
			rerr := service.AsRelayError(err)
			c.JSON(rerr.Status(), service.ErrRes{Error: rerr.Message()})
			return
		}
		c.JSON(http.StatusOK, RelayRes{Success: true, Message: "NFT minted successfully", Data: res})
	}
}
