package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"prism/common/types"
	"prism/common/utils"
	"prism/log"
	"prism/service"
)

// Mint mint journal API
func Mint(e *gin.Engine, journal *service.Journal) {
	e.GET("/mints", pageMints(journal))
	e.GET("/mints/:hash", getMints(journal))
}

// @Tags         mints
// @Summary      Query minted artworks
// @Description  Journaled mints in reverse order of creation
// @Accept       json
// @Produce      json
// @Param        page       query     string  false  "Page, default 1"
// @Param        page_size  query     string  false  "Page size, default 10, at most 100"
// @Success      200        {object}  service.MintsRes
// @Failure      500        {object}  service.ErrRes
// @Router       /mints [get]
func pageMints(journal *service.Journal) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, size := utils.ParsePagination(c.Query("page"), c.Query("page_size"))
		res, err := journal.List(c.Request.Context(), page, size)
		if err != nil {
			log.Errorf("list mints: %v", err)
			c.JSON(http.StatusInternalServerError, service.ErrRes{Error: "Failed to query mints"})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// @Tags         mints
// @Summary      Query the mints of a payment
// @Description  Every mint made for a payment transaction, a resubmitted request shows up more than once
// @Accept       json
// @Produce      json
// @Param        hash  path      string  true  "payment transaction hash"
// @Success      200   {array}   model.MintRecord
// @Failure      400   {object}  service.ErrRes
// @Failure      404   {object}  service.ErrRes
// @Failure      500   {object}  service.ErrRes
// @Router       /mints/{hash} [get]
func getMints(journal *service.Journal) gin.HandlerFunc {
	return func(c *gin.Context) {
		hash, err := types.ParseHash(c.Param("hash"))
		if err != nil {
			c.JSON(http.StatusBadRequest, service.ErrRes{Error: "Invalid transaction hash format"})
			return
		}
		res, err := journal.ByPaymentHash(c.Request.Context(), hash)
		if err != nil {
			log.Errorf("mints of %s: %v", hash, err)
			c.JSON(http.StatusInternalServerError, service.ErrRes{Error: "Failed to query mints"})
			return
		}
		if len(res) == 0 {
			c.JSON(http.StatusNotFound, service.ErrRes{Error: "No mint found for this transaction"})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}
