package coverage

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mdolmen/autour-go/internal/apperr"
	"github.com/mdolmen/autour-go/internal/grid"
	"github.com/mdolmen/autour-go/internal/storage"
	"github.com/mdolmen/autour-go/internal/utils"
)

// defaultExpansionLevel matches the original single-ring query radius; the
// wire format carries no expansion level field.
const defaultExpansionLevel = 1

type locationPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type circle struct {
	Center locationPoint `json:"center"`
	Radius float64       `json:"radius"`
}

type locationRestriction struct {
	Circle circle `json:"circle"`
}

type getPlacesRequest struct {
	IncludedTypes       []string            `json:"includedTypes" binding:"required"`
	RankPreference      string              `json:"rankPreference"`
	LocationRestriction locationRestriction `json:"locationRestriction" binding:"required"`
	PlacesType          string              `json:"placesType"`
	UserID              string              `json:"userId" binding:"required"`
}

// RegisterRoutes wires the query endpoint and the root health ping.
func (e *Engine) RegisterRoutes(r *gin.Engine) {
	r.GET("/", pingHandler)
	r.POST("/get-places", e.GetPlacesHandler)
}

func pingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "ping ok"})
}

func (e *Engine) GetPlacesHandler(c *gin.Context) {
	var req getPlacesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, utils.NewAPIError(http.StatusBadRequest, "invalid request", err.Error()))
		return
	}

	category, ok := grid.CategoryByName(req.PlacesType)
	if !ok {
		category = grid.CategoryServices
	}

	center := req.LocationRestriction.Circle.Center
	places, err := e.Query(req.UserID, center.Latitude, center.Longitude, defaultExpansionLevel, category, req.IncludedTypes, req.PlacesType)
	if err != nil {
		if ae, ok := err.(*apperr.Error); ok && ae.Kind == apperr.KindCreditExhausted {
			c.JSON(http.StatusOK, []storage.Place{})
			return
		}
		e.logger.Error("query failed: %v", err)
		utils.ErrorResponse(c, utils.NewAPIError(apperr.StatusFor(err), "query failed", err.Error()))
		return
	}

	c.JSON(http.StatusOK, places)
}
