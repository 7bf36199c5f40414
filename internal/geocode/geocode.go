// Package geocode is a thin pass-through shell over a reverse-geocoding
// provider; it holds no domain logic of its own.
package geocode

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/mdolmen/autour-go/internal/utils"
)

const reverseGeocodeTimeout = 20 * time.Second

// Handler forwards reverse-geocode requests to geocode.maps.co.
type Handler struct {
	client *resty.Client
	apiKey string
}

func NewHandler(apiKey string) *Handler {
	return &Handler{
		client: resty.New().SetTimeout(reverseGeocodeTimeout).SetBaseURL("https://geocode.maps.co"),
		apiKey: apiKey,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/reverse-geocode", h.ReverseGeocode)
}

type reverseGeocodeRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ReverseGeocode passes the upstream JSON body straight through, mirroring
// the upstream HTTP status on failure.
func (h *Handler) ReverseGeocode(c *gin.Context) {
	var req reverseGeocodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, utils.NewAPIError(http.StatusBadRequest, "invalid request", err.Error()))
		return
	}

	resp, err := h.client.R().
		SetQueryParam("lat", strconv.FormatFloat(req.Latitude, 'f', -1, 64)).
		SetQueryParam("lon", strconv.FormatFloat(req.Longitude, 'f', -1, 64)).
		SetQueryParam("api_key", h.apiKey).
		Get("/reverse")
	if err != nil {
		utils.ErrorResponse(c, utils.NewAPIError(http.StatusBadGateway, "reverse geocode request failed", err.Error()))
		return
	}

	c.Data(resp.StatusCode(), "application/json", resp.Body())
}
