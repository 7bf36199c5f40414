package coverage

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestPingHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)

	pingHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"ping ok"}`, w.Body.String())
}

func TestGetPlacesHandlerRejectsMissingBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	e := &Engine{}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/get-places", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")

	e.GetPlacesHandler(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterRoutesAddsExpectedPaths(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	e := &Engine{}
	e.RegisterRoutes(r)

	found := map[string]bool{}
	for _, route := range r.Routes() {
		found[route.Method+" "+route.Path] = true
	}

	assert.True(t, found["GET /"])
	assert.True(t, found["POST /get-places"])
}
