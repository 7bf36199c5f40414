package credits

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetCreditsRejectsMissingUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &Handler{}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/get-credits", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.GetCredits(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyPurchaseRejectsUnknownProduct(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &Handler{Ledger: &Ledger{}}

	body := `{"verificationData":"x","platform":"ios","productId":"com.autour.credits.bogus","userId":"u1"}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/verify-purchase", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.VerifyPurchase(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterRoutesAddsExpectedPaths(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := &Handler{}
	h.RegisterRoutes(r)

	found := map[string]bool{}
	for _, route := range r.Routes() {
		found[route.Method+" "+route.Path] = true
	}

	assert.True(t, found["POST /get-credits"])
	assert.True(t, found["POST /get-trial-credits"])
	assert.True(t, found["POST /verify-purchase"])
}
