package credits

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/mdolmen/autour-go/internal/apperr"
	"github.com/mdolmen/autour-go/internal/utils"
)

// Handler exposes the credit ledger over HTTP.
type Handler struct {
	Ledger      *Ledger
	AppleClient *resty.Client
	logger      *utils.Logger
}

func NewHandler(ledger *Ledger) *Handler {
	return &Handler{
		Ledger:      ledger,
		AppleClient: resty.New().SetTimeout(appleVerifyTimeout),
		logger:      utils.NewLogger("Credits"),
	}
}

// RegisterRoutes wires the credit endpoints onto the engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/get-credits", h.GetCredits)
	r.POST("/get-trial-credits", h.GetTrialCredits)
	r.POST("/verify-purchase", h.VerifyPurchase)
}

type userIDRequest struct {
	UserID string `json:"userId" binding:"required"`
}

func (h *Handler) GetCredits(c *gin.Context) {
	var req userIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, utils.NewAPIError(http.StatusBadRequest, "invalid request", err.Error()))
		return
	}

	n, err := h.Ledger.Get(req.UserID)
	if err != nil {
		utils.ErrorResponse(c, utils.NewAPIError(http.StatusInternalServerError, "failed to read credits", err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{"credits": n})
}

func (h *Handler) GetTrialCredits(c *gin.Context) {
	var req userIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, utils.NewAPIError(http.StatusBadRequest, "invalid request", err.Error()))
		return
	}

	n, err := h.Ledger.GrantTrial(req.UserID)
	if err != nil {
		utils.ErrorResponse(c, utils.NewAPIError(http.StatusInternalServerError, "failed to grant trial credits", err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{"credits": n})
}

type verifyPurchaseRequest struct {
	VerificationData string `json:"verificationData" binding:"required"`
	Platform         string `json:"platform" binding:"required"`
	ProductID        string `json:"productId" binding:"required"`
	UserID           string `json:"userId" binding:"required"`
}

func (h *Handler) VerifyPurchase(c *gin.Context) {
	var req verifyPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, utils.NewAPIError(http.StatusBadRequest, "invalid request", err.Error()))
		return
	}

	n, ok := CreditsForProduct(req.ProductID)
	if !ok {
		utils.ErrorResponse(c, utils.NewAPIError(http.StatusBadRequest, "unknown product id", req.ProductID))
		return
	}

	if req.Platform == "ios" {
		if err := VerifyAppleReceipt(h.AppleClient, req.VerificationData); err != nil {
			h.logger.Warn("receipt verification failed for %s: %v", req.UserID, err)
			c.JSON(apperr.StatusFor(err), gin.H{"error": err.Error()})
			return
		}
	}

	if err := h.Ledger.RecordPurchase(req.UserID, n); err != nil {
		utils.ErrorResponse(c, utils.NewAPIError(http.StatusInternalServerError, "failed to record purchase", err.Error()))
		return
	}

	balance, err := h.Ledger.Get(req.UserID)
	if err != nil {
		utils.ErrorResponse(c, utils.NewAPIError(http.StatusInternalServerError, "failed to read updated balance", err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "credits_available": balance})
}
