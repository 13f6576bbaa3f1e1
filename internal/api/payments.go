package api

import (
	"net/http"
	"strings"

	"github.com/ericogr/agent-arena/internal/constants"
	"github.com/ericogr/agent-arena/internal/logging"
	"github.com/ericogr/agent-arena/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type createPaymentRequest struct {
	UserID        string          `json:"userId"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	PaymentMethod string          `json:"paymentMethod"`
}

type confirmPaymentRequest struct {
	PaymentID     uint   `json:"paymentId"`
	TransactionID string `json:"transactionId"`
	UserID        string `json:"userId"`
	Coins         int    `json:"coins"`
}

// CoinPackages lists the purchasable coin bundles.
func (h *Handler) CoinPackages(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.CoinPackages())
}

// CreatePayment records a pending payment and returns a mock intent.
func (h *Handler) CreatePayment(c *gin.Context) {
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	p, intent, err := h.svc.CreatePayment(service.PaymentRequest{
		UserID:        req.UserID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		writeServiceError(c, err, constants.ErrPaymentNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"paymentIntent": intent, "paymentId": p.ID})
}

// ConfirmPayment completes a payment and credits its coins.
func (h *Handler) ConfirmPayment(c *gin.Context) {
	var req confirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	res, err := h.svc.ConfirmPayment(service.ConfirmRequest{
		PaymentID:     req.PaymentID,
		TransactionID: req.TransactionID,
		UserID:        req.UserID,
		Coins:         req.Coins,
	})
	if err != nil {
		writeServiceError(c, err, constants.ErrPaymentNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":                true,
		"coins":                  res.Coins,
		constants.JSONKeyMessage: "Payment confirmed",
	})
}

// Balance returns a user's coins; unknown users have zero.
func (h *Handler) Balance(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("userId"))
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUserIDRequired})
		return
	}
	coins, err := h.svc.Balance(userID)
	if err != nil {
		logging.Error("failed to fetch balance", err, logging.Fields{constants.LogFieldUserID: userID})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBalance})
		return
	}
	c.JSON(http.StatusOK, gin.H{"coins": coins})
}

// PaymentHistory lists a user's payments, newest first.
func (h *Handler) PaymentHistory(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("userId"))
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUserIDRequired})
		return
	}
	payments, err := h.svc.PaymentHistory(userID)
	if err != nil {
		logging.Error("failed to fetch payment history", err, logging.Fields{constants.LogFieldUserID: userID})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchHistory})
		return
	}
	c.JSON(http.StatusOK, payments)
}
