package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ericogr/agent-arena/internal/config"
	"github.com/ericogr/agent-arena/internal/constants"
	"github.com/ericogr/agent-arena/internal/events"
	"github.com/ericogr/agent-arena/internal/game"
	"github.com/ericogr/agent-arena/internal/logging"
	"github.com/ericogr/agent-arena/internal/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultPaymentMethod = "stripe"
	intentStatus         = "requires_payment_method"
)

var hundred = decimal.NewFromInt(100)

type PaymentRequest struct {
	UserID        string
	Amount        decimal.Decimal
	Currency      string
	PaymentMethod string
}

// PaymentIntent mimics a card provider intent. No provider is contacted.
type PaymentIntent struct {
	ID            string `json:"id"`
	ClientSecret  string `json:"client_secret"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	Status        string `json:"status"`
	PaymentMethod string `json:"payment_method"`
}

type ConfirmRequest struct {
	PaymentID     uint
	TransactionID string
	UserID        string
	Coins         int
}

type ConfirmResult struct {
	Payment game.Payment `json:"payment"`
	Coins   int          `json:"coins"`
	Added   int          `json:"added"`
}

func (s *Service) CoinPackages() []config.CoinPackage {
	return s.settings.CoinPackages
}

// CreatePayment records a pending payment and returns a mock intent.
func (s *Service) CreatePayment(req PaymentRequest) (*game.Payment, *PaymentIntent, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" || !req.Amount.IsPositive() {
		return nil, nil, ErrInvalidInput
	}
	currency := strings.ToLower(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = s.settings.Currency
	}
	method := strings.TrimSpace(req.PaymentMethod)
	if method == "" {
		method = defaultPaymentMethod
	}
	p := &game.Payment{
		UserID:        userID,
		Amount:        req.Amount.Round(2),
		Currency:      currency,
		Status:        game.PaymentPending,
		PaymentMethod: method,
	}
	if err := s.repo.CreatePayment(p); err != nil {
		return nil, nil, err
	}
	intentID := fmt.Sprintf("pi_mock_%d", p.ID)
	intent := &PaymentIntent{
		ID:            intentID,
		ClientSecret:  intentID + "_secret_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		Amount:        p.Amount.Mul(hundred).Round(0).IntPart(),
		Currency:      currency,
		Status:        intentStatus,
		PaymentMethod: method,
	}
	logging.Info("payment intent created", logging.Fields{
		constants.LogFieldPaymentID: p.ID,
		constants.LogFieldUserID:    userID,
		"amount":                    p.Amount.StringFixed(2),
	})
	return p, intent, nil
}

// ConfirmPayment completes a pending payment and credits the coins.
// Confirming the same payment twice fails with ErrPaymentCompleted.
func (s *Service) ConfirmPayment(req ConfirmRequest) (*ConfirmResult, error) {
	userID := strings.TrimSpace(req.UserID)
	if req.PaymentID == 0 || userID == "" || req.Coins <= 0 {
		return nil, ErrInvalidInput
	}
	var res ConfirmResult
	err := s.repo.Transaction(func(tx storage.Repository) error {
		p, err := tx.GetPayment(req.PaymentID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}
		if p.UserID != userID {
			return fmt.Errorf("%w: payment belongs to another user", ErrInvalidInput)
		}
		if p.Status == game.PaymentCompleted {
			return ErrPaymentCompleted
		}
		p.Status = game.PaymentCompleted
		p.Coins = req.Coins
		p.TransactionID = strings.TrimSpace(req.TransactionID)
		if p.TransactionID == "" {
			p.TransactionID = "tx_" + uuid.NewString()
		}
		if err := tx.SavePayment(p); err != nil {
			return err
		}
		if err := tx.AddCoins(userID, req.Coins); err != nil {
			return err
		}
		bal, err := tx.GetBalance(userID)
		if err != nil {
			return err
		}
		res = ConfirmResult{Payment: *p, Coins: bal.Coins, Added: req.Coins}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logging.Info("payment confirmed", logging.Fields{
		constants.LogFieldPaymentID: req.PaymentID,
		constants.LogFieldUserID:    userID,
		"coins":                     req.Coins,
	})
	s.publish(events.PaymentConfirmed, res)
	return &res, nil
}

// Balance returns the coin balance; unknown users have zero.
func (s *Service) Balance(userID string) (int, error) {
	b, err := s.repo.GetBalance(userID)
	if err != nil {
		return 0, err
	}
	return b.Coins, nil
}

// PaymentHistory lists a user's payments, newest first.
func (s *Service) PaymentHistory(userID string) ([]game.Payment, error) {
	return s.repo.ListPayments(userID)
}
