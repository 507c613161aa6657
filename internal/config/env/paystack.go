package env

import (
	"errors"
	"os"
	"strconv"

	"github.com/paymint/paymint-bot/internal/config"
)

const (
	paystackSecretEnvName   = "PAYSTACK_SECRET"
	paystackCallbackEnvName = "PAYSTACK_CALLBACK_URL"
	paystackAmountEnvName   = "PREMIUM_PLAN_AMOUNT"
	paystackCurrencyEnvName = "PREMIUM_PLAN_CURRENCY"
)

type paystackConfig struct {
	secretKey   string
	callbackURL string
	planAmount  int64
	currency    string
}

func NewPaystackConfig() (config.PaystackConfig, error) {
	secret := os.Getenv(paystackSecretEnvName)
	if secret == "" {
		return nil, errors.New("PAYSTACK_SECRET not found")
	}

	callbackURL := os.Getenv(paystackCallbackEnvName)
	if callbackURL == "" {
		callbackURL = "https://paymint.ng/subscribe/success"
	}

	amount := int64(1000)
	if raw := os.Getenv(paystackAmountEnvName); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			return nil, errors.New("PREMIUM_PLAN_AMOUNT must be a positive integer")
		}
		amount = parsed
	}

	currency := os.Getenv(paystackCurrencyEnvName)
	if currency == "" {
		currency = "NGN"
	}

	return &paystackConfig{
		secretKey:   secret,
		callbackURL: callbackURL,
		planAmount:  amount,
		currency:    currency,
	}, nil
}

func (cfg *paystackConfig) SecretKey() string {
	return cfg.secretKey
}

func (cfg *paystackConfig) CallbackURL() string {
	return cfg.callbackURL
}

func (cfg *paystackConfig) PlanAmount() int64 {
	return cfg.planAmount
}

func (cfg *paystackConfig) Currency() string {
	return cfg.currency
}
