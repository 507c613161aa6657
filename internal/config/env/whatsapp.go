package env

import (
	"errors"
	"os"

	"github.com/paymint/paymint-bot/internal/config"
)

const (
	waAccessTokenEnvName   = "WHATSAPP_ACCESS_TOKEN"
	waPhoneNumberIDEnvName = "WHATSAPP_PHONE_NUMBER_ID"
	waVerifyTokenEnvName   = "WHATSAPP_VERIFY_TOKEN"
	waAPIVersionEnvName    = "WHATSAPP_API_VERSION"
)

type whatsAppConfig struct {
	accessToken   string
	phoneNumberID string
	verifyToken   string
	apiVersion    string
}

func NewWhatsAppConfig() (config.WhatsAppConfig, error) {
	accessToken := os.Getenv(waAccessTokenEnvName)
	phoneNumberID := os.Getenv(waPhoneNumberIDEnvName)
	verifyToken := os.Getenv(waVerifyTokenEnvName)
	if accessToken == "" || phoneNumberID == "" {
		return nil, errors.New("WHATSAPP_ACCESS_TOKEN and WHATSAPP_PHONE_NUMBER_ID are required")
	}
	if verifyToken == "" {
		return nil, errors.New("WHATSAPP_VERIFY_TOKEN is required")
	}

	apiVersion := os.Getenv(waAPIVersionEnvName)
	if apiVersion == "" {
		apiVersion = "v20.0"
	}

	return &whatsAppConfig{
		accessToken:   accessToken,
		phoneNumberID: phoneNumberID,
		verifyToken:   verifyToken,
		apiVersion:    apiVersion,
	}, nil
}

func (cfg *whatsAppConfig) AccessToken() string {
	return cfg.accessToken
}

func (cfg *whatsAppConfig) PhoneNumberID() string {
	return cfg.phoneNumberID
}

func (cfg *whatsAppConfig) VerifyToken() string {
	return cfg.verifyToken
}

func (cfg *whatsAppConfig) APIVersion() string {
	return cfg.apiVersion
}
