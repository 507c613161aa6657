package config

import (
	"time"

	"github.com/joho/godotenv"
)

type PGConfig interface {
	DSN() string
}

type WhatsAppConfig interface {
	AccessToken() string
	PhoneNumberID() string
	VerifyToken() string
	APIVersion() string
}

type PaystackConfig interface {
	SecretKey() string
	CallbackURL() string
	PlanAmount() int64 // major currency units, e.g. 1000 for NGN 1000
	Currency() string
}

type AppConfig interface {
	Port() string
	Location() *time.Location
	SummaryHour() int
}

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}
