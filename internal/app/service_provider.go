package app

import (
	"context"
	"database/sql"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/paymint/paymint-bot/internal/client/db"
	"github.com/paymint/paymint-bot/internal/client/db/pg"
	"github.com/paymint/paymint-bot/internal/client/paystack"
	"github.com/paymint/paymint-bot/internal/client/whatsapp"
	"github.com/paymint/paymint-bot/internal/closer"
	"github.com/paymint/paymint-bot/internal/config"
	"github.com/paymint/paymint-bot/internal/config/env"
	"github.com/paymint/paymint-bot/internal/handlers"
	"github.com/paymint/paymint-bot/internal/repository"
	"github.com/paymint/paymint-bot/internal/server"
	"github.com/paymint/paymint-bot/internal/services"
	"github.com/paymint/paymint-bot/internal/state"
)

type ServiceProvider struct {
	pgConfig       config.PGConfig
	whatsappConfig config.WhatsAppConfig
	paystackConfig config.PaystackConfig
	appConfig      config.AppConfig

	dbClient db.Client

	// Repositories
	vendorRepo  *repository.VendorRepository
	saleRepo    *repository.SaleRepository
	summaryRepo *repository.SummaryRepository

	// Clients
	whatsappClient *whatsapp.Client
	paystackClient *paystack.Client

	// Services
	billingService *services.BillingService
	scheduler      *services.Scheduler

	// Handlers
	botHandler *handlers.BotHandler

	// State
	stateManager *state.Manager

	// HTTP
	router *gin.Engine
}

func NewServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (s *ServiceProvider) PGConfig() config.PGConfig {
	if s.pgConfig == nil {
		pgConfig, err := env.NewPGConfig()
		if err != nil {
			log.Fatalf("failed to get pg config: %v", err)
		}
		s.pgConfig = pgConfig
	}
	return s.pgConfig
}

func (s *ServiceProvider) WhatsAppConfig() config.WhatsAppConfig {
	if s.whatsappConfig == nil {
		waConfig, err := env.NewWhatsAppConfig()
		if err != nil {
			log.Fatalf("failed to get whatsapp config: %v", err)
		}
		s.whatsappConfig = waConfig
	}
	return s.whatsappConfig
}

func (s *ServiceProvider) PaystackConfig() config.PaystackConfig {
	if s.paystackConfig == nil {
		psConfig, err := env.NewPaystackConfig()
		if err != nil {
			log.Fatalf("failed to get paystack config: %v", err)
		}
		s.paystackConfig = psConfig
	}
	return s.paystackConfig
}

func (s *ServiceProvider) AppConfig() config.AppConfig {
	if s.appConfig == nil {
		appConfig, err := env.NewAppConfig()
		if err != nil {
			log.Fatalf("failed to get app config: %v", err)
		}
		s.appConfig = appConfig
	}
	return s.appConfig
}

func (s *ServiceProvider) DBClient(ctx context.Context) db.Client {
	if s.dbClient == nil {
		cl, err := pg.New(ctx, s.PGConfig().DSN())
		if err != nil {
			log.Fatalf("failed to get db client: %v", err)
		}

		closer.Add(func() error {
			return cl.Close()
		})
		s.dbClient = cl
	}
	return s.dbClient
}

func (s *ServiceProvider) SQLDB(ctx context.Context) *sql.DB {
	return s.DBClient(ctx).DB()
}

func (s *ServiceProvider) VendorRepository(ctx context.Context) *repository.VendorRepository {
	if s.vendorRepo == nil {
		s.vendorRepo = repository.NewVendorRepository(s.SQLDB(ctx))
	}
	return s.vendorRepo
}

func (s *ServiceProvider) SaleRepository(ctx context.Context) *repository.SaleRepository {
	if s.saleRepo == nil {
		s.saleRepo = repository.NewSaleRepository(s.SQLDB(ctx))
	}
	return s.saleRepo
}

func (s *ServiceProvider) SummaryRepository(ctx context.Context) *repository.SummaryRepository {
	if s.summaryRepo == nil {
		s.summaryRepo = repository.NewSummaryRepository(s.SQLDB(ctx))
	}
	return s.summaryRepo
}

func (s *ServiceProvider) WhatsAppClient() *whatsapp.Client {
	if s.whatsappClient == nil {
		s.whatsappClient = whatsapp.New(s.WhatsAppConfig())
	}
	return s.whatsappClient
}

func (s *ServiceProvider) PaystackClient() *paystack.Client {
	if s.paystackClient == nil {
		s.paystackClient = paystack.New(s.PaystackConfig())
	}
	return s.paystackClient
}

func (s *ServiceProvider) StateManager() *state.Manager {
	if s.stateManager == nil {
		s.stateManager = state.NewManager()
	}
	return s.stateManager
}

func (s *ServiceProvider) BotHandler(ctx context.Context) *handlers.BotHandler {
	if s.botHandler == nil {
		s.botHandler = handlers.NewBotHandler(
			s.WhatsAppClient(),
			s.VendorRepository(ctx),
			s.SaleRepository(ctx),
			s.SummaryRepository(ctx),
			s.PaystackClient(),
			s.StateManager(),
			s.AppConfig().Location(),
		)
	}
	return s.botHandler
}

func (s *ServiceProvider) BillingService(ctx context.Context) *services.BillingService {
	if s.billingService == nil {
		s.billingService = services.NewBillingService(
			s.VendorRepository(ctx),
			s.WhatsAppClient(),
			s.AppConfig().Location(),
		)
	}
	return s.billingService
}

func (s *ServiceProvider) Scheduler(ctx context.Context) *services.Scheduler {
	if s.scheduler == nil {
		s.scheduler = services.NewScheduler(
			s.VendorRepository(ctx),
			s.SummaryRepository(ctx),
			s.WhatsAppClient(),
			s.AppConfig().Location(),
			s.AppConfig().SummaryHour(),
		)
	}
	return s.scheduler
}

func (s *ServiceProvider) Router(ctx context.Context) *gin.Engine {
	if s.router == nil {
		s.router = server.New(
			s.WhatsAppConfig().VerifyToken(),
			s.PaystackConfig().SecretKey(),
			s.BotHandler(ctx),
			s.BillingService(ctx),
		)
	}
	return s.router
}
