package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/paymint/paymint-bot/internal/client/paystack"
	"github.com/paymint/paymint-bot/internal/client/whatsapp"
	"github.com/paymint/paymint-bot/internal/handlers"
	"github.com/paymint/paymint-bot/internal/services"
)

// New wires the webhook routes: WhatsApp verification and events, and the
// Paystack payment webhook.
func New(whatsappVerifyToken, paystackSecret string, botHandler *handlers.BotHandler, billing *services.BillingService) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), gin.Logger())

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	router.GET("/webhook/whatsapp", func(c *gin.Context) {
		mode := c.Query("hub.mode")
		token := c.Query("hub.verify_token")
		challenge := c.Query("hub.challenge")

		if mode == "subscribe" &&
			subtle.ConstantTimeCompare([]byte(token), []byte(whatsappVerifyToken)) == 1 {
			c.String(http.StatusOK, challenge)
			return
		}
		c.String(http.StatusForbidden, "forbidden")
	})

	router.POST("/webhook/whatsapp", func(c *gin.Context) {
		var payload whatsapp.WebhookPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.String(http.StatusBadRequest, "invalid json")
			return
		}

		// Acknowledge fast; each message is an independent unit of work,
		// so a slow handler for one sender never delays another.
		c.String(http.StatusOK, "EVENT_RECEIVED")

		for _, msg := range whatsapp.ExtractMessages(payload) {
			log.Printf("📨 Message from %s: %q", msg.From, msg.Text)
			go botHandler.HandleMessage(context.Background(), msg)
		}
	})

	router.POST("/webhook/paystack", func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil {
			c.String(http.StatusBadRequest, "failed to read body")
			return
		}

		signature := c.GetHeader("x-paystack-signature")
		if signature == "" || !paystack.ValidateSignature(paystackSecret, body, signature) {
			log.Println("❌ Invalid Paystack webhook signature")
			c.String(http.StatusBadRequest, "invalid signature")
			return
		}

		var event services.Event
		if err := json.Unmarshal(body, &event); err != nil {
			c.String(http.StatusBadRequest, "invalid json")
			return
		}

		if err := billing.HandleEvent(c.Request.Context(), event); err != nil {
			log.Printf("Failed to process Paystack event %s: %v", event.Event, err)
			c.String(http.StatusInternalServerError, "server error")
			return
		}
		c.String(http.StatusOK, "Webhook processed")
	})

	return router
}
