package http

import (
	"net/http"

	"davebot/internal/config"
	"davebot/internal/entities"
	"davebot/internal/usecases"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Handler struct {
	messageService *usecases.MessageService
	cfg            *config.Config
	log            zerolog.Logger
}

func NewHandler(service *usecases.MessageService, cfg *config.Config, log zerolog.Logger) *Handler {
	return &Handler{
		messageService: service,
		cfg:            cfg,
		log:            log,
	}
}

func SetupRoutes(r *gin.Engine, service *usecases.MessageService, cfg *config.Config, log zerolog.Logger) {
	h := NewHandler(service, cfg, log)

	r.Use(SecurityHeaders())
	r.Use(RequestSizeLimiter(1 << 20)) // 1MB max request size

	r.GET("/", h.HandleRoot)
	r.GET("/webhook", h.VerifyWebhook)
	r.POST("/webhook", h.ReceiveDelivery)
}

// HandleRoot answers platform health probes hitting /.
func (h *Handler) HandleRoot(c *gin.Context) {
	c.String(http.StatusOK, "Dave-Bot est actif et écoute les webhooks sur /webhook. Version de l'API Cloud utilisée: v19.0.")
}

// VerifyWebhook implements Meta's webhook verification handshake: the
// challenge is echoed back only when the mode and shared token match.
func (h *Handler) VerifyWebhook(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token == h.cfg.VerifyToken {
		h.log.Info().Msg("webhook verified")
		c.String(http.StatusOK, challenge)
		return
	}
	c.Status(http.StatusForbidden)
}

// ReceiveDelivery acknowledges a delivery payload and fans out every
// contained text message to the router. The 200 goes out before any
// dispatch work so Meta's acknowledgement timeout never trips; each
// message runs in its own goroutine with no ordering guarantee.
func (h *Handler) ReceiveDelivery(c *gin.Context) {
	var payload DeliveryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	if payload.Object != "whatsapp_business_account" {
		c.Status(http.StatusNotFound)
		return
	}

	c.Status(http.StatusOK)

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			if change.Field != "messages" {
				continue
			}
			for _, msg := range change.Value.Messages {
				if msg.Type != "text" || msg.Text == nil {
					h.log.Debug().Str("type", msg.Type).Str("from", msg.From).Msg("skipping non-text message")
					continue
				}
				inbound := entities.Message{
					ID:      msg.ID,
					From:    msg.From,
					Content: msg.Text.Body,
					Type:    msg.Type,
				}
				go h.messageService.ProcessMessage(inbound)
			}
		}
	}
}
