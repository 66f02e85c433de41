package notify

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/cinex/internal/server"
	"github.com/desertthunder/cinex/internal/shared"
)

// WebhookSource accepts push messages over HTTP on POST /push.
type WebhookSource struct {
	addr   string
	logger *log.Logger
	ready  chan<- string
}

var _ Source = (*WebhookSource)(nil)

// NewWebhookSource creates a source listening on the push.webhook address.
func NewWebhookSource(cfg shared.WebhookConfig, logger *log.Logger) *WebhookSource {
	return &WebhookSource{addr: cfg.Addr(), logger: logger}
}

// Handler builds the router serving the webhook.
func (s *WebhookSource) Handler(deliver func(context.Context, []byte)) http.Handler {
	r := server.NewBasicRouter()
	r.Use(server.Recover(s.logger), server.RequestID(), server.Logging(s.logger))
	r.Handle(http.MethodGet, "/healthz", server.Health())
	r.Handler(server.NewPushHandler(deliver))
	return r
}

// Listen serves the webhook until ctx ends. The topic is implied by the listen address.
func (s *WebhookSource) Listen(ctx context.Context, _ string, deliver func(context.Context, []byte)) error {
	return server.Serve(ctx, s.addr, s.Handler(deliver), s.logger, s.ready)
}

func (s *WebhookSource) Close() error { return nil }
