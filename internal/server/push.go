package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/desertthunder/cinex/internal/models"
)

// MaxPushBody caps the size of a webhook payload.
const MaxPushBody = 64 << 10

// PushHandler accepts push messages over HTTP and hands the raw payload to deliver.
//
// A payload is accepted when it decodes as a push message with a title.
type PushHandler struct {
	deliver func(ctx context.Context, payload []byte)
}

var _ Handler = (*PushHandler)(nil)

// NewPushHandler creates a [PushHandler].
func NewPushHandler(deliver func(ctx context.Context, payload []byte)) *PushHandler {
	return &PushHandler{deliver: deliver}
}

// Routes returns the HTTP routes this handler serves.
func (h *PushHandler) Routes() []string {
	return []string{"POST /push"}
}

func (h *PushHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxPushBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "payload too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	var msg models.PushMessage
	if err := json.Unmarshal(body, &msg); err != nil || msg.Notification.Title == "" {
		http.Error(w, "expected {\"notification\": {\"title\": ...}}", http.StatusBadRequest)
		return
	}

	h.deliver(r.Context(), body)
	w.WriteHeader(http.StatusAccepted)
}

// Health answers liveness probes.
func Health() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
}
