package reminder

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"vetconnect-client/internal/platform/httpclient"
	"vetconnect-client/internal/platform/logger"
)

// Notification es el aviso local que dispara el chequeo diario.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Notifier entrega la notificación al usuario. La app móvil original usa el
// centro de notificaciones del sistema; acá es un puerto con dos adapters.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LogNotifier escribe la notificación al log (dev / daemon sin UI).
type LogNotifier struct {
	Log logger.Logger
}

func (l *LogNotifier) Notify(ctx context.Context, n Notification) error {
	log := l.Log
	if log == nil {
		log = logger.Nop()
	}
	log.Info("notification", map[string]any{
		"title": n.Title,
		"body":  n.Body,
	})
	return nil
}

// WebhookNotifier postea la notificación a un endpoint configurado
// (p.ej. un bridge de push local).
type WebhookNotifier struct {
	http *httpclient.Client
	url  string
}

func NewWebhookNotifier(client *httpclient.Client, url string) (*WebhookNotifier, error) {
	if client == nil || strings.TrimSpace(url) == "" {
		return nil, errors.New("reminder: webhook notifier requires client and url")
	}
	return &WebhookNotifier{http: client, url: strings.TrimSpace(url)}, nil
}

func (w *WebhookNotifier) Notify(ctx context.Context, n Notification) error {
	return w.http.DoJSON(ctx, http.MethodPost, w.url, n, nil)
}
