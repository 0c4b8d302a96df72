package host

import (
	"encoding/json"
	"io"
	"log/slog"
	"platodropbox/internal/core/domain/models"
	"platodropbox/internal/core/domain/ports"
	"sync"
)

var _ ports.Host = (*PlatoHost)(nil)

// PlatoHost emits host events as JSON lines on the writer the host reads from,
// normally stdout. Events are fire-and-forget; write failures are only logged.
type PlatoHost struct {
	mu     sync.Mutex
	enc    *json.Encoder
	logger *slog.Logger
}

func NewPlatoHost(w io.Writer, logger *slog.Logger) *PlatoHost {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlatoHost{enc: json.NewEncoder(w), logger: logger}
}

type notifyEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type addDocumentEvent struct {
	Type string               `json:"type"`
	Info models.CatalogRecord `json:"info"`
}

type setWifiEvent struct {
	Type   string `json:"type"`
	Enable bool   `json:"enable"`
}

func (h *PlatoHost) ShowNotification(message string) {
	h.emit(notifyEvent{Type: "notify", Message: message})
}

func (h *PlatoHost) AddDocument(info models.CatalogRecord) {
	h.emit(addDocumentEvent{Type: "addDocument", Info: info})
}

func (h *PlatoHost) SetWifi(enabled bool) {
	h.emit(setWifiEvent{Type: "setWifi", Enable: enabled})
}

func (h *PlatoHost) emit(event any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.enc.Encode(event); err != nil {
		h.logger.Warn("failed to emit host event", "error", err)
	}
}
