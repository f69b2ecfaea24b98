package health

import (
	"net/http"

	"hotel/config"
	"hotel/shared/constant"
	"hotel/shared/timezone"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
)

const statusOK = "OK"

type Status struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}

type Handler struct {
	cfg *config.Config
}

func New(cfg *config.Config) Handler {
	return Handler{cfg: cfg}
}

func (h *Handler) Router(r chi.Router) {
	r.Get("/health", h.Health)
}

// Health reports liveness. While the server drains, requests are answered with 503 before
// they reach this handler.
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} response.Data[Status]
// @Failure 503 {object} response.Error
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	response.WithJSON(w, http.StatusOK, Status{
		Status:    statusOK,
		Timestamp: timezone.Now().Format(constant.DateFormat),
		Service:   h.cfg.App.Name,
	})
}
