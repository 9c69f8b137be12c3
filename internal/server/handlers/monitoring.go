package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"git.home.luguber.info/inful/shalinks/internal/commitlink"
	"git.home.luguber.info/inful/shalinks/internal/foundation/errors"
	"git.home.luguber.info/inful/shalinks/internal/server/responses"
	"git.home.luguber.info/inful/shalinks/internal/version"
)

// MonitoringHandlers serves liveness information.
type MonitoringHandlers struct {
	repo         commitlink.Repository
	startTime    time.Time
	errorAdapter *errors.HTTPErrorAdapter
}

func NewMonitoringHandlers(repo commitlink.Repository, logger *slog.Logger) *MonitoringHandlers {
	return &MonitoringHandlers{
		repo:         repo,
		startTime:    time.Now(),
		errorAdapter: errors.NewHTTPErrorAdapter(logger),
	}
}

// HandleHealth handles the health check endpoint.
func (h *MonitoringHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		h.errorAdapter.WriteErrorResponse(w, r, methodNotAllowed(r.Method, http.MethodGet))
		return
	}

	resp := responses.HealthResponse{
		Status:     "ok",
		Version:    version.Version,
		Repository: h.repo.String(),
		Timestamp:  time.Now().UTC(),
		Uptime:     time.Since(h.startTime).Seconds(),
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, errors.WrapError(err, errors.CategoryInternal, "failed to write health response").Build())
	}
}
