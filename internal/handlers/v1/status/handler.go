package status

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/carson-networks/bytebank-server/internal/logging"
)

const checkTimeout = 2 * time.Second

// Check reports whether one dependency is reachable.
type Check func(ctx context.Context) error

type Handler struct {
	checks map[string]Check
}

func NewHandler(checks map[string]Check) Handler {
	return Handler{checks: checks}
}

type response struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	ctx, cancel := context.WithTimeout(req.Context(), checkTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := response{Status: "ok", Components: make(map[string]string, len(names))}
	var failed []string
	for _, name := range names {
		stop := logData.AddTiming(name + "PingMs")
		stopTotal := logData.AddToExistingTiming("dependencyPingMs")
		err := h.checks[name](ctx)
		stop()
		stopTotal()
		if err != nil {
			resp.Components[name] = "down"
			failed = append(failed, name)
			logData.AddData(name+"Error", err.Error())
			continue
		}
		resp.Components[name] = "up"
	}

	code := http.StatusOK
	if len(failed) > 0 {
		resp.Status = "degraded"
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		return fmt.Errorf("status: encode: %w", err)
	}
	if len(failed) > 0 {
		return fmt.Errorf("status: unavailable: %v", failed)
	}
	return nil
}
