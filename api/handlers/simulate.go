package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/commuteflow/api"
	"github.com/BaSui01/commuteflow/dataset"
	"github.com/BaSui01/commuteflow/internal/metrics"
	"github.com/BaSui01/commuteflow/sim"
	"github.com/BaSui01/commuteflow/types"
)

// SimulationHandler runs crowding simulations over the dataset.
type SimulationHandler struct {
	store     dataset.Store
	defaults  sim.Config
	collector *metrics.Collector
	logger    *zap.Logger
}

// NewSimulationHandler creates a SimulationHandler. The collector may be
// nil, in which case runs are not recorded.
func NewSimulationHandler(store dataset.Store, defaults sim.Config, collector *metrics.Collector, logger *zap.Logger) *SimulationHandler {
	return &SimulationHandler{
		store:     store,
		defaults:  defaults,
		collector: collector,
		logger:    logger.With(zap.String("handler", "simulate")),
	}
}

// HandleSimulate answers POST /api/v1/simulate. The body may override
// capacity, cycles, and seed; omitted fields use the configured
// defaults. An empty body runs with the defaults unchanged.
func (h *SimulationHandler) HandleSimulate(w http.ResponseWriter, r *http.Request) {
	cfg, ok := h.runConfig(w, r)
	if !ok {
		return
	}

	records, err := h.store.All(r.Context())
	if err != nil {
		writeFailure(w, err, h.logger)
		return
	}

	start := time.Now()
	insights := sim.New(cfg, h.logger).Run(records)
	elapsed := time.Since(start)

	if h.collector != nil {
		h.collector.RecordSimulationRun("success", elapsed,
			len(records), insights.TotalModeSwitchesFromPT, insights.AveragePTCrowding)
	}

	WriteSuccess(w, api.SimulateResponse{
		Insights:   insights,
		Population: len(records),
		Duration:   elapsed / time.Millisecond,
	})
}

// runConfig resolves the effective simulation config from the request
// body overrides, writing the error response itself on a bad body.
func (h *SimulationHandler) runConfig(w http.ResponseWriter, r *http.Request) (sim.Config, bool) {
	cfg := h.defaults

	if r.Body == nil || r.ContentLength == 0 {
		return cfg, true
	}

	var req api.SimulateRequest
	if err := DecodeJSONBody(w, r, &req, h.logger); err != nil {
		return sim.Config{}, false
	}
	applyOverrides(&cfg, req.Capacity, req.Cycles, req.Seed)

	if cfg.Capacity < 0 || cfg.Cycles < 0 {
		WriteError(w, types.NewError(types.ErrInvalidRequest,
			"capacity and cycles must not be negative"), h.logger)
		return sim.Config{}, false
	}
	return cfg, true
}

func applyOverrides(cfg *sim.Config, capacity, cycles *int, seed *int64) {
	if capacity != nil {
		cfg.Capacity = *capacity
	}
	if cycles != nil {
		cfg.Cycles = *cycles
	}
	if seed != nil {
		cfg.Seed = *seed
	}
}
