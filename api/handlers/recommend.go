package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/commuteflow/api"
	"github.com/BaSui01/commuteflow/dataset"
	"github.com/BaSui01/commuteflow/internal/metrics"
	"github.com/BaSui01/commuteflow/recommend"
	"github.com/BaSui01/commuteflow/sim"
	"github.com/BaSui01/commuteflow/types"
)

// RecommendHandler serves rule-based recommendations for one commuter,
// backed by a fresh simulation over the whole population.
type RecommendHandler struct {
	store     dataset.Store
	defaults  sim.Config
	collector *metrics.Collector
	logger    *zap.Logger
}

// NewRecommendHandler creates a RecommendHandler.
func NewRecommendHandler(store dataset.Store, defaults sim.Config, collector *metrics.Collector, logger *zap.Logger) *RecommendHandler {
	return &RecommendHandler{
		store:     store,
		defaults:  defaults,
		collector: collector,
		logger:    logger.With(zap.String("handler", "recommend")),
	}
}

// HandleRecommend answers POST /api/v1/recommendations.
func (h *RecommendHandler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	var req api.RecommendRequest
	if err := DecodeJSONBody(w, r, &req, h.logger); err != nil {
		return
	}
	if req.CommuterID == "" {
		WriteError(w, types.NewError(types.ErrInvalidRequest, "commuter_id is required"), h.logger)
		return
	}

	cfg := h.defaults
	applyOverrides(&cfg, req.Capacity, req.Cycles, req.Seed)
	if cfg.Capacity < 0 || cfg.Cycles < 0 {
		WriteError(w, types.NewError(types.ErrInvalidRequest,
			"capacity and cycles must not be negative"), h.logger)
		return
	}

	profile, err := h.store.Profile(r.Context(), req.CommuterID)
	if err != nil {
		writeFailure(w, err, h.logger)
		return
	}

	records, err := h.store.All(r.Context())
	if err != nil {
		writeFailure(w, err, h.logger)
		return
	}

	start := time.Now()
	insights := sim.New(cfg, h.logger).Run(records)
	if h.collector != nil {
		h.collector.RecordSimulationRun("success", time.Since(start),
			len(records), insights.TotalModeSwitchesFromPT, insights.AveragePTCrowding)
	}

	recs, err := recommend.Generate(profile, &insights)
	if err != nil {
		writeFailure(w, err, h.logger)
		return
	}

	WriteSuccess(w, api.RecommendResponse{
		CommuterID:      req.CommuterID,
		Recommendations: recs,
		Insights:        insights,
	})
}
