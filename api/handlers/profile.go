package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/BaSui01/commuteflow/api"
	"github.com/BaSui01/commuteflow/dataset"
	"github.com/BaSui01/commuteflow/types"
)

// ProfileHandler serves the commuter dataset read endpoints.
type ProfileHandler struct {
	store  dataset.Store
	logger *zap.Logger
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(store dataset.Store, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		store:  store,
		logger: logger.With(zap.String("handler", "profile")),
	}
}

// HandleList answers GET /api/v1/profiles with ID and usual mode per
// commuter. Full survey scores are only exposed per profile.
func (h *ProfileHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.All(r.Context())
	if err != nil {
		writeFailure(w, err, h.logger)
		return
	}

	summaries := make([]api.ProfileSummary, 0, len(records))
	for _, rec := range records {
		summaries = append(summaries, api.ProfileSummary{
			CommuterID: rec.CommuterID,
			UsualMode:  rec.UsualMode,
		})
	}

	WriteSuccess(w, api.ProfileListResponse{
		Profiles: summaries,
		Count:    len(summaries),
	})
}

// HandleGet answers GET /api/v1/profiles/{id} with the full record.
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	commuterID := r.PathValue("id")
	if commuterID == "" {
		WriteError(w, types.NewError(types.ErrInvalidRequest, "commuter ID is required"), h.logger)
		return
	}

	record, err := h.store.Profile(r.Context(), commuterID)
	if err != nil {
		writeFailure(w, err, h.logger)
		return
	}

	WriteSuccess(w, record)
}
