package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BaSui01/commuteflow/api"
	"github.com/BaSui01/commuteflow/dataset"
	"github.com/BaSui01/commuteflow/types"
)

func newProfileMux(t *testing.T, records []types.CommuterRecord) *http.ServeMux {
	t.Helper()
	h := NewProfileHandler(dataset.NewMemoryStore(records), zap.NewNop())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/profiles", h.HandleList)
	mux.HandleFunc("GET /api/v1/profiles/{id}", h.HandleGet)
	return mux
}

func TestProfileList(t *testing.T) {
	mux := newProfileMux(t, []types.CommuterRecord{
		fullRecord("102", types.ModeCar),
		fullRecord("101", types.ModePublicTransport),
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/profiles", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var list api.ProfileListResponse
	decodeData(t, rec, &list)

	assert.Equal(t, 2, list.Count)
	require.Len(t, list.Profiles, 2)
	// Store order is by commuter ID.
	assert.Equal(t, "101", list.Profiles[0].CommuterID)
	assert.Equal(t, types.ModePublicTransport, list.Profiles[0].UsualMode)
	assert.Equal(t, "102", list.Profiles[1].CommuterID)
}

func TestProfileList_Empty(t *testing.T) {
	mux := newProfileMux(t, nil)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/profiles", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var list api.ProfileListResponse
	decodeData(t, rec, &list)
	assert.Zero(t, list.Count)
}

func TestProfileGet(t *testing.T) {
	mux := newProfileMux(t, []types.CommuterRecord{fullRecord("101", types.ModePublicTransport)})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/profiles/101", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var record types.CommuterRecord
	decodeData(t, rec, &record)

	assert.Equal(t, "101", record.CommuterID)
	assert.Equal(t, types.ModePublicTransport, record.UsualMode)
	assert.Equal(t, 4, record.AttitudePT)
	assert.Equal(t, 4, record.IntentionWalkCycle)
}

func TestProfileGet_NotFound(t *testing.T) {
	mux := newProfileMux(t, []types.CommuterRecord{fullRecord("101", types.ModeCar)})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/profiles/999", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)

	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, string(types.ErrProfileNotFound), resp.Error.Code)
}
