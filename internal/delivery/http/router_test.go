package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"orplanning/internal/delivery/http/controllers"
	"orplanning/internal/delivery/http/helpers"
	"orplanning/internal/domain"
	"orplanning/internal/repository/memory"
	"orplanning/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repos := memory.FromSnapshot(&domain.Snapshot{
		Sectors: []*domain.Sector{{ID: "ortho", Active: true}, {ID: "cardio", Active: true}},
		Rooms: []*domain.Room{
			{ID: "r101", Number: "101", SectorID: "ortho", Active: true},
			{ID: "r102", Number: "102", SectorID: "ortho", Active: true},
			{ID: "r103", Number: "103", SectorID: "ortho", Active: true},
			{ID: "r201", Number: "201", SectorID: "cardio", Active: true},
		},
		Rules: []*domain.SupervisionRule{
			{ID: "base", Name: "Base", Kind: domain.RuleGeneral, Active: true, Priority: 1,
				Conditions: domain.RuleConditions{MaxRoomsPerSupervisor: 2}},
		},
		Assignments: []*domain.Assignment{{Date: "2025-03-10", Entries: []domain.AssignmentEntry{
			{RoomID: "r101", SupervisorID: "dr-a"},
		}}},
	})
	supervision := services.NewSupervisionService(services.SupervisionConfig{
		RuleRepo:       repos.Rules,
		SectorRepo:     repos.Sectors,
		AssignmentRepo: repos.Assignments,
		ContextTimeout: time.Second,
		Logger:         logger,
	})
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("ok")) })
	return NewRouter(
		controllers.NewSupervisionController(logger, supervision),
		controllers.NewRuleController(logger, services.NewRuleService(repos.Rules, time.Second)),
		controllers.NewSectorController(logger, services.NewSectorService(repos.Sectors, time.Second)),
		metrics,
	)
}

func TestRouter_Routes(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{http.MethodGet, "/rules", "", http.StatusOK},
		{http.MethodGet, "/rules/base", "", http.StatusOK},
		{http.MethodGet, "/rules/missing", "", http.StatusNotFound},
		{http.MethodGet, "/rules/conflicts", "", http.StatusOK},
		{http.MethodPost, "/rules", `{"name":"Bad","kind":"sector_specific","conditions":{"max_rooms_per_supervisor":1}}`, http.StatusBadRequest},
		{http.MethodGet, "/sectors", "", http.StatusOK},
		{http.MethodGet, "/rooms", "", http.StatusOK},
		{http.MethodGet, "/supervision/max-rooms?sector=ortho", "", http.StatusOK},
		{http.MethodGet, "/supervision/compatibility?a=ortho&b=cardio", "", http.StatusOK},
		{http.MethodPost, "/plannings/2025-03-10/validate", "", http.StatusOK},
		{http.MethodPost, "/plannings/2025-03-11/validate", "", http.StatusNotFound},
		{http.MethodPost, "/plannings/not-a-date/validate", "", http.StatusBadRequest},
		{http.MethodGet, "/healthz", "", http.StatusNoContent},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodDelete, "/rules", "", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body)))
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestRouter_ValidateDraftPlanning(t *testing.T) {
	router := newTestRouter(t)
	body := `{"date":"2025-03-12","entries":[
		{"room_id":"r101","supervisor_id":"dr-a","periods":[{"start":"08:00","end":"12:00"}]},
		{"room_id":"r102","supervisor_id":"dr-a","periods":[{"start":"08:00","end":"12:00"}]},
		{"room_id":"r103","supervisor_id":"dr-a","periods":[{"start":"08:00","end":"12:00"}]}
	]}`
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/plannings/validate", bytes.NewBufferString(body)))
	require.Equal(t, http.StatusOK, rr.Code)

	var env struct {
		Data  domain.ValidationReport `json:"data"`
		Error *helpers.APIError       `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	require.Nil(t, env.Error)
	require.Len(t, env.Data.Violations, 1)
	assert.Equal(t, domain.ViolationMaxRoomsExceeded, env.Data.Violations[0].Kind)
	assert.Equal(t, []string{"r101", "r102", "r103"}, env.Data.Violations[0].RoomIDs)
}

func TestRouter_RuleLifecycle(t *testing.T) {
	router := newTestRouter(t)
	ctx := context.Background()

	create := httptest.NewRequest(http.MethodPost, "/rules",
		bytes.NewBufferString(`{"name":"Cardio","kind":"sector_specific","sector_id":"cardio","priority":2,"conditions":{"max_rooms_per_supervisor":1}}`)).WithContext(ctx)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, create)
	require.Equal(t, http.StatusCreated, rr.Code)

	var env struct {
		Data domain.SupervisionRule `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	require.NotEmpty(t, env.Data.ID)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/supervision/max-rooms?sector=cardio", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var res struct {
		Data domain.Resolution `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
	assert.Equal(t, 1, res.Data.MaxRooms)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/rules/"+env.Data.ID, nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)
}
