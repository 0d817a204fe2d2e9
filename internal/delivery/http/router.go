package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"orplanning/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes.
// A nil metrics handler leaves /metrics unregistered.
func NewRouter(
	supervisionController *controllers.SupervisionController,
	ruleController *controllers.RuleController,
	sectorController *controllers.SectorController,
	metrics http.Handler,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Plannings
	mux.HandleFunc("POST /plannings/validate", supervisionController.ValidateAssignment)
	mux.HandleFunc("POST /plannings/{date}/validate", supervisionController.ValidatePlanningForDate)

	// Supervision queries
	mux.HandleFunc("GET /supervision/max-rooms", supervisionController.MaxRooms)
	mux.HandleFunc("GET /supervision/compatibility", supervisionController.Compatibility)

	// Rule catalog
	mux.HandleFunc("POST /rules", ruleController.CreateRule)
	mux.HandleFunc("GET /rules", ruleController.ListRules)
	mux.HandleFunc("GET /rules/conflicts", supervisionController.Conflicts)
	mux.HandleFunc("GET /rules/{ruleID}", ruleController.GetRule)
	mux.HandleFunc("PUT /rules/{ruleID}", ruleController.UpdateRule)
	mux.HandleFunc("DELETE /rules/{ruleID}", ruleController.DeleteRule)

	// Layout
	mux.HandleFunc("GET /sectors", sectorController.ListSectors)
	mux.HandleFunc("GET /rooms", sectorController.ListRooms)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
