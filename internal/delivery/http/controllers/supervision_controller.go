package controllers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"orplanning/internal/delivery/http/helpers"
	"orplanning/internal/domain"
)

// ValidateAssignmentRequest is the request body for POST /plannings/validate.
type ValidateAssignmentRequest struct {
	Date    string                   `json:"date"`
	Entries []domain.AssignmentEntry `json:"entries"`
}

// Validate implements Validator.
func (req ValidateAssignmentRequest) Validate() []string {
	var errs []string
	if req.Entries == nil {
		errs = append(errs, "entries is required")
	}
	for i, e := range req.Entries {
		if e.RoomID == "" {
			errs = append(errs, fmt.Sprintf("entries[%d].room_id is required", i))
		}
	}
	return errs
}

// ValidationReportSuccessResponse is the success response envelope for planning validation (200).
type ValidationReportSuccessResponse struct {
	Data  *domain.ValidationReport `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// ResolutionSuccessResponse is the success response envelope for GET /supervision/max-rooms (200).
type ResolutionSuccessResponse struct {
	Data  *domain.Resolution `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// CompatibilityResponse is the data of GET /supervision/compatibility.
type CompatibilityResponse struct {
	SectorA    string `json:"sector_a"`
	SectorB    string `json:"sector_b"`
	Compatible bool   `json:"compatible"`
}

// CompatibilitySuccessResponse is the success response envelope for GET /supervision/compatibility (200).
type CompatibilitySuccessResponse struct {
	Data  CompatibilityResponse `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// ConflictsSuccessResponse is the success response envelope for GET /rules/conflicts (200).
type ConflictsSuccessResponse struct {
	Data  []domain.CatalogConflict `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

type SupervisionController struct {
	Logger  *slog.Logger
	Service domain.SupervisionService
}

func NewSupervisionController(logger *slog.Logger, svc domain.SupervisionService) *SupervisionController {
	return &SupervisionController{
		Logger:  logger,
		Service: svc,
	}
}

func (c *SupervisionController) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := helpers.StatusForError(err)
	if status == http.StatusInternalServerError {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
	helpers.WriteJSONError(w, status, code, err.Error())
}

// ValidateAssignment godoc
// @Summary Validate a draft planning
// @Description Checks a day's room to supervisor assignment against the current rule catalog. Findings are returned in the report; a planning with violations still answers 200.
// @Tags plannings
// @Accept json
// @Produce json
// @Param assignment body ValidateAssignmentRequest true "Day planning"
// @Success 200 {object} controllers.ValidationReportSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /plannings/validate [post]
func (c *SupervisionController) ValidateAssignment(w http.ResponseWriter, r *http.Request) {
	var req ValidateAssignmentRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	report, err := c.Service.ValidateAssignment(r.Context(), &domain.Assignment{Date: req.Date, Entries: req.Entries})
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, report)
}

// ValidatePlanningForDate godoc
// @Summary Validate the stored planning of a day
// @Description Loads the planning of date (YYYY-MM-DD) and validates it. Alert recipients are mailed when the report has violations.
// @Tags plannings
// @Produce json
// @Param date path string true "Planning date (YYYY-MM-DD)"
// @Success 200 {object} controllers.ValidationReportSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /plannings/{date}/validate [post]
func (c *SupervisionController) ValidatePlanningForDate(w http.ResponseWriter, r *http.Request) {
	report, err := c.Service.ValidatePlanningForDate(r.Context(), r.PathValue("date"))
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, report)
}

// MaxRooms godoc
// @Summary Resolve the room limit for a set of sectors
// @Description Returns the maximum number of rooms one supervisor may cover across the given sectors, with the rules that produced it.
// @Tags supervision
// @Produce json
// @Param sector query []string false "Sector IDs (repeat or comma separate)"
// @Success 200 {object} controllers.ResolutionSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /supervision/max-rooms [get]
func (c *SupervisionController) MaxRooms(w http.ResponseWriter, r *http.Request) {
	var sectors []string
	for _, v := range r.URL.Query()["sector"] {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				sectors = append(sectors, s)
			}
		}
	}
	res, err := c.Service.ResolveMaxRooms(r.Context(), sectors)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, res)
}

// Compatibility godoc
// @Summary Check whether two sectors may share a supervisor
// @Tags supervision
// @Produce json
// @Param a query string true "First sector ID"
// @Param b query string true "Second sector ID"
// @Success 200 {object} controllers.CompatibilitySuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /supervision/compatibility [get]
func (c *SupervisionController) Compatibility(w http.ResponseWriter, r *http.Request) {
	a, b := r.URL.Query().Get("a"), r.URL.Query().Get("b")
	ok, err := c.Service.SectorsCompatible(r.Context(), a, b)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, CompatibilityResponse{SectorA: a, SectorB: b, Compatible: ok})
}

// Conflicts godoc
// @Summary Detect conflicting rules in the catalog
// @Tags rules
// @Produce json
// @Success 200 {object} controllers.ConflictsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (catalog holds an invalid rule)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rules/conflicts [get]
func (c *SupervisionController) Conflicts(w http.ResponseWriter, r *http.Request) {
	conflicts, err := c.Service.DetectConflicts(r.Context())
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, conflicts)
}
