package controllers

import (
	"log/slog"
	"net/http"

	"orplanning/internal/delivery/http/helpers"
	"orplanning/internal/domain"
)

// RuleRequest is the request body for POST /rules and PUT /rules/{ruleID}.
// Active defaults to true when omitted.
type RuleRequest struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Kind        domain.RuleKind       `json:"kind"`
	SectorID    string                `json:"sector_id"`
	Active      *bool                 `json:"active"`
	Priority    int                   `json:"priority"`
	Conditions  domain.RuleConditions `json:"conditions"`
}

// Validate implements Validator. Field level checks on the rule itself run in the service.
func (req RuleRequest) Validate() []string {
	var errs []string
	if req.Name == "" {
		errs = append(errs, "name is required")
	}
	if req.Kind == "" {
		errs = append(errs, "kind is required")
	}
	return errs
}

func (req RuleRequest) toRule(id string) *domain.SupervisionRule {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return &domain.SupervisionRule{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Kind:        req.Kind,
		SectorID:    req.SectorID,
		Active:      active,
		Priority:    req.Priority,
		Conditions:  req.Conditions,
	}
}

// RuleSuccessResponse is the success response envelope for a single rule.
type RuleSuccessResponse struct {
	Data  *domain.SupervisionRule `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// ListRulesResponse is the data of GET /rules.
type ListRulesResponse struct {
	Items      []*domain.SupervisionRule `json:"items"`
	Pagination helpers.PaginationMeta    `json:"pagination"`
}

// ListRulesSuccessResponse is the success response envelope for GET /rules (200).
type ListRulesSuccessResponse struct {
	Data  ListRulesResponse `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type RuleController struct {
	Logger  *slog.Logger
	Service domain.RuleService
}

func NewRuleController(logger *slog.Logger, svc domain.RuleService) *RuleController {
	return &RuleController{
		Logger:  logger,
		Service: svc,
	}
}

func (c *RuleController) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := helpers.StatusForError(err)
	if status == http.StatusInternalServerError {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
	helpers.WriteJSONError(w, status, code, err.Error())
}

// CreateRule godoc
// @Summary Create a supervision rule
// @Description Adds a rule to the catalog. The rule is validated before it is stored; an invalid rule is rejected with the offending field in the message.
// @Tags rules
// @Accept json
// @Produce json
// @Param rule body RuleRequest true "Rule definition"
// @Success 201 {object} controllers.RuleSuccessResponse "data contains the created rule"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rules [post]
func (c *RuleController) CreateRule(w http.ResponseWriter, r *http.Request) {
	var req RuleRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	rule := req.toRule("")
	if err := c.Service.CreateRule(r.Context(), rule); err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, rule)
}

// ListRules godoc
// @Summary List supervision rules
// @Description Returns the catalog in insertion order, paginated.
// @Tags rules
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListRulesSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rules [get]
func (c *RuleController) ListRules(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	rules, total, err := c.Service.ListRules(r.Context(), params)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	meta := helpers.NewPaginationMeta(params, total)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListRulesResponse{Items: rules, Pagination: meta})
}

// GetRule godoc
// @Summary Get a supervision rule
// @Tags rules
// @Produce json
// @Param ruleID path string true "Rule ID"
// @Success 200 {object} controllers.RuleSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rules/{ruleID} [get]
func (c *RuleController) GetRule(w http.ResponseWriter, r *http.Request) {
	rule, err := c.Service.GetRule(r.Context(), r.PathValue("ruleID"))
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rule)
}

// UpdateRule godoc
// @Summary Replace a supervision rule
// @Tags rules
// @Accept json
// @Produce json
// @Param ruleID path string true "Rule ID"
// @Param rule body RuleRequest true "Rule definition"
// @Success 200 {object} controllers.RuleSuccessResponse "data contains the stored rule"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rules/{ruleID} [put]
func (c *RuleController) UpdateRule(w http.ResponseWriter, r *http.Request) {
	var req RuleRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	stored, err := c.Service.UpdateRule(r.Context(), req.toRule(r.PathValue("ruleID")))
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stored)
}

// DeleteRule godoc
// @Summary Delete a supervision rule
// @Tags rules
// @Param ruleID path string true "Rule ID"
// @Success 204 "No Content"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rules/{ruleID} [delete]
func (c *RuleController) DeleteRule(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.DeleteRule(r.Context(), r.PathValue("ruleID")); err != nil {
		c.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
