package controllers

import (
	"log/slog"
	"net/http"

	"orplanning/internal/delivery/http/helpers"
	"orplanning/internal/domain"
)

// ListSectorsSuccessResponse is the success response envelope for GET /sectors (200).
type ListSectorsSuccessResponse struct {
	Data  []*domain.Sector  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListRoomsSuccessResponse is the success response envelope for GET /rooms (200).
type ListRoomsSuccessResponse struct {
	Data  []*domain.Room    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type SectorController struct {
	Logger  *slog.Logger
	Service domain.SectorService
}

func NewSectorController(logger *slog.Logger, svc domain.SectorService) *SectorController {
	return &SectorController{
		Logger:  logger,
		Service: svc,
	}
}

// ListSectors godoc
// @Summary List sectors
// @Tags layout
// @Produce json
// @Success 200 {object} controllers.ListSectorsSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sectors [get]
func (c *SectorController) ListSectors(w http.ResponseWriter, r *http.Request) {
	sectors, err := c.Service.ListSectors(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sectors)
}

// ListRooms godoc
// @Summary List operating rooms
// @Tags layout
// @Produce json
// @Success 200 {object} controllers.ListRoomsSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rooms [get]
func (c *SectorController) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := c.Service.ListRooms(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rooms)
}
