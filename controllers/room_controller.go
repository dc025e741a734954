package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-booking/middleware"
	"hotel-booking/services"
	"hotel-booking/utils"
)

type availabilityPayload struct {
	Dates []string `json:"dates" binding:"required,min=1"`
}

func (p availabilityPayload) days() ([]time.Time, error) {
	out := make([]time.Time, 0, len(p.Dates))
	for _, raw := range p.Dates {
		d, err := services.ParseDay(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

type RoomController struct {
	CatalogSvc      *services.CatalogService
	AvailabilitySvc *services.AvailabilityService
}

func NewRoomController(catalog *services.CatalogService, availability *services.AvailabilityService) *RoomController {
	return &RoomController{CatalogSvc: catalog, AvailabilitySvc: availability}
}

func (ctrl *RoomController) GetRooms(c *gin.Context) {
	rooms, err := ctrl.CatalogSvc.ListRooms(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (ctrl *RoomController) GetRoom(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	room, err := ctrl.CatalogSvc.GetRoom(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	hotelID, ok := uintParam(c, "hotelId")
	if !ok {
		return
	}
	var in services.RoomInput
	if !bindJSON(c, &in) {
		return
	}
	room, err := ctrl.CatalogSvc.CreateRoom(c.Request.Context(), middleware.IdentityFrom(c), hotelID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var in services.RoomInput
	if !bindJSON(c, &in) {
		return
	}
	room, err := ctrl.CatalogSvc.UpdateRoom(c.Request.Context(), middleware.IdentityFrom(c), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.CatalogSvc.DeleteRoom(c.Request.Context(), middleware.IdentityFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "room has been deleted"})
}

func unitParams(c *gin.Context) (uint, int, bool) {
	roomID, ok := uintParam(c, "roomId")
	if !ok {
		return 0, 0, false
	}
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid number")
		return 0, 0, false
	}
	return roomID, number, true
}

// ReserveDates blocks dates on one room number; a clash answers 409.
func (ctrl *RoomController) ReserveDates(c *gin.Context) {
	roomID, number, ok := unitParams(c)
	if !ok {
		return
	}
	var payload availabilityPayload
	if !bindJSON(c, &payload) {
		return
	}
	dates, err := payload.days()
	if err != nil {
		respondError(c, err)
		return
	}
	room, err := ctrl.AvailabilitySvc.Reserve(c.Request.Context(), middleware.IdentityFrom(c), roomID, number, dates)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ctrl *RoomController) ReleaseDates(c *gin.Context) {
	roomID, number, ok := unitParams(c)
	if !ok {
		return
	}
	var payload availabilityPayload
	if !bindJSON(c, &payload) {
		return
	}
	dates, err := payload.days()
	if err != nil {
		respondError(c, err)
		return
	}
	n, err := ctrl.AvailabilitySvc.Release(c.Request.Context(), middleware.IdentityFrom(c), roomID, number, dates)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"released": n})
}
