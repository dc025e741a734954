package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-booking/middleware"
	"hotel-booking/services"
	"hotel-booking/utils"
)

type cancelNumberPayload struct {
	Number *int `json:"number" binding:"required"`
}

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	userID, ok := uintParam(c, "userId")
	if !ok {
		return
	}
	var in services.BookingInput
	if !bindJSON(c, &in) {
		return
	}
	b, err := ctrl.BookingSvc.Create(c.Request.Context(), middleware.IdentityFrom(c), userID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, b)
}

func (ctrl *BookingController) GetBookings(c *gin.Context) {
	list, err := ctrl.BookingSvc.ListAll(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (ctrl *BookingController) GetBookingDetails(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	b, err := ctrl.BookingSvc.GetByID(c.Request.Context(), middleware.IdentityFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, b)
}

func (ctrl *BookingController) GetUserBookings(c *gin.Context) {
	userID, ok := uintParam(c, "userId")
	if !ok {
		return
	}
	list, err := ctrl.BookingSvc.ListByUser(c.Request.Context(), middleware.IdentityFrom(c), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (ctrl *BookingController) GetUpcomingBookings(c *gin.Context) {
	userID, ok := uintParam(c, "userId")
	if !ok {
		return
	}
	list, err := ctrl.BookingSvc.ListUpcoming(c.Request.Context(), middleware.IdentityFrom(c), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (ctrl *BookingController) GetOwnerBookings(c *gin.Context) {
	ownerID, ok := uintParam(c, "userId")
	if !ok {
		return
	}
	list, err := ctrl.BookingSvc.ListForOwner(c.Request.Context(), middleware.IdentityFrom(c), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (ctrl *BookingController) CancelBooking(c *gin.Context) {
	bookingID, ok := uintParam(c, "bookingId")
	if !ok {
		return
	}
	userID, ok := uintParam(c, "userId")
	if !ok {
		return
	}
	if err := ctrl.BookingSvc.CancelEntire(c.Request.Context(), middleware.IdentityFrom(c), bookingID, userID); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "booking has been cancelled"})
}

// CancelRoomNumber drops one room number from a booking. The response data is
// null when the booking had no other rooms and was removed.
func (ctrl *BookingController) CancelRoomNumber(c *gin.Context) {
	bookingID, ok := uintParam(c, "bookingId")
	if !ok {
		return
	}
	userID, ok := uintParam(c, "userId")
	if !ok {
		return
	}
	var payload cancelNumberPayload
	if !bindJSON(c, &payload) {
		return
	}
	b, err := ctrl.BookingSvc.CancelRoomNumber(c.Request.Context(), middleware.IdentityFrom(c), bookingID, userID, payload.Number)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, b)
}
