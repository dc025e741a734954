package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-booking/middleware"
	"hotel-booking/models"
	"hotel-booking/services"
	"hotel-booking/utils"
)

type UserController struct {
	UserSvc *services.UserService
}

func NewUserController(svc *services.UserService) *UserController {
	return &UserController{UserSvc: svc}
}

// userView adds the admin flag to the public profile for admin and self views.
type userView struct {
	models.Profile
	IsAdmin bool `json:"isAdmin"`
}

func viewOf(u *models.User) userView {
	return userView{Profile: u.Profile(), IsAdmin: u.IsAdmin}
}

func (ctrl *UserController) GetUsers(c *gin.Context) {
	users, err := ctrl.UserSvc.List(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]userView, 0, len(users))
	for i := range users {
		out = append(out, viewOf(&users[i]))
	}
	utils.JSONSuccess(c, http.StatusOK, out)
}

func (ctrl *UserController) GetUser(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	u, err := ctrl.UserSvc.Get(c.Request.Context(), middleware.IdentityFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, viewOf(u))
}

func (ctrl *UserController) UpdateUser(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var in services.UserUpdateInput
	if !bindJSON(c, &in) {
		return
	}
	u, err := ctrl.UserSvc.Update(c.Request.Context(), middleware.IdentityFrom(c), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, viewOf(u))
}

func (ctrl *UserController) DeleteUser(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.UserSvc.Delete(c.Request.Context(), middleware.IdentityFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "user has been deleted"})
}

func (ctrl *UserController) GetSavedHotels(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	hotels, err := ctrl.UserSvc.SavedHotels(c.Request.Context(), middleware.IdentityFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hotels)
}

func (ctrl *UserController) SaveHotel(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	hotelID, ok := uintParam(c, "hotelId")
	if !ok {
		return
	}
	if err := ctrl.UserSvc.SaveHotel(c.Request.Context(), middleware.IdentityFrom(c), id, hotelID); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "hotel saved"})
}

func (ctrl *UserController) UnsaveHotel(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	hotelID, ok := uintParam(c, "hotelId")
	if !ok {
		return
	}
	if err := ctrl.UserSvc.UnsaveHotel(c.Request.Context(), middleware.IdentityFrom(c), id, hotelID); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "hotel removed from saved"})
}
