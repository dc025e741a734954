package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"hotel-booking/domain"
	"hotel-booking/middleware"
	"hotel-booking/services"
	"hotel-booking/utils"
)

type HotelController struct {
	CatalogSvc *services.CatalogService
	SearchSvc  *services.AvailabilityService
}

func NewHotelController(catalog *services.CatalogService, search *services.AvailabilityService) *HotelController {
	return &HotelController{CatalogSvc: catalog, SearchSvc: search}
}

func queryFloat(c *gin.Context, key string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, domain.ValidationError{Field: key, Msg: "must be a number"}
	}
	return &v, nil
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, domain.ValidationError{Field: key, Msg: "must be a non-negative integer"}
	}
	return v, nil
}

func hotelQuery(c *gin.Context) (services.HotelQuery, error) {
	q := services.HotelQuery{
		City: strings.TrimSpace(c.Query("city")),
		Type: strings.TrimSpace(c.Query("type")),
	}
	if raw := strings.TrimSpace(c.Query("featured")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return q, domain.ValidationError{Field: "featured", Msg: "must be true or false"}
		}
		q.Featured = &v
	}
	var err error
	if q.MinPrice, err = queryFloat(c, "min"); err != nil {
		return q, err
	}
	if q.MaxPrice, err = queryFloat(c, "max"); err != nil {
		return q, err
	}
	if q.Limit, err = queryInt(c, "limit"); err != nil {
		return q, err
	}
	return q, nil
}

func (ctrl *HotelController) ListHotels(c *gin.Context) {
	q, err := hotelQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}
	hotels, err := ctrl.CatalogSvc.ListHotels(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hotels)
}

func searchQuery(c *gin.Context) (services.SearchQuery, error) {
	q := services.SearchQuery{Destination: strings.TrimSpace(c.Query("destination"))}
	var err error
	if q.Start, err = services.ParseDay(c.Query("startDate")); err != nil {
		return q, domain.ValidationError{Field: "startDate", Msg: "must be YYYY-MM-DD", Err: err}
	}
	if q.End, err = services.ParseDay(c.Query("endDate")); err != nil {
		return q, domain.ValidationError{Field: "endDate", Msg: "must be YYYY-MM-DD", Err: err}
	}
	adults, err := queryInt(c, "adult")
	if err != nil {
		return q, err
	}
	children, err := queryInt(c, "children")
	if err != nil {
		return q, err
	}
	q.Occupants = adults + children
	if q.Rooms, err = queryInt(c, "room"); err != nil {
		return q, err
	}
	return q, nil
}

// Search answers GET /hotels/search with hotels that have free units for the stay.
func (ctrl *HotelController) Search(c *gin.Context) {
	q, err := searchQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}
	hotels, err := ctrl.SearchSvc.FindAvailable(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hotels)
}

func (ctrl *HotelController) GetHotel(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	h, err := ctrl.CatalogSvc.GetHotel(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, h)
}

func (ctrl *HotelController) HotelRooms(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	rooms, err := ctrl.CatalogSvc.HotelRooms(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (ctrl *HotelController) CountByCity(c *gin.Context) {
	counts, err := ctrl.CatalogSvc.CountByCity(c.Request.Context(), strings.Split(c.Query("cities"), ","))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, counts)
}

func (ctrl *HotelController) CountByType(c *gin.Context) {
	counts, err := ctrl.CatalogSvc.CountByType(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, counts)
}

func (ctrl *HotelController) CreateHotel(c *gin.Context) {
	var in services.HotelInput
	if !bindJSON(c, &in) {
		return
	}
	h, err := ctrl.CatalogSvc.CreateHotel(c.Request.Context(), middleware.IdentityFrom(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, h)
}

func (ctrl *HotelController) UpdateHotel(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var in services.HotelInput
	if !bindJSON(c, &in) {
		return
	}
	h, err := ctrl.CatalogSvc.UpdateHotel(c.Request.Context(), middleware.IdentityFrom(c), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, h)
}

func (ctrl *HotelController) DeleteHotel(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.CatalogSvc.DeleteHotel(c.Request.Context(), middleware.IdentityFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "hotel has been deleted"})
}
