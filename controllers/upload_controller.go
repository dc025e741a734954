package controllers

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"

	"hotel-booking/services"
	"hotel-booking/utils"
)

type uploadPayload struct {
	Data   string `json:"data" binding:"required"`
	Folder string `json:"folder"`
}

type UploadController struct {
	ImageSvc *services.ImageService
}

func NewUploadController(svc *services.ImageService) *UploadController {
	return &UploadController{ImageSvc: svc}
}

// Upload stores a base64 image and answers with its public /uploads URL.
func (ctrl *UploadController) Upload(c *gin.Context) {
	var payload uploadPayload
	if !bindJSON(c, &payload) {
		return
	}
	rel, err := ctrl.ImageSvc.SaveBase64(payload.Data, payload.Folder)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, gin.H{"url": path.Join("/uploads", rel)})
}
