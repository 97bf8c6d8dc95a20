package handler

import (
	"car-care-app/service-request-service/internal/models"
	"car-care-app/service-request-service/internal/services"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ServiceRequestHandler struct {
	service services.ServiceRequestService
}

func NewServiceRequestHandler(service services.ServiceRequestService) *ServiceRequestHandler {
	return &ServiceRequestHandler{service: service}
}

type createRequestBody struct {
	Vehicle       models.Vehicle         `json:"vehicle" binding:"required"`
	ServiceType   string                 `json:"serviceType" binding:"required"`
	Description   string                 `json:"description" binding:"required"`
	ScheduledDate *time.Time             `json:"scheduledDate"`
	Priority      models.RequestPriority `json:"priority"`
}

type updateStatusBody struct {
	Status models.RequestStatus `json:"status" binding:"required"`
}

func (h *ServiceRequestHandler) CreateRequest(c *gin.Context) {
	var body createRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}

	// customer identity comes from the auth middleware, never the body
	request := &models.ServiceRequest{
		CustomerID:    c.GetString("userID"),
		Vehicle:       body.Vehicle,
		ServiceType:   body.ServiceType,
		Description:   body.Description,
		ScheduledDate: body.ScheduledDate,
		Priority:      body.Priority,
	}

	if err := h.service.CreateRequest(c.Request.Context(), request); err != nil {
		if errors.Is(err, models.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, request)
}

func (h *ServiceRequestHandler) GetCustomerRequests(c *gin.Context) {
	requests, err := h.service.GetRequestsByCustomer(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (h *ServiceRequestHandler) GetProviderRequests(c *gin.Context) {
	requests, err := h.service.GetRequestsByProvider(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (h *ServiceRequestHandler) UpdateStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid ID"})
		return
	}

	var body updateStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}

	updated, err := h.service.UpdateStatus(c.Request.Context(), id, body.Status, c.GetString("userID"))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Service request not found"})
		case errors.Is(err, models.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ServiceRequestHandler) GetActiveRequestCount(c *gin.Context) {
	count, err := h.service.GetActiveRequestCount(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
