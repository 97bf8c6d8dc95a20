package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"car-care-app/service-request-service/internal/utils"
)

type RequestStatus string

const (
	StatusPending    RequestStatus = "pending"
	StatusScheduled  RequestStatus = "scheduled"
	StatusInProgress RequestStatus = "in-progress"
	StatusCompleted  RequestStatus = "completed"
	StatusCancelled  RequestStatus = "cancelled"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ActiveStatuses are the states counted as open work on the dashboard.
var ActiveStatuses = []RequestStatus{StatusPending, StatusScheduled, StatusInProgress}

type RequestPriority string

const (
	PriorityLow    RequestPriority = "low"
	PriorityMedium RequestPriority = "medium"
	PriorityHigh   RequestPriority = "high"
	PriorityUrgent RequestPriority = "urgent"
)

func (p RequestPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Vehicle struct {
	Make  string `bson:"make" json:"make" validate:"required"`
	Model string `bson:"model" json:"model" validate:"required"`
	Year  int    `bson:"year" json:"year" validate:"required"`
	VIN   string `bson:"vin,omitempty" json:"vin,omitempty"`
}

type ServiceRequest struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerID    string             `bson:"customer_id" json:"customerId"`
	ProviderID    *string            `bson:"provider_id,omitempty" json:"providerId,omitempty"`
	Vehicle       Vehicle            `bson:"vehicle" json:"vehicle" validate:"required"`
	ServiceType   string             `bson:"service_type" json:"serviceType" validate:"required"`
	Description   string             `bson:"description" json:"description" validate:"required"`
	Status        RequestStatus      `bson:"status" json:"status"`
	Priority      RequestPriority    `bson:"priority" json:"priority"`
	ScheduledDate *time.Time         `bson:"scheduled_date,omitempty" json:"scheduledDate,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Validate checks the required fields of a new request.
func (sr ServiceRequest) Validate() error {
	validate := utils.GetValidator()
	if err := validate.Struct(sr); err != nil {
		errs := utils.ParseErrors(err)
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(errs, " // "))
	}
	return nil
}
