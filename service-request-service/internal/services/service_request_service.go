package services

import (
	"car-care-app/service-request-service/internal/models"
	"car-care-app/service-request-service/internal/repository"
	"context"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	activeCountCacheKey = "service_requests:activeCount"
	activeCountCacheTTL = time.Minute
)

type ServiceRequestService interface {
	CreateRequest(ctx context.Context, request *models.ServiceRequest) error
	GetRequestsByCustomer(ctx context.Context, customerID string) ([]models.ServiceRequest, error)
	GetRequestsByProvider(ctx context.Context, providerID string) ([]models.ServiceRequest, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.RequestStatus, providerID string) (*models.ServiceRequest, error)
	GetActiveRequestCount(ctx context.Context) (int64, error)
}

type serviceRequestService struct {
	repo  repository.ServiceRequestRepository
	redis *redis.Client
}

func NewServiceRequestService(repo repository.ServiceRequestRepository, rdb *redis.Client) ServiceRequestService {
	return &serviceRequestService{repo: repo, redis: rdb}
}

// CreateRequest persists a new request. The customer id is set by the handler
// from the authenticated caller; status is always pending and priority
// defaults to medium regardless of the incoming payload.
func (s *serviceRequestService) CreateRequest(ctx context.Context, request *models.ServiceRequest) error {
	request.Status = models.StatusPending
	request.ProviderID = nil
	if request.Priority == "" {
		request.Priority = models.PriorityMedium
	}
	if !request.Priority.Valid() {
		return models.ErrValidation
	}
	if err := request.Validate(); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, request); err != nil {
		return err
	}
	s.invalidateStats(ctx)
	return nil
}

func (s *serviceRequestService) GetRequestsByCustomer(ctx context.Context, customerID string) ([]models.ServiceRequest, error) {
	return s.repo.GetByCustomerID(ctx, customerID)
}

func (s *serviceRequestService) GetRequestsByProvider(ctx context.Context, providerID string) ([]models.ServiceRequest, error) {
	return s.repo.GetByProviderID(ctx, providerID)
}

// UpdateStatus overwrites the status with no transition checks and claims the
// request for the acting provider, even when another provider already holds
// it. "Whoever touches it last owns it."
func (s *serviceRequestService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.RequestStatus, providerID string) (*models.ServiceRequest, error) {
	if !status.Valid() {
		return nil, models.ErrInvalidStatus
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status, providerID)
	if err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)
	return updated, nil
}

// GetActiveRequestCount serves the dashboard counter through a short-lived
// Redis cache. Cache errors degrade to a direct count.
func (s *serviceRequestService) GetActiveRequestCount(ctx context.Context) (int64, error) {
	if cached, err := s.redis.Get(ctx, activeCountCacheKey).Result(); err == nil {
		if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
			return count, nil
		}
	}

	count, err := s.repo.CountByStatuses(ctx, models.ActiveStatuses)
	if err != nil {
		return 0, err
	}

	if err := s.redis.Set(ctx, activeCountCacheKey, strconv.FormatInt(count, 10), activeCountCacheTTL).Err(); err != nil {
		log.Printf("Failed to cache active request count: %v", err)
	}
	return count, nil
}

func (s *serviceRequestService) invalidateStats(ctx context.Context) {
	if err := s.redis.Del(ctx, activeCountCacheKey).Err(); err != nil {
		log.Printf("Failed to invalidate cache: %v", err)
	}
}
