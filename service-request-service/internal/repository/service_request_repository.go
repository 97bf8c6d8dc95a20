package repository

import (
	"car-care-app/service-request-service/internal/models"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const collectionName = "service_requests"

type ServiceRequestRepository interface {
	Create(ctx context.Context, request *models.ServiceRequest) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.ServiceRequest, error)
	GetByCustomerID(ctx context.Context, customerID string) ([]models.ServiceRequest, error)
	GetByProviderID(ctx context.Context, providerID string) ([]models.ServiceRequest, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.RequestStatus, providerID string) (*models.ServiceRequest, error)
	CountByStatuses(ctx context.Context, statuses []models.RequestStatus) (int64, error)
}

type serviceRequestRepository struct {
	collection *mongo.Collection
}

func NewServiceRequestRepository(db *mongo.Database) ServiceRequestRepository {
	return &serviceRequestRepository{collection: db.Collection(collectionName)}
}

func (r *serviceRequestRepository) Create(ctx context.Context, request *models.ServiceRequest) error {
	request.ID = primitive.NewObjectID()
	request.CreatedAt = time.Now()
	request.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, request)
	return err
}

func (r *serviceRequestRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ServiceRequest, error) {
	var request models.ServiceRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *serviceRequestRepository) GetByCustomerID(ctx context.Context, customerID string) ([]models.ServiceRequest, error) {
	return r.find(ctx, bson.M{"customer_id": customerID})
}

func (r *serviceRequestRepository) GetByProviderID(ctx context.Context, providerID string) ([]models.ServiceRequest, error) {
	return r.find(ctx, bson.M{"provider_id": providerID})
}

func (r *serviceRequestRepository) find(ctx context.Context, filter bson.M) ([]models.ServiceRequest, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []models.ServiceRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	if requests == nil {
		requests = []models.ServiceRequest{}
	}
	return requests, nil
}

// UpdateStatus sets the new status and claims the request for the acting
// provider in one document update.
func (r *serviceRequestRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.RequestStatus, providerID string) (*models.ServiceRequest, error) {
	update := bson.M{
		"$set": bson.M{
			"status":      status,
			"provider_id": providerID,
			"updated_at":  time.Now(),
		},
	}
	result, err := r.collection.UpdateByID(ctx, id, update)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, models.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *serviceRequestRepository) CountByStatuses(ctx context.Context, statuses []models.RequestStatus) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"status": bson.M{"$in": statuses}})
}
