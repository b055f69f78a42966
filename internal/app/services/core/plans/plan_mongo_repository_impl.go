package plans

import (
	"context"
	"mdtcare-service/internal/app/contracts"
	"mdtcare-service/internal/app/models"
	"mdtcare-service/internal/pkg/constvars"
	"mdtcare-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PlanMongoRepository struct {
	Collection *mongo.Collection
}

func NewPlanMongoRepository(db *mongo.Client, dbName string) contracts.PlanRepository {
	return &PlanMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionSpecialtyPlans),
	}
}

func (r *PlanMongoRepository) Insert(ctx context.Context, plan *models.SpecialtyTreatmentPlan) (*models.SpecialtyTreatmentPlan, error) {
	_, err := r.Collection.InsertOne(ctx, plan)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	return plan, nil
}

func (r *PlanMongoRepository) FindByID(ctx context.Context, planID string) (*models.SpecialtyTreatmentPlan, error) {
	var plan models.SpecialtyTreatmentPlan
	err := r.Collection.FindOne(ctx, bson.M{"_id": planID}).Decode(&plan)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &plan, nil
}

func (r *PlanMongoRepository) FindByPatientAndMeeting(ctx context.Context, patientID, meetingID string) ([]models.SpecialtyTreatmentPlan, error) {
	filter := bson.M{"patientId": patientID}
	if meetingID != "" {
		filter["meetingId"] = meetingID
	}
	return r.findPlans(ctx, filter)
}

// FindActiveBySpecialty returns the live (not superseded, not rejected) plan
// for one specialty within a patient/meeting, used for duplicate detection.
func (r *PlanMongoRepository) FindActiveBySpecialty(ctx context.Context, patientID, specialty, meetingID string) (*models.SpecialtyTreatmentPlan, error) {
	filter := bson.M{
		"patientId": patientID,
		"specialty": specialty,
		"status": bson.M{
			"$nin": []string{string(models.PlanSuperseded), string(models.PlanRejected)},
		},
	}
	if meetingID != "" {
		filter["meetingId"] = meetingID
	}

	var plan models.SpecialtyTreatmentPlan
	err := r.Collection.FindOne(ctx, filter).Decode(&plan)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &plan, nil
}

func (r *PlanMongoRepository) FindPendingForReview(ctx context.Context, excludeSubmitterID string) ([]models.SpecialtyTreatmentPlan, error) {
	filter := bson.M{
		"status":         string(models.PlanSubmitted),
		"approvalStatus": string(models.ApprovalPending),
		"submittedBy.id": bson.M{"$ne": excludeSubmitterID},
	}
	return r.findPlans(ctx, filter)
}

func (r *PlanMongoRepository) Update(ctx context.Context, plan *models.SpecialtyTreatmentPlan) error {
	filter := bson.M{"_id": plan.ID}
	update := bson.M{"$set": plan}

	_, err := r.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(false))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *PlanMongoRepository) findPlans(ctx context.Context, filter bson.M) ([]models.SpecialtyTreatmentPlan, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	plans := make([]models.SpecialtyTreatmentPlan, 0)
	if err := cursor.All(ctx, &plans); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return plans, nil
}
