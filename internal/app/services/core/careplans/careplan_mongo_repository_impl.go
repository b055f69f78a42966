package careplans

import (
	"context"
	"mdtcare-service/internal/app/contracts"
	"mdtcare-service/internal/app/models"
	"mdtcare-service/internal/pkg/constvars"
	"mdtcare-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CarePlanMongoRepository struct {
	Collection *mongo.Collection
}

func NewCarePlanMongoRepository(db *mongo.Client, dbName string) contracts.CarePlanRepository {
	collection := db.Database(dbName).Collection(constvars.MongoCollectionHarmonizedPlans)

	// One document per harmonization version of a patient/meeting pair, so
	// two racing harmonize calls cannot both insert version N+1.
	collection.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{
			{Key: "patientId", Value: 1},
			{Key: "meetingId", Value: 1},
			{Key: "version", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})

	return &CarePlanMongoRepository{
		Collection: collection,
	}
}

func (r *CarePlanMongoRepository) Insert(ctx context.Context, plan *models.HarmonizedCarePlan) (*models.HarmonizedCarePlan, error) {
	_, err := r.Collection.InsertOne(ctx, plan)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, exceptions.ErrVersionConflict(err)
		}
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	return plan, nil
}

func (r *CarePlanMongoRepository) FindByID(ctx context.Context, carePlanID string) (*models.HarmonizedCarePlan, error) {
	var plan models.HarmonizedCarePlan
	err := r.Collection.FindOne(ctx, bson.M{"_id": carePlanID}).Decode(&plan)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &plan, nil
}

func (r *CarePlanMongoRepository) FindLatestByPatientAndMeeting(ctx context.Context, patientID, meetingID string) (*models.HarmonizedCarePlan, error) {
	filter := bson.M{
		"patientId": patientID,
		"meetingId": meetingID,
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "version", Value: -1}})

	var plan models.HarmonizedCarePlan
	err := r.Collection.FindOne(ctx, filter, opts).Decode(&plan)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &plan, nil
}

// UpdateWithRevision is the optimistic concurrency primitive: the filter
// includes the revision the caller read and the write bumps it, so of two
// writers that read the same document only the first matches; the second
// matches zero documents and the stale write is rejected.
func (r *CarePlanMongoRepository) UpdateWithRevision(ctx context.Context, plan *models.HarmonizedCarePlan, expectedRevision int) error {
	plan.Revision = expectedRevision + 1
	filter := bson.M{
		"_id":      plan.ID,
		"revision": expectedRevision,
	}
	update := bson.M{"$set": plan}

	result, err := r.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(false))
	if err != nil {
		plan.Revision = expectedRevision
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	if result.MatchedCount == 0 {
		plan.Revision = expectedRevision
		return exceptions.ErrVersionConflict(nil)
	}
	return nil
}

func (r *CarePlanMongoRepository) MarkSuperseded(ctx context.Context, carePlanID string, expectedRevision int) error {
	filter := bson.M{
		"_id":      carePlanID,
		"revision": expectedRevision,
	}
	update := bson.M{
		"$set": bson.M{
			"status":    string(models.CarePlanSuperseded),
			"updatedAt": time.Now().UTC(),
		},
		"$inc": bson.M{"revision": 1},
	}

	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	if result.MatchedCount == 0 {
		return exceptions.ErrVersionConflict(nil)
	}
	return nil
}
