package meetings

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

type MeetingMongoRepository struct {
	Collection *mongo.Collection
}

func NewMeetingMongoRepository(db *mongo.Client, dbName string) contracts.MeetingRepository {
	return &MeetingMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionMeetings),
	}
}

func (r *MeetingMongoRepository) Insert(ctx context.Context, meeting *models.MDTMeeting) (*models.MDTMeeting, error) {
	_, err := r.Collection.InsertOne(ctx, meeting)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	return meeting, nil
}

func (r *MeetingMongoRepository) FindByID(ctx context.Context, meetingID string) (*models.MDTMeeting, error) {
	var meeting models.MDTMeeting
	err := r.Collection.FindOne(ctx, bson.M{"_id": meetingID}).Decode(&meeting)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &meeting, nil
}

func (r *MeetingMongoRepository) Update(ctx context.Context, meeting *models.MDTMeeting) error {
	filter := bson.M{"_id": meeting.ID}
	update := bson.M{"$set": meeting}

	_, err := r.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(false))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
