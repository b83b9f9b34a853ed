package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Attendance is one (event, user) membership record. The record existing IS
// the attending state; the count is always derived from the set, never kept
// as a separate counter.
type Attendance struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	EventID  string             `bson:"event_id" json:"event_id"`
	UserID   uuid.UUID          `bson:"user_id" json:"user_id"`
	JoinedAt time.Time          `bson:"joined_at" json:"joined_at"`
}

type AttendanceRepo interface {
	UpsertAttendance(ctx context.Context, eventID string, userID uuid.UUID, joinedAt time.Time) error
	DeleteAttendance(ctx context.Context, eventID string, userID uuid.UUID) error
	CountAttendance(ctx context.Context, eventID string) (int64, error)
	IsAttending(ctx context.Context, eventID string, userID uuid.UUID) (bool, error)
	DeleteAttendanceByEvent(ctx context.Context, eventID string) error
}

// UpsertAttendance is idempotent; re-joining refreshes joined_at on purpose.
func (mdb *MongodbRepo) UpsertAttendance(ctx context.Context, eventID string, userID uuid.UUID, joinedAt time.Time) error {
	col, err := mdb.GetCollection(AttendanceColName)
	if err != nil {
		return err
	}

	filter := bson.M{"event_id": eventID, "user_id": userID}
	update := bson.M{
		"$set": bson.M{"joined_at": joinedAt},
		"$setOnInsert": bson.M{
			"event_id": eventID,
			"user_id":  userID,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := col.UpdateOne(ctx, filter, update, opts); err != nil {
		return storeErr("join event", err)
	}
	return nil
}

// DeleteAttendance is idempotent; deleting an absent record is not an error.
func (mdb *MongodbRepo) DeleteAttendance(ctx context.Context, eventID string, userID uuid.UUID) error {
	col, err := mdb.GetCollection(AttendanceColName)
	if err != nil {
		return err
	}

	if _, err := col.DeleteOne(ctx, bson.M{"event_id": eventID, "user_id": userID}); err != nil {
		return storeErr("leave event", err)
	}
	return nil
}

func (mdb *MongodbRepo) CountAttendance(ctx context.Context, eventID string) (int64, error) {
	col, err := mdb.GetCollection(AttendanceColName)
	if err != nil {
		return 0, err
	}

	count, err := col.CountDocuments(ctx, bson.M{"event_id": eventID})
	if err != nil {
		return 0, storeErr("count attendees", err)
	}
	return count, nil
}

func (mdb *MongodbRepo) IsAttending(ctx context.Context, eventID string, userID uuid.UUID) (bool, error) {
	col, err := mdb.GetCollection(AttendanceColName)
	if err != nil {
		return false, err
	}

	count, err := col.CountDocuments(ctx, bson.M{"event_id": eventID, "user_id": userID}, options.Count().SetLimit(1))
	if err != nil {
		return false, storeErr("check attendance", err)
	}
	return count > 0, nil
}

func (mdb *MongodbRepo) DeleteAttendanceByEvent(ctx context.Context, eventID string) error {
	col, err := mdb.GetCollection(AttendanceColName)
	if err != nil {
		return err
	}

	if _, err := col.DeleteMany(ctx, bson.M{"event_id": eventID}); err != nil {
		return storeErr("delete event attendance", err)
	}
	return nil
}
