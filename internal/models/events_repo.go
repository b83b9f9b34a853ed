package models

import (
	"context"
	"time"

	"github.com/4lejanddr0/communityevents/internal/apperr"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// eventDoc pairs the store-assigned document id with the event fields. The
// hex id is copied back onto Event.ID after every read, the same way the
// document id never lives inside the document itself.
type eventDoc struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Event `bson:",inline"`
}

func (d *eventDoc) toEvent() *Event {
	ev := d.Event
	ev.ID = d.ID.Hex()
	return &ev
}

func parseEventID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperr.New(apperr.InvalidArgument, "invalid event id format")
	}
	return oid, nil
}

func (mdb *MongodbRepo) CreateEvent(ctx context.Context, event *Event) (string, error) {
	col, err := mdb.GetCollection(EventsColName)
	if err != nil {
		return "", err
	}

	res, err := col.InsertOne(ctx, &eventDoc{Event: *event})
	if err != nil {
		return "", storeErr("insert event", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", apperr.New(apperr.Internal, "store returned an unexpected id type")
	}
	return oid.Hex(), nil
}

func (mdb *MongodbRepo) GetEventByID(ctx context.Context, id string) (*Event, error) {
	oid, err := parseEventID(id)
	if err != nil {
		return nil, err
	}

	col, err := mdb.GetCollection(EventsColName)
	if err != nil {
		return nil, err
	}

	var doc eventDoc
	if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.New(apperr.NotFound, "event not found")
		}
		return nil, storeErr("get event", err)
	}

	return doc.toEvent(), nil
}

// ReplaceEvent overwrites the whole document. Callers are expected to send a
// complete event; omitted fields end up wiped.
func (mdb *MongodbRepo) ReplaceEvent(ctx context.Context, event *Event) error {
	oid, err := parseEventID(event.ID)
	if err != nil {
		return err
	}

	col, err := mdb.GetCollection(EventsColName)
	if err != nil {
		return err
	}

	res, err := col.ReplaceOne(ctx, bson.M{"_id": oid}, &eventDoc{Event: *event})
	if err != nil {
		return storeErr("replace event", err)
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "event not found")
	}
	return nil
}

func (mdb *MongodbRepo) DeleteEvent(ctx context.Context, id string) error {
	oid, err := parseEventID(id)
	if err != nil {
		return err
	}

	col, err := mdb.GetCollection(EventsColName)
	if err != nil {
		return err
	}

	if _, err := col.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return storeErr("delete event", err)
	}
	return nil
}

func (mdb *MongodbRepo) listEvents(ctx context.Context, filter bson.M, sort bson.D, limit int64) ([]*Event, error) {
	col, err := mdb.GetCollection(EventsColName)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(sort).SetLimit(limit)
	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, storeErr("list events", err)
	}
	defer cursor.Close(ctx)

	events := []*Event{}
	for cursor.Next(ctx) {
		var doc eventDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, storeErr("decode event", err)
		}
		events = append(events, doc.toEvent())
	}
	if err := cursor.Err(); err != nil {
		return nil, storeErr("list events", err)
	}

	return events, nil
}

func (mdb *MongodbRepo) ListPublicUpcoming(ctx context.Context, now time.Time, limit int64) ([]*Event, error) {
	return mdb.listEvents(ctx,
		bson.M{"public": true, "end_time": bson.M{"$gt": now}},
		bson.D{{Key: "end_time", Value: 1}},
		limit,
	)
}

func (mdb *MongodbRepo) ListPublicPast(ctx context.Context, now time.Time, limit int64) ([]*Event, error) {
	return mdb.listEvents(ctx,
		bson.M{"public": true, "end_time": bson.M{"$lt": now}},
		bson.D{{Key: "end_time", Value: -1}},
		limit,
	)
}

func (mdb *MongodbRepo) ListByCreator(ctx context.Context, creatorID uuid.UUID, limit int64) ([]*Event, error) {
	return mdb.listEvents(ctx,
		bson.M{"creator_id": creatorID},
		bson.D{{Key: "start_time", Value: -1}},
		limit,
	)
}

func (mdb *MongodbRepo) ListPastByCreator(ctx context.Context, creatorID uuid.UUID, now time.Time, limit int64) ([]*Event, error) {
	return mdb.listEvents(ctx,
		bson.M{"creator_id": creatorID, "end_time": bson.M{"$lt": now}},
		bson.D{{Key: "end_time", Value: -1}},
		limit,
	)
}

// EnsureIndexes creates the composite indexes the browse queries and the
// membership lookups rely on. Called once at startup.
func (mdb *MongodbRepo) EnsureIndexes(ctx context.Context) error {
	events, err := mdb.GetCollection(EventsColName)
	if err != nil {
		return err
	}
	_, err = events.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "public", Value: 1}, {Key: "end_time", Value: 1}}},
		{Keys: bson.D{{Key: "creator_id", Value: 1}, {Key: "end_time", Value: -1}}},
		{Keys: bson.D{{Key: "creator_id", Value: 1}, {Key: "start_time", Value: -1}}},
	})
	if err != nil {
		return storeErr("create event indexes", err)
	}

	attendance, err := mdb.GetCollection(AttendanceColName)
	if err != nil {
		return err
	}
	_, err = attendance.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "event_id", Value: 1}, {Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return storeErr("create attendance index", err)
	}

	comments, err := mdb.GetCollection(CommentsColName)
	if err != nil {
		return err
	}
	_, err = comments.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "event_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return storeErr("create comment index", err)
	}

	return nil
}
