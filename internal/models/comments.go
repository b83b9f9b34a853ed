package models

import (
	"context"
	"time"

	"github.com/4lejanddr0/communityevents/internal/apperr"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Comment is append-only: there is no edit or delete path. UserName is a
// snapshot of the author's display name at write time and never re-synced.
type Comment struct {
	ID        string    `bson:"-" json:"id,omitempty"`
	EventID   string    `bson:"event_id" json:"event_id"`
	UserID    uuid.UUID `bson:"user_id" json:"user_id"`
	UserName  string    `bson:"user_name" json:"user_name"`
	Rating    int       `bson:"rating" json:"rating" validate:"required,min=1,max=5"`
	Text      string    `bson:"text" json:"text"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

func (c *Comment) ValidateComment() error {
	if c.Rating < 1 || c.Rating > 5 {
		return apperr.New(apperr.InvalidArgument, "rating must be between 1 and 5")
	}
	if c.UserID == uuid.Nil {
		return apperr.New(apperr.Unauthenticated, "sign in to leave a review")
	}
	if c.EventID == "" {
		return apperr.New(apperr.InvalidArgument, "event id is required")
	}
	return nil
}

type CommentsRepo interface {
	InsertComment(ctx context.Context, comment *Comment) (string, error)
	ListCommentsByEvent(ctx context.Context, eventID string) ([]*Comment, error)
	DeleteCommentsByEvent(ctx context.Context, eventID string) error
}

type commentDoc struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Comment `bson:",inline"`
}

func (d *commentDoc) toComment() *Comment {
	c := d.Comment
	c.ID = d.ID.Hex()
	return &c
}

func (mdb *MongodbRepo) InsertComment(ctx context.Context, comment *Comment) (string, error) {
	col, err := mdb.GetCollection(CommentsColName)
	if err != nil {
		return "", err
	}

	res, err := col.InsertOne(ctx, &commentDoc{Comment: *comment})
	if err != nil {
		return "", storeErr("insert comment", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", apperr.New(apperr.Internal, "store returned an unexpected id type")
	}
	return oid.Hex(), nil
}

func (mdb *MongodbRepo) ListCommentsByEvent(ctx context.Context, eventID string) ([]*Comment, error) {
	col, err := mdb.GetCollection(CommentsColName)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := col.Find(ctx, bson.M{"event_id": eventID}, opts)
	if err != nil {
		return nil, storeErr("list comments", err)
	}
	defer cursor.Close(ctx)

	comments := []*Comment{}
	for cursor.Next(ctx) {
		var doc commentDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, storeErr("decode comment", err)
		}
		comments = append(comments, doc.toComment())
	}
	if err := cursor.Err(); err != nil {
		return nil, storeErr("list comments", err)
	}

	return comments, nil
}

func (mdb *MongodbRepo) DeleteCommentsByEvent(ctx context.Context, eventID string) error {
	col, err := mdb.GetCollection(CommentsColName)
	if err != nil {
		return err
	}

	if _, err := col.DeleteMany(ctx, bson.M{"event_id": eventID}); err != nil {
		return storeErr("delete event comments", err)
	}
	return nil
}
