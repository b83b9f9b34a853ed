package models

import (
	"context"
	"errors"
	"fmt"

	"github.com/4lejanddr0/communityevents/internal/apperr"
	"github.com/go-playground/validator/v10"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"
)

var Validate = validator.New()

const (
	DBName            = "communityevents"
	EventsColName     = "events"
	AttendanceColName = "event_attendance"
	CommentsColName   = "event_comments"
	ProfileTable      = "profiles"
)

type SupabaseRepo struct {
	supabaseClient *supabase.Client
	url            string
	key            string
}

func SupabaseNewRepo(supabaseClient *supabase.Client, url, key string) *SupabaseRepo {
	return &SupabaseRepo{
		supabaseClient: supabaseClient,
		url:            url,
		key:            key,
	}
}

// GetAuthenticatedClient returns a Supabase client acting under the given
// access token, so profile reads run with the caller's row-level permissions.
func (su *SupabaseRepo) GetAuthenticatedClient(accessToken string) (*supabase.Client, error) {
	if su.url == "" || su.key == "" {
		return su.supabaseClient, nil
	}

	options := &supabase.ClientOptions{
		Headers: map[string]string{
			"Authorization": "Bearer " + accessToken,
		},
	}

	return supabase.NewClient(su.url, su.key, options)
}

type MongodbRepo struct {
	mongodbClient *mongo.Client
}

func MongodbNewRepo(mongodbClient *mongo.Client) *MongodbRepo {
	return &MongodbRepo{
		mongodbClient: mongodbClient,
	}
}

func (mdb *MongodbRepo) GetCollection(colName string) (*mongo.Collection, error) {
	if mdb.mongodbClient == nil {
		return nil, apperr.New(apperr.Internal, "mongodb client is not initialized")
	}
	return mdb.mongodbClient.Database(DBName).Collection(colName), nil
}

// storeErr classifies a raw driver error into the service error taxonomy.
// Timeouts and network faults surface as Unavailable so the caller can decide
// to retry; anything else unexpected is Internal.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return apperr.Wrap(apperr.NotFound, op, err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled), mongo.IsTimeout(err), mongo.IsNetworkError(err):
		return apperr.Wrap(apperr.Unavailable, fmt.Sprintf("%s: store unavailable", op), err)
	default:
		return apperr.Wrap(apperr.Internal, op, err)
	}
}
