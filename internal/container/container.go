package container

import (
	"log/slog"
	"time"

	"github.com/4lejanddr0/communityevents/internal/models"
	"github.com/4lejanddr0/communityevents/internal/services"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Logger       *slog.Logger
	StoreTimeout time.Duration

	UserService       *services.UserService
	EventsService     *services.EventsService
	BrowseService     *services.BrowseService
	AttendanceService *services.AttendanceService
	ReviewsService    *services.ReviewsService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	logger *slog.Logger,
	cloudinary *cloudinary.Cloudinary,
	supabaseClient *supabase.Client,
	mongoDBClient *mongo.Client,
	supaUrl, supaKey string,
	storeTimeout time.Duration,
) *Container {
	// Initialize repositories
	supa := models.SupabaseNewRepo(supabaseClient, supaUrl, supaKey)
	mongo := models.MongodbNewRepo(mongoDBClient)

	userService := services.NewUserService(supa)
	eventsService := services.NewEventsService(mongo, mongo, mongo, cloudinary)
	browseService := services.NewBrowseService(mongo)
	attendanceService := services.NewAttendanceService(mongo, mongo)
	reviewsService := services.NewReviewsService(mongo, mongo, mongo)

	return &Container{
		Logger:            logger,
		StoreTimeout:      storeTimeout,
		UserService:       userService,
		EventsService:     eventsService,
		BrowseService:     browseService,
		AttendanceService: attendanceService,
		ReviewsService:    reviewsService,
	}
}
