package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "evently/internal/bookings/errors"
	eventsrepo "evently/internal/events/repository"
	usersrepo "evently/internal/users/repository"
	"evently/pkg/config"
	"evently/pkg/model"
)

const CollectionName = "Bookings"

// Filter narrows booking queries. Nil fields match everything.
type Filter struct {
	UserID  *primitive.ObjectID
	EventID *primitive.ObjectID
}

type BookingRepository interface {
	// Create inserts the booking. The unique (user_id, event_id) index is the
	// single source of truth for duplicates: a duplicate-key error maps to
	// ErrDuplicate, there is no separate existence check.
	Create(ctx context.Context, booking *model.Booking) error
	FindExpandedByID(ctx context.Context, id primitive.ObjectID) (*model.BookingExpanded, error)
	FindAllExpanded(ctx context.Context, filter Filter) ([]*model.BookingExpanded, error)
	Count(ctx context.Context) (int64, error)
}

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.OpWriteTimeout)
	defer cancel()

	booking.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return bookingserrors.ErrDuplicate
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid
	}
	return nil
}

// expandLookups resolves the user and event references for read results.
func expandLookups() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: usersrepo.CollectionName},
			{Key: "localField", Value: "user_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "user"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$user"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: eventsrepo.CollectionName},
			{Key: "localField", Value: "event_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "event"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$event"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}

func (r *mongoBookingRepository) FindExpandedByID(ctx context.Context, id primitive.ObjectID) (*model.BookingExpanded, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.OpReadTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": id}}},
	}
	pipeline = append(pipeline, expandLookups()...)

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.BookingExpanded
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode booking: %w", err)
	}
	if len(bookings) == 0 {
		return nil, bookingserrors.ErrNotFound
	}
	return bookings[0], nil
}

func (r *mongoBookingRepository) FindAllExpanded(ctx context.Context, filter Filter) ([]*model.BookingExpanded, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.OpReadTimeout)
	defer cancel()

	match := bson.M{}
	if filter.UserID != nil {
		match["user_id"] = *filter.UserID
	}
	if filter.EventID != nil {
		match["event_id"] = *filter.EventID
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
	}
	pipeline = append(pipeline, expandLookups()...)

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []*model.BookingExpanded{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (r *mongoBookingRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.OpReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}
