package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Event struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title" validate:"required,min=2,max=200"`
	Description string             `json:"description" bson:"description" validate:"required"`
	Date        time.Time          `json:"date" bson:"date" validate:"required"`
	Location    string             `json:"location" bson:"location" validate:"required,max=200"`
	CreatedBy   primitive.ObjectID `json:"created_by" bson:"created_by"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// EventInput is the create/update payload. The creator is never taken from
// the payload, it comes from the session identity.
type EventInput struct {
	Title       string    `json:"title" validate:"required,min=2,max=200"`
	Description string    `json:"description" validate:"required"`
	Date        time.Time `json:"date" validate:"required"`
	Location    string    `json:"location" validate:"required,max=200"`
}

// EventWithCreator is an Event with the creator reference resolved.
// The created_by id remains the source of truth, the creator block is
// a read-time join.
type EventWithCreator struct {
	Event   `bson:",inline"`
	Creator *UserRef `json:"creator,omitempty" bson:"creator,omitempty"`
}

// EventRef is the resolved event shape embedded in expanded bookings.
type EventRef struct {
	ID       primitive.ObjectID `json:"id" bson:"_id"`
	Title    string             `json:"title" bson:"title"`
	Date     time.Time          `json:"date" bson:"date"`
	Location string             `json:"location" bson:"location"`
}
