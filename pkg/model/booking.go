package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	BookingTypeNormal  = "normal"
	BookingTypePremium = "premium"
)

type Booking struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"user_id" bson:"user_id"`
	EventID   primitive.ObjectID `json:"event_id" bson:"event_id"`
	Type      string             `json:"type" bson:"type" validate:"required,oneof=normal premium"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

type BookingInput struct {
	EventID string `json:"eventId" validate:"required,mongodb"`
	Type    string `json:"type" validate:"required,oneof=normal premium"`
}

// BookingExpanded is a Booking with the user and event references resolved.
type BookingExpanded struct {
	Booking `bson:",inline"`
	User    *UserRef  `json:"user,omitempty" bson:"user,omitempty"`
	Event   *EventRef `json:"event,omitempty" bson:"event,omitempty"`
}
