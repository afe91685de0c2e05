package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"user_id",
			"event_id",
			"type",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"user_id": bson.M{
				"bsonType": "objectId",
			},

			"event_id": bson.M{
				"bsonType": "objectId",
			},

			"type": bson.M{
				"enum": []string{"normal", "premium"},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
