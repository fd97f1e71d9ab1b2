package validators

import "go.mongodb.org/mongo-driver/bson"

// BookingValidator only checks the fields pricing reads. Bookings are written
// by the booking service and may carry more.
var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"property_id",
			"start_date",
			"end_date",
			"status",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"property_id": bson.M{
				"bsonType": []string{"string", "objectId"},
			},

			"start_date": bson.M{
				"bsonType": "date",
			},

			"end_date": bson.M{
				"bsonType": "date",
			},

			"total_price": bson.M{
				"bsonType": []string{"double", "int", "long", "decimal"},
				"minimum":  0,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"pending",
					"confirmed",
					"completed",
					"cancelled",
				},
			},
		},
	},
}
