package validators

import "go.mongodb.org/mongo-driver/bson"

var PropertyValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"active",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": []string{"string", "objectId"},
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 200,
			},

			"price_per_night": bson.M{
				"bsonType": []string{"double", "int", "long", "decimal", "null"},
			},

			"active": bson.M{
				"bsonType": "bool",
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
