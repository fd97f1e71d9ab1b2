package validators

import "go.mongodb.org/mongo-driver/bson"

var monthDayPattern = `^(0[1-9]|1[0-2])-(0[1-9]|[12][0-9]|3[01])$`

// SeasonRuleValidator validates the per-tenant rule list document. Rule order
// in the array is the matching priority.
var SeasonRuleValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"_id", "rules"},
		"additionalProperties": false,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"rules": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"id", "name", "start", "end", "multiplier", "type"},
					"properties": bson.M{
						"id":   bson.M{"bsonType": "string"},
						"name": bson.M{"bsonType": "string", "minLength": 1, "maxLength": 100},
						"start": bson.M{
							"bsonType": "string",
							"pattern":  monthDayPattern,
						},
						"end": bson.M{
							"bsonType": "string",
							"pattern":  monthDayPattern,
						},
						"multiplier": bson.M{
							"bsonType":         []string{"double", "int", "long", "decimal"},
							"exclusiveMinimum": true,
							"minimum":          0,
						},
						"type": bson.M{
							"bsonType": "string",
							"enum":     []string{"high", "mid", "low"},
						},
					},
				},
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
