package validators

import "go.mongodb.org/mongo-driver/bson"

var numeric = []string{"double", "int", "long", "decimal"}

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"bus_name",
			"booking_date",
			"end_date",
			"number_of_days",
			"to",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"bus_name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 50,
			},

			"booking_date": bson.M{
				"bsonType": "date",
			},

			"end_date": bson.M{
				"bsonType": "date",
			},

			"number_of_days": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
			},

			"party_phone": bson.M{
				"bsonType": "string",
				"pattern":  `^(|[0-9]{10})$`,
			},

			"to": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"before_night_pickup": bson.M{
				"bsonType": "bool",
			},

			"total_amount": bson.M{
				"bsonType": numeric,
				"minimum":  0,
			},

			"advance": bson.M{
				"bsonType": numeric,
				"minimum":  0,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}

var BookingLockValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "owner", "expires_at"},
		"properties": bson.M{
			"_id":        bson.M{"bsonType": "string"},
			"owner":      bson.M{"bsonType": "string"},
			"expires_at": bson.M{"bsonType": "date"},
			"created_at": bson.M{"bsonType": "date"},
		},
	},
}
