package store

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Filter holds the optional list/count predicates. Nil or zero-value fields
// impose no constraint, which keeps "filter not supplied" distinct from
// "filter value is false or empty".
type Filter struct {
	Completed *bool
	Priority  string
	Search    string
}

// bson translates the filter into a MongoDB filter document. Predicates are
// AND-combined; Search is a case-insensitive substring match OR-combined over
// title and description. The search text is quoted so regex metacharacters
// match literally.
func (f Filter) bson() bson.M {
	query := bson.M{}

	if f.Completed != nil {
		query["completed"] = *f.Completed
	}
	if f.Priority != "" {
		query["priority"] = f.Priority
	}
	if f.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}

	return query
}
