package store

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFilterBSON(t *testing.T) {
	completed := true
	notCompleted := false

	tests := []struct {
		name   string
		filter Filter
		want   bson.M
	}{
		{
			name:   "no predicates",
			filter: Filter{},
			want:   bson.M{},
		},
		{
			name:   "completed true",
			filter: Filter{Completed: &completed},
			want:   bson.M{"completed": true},
		},
		{
			name:   "completed false is still a constraint",
			filter: Filter{Completed: &notCompleted},
			want:   bson.M{"completed": false},
		},
		{
			name:   "priority",
			filter: Filter{Priority: "high"},
			want:   bson.M{"priority": "high"},
		},
		{
			name:   "search matches title or description case-insensitively",
			filter: Filter{Search: "milk"},
			want: bson.M{"$or": bson.A{
				bson.M{"title": primitive.Regex{Pattern: "milk", Options: "i"}},
				bson.M{"description": primitive.Regex{Pattern: "milk", Options: "i"}},
			}},
		},
		{
			name:   "search quotes regex metacharacters",
			filter: Filter{Search: "a.b*"},
			want: bson.M{"$or": bson.A{
				bson.M{"title": primitive.Regex{Pattern: `a\.b\*`, Options: "i"}},
				bson.M{"description": primitive.Regex{Pattern: `a\.b\*`, Options: "i"}},
			}},
		},
		{
			name:   "all predicates combine with AND",
			filter: Filter{Completed: &completed, Priority: "low", Search: "x"},
			want: bson.M{
				"completed": true,
				"priority":  "low",
				"$or": bson.A{
					bson.M{"title": primitive.Regex{Pattern: "x", Options: "i"}},
					bson.M{"description": primitive.Regex{Pattern: "x", Options: "i"}},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.bson()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("bson() = %#v, want %#v", got, tt.want)
			}
		})
	}
}
