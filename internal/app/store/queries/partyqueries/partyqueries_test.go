package partyqueries

import (
	"reflect"
	"testing"

	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFields_Filter(t *testing.T) {
	f := Fields{Given: "payer_id", Received: "receiver_id"}
	id := primitive.NewObjectID()

	tests := []struct {
		dir  models.Direction
		want bson.M
	}{
		{models.DirectionGiven, bson.M{"payer_id": id}},
		{models.DirectionReceived, bson.M{"receiver_id": id}},
		{models.DirectionAny, bson.M{"$or": bson.A{
			bson.M{"payer_id": id},
			bson.M{"receiver_id": id},
		}}},
	}
	for _, tt := range tests {
		if got := f.Filter(id, tt.dir); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Filter(%q) = %v, want %v", tt.dir, got, tt.want)
		}
	}
}

func TestDirectionOf(t *testing.T) {
	me := primitive.NewObjectID()
	other := primitive.NewObjectID()

	if got := DirectionOf(me, me); got != models.DirectionGiven {
		t.Errorf("DirectionOf(me, me) = %q, want given", got)
	}
	if got := DirectionOf(me, other); got != models.DirectionReceived {
		t.Errorf("DirectionOf(me, other) = %q, want received", got)
	}
}
