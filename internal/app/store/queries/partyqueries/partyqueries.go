// Package partyqueries builds filters over records that link two members,
// one on the giving side and one on the receiving side.
package partyqueries

import (
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Fields names the giver and receiver reference fields of a collection.
type Fields struct {
	Given    string
	Received string
}

// Filter matches records where memberID is on the side selected by dir.
// DirectionAny matches either side.
func (f Fields) Filter(memberID primitive.ObjectID, dir models.Direction) bson.M {
	switch dir {
	case models.DirectionGiven:
		return bson.M{f.Given: memberID}
	case models.DirectionReceived:
		return bson.M{f.Received: memberID}
	}
	return bson.M{"$or": bson.A{
		bson.M{f.Given: memberID},
		bson.M{f.Received: memberID},
	}}
}

// DirectionOf reports which side of a record memberID is on.
// Self-referencing records count as given.
func DirectionOf(memberID, givenBy primitive.ObjectID) models.Direction {
	if memberID == givenBy {
		return models.DirectionGiven
	}
	return models.DirectionReceived
}
