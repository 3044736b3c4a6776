package databases

import (
	"github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/landauthority/dispute-api/models"
)

type mongoPaginate struct {
	limit int64
	skip  int64
}

func newMongoPaginate(p models.Page) *mongoPaginate {
	return &mongoPaginate{
		limit: int64(p.Limit),
		skip:  int64(p.Skip()),
	}
}

func (mp *mongoPaginate) getPaginatedOpts() *options.FindOptions {
	fOpt := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	if mp.limit > 0 {
		fOpt.SetLimit(mp.limit).SetSkip(mp.skip)
	}
	return fOpt
}

// isNoDocuments reports whether err is the driver's empty FindOne result
func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
