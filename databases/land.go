package databases

// go generate: mockery --name LandDatabase

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/landauthority/dispute-api/models"
)

const landName = "lands"

// LandDatabase reads parcel records by UPI
type LandDatabase interface {
	Lookup(ctx context.Context, upi string) (*models.LandRecord, error)
}

type landDatabase struct {
	db DatabaseHelper
}

// NewLandDatabase initializes a new instance of land database with the provided db connection
func NewLandDatabase(db DatabaseHelper) LandDatabase {
	return &landDatabase{
		db: db,
	}
}

func (l *landDatabase) Lookup(ctx context.Context, upi string) (*models.LandRecord, error) {
	rec := &models.LandRecord{}
	err := l.db.Collection(landName).FindOne(ctx, bson.M{"upi": strings.TrimSpace(upi)}).Decode(&rec)
	if isNoDocuments(err) {
		return nil, errors.Wrapf(models.ErrLandNotFound, "upi %s", upi)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}
