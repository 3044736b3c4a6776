package databases

// go generate: mockery --name CaseVersionDatabase

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/landauthority/dispute-api/models"
)

const caseVersionName = "caseversions"

// CaseVersionDatabase contains the methods to use with the case version database
type CaseVersionDatabase interface {
	Insert(ctx context.Context, v *models.CaseVersion) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindByCase(ctx context.Context, caseID primitive.ObjectID) ([]models.CaseVersion, error)
	EnsureIndexes(ctx context.Context) error
}

type caseVersionDatabase struct {
	db DatabaseHelper
}

// NewCaseVersionDatabase initializes a new instance of case version database with the provided db connection
func NewCaseVersionDatabase(db DatabaseHelper) CaseVersionDatabase {
	return &caseVersionDatabase{
		db: db,
	}
}

func (c *caseVersionDatabase) EnsureIndexes(ctx context.Context) error {
	_, err := c.db.Collection(caseVersionName).CreateIndex(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "caseId", Value: 1}, {Key: "version", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return errors.Wrap(err, "failed to create case version index")
}

// Insert stores a version. A second version with the same number for the same case is a
// lost race and reported as a conflict.
func (c *caseVersionDatabase) Insert(ctx context.Context, v *models.CaseVersion) error {
	_, err := c.db.Collection(caseVersionName).InsertOne(ctx, v)
	if mongo.IsDuplicateKeyError(err) {
		return errors.Wrapf(models.ErrStaleCase, "version %d already recorded", v.Version)
	}
	return err
}

func (c *caseVersionDatabase) Delete(ctx context.Context, id primitive.ObjectID) error {
	return c.db.Collection(caseVersionName).DeleteOne(ctx, bson.M{"_id": id})
}

func (c *caseVersionDatabase) FindByCase(ctx context.Context, caseID primitive.ObjectID) ([]models.CaseVersion, error) {
	cur, err := c.db.Collection(caseVersionName).Find(ctx, bson.M{"caseId": caseID},
		options.Find().SetSort(bson.D{{Key: "version", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	versions := []models.CaseVersion{}
	if err := cur.All(ctx, &versions); err != nil {
		return nil, err
	}
	return versions, nil
}
