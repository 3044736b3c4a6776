package databases

// go generate: mockery --name CaseDatabase

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/landauthority/dispute-api/models"
)

const caseName = "cases"

// CaseDatabase contains the methods to use with the case database
type CaseDatabase interface {
	Insert(ctx context.Context, c *models.Case) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Case, error)
	FindByFilter(ctx context.Context, filter models.CaseFilter, page models.Page) ([]models.Case, int64, error)
	UpdateIfVersion(ctx context.Context, c *models.Case, expectedVersion int64) (bool, error)
	EnsureIndexes(ctx context.Context) error
}

type caseDatabase struct {
	db DatabaseHelper
}

// NewCaseDatabase initializes a new instance of case database with the provided db connection
func NewCaseDatabase(db DatabaseHelper) CaseDatabase {
	return &caseDatabase{
		db: db,
	}
}

func (c *caseDatabase) EnsureIndexes(ctx context.Context) error {
	coll := c.db.Collection(caseName)
	_, err := coll.CreateIndex(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "claimId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return errors.Wrap(err, "failed to create claimId index")
	}
	_, err = coll.CreateIndex(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "district", Value: 1}, {Key: "level", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return errors.Wrap(err, "failed to create district index")
}

func (c *caseDatabase) Insert(ctx context.Context, dispute *models.Case) error {
	_, err := c.db.Collection(caseName).InsertOne(ctx, dispute)
	if mongo.IsDuplicateKeyError(err) {
		return errors.Wrapf(models.ErrDuplicateClaimID, "claim id %s", dispute.ClaimID)
	}
	return err
}

func (c *caseDatabase) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Case, error) {
	dispute := &models.Case{}
	err := c.db.Collection(caseName).FindOne(ctx, bson.M{"_id": id, "deletedAt": nil}).Decode(&dispute)
	if isNoDocuments(err) {
		return nil, errors.Wrapf(models.ErrCaseNotFound, "case %s", id.Hex())
	}
	if err != nil {
		return nil, err
	}
	return dispute, nil
}

func (c *caseDatabase) FindByFilter(ctx context.Context, filter models.CaseFilter, page models.Page) ([]models.Case, int64, error) {
	query := caseFilterToBson(filter)

	type findResult struct {
		cases []models.Case
		err   error
	}
	type countResult struct {
		count int64
		err   error
	}

	findChan := make(chan findResult, 1)
	countChan := make(chan countResult, 1)

	go func() {
		var cases []models.Case
		cur, err := c.db.Collection(caseName).Find(ctx, query, newMongoPaginate(page).getPaginatedOpts())
		if err != nil {
			findChan <- findResult{err: err}
			return
		}
		defer cur.Close(ctx)
		err = cur.All(ctx, &cases)
		findChan <- findResult{cases: cases, err: err}
	}()

	go func() {
		count, err := c.db.Collection(caseName).CountDocuments(ctx, query)
		countChan <- countResult{count: count, err: err}
	}()

	findRes := <-findChan
	countRes := <-countChan

	if findRes.err != nil {
		return nil, 0, findRes.err
	}
	if countRes.err != nil {
		return nil, 0, countRes.err
	}
	if findRes.cases == nil {
		findRes.cases = []models.Case{}
	}
	return findRes.cases, countRes.count, nil
}

// UpdateIfVersion replaces the stored case only when its __v still equals
// expectedVersion. The written document carries expectedVersion+1.
func (c *caseDatabase) UpdateIfVersion(ctx context.Context, dispute *models.Case, expectedVersion int64) (bool, error) {
	next := *dispute
	next.Version = expectedVersion + 1
	res, err := c.db.Collection(caseName).ReplaceOne(ctx,
		bson.M{"_id": dispute.ID, "__v": expectedVersion},
		next,
	)
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		return false, nil
	}
	dispute.Version = next.Version
	return true, nil
}

// caseFilterToBson translates the visibility predicate into a mongo query. It must stay
// equivalent to models.CaseFilter.Matches.
func caseFilterToBson(f models.CaseFilter) bson.M {
	query := bson.M{"deletedAt": nil}
	if f.None {
		query["_id"] = bson.M{"$in": bson.A{}}
		return query
	}
	if f.ClaimantID != "" {
		query["claimant"] = f.ClaimantID
	}
	if f.District != "" {
		query["district"] = f.District
	}
	if len(f.ExcludeLevels) > 0 {
		query["level"] = bson.M{"$nin": f.ExcludeLevels}
	}
	if len(f.Statuses) > 0 {
		query["status"] = bson.M{"$in": f.Statuses}
	}
	if f.CreatedFrom != nil || f.CreatedTo != nil {
		created := bson.M{}
		if f.CreatedFrom != nil {
			created["$gte"] = *f.CreatedFrom
		}
		if f.CreatedTo != nil {
			created["$lte"] = *f.CreatedTo
		}
		query["createdAt"] = created
	}
	return query
}
