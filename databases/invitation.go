package databases

// go generate: mockery --name InvitationDatabase

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/landauthority/dispute-api/models"
)

const invitationName = "invitations"

// InvitationDatabase contains the methods to use with the meeting invitation database
type InvitationDatabase interface {
	Insert(ctx context.Context, inv *models.Invitation) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Invitation, error)
	Find(ctx context.Context, filter models.InvitationFilter) ([]models.Invitation, error)
	Cancel(ctx context.Context, id primitive.ObjectID, at time.Time) (bool, error)
}

type invitationDatabase struct {
	db DatabaseHelper
}

// NewInvitationDatabase initializes a new instance of invitation database with the provided db connection
func NewInvitationDatabase(db DatabaseHelper) InvitationDatabase {
	return &invitationDatabase{
		db: db,
	}
}

func (i *invitationDatabase) Insert(ctx context.Context, inv *models.Invitation) error {
	_, err := i.db.Collection(invitationName).InsertOne(ctx, inv)
	return err
}

func (i *invitationDatabase) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Invitation, error) {
	inv := &models.Invitation{}
	err := i.db.Collection(invitationName).FindOne(ctx, bson.M{"_id": id}).Decode(&inv)
	if isNoDocuments(err) {
		return nil, errors.Wrapf(models.ErrInvitationNotFound, "invitation %s", id.Hex())
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (i *invitationDatabase) Find(ctx context.Context, filter models.InvitationFilter) ([]models.Invitation, error) {
	query := bson.M{}
	if filter.CaseID != nil {
		query["caseId"] = *filter.CaseID
	}
	if len(filter.CaseIDs) > 0 {
		query["caseId"] = bson.M{"$in": filter.CaseIDs}
	}
	if filter.District != "" {
		query["district"] = filter.District
	}
	if len(filter.ExcludeLevels) > 0 {
		query["level"] = bson.M{"$nin": filter.ExcludeLevels}
	}
	if !filter.IncludeCanceled {
		query["isCanceled"] = false
	}
	cur, err := i.db.Collection(invitationName).Find(ctx, query,
		options.Find().SetSort(bson.D{{Key: "dateTime", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	invitations := []models.Invitation{}
	if err := cur.All(ctx, &invitations); err != nil {
		return nil, err
	}
	return invitations, nil
}

// Cancel flips isCanceled once; it reports false when the invitation was already canceled.
func (i *invitationDatabase) Cancel(ctx context.Context, id primitive.ObjectID, at time.Time) (bool, error) {
	res, err := i.db.Collection(invitationName).UpdateOne(ctx,
		bson.M{"_id": id, "isCanceled": false},
		bson.M{"$set": bson.M{"isCanceled": true, "canceledAt": at}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}
