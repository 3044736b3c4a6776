package databases

// go generate: mockery --name UserDatabase

import (
	"context"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/landauthority/dispute-api/models"
)

const userName = "users"

// UserDatabase contains the read methods the dispute service needs on the user collection
type UserDatabase interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByRoles(ctx context.Context, roles []models.Role, district string) ([]models.User, error)
}

type userDatabase struct {
	db DatabaseHelper
}

// UserRecord is the stored shape; ids are ObjectIDs in mongo and hex strings in the domain
type UserRecord struct {
	ID          primitive.ObjectID `bson:"_id"`
	FullName    string             `bson:"fullName"`
	Email       string             `bson:"email"`
	PhoneNumber string             `bson:"phoneNumber"`
	NationalID  string             `bson:"nationalId,omitempty"`
	Role        models.Role        `bson:"role"`
	AccountRole models.Role        `bson:"accountRole,omitempty"`
	District    string             `bson:"district,omitempty"`
}

func (r UserRecord) toModel() models.User {
	return models.User{
		ID:          r.ID.Hex(),
		FullName:    r.FullName,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
		NationalID:  r.NationalID,
		Role:        r.Role,
		AccountRole: r.AccountRole,
		District:    strings.ToLower(r.District),
	}
}

// NewUserDatabase initializes a new instance of user database with the provided db connection
func NewUserDatabase(db DatabaseHelper) UserDatabase {
	return &userDatabase{
		db: db,
	}
}

func (u *userDatabase) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	rec := &UserRecord{}
	err := u.db.Collection(userName).FindOne(ctx, filter).Decode(&rec)
	if isNoDocuments(err) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	user := rec.toModel()
	return &user, nil
}

func (u *userDatabase) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.Wrapf(models.ErrUserNotFound, "malformed user id %q", id)
	}
	return u.findOne(ctx, bson.M{"_id": oid})
}

func (u *userDatabase) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return u.findOne(ctx, bson.M{"email": equalFold(strings.TrimSpace(email))})
}

// equalFold matches the whole stored value ignoring case. The identity service keeps
// emails and districts as typed.
func equalFold(v string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(v) + "$", Options: "i"}
}

// FindByRoles returns users holding any of roles. A non-empty district keeps only admins
// and users of that district.
func (u *userDatabase) FindByRoles(ctx context.Context, roles []models.Role, district string) ([]models.User, error) {
	filter := bson.M{"role": bson.M{"$in": roles}}
	if district != "" {
		filter["$or"] = bson.A{
			bson.M{"role": models.RoleAdmin},
			bson.M{"district": equalFold(district)},
		}
	}
	cur, err := u.db.Collection(userName).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var recs []UserRecord
	if err := cur.All(ctx, &recs); err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(recs))
	for _, r := range recs {
		users = append(users, r.toModel())
	}
	return users, nil
}
