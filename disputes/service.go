// Package disputes implements the land dispute case lifecycle: filing, the status state
// machine, edits with version history, defendant assignment, document sharing, meetings
// and statistics. Every operation receives the resolved models.Actor of the request.
package disputes

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/landauthority/dispute-api/databases"
	"github.com/landauthority/dispute-api/logging"
	"github.com/landauthority/dispute-api/metrics"
	"github.com/landauthority/dispute-api/models"
	"github.com/landauthority/dispute-api/notify"
	"github.com/landauthority/dispute-api/policy"
	"github.com/landauthority/dispute-api/storage"
	"github.com/landauthority/dispute-api/tokens"
)

// Auditor records who did what. Implementations swallow their own failures.
type Auditor interface {
	Record(ctx context.Context, actor models.Actor, action, targetType, targetID string, details map[string]interface{})
}

// Dispatcher queues notification messages for best effort delivery
type Dispatcher interface {
	Submit(msgs ...notify.Message) *notify.Batch
}

// InvitationSigner issues and verifies defendant invitation tokens
type InvitationSigner interface {
	SignInvitation(claims tokens.InvitationClaims, ttl time.Duration) (string, error)
	VerifyInvitation(token string) (*tokens.InvitationClaims, error)
}

// Deps are the collaborators of the Service
type Deps struct {
	Cases       databases.CaseDatabase
	Versions    databases.CaseVersionDatabase
	Invitations databases.InvitationDatabase
	Users       databases.UserDatabase
	Lands       databases.LandDatabase
	Storage     storage.Storage
	Dispatcher  Dispatcher
	Audit       Auditor
	Tokens      InvitationSigner
}

// Config holds the tunable rules of the Service
type Config struct {
	Thresholds     policy.Thresholds
	CommitteeRoles []models.Role
	FrontendURL    string
}

// Service is the dispute case engine
type Service struct {
	cases       databases.CaseDatabase
	versions    databases.CaseVersionDatabase
	invitations databases.InvitationDatabase
	users       databases.UserDatabase
	lands       databases.LandDatabase
	storage     storage.Storage
	dispatcher  Dispatcher
	audit       Auditor
	tokens      InvitationSigner

	thresholds     policy.Thresholds
	committeeRoles []models.Role
	frontendURL    string

	validate *validator.Validate
	log      *zap.SugaredLogger
	now      func() time.Time
}

// New builds a Service
func New(deps Deps, conf Config) *Service {
	if conf.Thresholds.District <= 0 || conf.Thresholds.NLA <= 0 {
		conf.Thresholds = policy.DefaultThresholds
	}
	if len(conf.CommitteeRoles) == 0 {
		conf.CommitteeRoles = []models.Role{models.RoleManager, models.RoleAdmin}
	}
	return &Service{
		cases:          deps.Cases,
		versions:       deps.Versions,
		invitations:    deps.Invitations,
		users:          deps.Users,
		lands:          deps.Lands,
		storage:        deps.Storage,
		dispatcher:     deps.Dispatcher,
		audit:          deps.Audit,
		tokens:         deps.Tokens,
		thresholds:     conf.Thresholds,
		committeeRoles: conf.CommitteeRoles,
		frontendURL:    conf.FrontendURL,
		validate:       validator.New(),
		log:            logging.New("disputes"),
		now:            time.Now,
	}
}

// load fetches a live case by its hex id
func (s *Service) load(ctx context.Context, caseID string) (*models.Case, error) {
	id, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		return nil, errors.Wrapf(models.ErrCaseNotFound, "malformed case id %q", caseID)
	}
	return s.cases.FindByID(ctx, id)
}

// save writes c if nobody else wrote it since it was read at expected
func (s *Service) save(ctx context.Context, c *models.Case, expected int64) error {
	c.LastUpdated = s.now().UTC()
	ok, err := s.cases.UpdateIfVersion(ctx, c, expected)
	if err != nil {
		return errors.Wrapf(err, "failed to update case %s", c.ClaimID)
	}
	if !ok {
		metrics.TransitionConflicts.Inc()
		return errors.Wrapf(models.ErrStaleCase, "case %s", c.ClaimID)
	}
	return nil
}

func (s *Service) view(c *models.Case) models.CaseView {
	return models.CaseView{Case: *c, OverdueDays: policy.OverdueDays(c, s.now(), s.thresholds)}
}

// backfillDistrict repairs cases stored without a district from their land record
func (s *Service) backfillDistrict(ctx context.Context, c *models.Case) {
	if c.District != "" || c.Land.UPI == "" {
		return
	}
	land, err := s.lands.Lookup(ctx, c.Land.UPI)
	if err != nil {
		s.log.Warnw("could not backfill case district", "claimId", c.ClaimID, "upi", c.Land.UPI, "error", err)
		return
	}
	c.District = policy.NormalizeDistrict(land.District)
	if c.Land.District == "" {
		c.Land.District = c.District
	}
	if c.Land.Sector == "" {
		c.Land.Sector = land.Sector
	}
}

func forbidden(format string, args ...interface{}) error {
	return errors.Wrapf(models.ForbiddenError, format, args...)
}

func invalidPayload(format string, args ...interface{}) error {
	return errors.Wrapf(models.InvalidPayloadError, format, args...)
}
