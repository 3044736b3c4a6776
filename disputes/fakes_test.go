package disputes

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	cerrors "github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/landauthority/dispute-api/models"
	"github.com/landauthority/dispute-api/notify"
	"github.com/landauthority/dispute-api/policy"
	"github.com/landauthority/dispute-api/storage"
	"github.com/landauthority/dispute-api/tokens"
)

// memCases is a CaseDatabase with the same compare-and-set semantics as the mongo one
type memCases struct {
	mu         sync.Mutex
	byID       map[primitive.ObjectID]models.Case
	insertErrs []error
	// loseNextUpdate makes the next compare-and-set fail as if another writer won
	loseNextUpdate bool

	// findBarrier, when set, holds every FindByID until all expected readers arrived
	findBarrier *sync.WaitGroup
}

func newMemCases() *memCases {
	return &memCases{byID: map[primitive.ObjectID]models.Case{}}
}

func cloneCase(c models.Case) models.Case {
	out := c
	out.Witnesses = append([]models.Witness(nil), c.Witnesses...)
	out.SharedDocuments = append([]models.SharedDocument(nil), c.SharedDocuments...)
	return out
}

func (m *memCases) Insert(_ context.Context, c *models.Case) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.insertErrs) > 0 {
		err := m.insertErrs[0]
		m.insertErrs = m.insertErrs[1:]
		return err
	}
	for _, existing := range m.byID {
		if existing.ClaimID == c.ClaimID {
			return models.ErrDuplicateClaimID
		}
	}
	m.byID[c.ID] = cloneCase(*c)
	return nil
}

func (m *memCases) FindByID(_ context.Context, id primitive.ObjectID) (*models.Case, error) {
	m.mu.Lock()
	c, ok := m.byID[id]
	barrier := m.findBarrier
	m.mu.Unlock()

	if barrier != nil {
		barrier.Done()
		barrier.Wait()
	}
	if !ok || c.DeletedAt != nil {
		return nil, cerrors.Wrapf(models.ErrCaseNotFound, "case %s", id.Hex())
	}
	out := cloneCase(c)
	return &out, nil
}

func (m *memCases) FindByFilter(_ context.Context, f models.CaseFilter, page models.Page) ([]models.Case, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []models.Case
	for _, c := range m.byID {
		c := c
		if f.Matches(&c) {
			all = append(all, cloneCase(c))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := int64(len(all))
	if page.Limit > 0 {
		start := page.Skip()
		if start > len(all) {
			start = len(all)
		}
		end := start + page.Limit
		if end > len(all) {
			end = len(all)
		}
		all = all[start:end]
	}
	if all == nil {
		all = []models.Case{}
	}
	return all, total, nil
}

func (m *memCases) UpdateIfVersion(_ context.Context, c *models.Case, expected int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.byID[c.ID]
	if m.loseNextUpdate {
		m.loseNextUpdate = false
		return false, nil
	}
	if !ok || stored.Version != expected {
		return false, nil
	}
	next := cloneCase(*c)
	next.Version = expected + 1
	m.byID[c.ID] = next
	c.Version = next.Version
	return true, nil
}

func (m *memCases) EnsureIndexes(context.Context) error { return nil }

func (m *memCases) get(id primitive.ObjectID) models.Case {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneCase(m.byID[id])
}

type memVersions struct {
	mu       sync.Mutex
	versions []models.CaseVersion
}

func (m *memVersions) Insert(_ context.Context, v *models.CaseVersion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.versions {
		if existing.CaseID == v.CaseID && existing.Version == v.Version {
			return cerrors.Wrapf(models.ErrStaleCase, "version %d", v.Version)
		}
	}
	m.versions = append(m.versions, *v)
	return nil
}

func (m *memVersions) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, v := range m.versions {
		if v.ID == id {
			m.versions = append(m.versions[:i], m.versions[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memVersions) FindByCase(_ context.Context, caseID primitive.ObjectID) ([]models.CaseVersion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.CaseVersion{}
	for _, v := range m.versions {
		if v.CaseID == caseID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

func (m *memVersions) EnsureIndexes(context.Context) error { return nil }

type memInvitations struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]models.Invitation
}

func (m *memInvitations) Insert(_ context.Context, inv *models.Invitation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[inv.ID] = *inv
	return nil
}

func (m *memInvitations) FindByID(_ context.Context, id primitive.ObjectID) (*models.Invitation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.byID[id]
	if !ok {
		return nil, models.ErrInvitationNotFound
	}
	return &inv, nil
}

func (m *memInvitations) Find(_ context.Context, f models.InvitationFilter) ([]models.Invitation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Invitation{}
	for _, inv := range m.byID {
		inv := inv
		if f.Matches(&inv) {
			out = append(out, inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateTime.Before(out[j].DateTime) })
	return out, nil
}

func (m *memInvitations) Cancel(_ context.Context, id primitive.ObjectID, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.byID[id]
	if !ok || inv.IsCanceled {
		return false, nil
	}
	inv.IsCanceled = true
	inv.CanceledAt = &at
	m.byID[id] = inv
	return true, nil
}

type memUsers struct {
	users []models.User
}

func (m *memUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			u := u
			return &u, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			u := u
			return &u, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (m *memUsers) FindByRoles(_ context.Context, roles []models.Role, district string) ([]models.User, error) {
	var out []models.User
	for _, u := range m.users {
		hasRole := false
		for _, r := range roles {
			if u.Role == r {
				hasRole = true
			}
		}
		if !hasRole {
			continue
		}
		if district != "" && u.Role != models.RoleAdmin && u.District != district {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

type memLands struct {
	records map[string]models.LandRecord
}

func (m *memLands) Lookup(_ context.Context, upi string) (*models.LandRecord, error) {
	rec, ok := m.records[upi]
	if !ok {
		return nil, cerrors.Wrapf(models.ErrLandNotFound, "upi %s", upi)
	}
	return &rec, nil
}

type auditEntry struct {
	actorID  string
	action   string
	targetID string
	details  map[string]interface{}
}

type memAudit struct {
	mu      sync.Mutex
	entries []auditEntry
}

func (m *memAudit) Record(_ context.Context, actor models.Actor, action, _, targetID string, details map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, auditEntry{actorID: actor.ID, action: action, targetID: targetID, details: details})
}

func (m *memAudit) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.action)
	}
	return out
}

// memStorage fails uploads whose file name is listed in fail
type memStorage struct {
	mu     sync.Mutex
	fail   map[string]bool
	stored []string
}

func (m *memStorage) Put(_ context.Context, _ []byte, fileName, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail[fileName] {
		return "", errors.New("object store unavailable")
	}
	m.stored = append(m.stored, fileName)
	return "https://files.test/" + fileName, nil
}

// recordingNotifier remembers every send and fails the recipients listed in fail
type recordingNotifier struct {
	mu     sync.Mutex
	fail   map[string]bool
	sms    []string
	emails []string
}

func (r *recordingNotifier) SendSMS(_ context.Context, phone, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sms = append(r.sms, phone)
	if r.fail[phone] {
		return errors.New("gateway rejected number")
	}
	return nil
}

func (r *recordingNotifier) SendEmail(_ context.Context, address, _, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emails = append(r.emails, address)
	if r.fail[address] {
		return errors.New("mailbox unavailable")
	}
	return nil
}

func (r *recordingNotifier) sent() (sms, emails []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.sms...), append([]string(nil), r.emails...)
}

var (
	testNow = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	claimant    = models.Actor{ID: "u1", Name: "Aline Uwase", Email: "aline@example.rw", ActualRole: models.RoleUser, EffectiveRole: models.RoleUser}
	otherUser   = models.Actor{ID: "u2", ActualRole: models.RoleUser, EffectiveRole: models.RoleUser}
	gasaboMgr   = models.Actor{ID: "m1", ActualRole: models.RoleManager, EffectiveRole: models.RoleManager, District: "Gasabo"}
	kicukiroMgr = models.Actor{ID: "m2", ActualRole: models.RoleManager, EffectiveRole: models.RoleManager, District: "kicukiro"}
	admin       = models.Actor{ID: "a1", ActualRole: models.RoleAdmin, EffectiveRole: models.RoleAdmin}
	testUPI     = "1/02/03/04/567"
)

type fixture struct {
	svc         *Service
	cases       *memCases
	versions    *memVersions
	invitations *memInvitations
	users       *memUsers
	storage     *memStorage
	notifier    *recordingNotifier
	dispatcher  *notify.Dispatcher
	audit       *memAudit
	tokens      *tokens.Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		cases:       newMemCases(),
		versions:    &memVersions{},
		invitations: &memInvitations{byID: map[primitive.ObjectID]models.Invitation{}},
		users: &memUsers{users: []models.User{
			{ID: "u1", FullName: "Aline Uwase", Email: "aline@example.rw", PhoneNumber: "0788000001", Role: models.RoleUser},
			{ID: "u2", FullName: "Eric Mugisha", Email: "eric@example.rw", PhoneNumber: "0788000002", Role: models.RoleUser},
			{ID: "m1", FullName: "Gasabo Manager", Email: "m1@nla.gov.rw", Role: models.RoleManager, District: "gasabo"},
			{ID: "m2", FullName: "Kicukiro Manager", Email: "m2@nla.gov.rw", Role: models.RoleManager, District: "kicukiro"},
			{ID: "a1", FullName: "NLA Admin", Email: "a1@nla.gov.rw", Role: models.RoleAdmin},
		}},
		storage:  &memStorage{fail: map[string]bool{}},
		notifier: &recordingNotifier{fail: map[string]bool{}},
		audit:    &memAudit{},
		tokens:   tokens.NewManager("test-secret"),
	}
	f.dispatcher = notify.NewDispatcher(f.notifier, nil, 4, 64)
	t.Cleanup(f.dispatcher.Close)

	f.svc = New(Deps{
		Cases:       f.cases,
		Versions:    f.versions,
		Invitations: f.invitations,
		Users:       f.users,
		Lands: &memLands{records: map[string]models.LandRecord{
			testUPI: {UPI: testUPI, District: "Gasabo", Sector: "Kimironko", Cell: "Bibare"},
		}},
		Storage:    f.storage,
		Dispatcher: f.dispatcher,
		Audit:      f.audit,
		Tokens:     f.tokens,
	}, Config{
		Thresholds:  policy.DefaultThresholds,
		FrontendURL: "https://disputes.test/",
	})
	f.svc.now = func() time.Time { return testNow }
	return f
}

// seed stores a case directly, bypassing CreateClaim
func (f *fixture) seed(status models.CaseStatus, level models.Level, mutate ...func(c *models.Case)) *models.Case {
	c := &models.Case{
		ID:          primitive.NewObjectID(),
		ClaimID:     "LD-" + strings.ToUpper(primitive.NewObjectID().Hex()[16:]),
		Title:       "Boundary encroachment",
		Description: "Neighbour moved the boundary markers",
		Status:      status,
		Level:       level,
		District:    "gasabo",
		Land:        models.LandInfo{UPI: testUPI, District: "gasabo", Sector: "Kimironko"},
		Claimant:    "u1",
		Defendant:   models.Defendant{FullName: "Jean Bosco", PhoneNumber: "250788000010"},
		Witnesses: []models.Witness{
			{FullName: "Witness One", PhoneNumber: "250788000021"},
			{FullName: "Witness Two", PhoneNumber: "250788000022"},
		},
		CreatedAt:   testNow.AddDate(0, 0, -3),
		LastUpdated: testNow.AddDate(0, 0, -3),
	}
	for _, m := range mutate {
		m(c)
	}
	f.cases.mu.Lock()
	f.cases.byID[c.ID] = cloneCase(*c)
	f.cases.mu.Unlock()
	return c
}

func letter(name string) *storage.File {
	return &storage.File{Name: name, MimeType: "application/pdf", Data: []byte("%PDF-1.4")}
}
