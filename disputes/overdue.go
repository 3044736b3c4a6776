package disputes

import (
	"context"
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/landauthority/dispute-api/metrics"
	"github.com/landauthority/dispute-api/models"
	"github.com/landauthority/dispute-api/notify"
	"github.com/landauthority/dispute-api/policy"
	templates "github.com/landauthority/dispute-api/templates/html"
)

// nlaDigest is the digest key of escalated cases, sent to admins
const nlaDigest = "nla"

// OverdueDigests groups every overdue open or appealed case by the desk that owns it:
// the district for district level cases, nla for escalated ones
func (s *Service) OverdueDigests(ctx context.Context) (map[string][]templates.OverdueRow, error) {
	filter := models.CaseFilter{Statuses: []models.CaseStatus{models.StatusOpen, models.StatusAppealed}}
	cases, _, err := s.cases.FindByFilter(ctx, filter, models.Page{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load open cases")
	}

	now := s.now()
	digests := map[string][]templates.OverdueRow{}
	total := 0
	for i := range cases {
		c := &cases[i]
		days := policy.OverdueDays(c, now, s.thresholds)
		if days == 0 {
			continue
		}
		total++
		key := c.District
		if c.Level.Normalize() != models.LevelDistrict {
			key = nlaDigest
		}
		digests[key] = append(digests[key], templates.OverdueRow{
			ClaimID:     c.ClaimID,
			Title:       c.Title,
			Status:      string(c.Status),
			OverdueDays: days,
		})
	}
	for _, rows := range digests {
		sort.Slice(rows, func(i, j int) bool { return rows[i].OverdueDays > rows[j].OverdueDays })
	}
	metrics.OverdueCases.Set(float64(total))
	return digests, nil
}

// SendOverdueDigests emails each district's managers the overdue cases of their
// district, and the admins the overdue escalated cases. It returns the number of
// emails queued.
func (s *Service) SendOverdueDigests(ctx context.Context) (int, error) {
	digests, err := s.OverdueDigests(ctx)
	if err != nil {
		return 0, err
	}

	var msgs []notify.Message
	for key, rows := range digests {
		var staff []models.User
		if key == nlaDigest {
			staff, err = s.users.FindByRoles(ctx, []models.Role{models.RoleAdmin}, "")
		} else {
			staff, err = s.users.FindByRoles(ctx, []models.Role{models.RoleManager}, key)
		}
		if err != nil {
			s.log.Warnw("could not resolve overdue digest recipients", "desk", key, "error", err)
			continue
		}
		for _, u := range staff {
			if u.Email == "" {
				continue
			}
			if key != nlaDigest && (u.Role != models.RoleManager || policy.NormalizeDistrict(u.District) != key) {
				continue
			}
			msgs = append(msgs, notify.Message{
				Channel:   notify.ChannelEmail,
				Recipient: u.Email,
				Subject:   "Overdue land disputes",
				Body:      templates.RenderOverdueDigestEmail(u.FullName, key, rows),
			})
		}
	}
	if len(msgs) > 0 {
		s.dispatcher.Submit(msgs...)
	}
	return len(msgs), nil
}
