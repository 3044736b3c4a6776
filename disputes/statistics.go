package disputes

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/landauthority/dispute-api/models"
)

// LevelCounts splits cases by tier. Cases without a level count as district.
type LevelCounts struct {
	District int `json:"district"`
	NLA      int `json:"nla"`
	Court    int `json:"court,omitempty"`
}

// MonthlyCount holds the statuses seen in one calendar month (YYYY-MM)
type MonthlyCount struct {
	Month  string
	Counts map[models.CaseStatus]int
}

// MarshalJSON flattens the counts next to the month: {"month":"2024-05","open":3}
func (m MonthlyCount) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(m.Counts)+1)
	for status, n := range m.Counts {
		out[string(status)] = n
	}
	out["month"] = m.Month
	return json.Marshal(out)
}

// GroupCount is one row of a district or sector breakdown
type GroupCount struct {
	Name     string                    `json:"name"`
	Total    int                       `json:"total"`
	ByStatus map[models.CaseStatus]int `json:"byStatus"`
}

// Breakdown groups cases by district for national views and by sector for district views
type Breakdown struct {
	GroupBy string       `json:"groupBy"`
	Groups  []GroupCount `json:"groups"`
}

// Statistics are four groupings of one visibility scoped, date filtered snapshot
type Statistics struct {
	Total        int                       `json:"total"`
	StatusCounts map[models.CaseStatus]int `json:"statusCounts"`
	LevelCounts  LevelCounts               `json:"levelCounts"`
	Monthly      []MonthlyCount            `json:"monthly"`
	Breakdown    Breakdown                 `json:"breakdown"`
}

// Statistics summarizes the cases visible to actor. It reads the case set once and
// derives every view from that snapshot, so the status totals always equal the listing
// total for the same actor and window.
func (s *Service) Statistics(ctx context.Context, actor models.Actor, q StatsQuery) (Statistics, error) {
	f, err := s.scopedFilter(actor, "", q.From, q.To)
	if err != nil {
		return Statistics{}, err
	}
	cases, _, err := s.cases.FindByFilter(ctx, f, models.Page{})
	if err != nil {
		return Statistics{}, errors.Wrap(err, "failed to load cases for statistics")
	}
	return aggregate(cases, f.District), nil
}

// aggregate groups by sector when the scope is a single district, else by district
func aggregate(cases []models.Case, scopeDistrict string) Statistics {
	st := Statistics{
		Total:        len(cases),
		StatusCounts: make(map[models.CaseStatus]int, len(models.AllStatuses)),
		Breakdown:    Breakdown{GroupBy: "district"},
	}
	for _, status := range models.AllStatuses {
		st.StatusCounts[status] = 0
	}
	if scopeDistrict != "" {
		st.Breakdown.GroupBy = "sector"
	}

	months := map[string]map[models.CaseStatus]int{}
	groups := map[string]*GroupCount{}

	for i := range cases {
		c := &cases[i]
		st.StatusCounts[c.Status]++

		switch c.Level.Normalize() {
		case models.LevelNLA:
			st.LevelCounts.NLA++
		case models.LevelCourt:
			st.LevelCounts.Court++
		default:
			st.LevelCounts.District++
		}

		month := c.CreatedAt.UTC().Format("2006-01")
		if months[month] == nil {
			months[month] = map[models.CaseStatus]int{}
		}
		months[month][c.Status]++

		name := c.District
		if scopeDistrict != "" {
			name = c.Land.Sector
		}
		if name == "" {
			name = "unknown"
		}
		g := groups[name]
		if g == nil {
			g = &GroupCount{Name: name, ByStatus: map[models.CaseStatus]int{}}
			groups[name] = g
		}
		g.Total++
		g.ByStatus[c.Status]++
	}

	st.Monthly = make([]MonthlyCount, 0, len(months))
	for month, counts := range months {
		st.Monthly = append(st.Monthly, MonthlyCount{Month: month, Counts: counts})
	}
	sort.Slice(st.Monthly, func(i, j int) bool { return st.Monthly[i].Month < st.Monthly[j].Month })

	st.Breakdown.Groups = make([]GroupCount, 0, len(groups))
	for _, g := range groups {
		st.Breakdown.Groups = append(st.Breakdown.Groups, *g)
	}
	sort.Slice(st.Breakdown.Groups, func(i, j int) bool {
		return st.Breakdown.Groups[i].Name < st.Breakdown.Groups[j].Name
	})
	return st
}
