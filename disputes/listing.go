package disputes

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/landauthority/dispute-api/models"
	"github.com/landauthority/dispute-api/policy"
)

// CaseList is one page of a listing
type CaseList struct {
	Items []models.CaseView `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// GetCase returns one case with its derived overdue days
func (s *Service) GetCase(ctx context.Context, actor models.Actor, caseID string) (models.CaseView, error) {
	c, err := s.load(ctx, caseID)
	if err != nil {
		return models.CaseView{}, err
	}
	if !policy.CanRead(actor, c) {
		return models.CaseView{}, forbidden("%s may not read case %s", actor.ID, c.ClaimID)
	}
	return s.view(c), nil
}

// scopedFilter is the single place listings and statistics build their predicate
func (s *Service) scopedFilter(actor models.Actor, targetUserID string, from, to *time.Time) (models.CaseFilter, error) {
	if targetUserID != "" && targetUserID != actor.ID && actor.Role() != models.RoleAdmin {
		return models.CaseFilter{}, forbidden("only an admin may list another user's cases")
	}
	if from != nil && to != nil && to.Before(*from) {
		return models.CaseFilter{}, invalidPayload("endDate is before startDate")
	}
	f := policy.Scope(actor, targetUserID)
	f.CreatedFrom = from
	f.CreatedTo = to
	return f, nil
}

// ListCases returns the page of cases visible to actor
func (s *Service) ListCases(ctx context.Context, actor models.Actor, q ListQuery) (CaseList, error) {
	f, err := s.scopedFilter(actor, q.TargetUserID, q.From, q.To)
	if err != nil {
		return CaseList{}, err
	}
	f.Statuses = q.Statuses

	cases, total, err := s.cases.FindByFilter(ctx, f, q.Page)
	if err != nil {
		return CaseList{}, errors.Wrap(err, "failed to list cases")
	}
	items := make([]models.CaseView, 0, len(cases))
	for i := range cases {
		items = append(items, s.view(&cases[i]))
	}
	return CaseList{Items: items, Total: total, Page: q.Page.Page, Limit: q.Page.Limit}, nil
}
