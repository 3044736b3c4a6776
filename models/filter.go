package models

import "time"

// CaseFilter is the store-agnostic predicate produced by the visibility scope and
// refined by request parameters. The Mongo store translates it to bson, in-memory
// stores call Matches.
type CaseFilter struct {
	// None matches nothing, e.g. a manager account without a district
	None bool

	ClaimantID    string
	District      string
	ExcludeLevels []Level
	Statuses      []CaseStatus
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
}

// Matches reports whether c satisfies the filter. Soft-deleted cases never match.
func (f CaseFilter) Matches(c *Case) bool {
	if f.None || c.DeletedAt != nil {
		return false
	}
	if f.ClaimantID != "" && c.Claimant != f.ClaimantID {
		return false
	}
	if f.District != "" && c.District != f.District {
		return false
	}
	for _, l := range f.ExcludeLevels {
		if c.Level == l {
			return false
		}
	}
	if len(f.Statuses) > 0 {
		found := false
		for _, s := range f.Statuses {
			if c.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.CreatedFrom != nil && c.CreatedAt.Before(*f.CreatedFrom) {
		return false
	}
	if f.CreatedTo != nil && c.CreatedAt.After(*f.CreatedTo) {
		return false
	}
	return true
}

// Page selects a window of a listing. Limit 0 means everything.
type Page struct {
	Page  int
	Limit int
}

// Skip returns the number of items before the page
func (p Page) Skip() int {
	if p.Limit <= 0 || p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}
