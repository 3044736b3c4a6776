package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/landauthority/dispute-api/api"
	"github.com/landauthority/dispute-api/config"
	"github.com/landauthority/dispute-api/models"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

var kindStatus = map[string]int{
	"NotFound":                 http.StatusNotFound,
	"Forbidden":                http.StatusForbidden,
	"InvalidPayload":           http.StatusBadRequest,
	"InvalidTransition":        http.StatusConflict,
	"Conflict":                 http.StatusConflict,
	"DuplicateEmail":           http.StatusConflict,
	"DefendantAlreadyAssigned": http.StatusConflict,
	"UpstreamFailure":          http.StatusBadGateway,
}

// serviceError writes err with the status of its kind
func serviceError(message string, w http.ResponseWriter, err error) {
	kind := models.ErrorKind(err)
	status, ok := kindStatus[kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	config.ErrorKindStatus(message, kind, status, w, err)
}

// badRequest writes an InvalidPayload error for a request the handler could not decode
func badRequest(message string, w http.ResponseWriter, err error) {
	config.ErrorKindStatus(message, "InvalidPayload", http.StatusBadRequest, w, err)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

// actorOrUnauthorized returns the caller resolved by the auth middleware
func actorOrUnauthorized(w http.ResponseWriter, r *http.Request) (models.Actor, bool) {
	actor, ok := api.ActorFromContext(r.Context())
	if !ok {
		config.ErrorStatus("no authenticated actor", http.StatusUnauthorized, w, errors.New("unauthorized"))
	}
	return actor, ok
}

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.Wrap(models.InvalidPayloadError, "empty body")
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Wrap(models.InvalidPayloadError, err.Error())
	}
	return nil
}

// getPage reads page and limit, defaulting to the first page of defaultLimit items
func getPage(r *http.Request) models.Page {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return models.Page{Page: page, Limit: limit}
}

// parseDateRange reads startDate and endDate as RFC 3339 or YYYY-MM-DD. A date-only
// endDate covers the whole day.
func parseDateRange(r *http.Request) (from, to *time.Time, err error) {
	if raw := r.URL.Query().Get("startDate"); raw != "" {
		t, _, err := parseDate(raw)
		if err != nil {
			return nil, nil, errors.Wrapf(models.InvalidPayloadError, "invalid startDate %q", raw)
		}
		from = &t
	}
	if raw := r.URL.Query().Get("endDate"); raw != "" {
		t, dateOnly, err := parseDate(raw)
		if err != nil {
			return nil, nil, errors.Wrapf(models.InvalidPayloadError, "invalid endDate %q", raw)
		}
		if dateOnly {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		to = &t
	}
	return from, to, nil
}

func parseDate(raw string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, false, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	return t, true, err
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
