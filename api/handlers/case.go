package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/landauthority/dispute-api/disputes"
	"github.com/landauthority/dispute-api/models"
	"github.com/landauthority/dispute-api/storage"
)

const maxUploadBytes = 32 << 20

// Case exposes the dispute case routes
type Case struct {
	Svc DisputeService
}

// CreateCaseHandler files a new claim for the caller
func (c Case) CreateCaseHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}
	var in disputes.CreateClaimInput
	if err := decodeJSON(r, &in); err != nil {
		badRequest("failed to decode request body", w, err)
		return
	}
	view, err := c.Svc.CreateClaim(r.Context(), actor, in)
	if err != nil {
		serviceError("failed to create case", w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// CasesHandler lists the cases visible to the caller
func (c Case) CasesHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}
	from, to, err := parseDateRange(r)
	if err != nil {
		badRequest("invalid date range", w, err)
		return
	}
	statuses, err := parseStatuses(r.URL.Query().Get("status"))
	if err != nil {
		badRequest("invalid status filter", w, err)
		return
	}
	q := disputes.ListQuery{
		TargetUserID: r.URL.Query().Get("userId"),
		Statuses:     statuses,
		From:         from,
		To:           to,
		Page:         getPage(r),
	}
	zap.S().Debugf("listing cases for %s page %d", actor.ID, q.Page.Page)

	list, err := c.Svc.ListCases(r.Context(), actor, q)
	if err != nil {
		serviceError("failed to list cases", w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// CaseByIDHandler returns one case
func (c Case) CaseByIDHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}
	view, err := c.Svc.GetCase(r.Context(), actor, mux.Vars(r)["case_id"])
	if err != nil {
		serviceError("failed to get case by ID", w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// UpdateCaseHandler edits the free text fields and witnesses of a case
func (c Case) UpdateCaseHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}
	var in disputes.EditInput
	if err := decodeJSON(r, &in); err != nil {
		badRequest("failed to decode request body", w, err)
		return
	}
	view, err := c.Svc.EditCase(r.Context(), actor, mux.Vars(r)["case_id"], in)
	if err != nil {
		serviceError("failed to update case", w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// DeleteCaseHandler soft deletes a case
func (c Case) DeleteCaseHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}
	if err := c.Svc.SoftDelete(r.Context(), actor, mux.Vars(r)["case_id"]); err != nil {
		serviceError("failed to delete case", w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CaseVersionsHandler returns the edit history of a case
func (c Case) CaseVersionsHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}
	versions, err := c.Svc.ListVersions(r.Context(), actor, mux.Vars(r)["case_id"])
	if err != nil {
		serviceError("failed to list case versions", w, err)
		return
	}
	writeJSON(w, http.StatusOK, versions)
}

// TransitionHandler applies a lifecycle event. Decisions carrying a letter are sent as
// multipart with the file in "letter"; everything else may be plain JSON.
func (c Case) TransitionHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}
	ev, err := disputes.ParseEvent(mux.Vars(r)["event"])
	if err != nil {
		badRequest("unknown lifecycle event", w, err)
		return
	}

	var in disputes.TransitionInput
	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			badRequest("failed to parse multipart form", w, errors.Wrap(models.InvalidPayloadError, err.Error()))
			return
		}
		in.Feedback = r.FormValue("feedback")
		in.Reason = r.FormValue("reason")
		if headers := r.MultipartForm.File["letter"]; len(headers) > 0 {
			f, err := readFormFile(headers[0])
			if err != nil {
				badRequest("failed to read letter", w, err)
				return
			}
			in.Letter = &f
		}
	} else if r.ContentLength != 0 {
		var body struct {
			Feedback string `json:"feedback"`
			Reason   string `json:"reason"`
		}
		if err := decodeJSON(r, &body); err != nil {
			badRequest("failed to decode request body", w, err)
			return
		}
		in.Feedback, in.Reason = body.Feedback, body.Reason
	}

	view, err := c.Svc.Transition(r.Context(), actor, mux.Vars(r)["case_id"], ev, in)
	if err != nil {
		serviceError("failed to "+string(ev)+" case", w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// CloseCaseHandler is the administrative close
func (c Case) CloseCaseHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}
	var in disputes.CloseInput
	if err := decodeJSON(r, &in); err != nil {
		badRequest("failed to decode request body", w, err)
		return
	}
	view, err := c.Svc.Close(r.Context(), actor, mux.Vars(r)["case_id"], in)
	if err != nil {
		serviceError("failed to close case", w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// AssignDefendantHandler invites the defendant of a case to register
func (c Case) AssignDefendantHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}
	var in disputes.AssignDefendantInput
	if err := decodeJSON(r, &in); err != nil {
		badRequest("failed to decode request body", w, err)
		return
	}
	res, err := c.Svc.AssignDefendant(r.Context(), actor, mux.Vars(r)["case_id"], in)
	if err != nil {
		serviceError("failed to assign defendant", w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// AcceptDefendantHandler links the caller's account to the case named in the signup token
func (c Case) AcceptDefendantHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}
	var body struct {
		Token string `json:"token"`
	}
	if err := decodeJSON(r, &body); err != nil {
		badRequest("failed to decode request body", w, err)
		return
	}
	view, err := c.Svc.AcceptDefendantInvitation(r.Context(), actor, body.Token)
	if err != nil {
		serviceError("failed to accept defendant invitation", w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// ShareDocumentsHandler stores the uploaded "documents" and sends them to the groups in
// "recipientTypes"
func (c Case) ShareDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		badRequest("failed to parse multipart form", w, errors.Wrap(models.InvalidPayloadError, err.Error()))
		return
	}

	in := disputes.ShareInput{Message: r.FormValue("message")}
	for _, raw := range r.MultipartForm.Value["recipientTypes"] {
		for _, t := range splitList(raw) {
			in.RecipientTypes = append(in.RecipientTypes, models.RecipientType(t))
		}
	}
	for _, header := range r.MultipartForm.File["documents"] {
		f, err := readFormFile(header)
		if err != nil {
			badRequest("failed to read document", w, err)
			return
		}
		in.Documents = append(in.Documents, f)
	}

	res, err := c.Svc.ShareDocuments(r.Context(), actor, mux.Vars(r)["case_id"], in)
	if err != nil {
		serviceError("failed to share documents", w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func readFormFile(header *multipart.FileHeader) (storage.File, error) {
	src, err := header.Open()
	if err != nil {
		return storage.File{}, errors.Wrap(models.InvalidPayloadError, err.Error())
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return storage.File{}, errors.Wrap(models.InvalidPayloadError, err.Error())
	}
	mime := header.Header.Get("Content-Type")
	if mime == "" || mime == "application/octet-stream" {
		mime = http.DetectContentType(data)
	}
	return storage.File{Name: header.Filename, MimeType: mime, Data: data}, nil
}

func parseStatuses(raw string) ([]models.CaseStatus, error) {
	var out []models.CaseStatus
	for _, part := range splitList(raw) {
		status := models.CaseStatus(strings.ToLower(part))
		if !knownStatus(status) {
			return nil, errors.Wrapf(models.InvalidPayloadError, "unknown status %q", part)
		}
		out = append(out, status)
	}
	return out, nil
}

func knownStatus(s models.CaseStatus) bool {
	for _, v := range models.AllStatuses {
		if v == s {
			return true
		}
	}
	return false
}
