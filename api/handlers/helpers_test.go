package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/landauthority/dispute-api/api"
	"github.com/landauthority/dispute-api/models"
)

var (
	claimant = models.Actor{ID: "u1", Name: "Aline", Email: "aline@example.rw", ActualRole: models.RoleUser, EffectiveRole: models.RoleUser}
	manager  = models.Actor{ID: "m1", Name: "Eric", ActualRole: models.RoleManager, EffectiveRole: models.RoleManager, District: "Gasabo"}
)

const caseID = "65f1c0a2b3c4d5e6f7a8b9c0"

func asActor(req *http.Request, actor models.Actor) *http.Request {
	return req.WithContext(api.WithActor(req.Context(), actor))
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

type formFile struct {
	field, name, content string
}

func multipartRequest(t *testing.T, target string, values map[string]string, files ...formFile) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range values {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		part, err := mw.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func errorBody(t *testing.T, rr *httptest.ResponseRecorder) models.MessageError {
	t.Helper()
	var body models.ErrorMessageResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body.Response
}
