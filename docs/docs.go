// Package docs Land Dispute API.
//
// Documentation of the Land Dispute API.
//
//     Schemes: https
//     BasePath: /
//     Version: 1.0.0
//
//     Consumes:
//     - application/json
//     - multipart/form-data
//
//     Produces:
//     - application/json
//
//     Security:
//     - bearer
//
//    SecurityDefinitions:
//    bearer:
//      type: apiKey
//      name: Authorization
//      in: header
//
// swagger:meta
package docs

import (
	"github.com/landauthority/dispute-api/disputes"
	"github.com/landauthority/dispute-api/models"
)

// swagger:route GET /health health healthEndpointID
// Lists the healthchex of the web service api.
// responses:
//   200: healthResponse

// Shows the current health of the api. true means it is alive, false means it is not.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body models.HealthCheckResponse
}

// swagger:route POST /api/v1/cases case createCase
// Files a new land dispute for the caller.
// responses:
//   201: caseResponse
//   400: errorResponse

// swagger:parameters createCase
type createCaseParamsWrapper struct {
	// in:body
	Body disputes.CreateClaimInput
}

// swagger:route GET /api/v1/cases/{case_id} case caseByID
// Gets a single case with its overdue days.
// responses:
//   200: caseResponse
//   403: errorResponse
//   404: errorResponse

// A case and the days it is past its level threshold
// swagger:response caseResponse
type caseResponseWrapper struct {
	// in:body
	Body models.CaseView
}

// swagger:route GET /api/v1/cases case cases
// Lists the cases visible to the caller. Filters: status, startDate, endDate, page, limit, userId.
// responses:
//   200: caseListResponse

// swagger:response caseListResponse
type caseListResponseWrapper struct {
	// in:body
	Body disputes.CaseList
}

// swagger:route POST /api/v1/cases/{case_id}/transitions/{event} case transition
// Applies process, resolve, reject, appeal or withdraw.
// responses:
//   200: caseResponse
//   409: errorResponse

// swagger:route GET /api/v1/statistics statistics statistics
// Counts the cases visible to the caller.
// responses:
//   200: statisticsResponse

// swagger:response statisticsResponse
type statisticsResponseWrapper struct {
	// in:body
	Body disputes.Statistics
}

// Every failure carries a stable kind such as NotFound or Conflict
// swagger:response errorResponse
type errorResponseWrapper struct {
	// in:body
	Body models.ErrorMessageResponse
}
