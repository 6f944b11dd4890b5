// Package docs Campus Lost & Found API.
//
// Documentation of the Campus Lost & Found registry API.
//
//     Schemes: https
//     BasePath: /
//     Version: 1.0.0
//
//     Consumes:
//     - application/json
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
	"github.com/linesmerrill/lostfound-api/api/handlers"
	"github.com/linesmerrill/lostfound-api/models"
	"github.com/linesmerrill/lostfound-api/registry"
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

// swagger:route POST /api/v1/auth/session auth createSession
// Exchanges an identity assertion for a bearer token.
// responses:
//   200: sessionResponse

// swagger:parameters createSession
type sessionRequestWrapper struct {
	// in:body
	Body handlers.SessionRequest
}

// The bearer token and the signed in user
// swagger:response sessionResponse
type sessionResponseWrapper struct {
	// in:body
	Body handlers.SessionResponse
}

// swagger:route GET /api/v1/items items listFeed
// Lists the public feed. Filter with type, category and q.
// responses:
//   200: itemsResponse

// A list of items
// swagger:response itemsResponse
type itemsResponseWrapper struct {
	// in:body
	Body []models.Item
}

// swagger:route POST /api/v1/items items createItem
// Reports a lost or found item.
// responses:
//   201: itemResponse

// swagger:parameters createItem
type createItemRequestWrapper struct {
	// in:body
	Body registry.ItemDraft
}

// swagger:route GET /api/v1/items/{item_id} items itemByID
// Gets a single item by ID.
// responses:
//   200: itemResponse

// swagger:route POST /api/v1/items/{item_id}/claims items fileClaim
// Claims a NEW item with proof of ownership.
// responses:
//   200: itemResponse

// swagger:parameters fileClaim
type fileClaimRequestWrapper struct {
	// in:body
	Body handlers.ClaimRequest
}

// A single item
// swagger:response itemResponse
type itemResponseWrapper struct {
	// in:body
	Body models.Item
}

// swagger:route GET /api/v1/conversations chat listConversations
// Lists the caller's conversations, latest message first.
// responses:
//   200: threadsResponse

// A list of conversation threads
// swagger:response threadsResponse
type threadsResponseWrapper struct {
	// in:body
	Body []handlers.Thread
}

// swagger:route GET /api/v1/users/me users currentUser
// Gets the signed in user.
// responses:
//   200: userResponse

// A single user
// swagger:response userResponse
type userResponseWrapper struct {
	// in:body
	Body models.User
}
