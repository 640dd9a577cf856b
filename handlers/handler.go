// Package handlers contains the HTTP endpoints. Every handler is a
// method on Handler so dependencies arrive at construction time instead
// of through package-level state.
package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"local-chef-bazaar-api/middleware"
	"local-chef-bazaar-api/payments"
	"local-chef-bazaar-api/storage"
	"local-chef-bazaar-api/workflow"
)

type Handler struct {
	store    storage.Store
	auth     *middleware.Auth
	roles    *workflow.Engine
	payments *payments.Engine
}

func New(store storage.Store, auth *middleware.Auth, roles *workflow.Engine, pay *payments.Engine) *Handler {
	return &Handler{store: store, auth: auth, roles: roles, payments: pay}
}

// parseID converts a path/body id string into the store's native id
// type. A malformed id fails the surrounding operation with a server
// error, as the original system did.
func parseID(c *gin.Context, hex string) (bson.ObjectID, bool) {
	id, err := bson.ObjectIDFromHex(hex)
	if err != nil {
		serverError(c, "invalid id", err)
		return bson.ObjectID{}, false
	}
	return id, true
}

// serverError logs the cause and answers with a generic 500. Gateway
// failures are never retried here; the caller re-invokes.
func serverError(c *gin.Context, msg string, err error) {
	log.Printf("ERROR %s %s: %s: %v", c.Request.Method, c.FullPath(), msg, err)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": msg})
}
