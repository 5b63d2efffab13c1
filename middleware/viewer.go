package middleware

import (
	"net/http"
	"strings"

	"stayhaven/models"
	"stayhaven/services/auth"

	"github.com/gin-gonic/gin"
)

const viewerKey = "viewer"

// CredentialsFrom extracts the request credentials. A missing or
// malformed Authorization header yields empty credentials, not an error;
// the authorizer resolves those to "no viewer".
func CredentialsFrom(c *gin.Context) auth.Credentials {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return auth.Credentials{}
	}
	return auth.Credentials{Token: strings.TrimPrefix(header, "Bearer ")}
}

// ResolveViewer resolves the current viewer, if any, and stores it on
// the request context. It never aborts; endpoints that require a viewer
// add RequireViewer after it.
func ResolveViewer(authorizer auth.Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, err := authorizer.Authorize(c.Request.Context(), CredentialsFrom(c))
		if err == nil && viewer != nil {
			c.Set(viewerKey, viewer)
		}
		c.Next()
	}
}

// RequireViewer aborts with 401 when no viewer was resolved.
func RequireViewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ViewerFrom(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// ViewerFrom returns the resolved viewer or nil.
func ViewerFrom(c *gin.Context) *models.User {
	v, ok := c.Get(viewerKey)
	if !ok {
		return nil
	}
	viewer, _ := v.(*models.User)
	return viewer
}
