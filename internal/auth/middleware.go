package auth

import (
	"net/http"
	"strings"

	pkglog "buddylist/backend/pkg/log"
	"buddylist/backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

const (
	// CookieName is the cookie a browser client sends its token in.
	CookieName = "session"

	contextUserID    = pkglog.FieldUserID
	contextSessionID = pkglog.FieldSessionID
)

// CredentialFromRequest extracts the token from a Bearer Authorization
// header, falling back to the session cookie. It returns "" if neither is
// present.
func CredentialFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if cookie, err := r.Cookie(CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// RequireAuth rejects requests without a live session and stores the
// caller's user id in the gin context.
func RequireAuth(a *Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		userID, sessionID, err := a.Authenticate(ctx, CredentialFromRequest(c.Request))
		if err != nil {
			if !errors.Is(err, ErrUnauthenticated) {
				pkglog.Ctx(ctx).Error().Err(err).Msg("authentication failed")
				response.InternalError(c, "Internal server error")
				return
			}
			response.Unauthenticated(c, "not authenticated")
			return
		}

		c.Set(contextUserID, userID)
		c.Set(contextSessionID, sessionID)

		c.Request = c.Request.WithContext(pkglog.WithUser(ctx, userID))

		c.Next()
	}
}

// CurrentUserID returns the id stored by RequireAuth.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(contextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
