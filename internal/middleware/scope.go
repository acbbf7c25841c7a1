package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/college-schedule-api/internal/models"
	"github.com/noah-isme/college-schedule-api/pkg/config"
	appErrors "github.com/noah-isme/college-schedule-api/pkg/errors"
	"github.com/noah-isme/college-schedule-api/pkg/logger"
	"github.com/noah-isme/college-schedule-api/pkg/response"
)

// ContextScopeKey is the gin context key storing the caller's AdminScope.
const ContextScopeKey = "adminScope"

// TokenVerifier checks bearer tokens minted by the portal session layer.
type TokenVerifier struct {
	secret []byte
	issuer string
}

// NewTokenVerifier builds a verifier for HS256 tokens signed with cfg.Secret.
func NewTokenVerifier(cfg config.JWTConfig) *TokenVerifier {
	return &TokenVerifier{secret: []byte(cfg.Secret), issuer: cfg.Issuer}
}

// Verify parses raw and returns its claims when the signature, expiry and issuer hold.
func (v *TokenVerifier) Verify(raw string) (*models.PortalClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &models.PortalClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}
	if !token.Valid || claims.UserID == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}

// Scope requires a portal bearer token and stores the derived AdminScope on the context.
// Only scheduling roles pass; a department admin must carry a department.
func Scope(verifier *TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			return
		}

		claims, err := verifier.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Error(c, err)
			return
		}

		scope := claims.Scope()
		switch scope.Role {
		case models.RoleSuperAdmin:
		case models.RoleDepartmentAdmin:
			if scope.DepartmentID == "" {
				response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "department admin token has no department"))
				return
			}
		default:
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "role cannot manage class schedules"))
			return
		}

		c.Set(ContextScopeKey, scope)
		c.Set(logger.UserIDKey, scope.UserID)
		c.Next()
	}
}

// RequireSuperAdmin blocks department admins. It must run after Scope.
func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		scope, ok := ScopeFrom(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			return
		}
		if !scope.Unrestricted() {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "super admin role required"))
			return
		}
		c.Next()
	}
}

// ScopeFrom returns the AdminScope stored by Scope.
func ScopeFrom(c *gin.Context) (models.AdminScope, bool) {
	value, exists := c.Get(ContextScopeKey)
	if !exists {
		return models.AdminScope{}, false
	}
	scope, ok := value.(models.AdminScope)
	return scope, ok
}
