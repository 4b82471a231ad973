// Package authhandler issues access tokens and guards routes with them.
package authhandler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/xdd7520/QualityStar/internal/domain/item"
	"github.com/xdd7520/QualityStar/internal/domain/user"
	"github.com/xdd7520/QualityStar/internal/infrastructure/auth"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/responses"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/responses/authres"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

const appUserContextKey = "app_user"

type AuthHandler struct {
	userService *user.UserService
	tokens      *auth.TokenIssuer
	logger      zerolog.Logger
}

func NewAuthHandler(userService *user.UserService, tokens *auth.TokenIssuer, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		tokens:      tokens,
		logger:      logger,
	}
}

// Login exchanges email and password for a bearer token.
func (h *AuthHandler) Login(ctx context.Context, email, password string) (*authres.TokenResponse, error) {
	u, err := h.userService.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	token, expiresAt, err := h.tokens.Issue(u.ID)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeInternal, "failed to issue access token", err, "auth-login-001")
	}
	return &authres.TokenResponse{
		AccessToken: token,
		TokenType:   auth.TokenType,
		ExpiresAt:   expiresAt.Unix(),
	}, nil
}

// GetUserFromContext returns the authenticated user set by RequireUser.
func GetUserFromContext(c *gin.Context) (*user.User, bool) {
	val, ok := c.Get(appUserContextKey)
	if !ok || val == nil {
		return nil, false
	}
	usr, ok := val.(*user.User)
	return usr, ok && usr != nil
}

// ActorFromContext describes the authenticated user for ownership checks.
func ActorFromContext(c *gin.Context) (item.Actor, bool) {
	usr, ok := GetUserFromContext(c)
	if !ok {
		return item.Actor{}, false
	}
	return item.Actor{UserID: usr.ID, IsSuperuser: usr.IsSuperuser}, true
}

// RequireUser resolves the bearer token to an active user.
func (h *AuthHandler) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "not authenticated", "auth-mw-001")
			return
		}

		userID, err := h.tokens.Validate(raw)
		if err != nil {
			h.logger.Warn().Err(err).Str("path", c.FullPath()).Msg("token validation failed")
			responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "could not validate credentials", "auth-mw-002")
			return
		}

		usr, err := h.userService.GetUser(c.Request.Context(), userID)
		if err != nil {
			if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
				responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "user not found", "auth-mw-003")
				return
			}
			responses.HandleError(c, err, "failed to resolve user")
			return
		}
		if !usr.IsActive {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "inactive user", "auth-mw-004")
			return
		}

		c.Set(appUserContextKey, usr)
		c.Set("user_id", usr.ID.String())
		c.Next()
	}
}

// RequireSuperuser must run after RequireUser.
func (h *AuthHandler) RequireSuperuser() gin.HandlerFunc {
	return func(c *gin.Context) {
		usr, ok := GetUserFromContext(c)
		if !ok {
			responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "not authenticated", "auth-mw-005")
			return
		}
		if !usr.IsSuperuser {
			responses.HandleNewError(c, platformerrors.ErrorTypeForbidden, "the user doesn't have enough privileges", "auth-mw-006")
			return
		}
		c.Next()
	}
}

// WithUserAuthChain prefixes handlers with RequireUser.
func (h *AuthHandler) WithUserAuthChain(handlers ...gin.HandlerFunc) []gin.HandlerFunc {
	return append([]gin.HandlerFunc{h.RequireUser()}, handlers...)
}

// WithSuperuserAuthChain prefixes handlers with RequireUser and RequireSuperuser.
func (h *AuthHandler) WithSuperuserAuthChain(handlers ...gin.HandlerFunc) []gin.HandlerFunc {
	return append([]gin.HandlerFunc{h.RequireUser(), h.RequireSuperuser()}, handlers...)
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
