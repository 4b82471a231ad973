package login

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/handlers/authhandler"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/responses"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

type LoginRoute struct {
	authHandler *authhandler.AuthHandler
}

func NewLoginRoute(authHandler *authhandler.AuthHandler) *LoginRoute {
	return &LoginRoute{authHandler: authHandler}
}

func (r *LoginRoute) RegisterRouter(router gin.IRouter) {
	login := router.Group("/login")
	login.POST("/access-token", r.accessToken)
	login.POST("/test-token", r.authHandler.WithUserAuthChain(r.testToken)...)
}

// accessToken godoc
// @Summary Login
// @Description OAuth2 compatible password login. The username field carries the email.
// @Tags Login API
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Email"
// @Param password formData string true "Password"
// @Success 200 {object} authres.TokenResponse
// @Failure 400 {object} responses.ErrorResponse
// @Router /login/access-token [post]
func (r *LoginRoute) accessToken(reqCtx *gin.Context) {
	username := reqCtx.PostForm("username")
	password := reqCtx.PostForm("password")
	if username == "" || password == "" {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "username and password are required", "login-001")
		return
	}

	token, err := r.authHandler.Login(reqCtx.Request.Context(), username, password)
	if err != nil {
		responses.HandleError(reqCtx, err, "Incorrect email or password")
		return
	}
	reqCtx.JSON(http.StatusOK, token)
}

// testToken godoc
// @Summary Test access token
// @Tags Login API
// @Security BearerAuth
// @Produce json
// @Success 200 {object} user.User
// @Failure 401 {object} responses.ErrorResponse
// @Router /login/test-token [post]
func (r *LoginRoute) testToken(reqCtx *gin.Context) {
	usr, _ := authhandler.GetUserFromContext(reqCtx)
	reqCtx.JSON(http.StatusOK, usr)
}
