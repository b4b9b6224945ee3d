package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/vitalhub/storefront/internal/webserver"
	"github.com/vitalhub/storefront/pkg/common"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const operatorTokenTTL = 12 * time.Hour

type loginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func registerLoginRoutes() {
	webserver.RootPOST("/admin/login", postLogin)
}

func postLogin(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login request", nil)
	}
	payload.Username = strings.TrimSpace(payload.Username)
	if payload.Username == "" || payload.Password == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Username and password are required", nil)
	}

	appc := getApp(c)
	opr, err := appc.Store().GetOperator(c.Request().Context(), payload.Username)
	if err != nil {
		// do not leak whether the account exists
		return fail(c, http.StatusUnauthorized, "LOGIN_FAILED", "Invalid username or password", nil)
	}
	if !strings.EqualFold(opr.Status, common.ENABLED) {
		return fail(c, http.StatusForbidden, "ACCOUNT_DISABLED", "Account is disabled", nil)
	}
	if bcrypt.CompareHashAndPassword([]byte(opr.Password), []byte(payload.Password)) != nil {
		zap.L().Warn("operator login failed",
			zap.String("username", payload.Username),
			zap.String("ip", c.RealIP()))
		return fail(c, http.StatusUnauthorized, "LOGIN_FAILED", "Invalid username or password", nil)
	}

	token, err := webserver.IssueOperatorToken(
		appc.Config().Web.JwtSecret, opr.Username, opr.Level, operatorTokenTTL)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "TOKEN_FAILED", "Failed to issue token", nil)
	}

	opr.LastLogin = time.Now()
	if err := appc.Store().SaveOperator(c.Request().Context(), opr); err != nil {
		zap.L().Warn("failed to record operator last login", zap.Error(err))
	}

	zap.L().Info("operator logged in",
		zap.String("username", opr.Username),
		zap.String("ip", c.RealIP()))
	return ok(c, map[string]interface{}{
		"token":    token,
		"username": opr.Username,
		"level":    opr.Level,
	})
}
