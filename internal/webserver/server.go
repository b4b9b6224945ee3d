package webserver

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/vitalhub/storefront/internal/app"
	"go.uber.org/zap"
)

const appContextKey = "appctx"

type server struct {
	root  *echo.Echo
	appc  app.AppContext
	api   *echo.Group
	user  *echo.Group
	admin *echo.Group
}

var srv *server

type payloadValidator struct {
	validate *validator.Validate
}

func (v *payloadValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// Init builds the Echo instance, wires middleware and route groups. Route
// registration helpers below only work after Init.
func Init(appc app.AppContext) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &payloadValidator{validate: validator.New()}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	}))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(appContextKey, appc)
			return next(c)
		}
	})

	secret := []byte(appc.Config().Web.JwtSecret)
	// Parse with jwt/v4 so the context token matches what IssueOperatorToken
	// signs; echo-jwt's default parser uses jwt/v5.
	jwtmw := echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			token, err := jwt.Parse(auth, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil {
				return nil, err
			}
			if !token.Valid {
				return nil, echojwt.ErrJWTInvalid
			}
			return token, nil
		},
	})

	srv = &server{
		root: e,
		appc: appc,
		// public storefront surface
		api: e.Group("/api"),
		// authenticated customer surface (cart, checkout)
		user: e.Group("/api", jwtmw),
		// admin surface behind JWT + operator level check
		admin: e.Group("/admin", jwtmw, requireOperator),
	}
	return e
}

// Start runs the HTTP listener until the process exits.
func Start() error {
	cfg := srv.appc.Config().Web
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	zap.S().Infof("starting web server on %s", addr)
	return srv.root.Start(addr)
}

// GetApp extracts the application context injected by Init middleware.
func GetApp(c echo.Context) app.AppContext {
	return c.Get(appContextKey).(app.AppContext)
}

// Public routes (no authentication)
func PubGET(path string, h echo.HandlerFunc)  { srv.api.GET(path, h) }
func PubPOST(path string, h echo.HandlerFunc) { srv.api.POST(path, h) }

// RootPOST registers an unauthenticated route outside the /api group,
// used for the operator login endpoint.
func RootPOST(path string, h echo.HandlerFunc) { srv.root.POST(path, h) }

// Customer routes (valid JWT, identity from subject claim)
func UserGET(path string, h echo.HandlerFunc)    { srv.user.GET(path, h) }
func UserPOST(path string, h echo.HandlerFunc)   { srv.user.POST(path, h) }
func UserPUT(path string, h echo.HandlerFunc)    { srv.user.PUT(path, h) }
func UserDELETE(path string, h echo.HandlerFunc) { srv.user.DELETE(path, h) }

// Admin routes (operator level token)
func ApiGET(path string, h echo.HandlerFunc)    { srv.admin.GET(path, h) }
func ApiPOST(path string, h echo.HandlerFunc)   { srv.admin.POST(path, h) }
func ApiPUT(path string, h echo.HandlerFunc)    { srv.admin.PUT(path, h) }
func ApiDELETE(path string, h echo.HandlerFunc) { srv.admin.DELETE(path, h) }
