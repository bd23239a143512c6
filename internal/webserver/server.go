package webserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/talkincode/vendorhub/config"
	"go.uber.org/zap"
)

const apiPrefix = "/api/v1"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var server *AdminServer

// AdminServer is the JSON API front end. Routes are registered on the
// package-level server through ApiGET and friends.
type AdminServer struct {
	root   *echo.Echo
	api    *echo.Group
	config *config.AppConfig
}

// Init builds the server and makes it the target of route registration.
func Init(cfg *config.AppConfig) *AdminServer {
	server = NewAdminServer(cfg)
	return server
}

func NewAdminServer(cfg *config.AppConfig) *AdminServer {
	s := &AdminServer{config: cfg}
	s.root = echo.New()
	s.root.HideBanner = true
	s.root.HidePort = true
	s.root.JSONSerializer = &jsonSerializer{}
	s.root.Validator = NewValidator()
	s.root.HTTPErrorHandler = s.errorHandler
	if cfg.System.Debug {
		s.root.Logger.SetLevel(log.DEBUG)
	} else {
		s.root.Logger.SetLevel(log.INFO)
	}

	s.root.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			zap.L().Error("panic in handler",
				zap.String("namespace", "web"),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.ByteString("stack", stack))
			return err
		},
	}))
	s.root.Use(requestLogger())

	s.root.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	s.api = s.root.Group(apiPrefix, JWTAuth(cfg.Web.Secret), ActorMiddleware())
	return s
}

func (s *AdminServer) Echo() *echo.Echo {
	return s.root
}

// Start blocks serving HTTP until Shutdown is called.
func (s *AdminServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Web.Host, s.config.Web.Port)
	zap.L().Info("admin api listening", zap.String("namespace", "web"), zap.String("addr", addr))
	err := s.root.Start(addr)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *AdminServer) Shutdown(ctx context.Context) error {
	return s.root.Shutdown(ctx)
}

func (s *AdminServer) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := interface{}(err.Error())
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		msg = he.Message
	}
	errCode := "SERVER_ERROR"
	switch code {
	case http.StatusUnauthorized:
		errCode = "UNAUTHORIZED"
	case http.StatusNotFound:
		errCode = "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		errCode = "METHOD_NOT_ALLOWED"
	case http.StatusBadRequest:
		errCode = "INVALID_REQUEST"
	}
	if code >= http.StatusInternalServerError {
		zap.L().Error("request failed", zap.String("namespace", "web"),
			zap.String("uri", c.Request().RequestURI), zap.Error(err))
	}
	_ = c.JSON(code, map[string]interface{}{"code": errCode, "message": msg})
}

func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			zap.L().Debug("http request",
				zap.String("namespace", "web"),
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)))
			return nil
		}
	}
}

// Use adds middleware to the api group.
func Use(m ...echo.MiddlewareFunc) {
	server.api.Use(m...)
}

func ApiGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.GET(path, h, m...)
}

func ApiPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.POST(path, h, m...)
}

func ApiPUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.PUT(path, h, m...)
}

func ApiDELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.DELETE(path, h, m...)
}

type jsonSerializer struct{}

func (jsonSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := json.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (jsonSerializer) Deserialize(c echo.Context, i interface{}) error {
	err := json.NewDecoder(c.Request().Body).Decode(i)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid json body").SetInternal(err)
	}
	return nil
}
