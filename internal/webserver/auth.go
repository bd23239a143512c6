package webserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/talkincode/vendorhub/internal/workflow"
)

const (
	tokenContextKey = "user"
	actorContextKey = "actor"
)

// ActorClaims are the identity claims carried in a bearer token.
// uid travels as a string since snowflake ids exceed float64 precision.
type ActorClaims struct {
	Role string `mapstructure:"role"`
	UID  int64  `mapstructure:"uid"`
}

// JWTAuth validates HS256 bearer tokens signed with secret.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(secret),
		SigningMethod: echojwt.AlgorithmHS256,
		ContextKey:    tokenContextKey,
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing, invalid or expired token").SetInternal(err)
		},
	})
}

// ActorMiddleware turns the validated token into a workflow.Actor on the context.
func ActorMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get(tokenContextKey).(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}
			actor, err := ActorFromClaims(claims)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}
			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

// ActorFromClaims decodes role and uid. Non-admin actors need a uid.
func ActorFromClaims(claims jwt.MapClaims) (workflow.Actor, error) {
	var ac ActorClaims
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &ac,
	})
	if err != nil {
		return workflow.Actor{}, err
	}
	if err := dec.Decode(map[string]interface{}(claims)); err != nil {
		return workflow.Actor{}, errors.Wrap(err, "decode claims")
	}
	role, ok := workflow.ParseRole(ac.Role)
	if !ok {
		return workflow.Actor{}, errors.Errorf("unknown role %q", ac.Role)
	}
	if role != workflow.RoleAdmin && ac.UID == 0 {
		return workflow.Actor{}, errors.New("uid claim is required")
	}
	return workflow.Actor{Role: role, ID: ac.UID}, nil
}

// GetActor returns the authenticated caller of the request.
func GetActor(c echo.Context) (workflow.Actor, bool) {
	actor, ok := c.Get(actorContextKey).(workflow.Actor)
	return actor, ok
}

// IssueToken signs a bearer token for actor.
func IssueToken(secret string, actor workflow.Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"role": string(actor.Role),
		"uid":  strconv.FormatInt(actor.ID, 10),
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
