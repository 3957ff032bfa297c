package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

var errUnauthorized = echo.NewHTTPError(http.StatusUnauthorized)

const (
	authTokenCookieName    = "auth-token"
	refreshTokenCookieName = "refresh-token"

	authTokenLifespan    = time.Hour * 1
	refreshTokenLifespan = time.Hour * 24
)

type (
	authTokenClaims struct {
		jwt.RegisteredClaims
		Username string `json:"username"`
		IsAdmin  bool   `json:"is_admin"`
	}

	refreshTokenClaims struct {
		jwt.RegisteredClaims
		Username string `json:"username"`
	}

	jwtAuthProvider struct {
		authTokenSecret    []byte
		refreshTokenSecret []byte
	}
)

func newJwtAuth(authTokenSecret string, refreshTokenSecret string) *jwtAuthProvider {
	return &jwtAuthProvider{[]byte(authTokenSecret), []byte(refreshTokenSecret)}
}

// GetJwtVerifierMiddleware returns middleware that rejects any request
// without a valid auth token cookie.
func (auth *jwtAuthProvider) GetJwtVerifierMiddleware() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  auth.authTokenSecret,
		TokenLookup: fmt.Sprintf("cookie:%s", authTokenCookieName),
		NewClaimsFunc: func(echo.Context) jwt.Claims {
			return &authTokenClaims{}
		},
		ErrorHandler: func(echo.Context, error) error {
			return errUnauthorized
		},
	})
}

// GetAdminVerifierMiddleware layers on top of the JWT verifier and
// additionally requires the authenticated user to be an admin.
func (auth *jwtAuthProvider) GetAdminVerifierMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ec echo.Context) error {
			claims, err := auth.GetClaimsFromContext(ec)
			if err != nil {
				return errUnauthorized
			}

			if !claims.IsAdmin {
				log.Warnf("User %s denied access to admin route %s\n", claims.Username, ec.Path())
				return echo.NewHTTPError(http.StatusForbidden)
			}

			return next(ec)
		}
	}
}

// GenerateTokensAndSetCookies mints an auth token and a refresh token
// for the user and stores both in the response cookies.
func (auth *jwtAuthProvider) GenerateTokensAndSetCookies(ec echo.Context, username string, isAdmin bool) error {
	now := time.Now()

	authToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &authTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(authTokenLifespan))},
		Username:         username,
		IsAdmin:          isAdmin,
	}).SignedString(auth.authTokenSecret)
	if err != nil {
		return fmt.Errorf("failed to sign auth token: %w", err)
	}
	setTokenCookie(ec, authTokenCookieName, authToken, now.Add(authTokenLifespan))

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &refreshTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(refreshTokenLifespan))},
		Username:         username,
	}).SignedString(auth.refreshTokenSecret)
	if err != nil {
		return fmt.Errorf("failed to sign refresh token: %w", err)
	}
	setTokenCookie(ec, refreshTokenCookieName, refreshToken, now.Add(refreshTokenLifespan))

	return nil
}

// GetClaimsFromContext extracts the verified auth token claims placed
// in the context by the verifier middleware.
func (auth *jwtAuthProvider) GetClaimsFromContext(ec echo.Context) (*authTokenClaims, error) {
	token, ok := ec.Get("user").(*jwt.Token)
	if !ok {
		return nil, errors.New("no verified JWT present in request context")
	}

	claims, ok := token.Claims.(*authTokenClaims)
	if !ok {
		return nil, errors.New("JWT claims are of an unexpected shape")
	}

	return claims, nil
}

// RevokeTokensInContext expires both token cookies on the response.
func (auth *jwtAuthProvider) RevokeTokensInContext(ec echo.Context) {
	setTokenCookie(ec, authTokenCookieName, "", time.Unix(0, 0))
	setTokenCookie(ec, refreshTokenCookieName, "", time.Unix(0, 0))
}

func setTokenCookie(ec echo.Context, name string, token string, expiry time.Time) {
	ec.SetCookie(&http.Cookie{
		Name:     name,
		Value:    token,
		Expires:  expiry,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
