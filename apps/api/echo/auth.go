package echoapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/shuledash/shuledash/core"
	"github.com/shuledash/shuledash/core/envelope"
)

const contextTokenKey = "userToken"

// TokenSaver persists the upstream session token captured at login.
type TokenSaver interface {
	core.TokenStore
	Save(token string) error
}

func newJWTConfig(conf *core.Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    []byte(conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    contextTokenKey,
		Claims:        new(Claims),
	}
}

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	OrigIssuedAt int64  `json:"oriat,omitempty"`
	Username     string `json:"username,omitempty"`
	Email        string `json:"email,omitempty"`
	IsAdmin      bool   `json:"is_admin,omitempty"`
}

// session is what the upstream backend returns on a successful login.
type session struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"isAdmin"`
}

func getSessionClaims(conf *core.Config, sess session, origIat ...int64) *Claims {
	now := time.Now()
	nownix := now.Unix()

	var oriat int64
	if len(origIat) > 0 {
		oriat = origIat[0]
	} else {
		oriat = nownix
	}

	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   sess.UserID,
			Audience:  "Dashboard",
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  nownix,
		},
		OrigIssuedAt: oriat,
		Username:     sess.Username,
		Email:        sess.Email,
		IsAdmin:      sess.IsAdmin,
	}
}

// GenerateToken generates a signed JWT token string representing the Claims.
func GenerateToken(conf *core.Config, claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(middleware.AlgorithmHS256)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString([]byte(conf.SecretKey))
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

type authApi struct {
	conf  *core.Config
	creds TokenSaver
	http  *http.Client
}

func registerAuthAPI(g *echo.Group, jwt echo.MiddlewareFunc, conf *core.Config, creds TokenSaver) {
	api := authApi{
		conf:  conf,
		creds: creds,
		http:  &http.Client{Timeout: conf.Upstream.Timeout},
	}

	ag := g.Group("/auth")
	ug := ag.Group("", jwt)

	ag.POST("/login", api.login)
	ug.POST("/token-refresh", api.refreshToken)
	ug.POST("/logout", api.logout)
}

type (
	loginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	loginResponse struct {
		Token string `json:"token"`
	}
)

// login authenticates against the upstream backend, caches its session token
// for subsequent proxied calls and issues the dashboard's own JWT.
func (api *authApi) login(ctx echo.Context) error {
	var data loginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to loginRequest")
	}
	if data.Username == "" || data.Password == "" {
		return errAuthenticationFailed
	}

	sess, err := api.loginUpstream(ctx, data)
	if err != nil {
		return err
	}
	if err = api.creds.Save(sess.Token); err != nil {
		// every proxied call needs that token; an unwritable store is unrecoverable
		return core.NewShutdownError("caching session token: " + err.Error())
	}

	token, err := GenerateToken(api.conf, getSessionClaims(api.conf, sess))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, loginResponse{Token: token})
}

func (api *authApi) loginUpstream(ctx echo.Context, data loginRequest) (session, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return session{}, errors.Wrap(err, "marshalling credentials")
	}

	req, err := http.NewRequestWithContext(
		ctx.Request().Context(), http.MethodPost, api.conf.Upstream.BaseURL+"/auth/login", bytes.NewReader(payload))
	if err != nil {
		return session{}, errors.Wrap(err, "building login request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := api.http.Do(req)
	if err != nil {
		return session{}, errors.Wrap(err, "calling upstream login")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest {
		return session{}, errAuthenticationFailed
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return session{}, errors.Errorf("upstream login: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return session{}, errors.Wrap(err, "reading login response")
	}

	var sess session
	if _, err = envelope.UnwrapInto(body, "session", &sess); err != nil || sess.Token == "" {
		return session{}, errAuthenticationFailed
	}
	return sess, nil
}

func (api *authApi) refreshToken(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	// check if refresh has not expired
	expTime := time.Unix(claims.OrigIssuedAt, 0).Add(api.conf.Server.JWTRefreshExpirationDelta)
	if time.Now().After(expTime) {
		return errRefreshExpired
	}

	sess := session{UserID: claims.Subject, Username: claims.Username, Email: claims.Email, IsAdmin: claims.IsAdmin}
	token, err := GenerateToken(api.conf, getSessionClaims(api.conf, sess, claims.OrigIssuedAt))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, loginResponse{Token: token})
}

// logout drops the cached upstream token; the dashboard JWT simply expires.
func (api *authApi) logout(ctx echo.Context) error {
	if err := api.creds.Clear(); err != nil {
		return errors.Wrap(err, "clearing session token")
	}
	return ctx.NoContent(http.StatusNoContent)
}
