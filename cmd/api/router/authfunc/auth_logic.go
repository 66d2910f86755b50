package authfunc

import (
	"context"
	"strconv"
	"time"

	"VidTube.com/cmd/api/handlers"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/hertz-contrib/jwt"
	"github.com/pkg/errors"
)

const (
	tokenKey  = "vidtube_token"
	expireKey = "vidtube_token_expire"
)

// Revoker is the signed-out token list.
type Revoker interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

type Auth struct {
	mw      *jwt.HertzJWTMiddleware
	revoked Revoker
	timeout time.Duration
}

func New(secret, realm string, timeout time.Duration, revoked Revoker) (*Auth, error) {
	if timeout <= 0 {
		timeout = constants.DefaultTokenTimeout
	}
	mw, err := jwt.New(&jwt.HertzJWTMiddleware{
		Realm:         realm,
		Key:           []byte(secret),
		Timeout:       timeout,
		IdentityKey:   constants.IdentityKey,
		TokenLookup:   "header: Authorization, cookie: " + constants.TokenCookie,
		TokenHeadName: "Bearer",
		TimeFunc:      time.Now,
		PayloadFunc: func(data interface{}) jwt.MapClaims {
			if user, ok := data.(*model.User); ok {
				// ids exceed float64 precision, so they travel as strings
				return jwt.MapClaims{constants.IdentityKey: strconv.FormatInt(user.ID, 10)}
			}
			return jwt.MapClaims{}
		},
	})
	if err != nil {
		return nil, err
	}
	return &Auth{mw: mw, revoked: revoked, timeout: timeout}, nil
}

// IssueToken signs a token for user and sets it as an http-only cookie.
func (a *Auth) IssueToken(c *app.RequestContext, user *model.User) (string, time.Time, error) {
	token, expire, err := a.mw.TokenGenerator(user)
	if err != nil {
		return "", time.Time{}, errors.WithMessage(err, "sign token failed")
	}
	c.SetCookie(constants.TokenCookie, token, int(a.timeout.Seconds()), "/", "",
		protocol.CookieSameSiteLaxMode, false, true)
	return token, expire, nil
}

// Revoke blacklists the token the request was authenticated with and clears the cookie.
// Anonymous requests only get the cookie cleared.
func (a *Auth) Revoke(ctx context.Context, c *app.RequestContext) error {
	c.SetCookie(constants.TokenCookie, "", -1, "/", "", protocol.CookieSameSiteLaxMode, false, true)
	token := c.GetString(tokenKey)
	if token == "" {
		return nil
	}
	expire, _ := c.Get(expireKey)
	expiresAt, _ := expire.(time.Time)
	return a.revoked.Revoke(ctx, token, expiresAt)
}

// Required rejects requests without a valid token.
func (a *Auth) Required() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		if err := a.authenticate(ctx, c); err != nil {
			handlers.SendResponse(c, err, nil)
			c.Abort()
			return
		}
		c.Next(ctx)
	}
}

// Optional lets requests without a token through as anonymous. A token that is present but
// invalid or revoked is still rejected.
func (a *Auth) Optional() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		if len(c.GetHeader("Authorization")) == 0 && len(c.Cookie(constants.TokenCookie)) == 0 {
			c.Next(ctx)
			return
		}
		if err := a.authenticate(ctx, c); err != nil {
			handlers.SendResponse(c, err, nil)
			c.Abort()
			return
		}
		c.Next(ctx)
	}
}

func (a *Auth) authenticate(ctx context.Context, c *app.RequestContext) error {
	claims, err := a.mw.GetClaimsFromJWT(ctx, c)
	if err != nil {
		hlog.CtxDebugf(ctx, "reject token: %v", err)
		return errno.AuthorizationFailedErr
	}
	exp, ok := claims["exp"].(float64)
	if !ok || int64(exp) < time.Now().Unix() {
		return errno.AuthorizationFailedErr
	}
	userId, ok := utils.Transfer(claims[constants.IdentityKey])
	if !ok {
		return errno.AuthorizationFailedErr
	}
	token := jwt.GetToken(ctx, c)
	revoked, err := a.revoked.IsRevoked(ctx, token)
	if err != nil {
		hlog.CtxErrorf(ctx, "check token revocation failed: %v", err)
		return errno.AuthorizationFailedErr
	}
	if revoked {
		return errno.AuthorizationFailedErr.WithMessage("Your session has ended, please sign in again")
	}

	c.Set(constants.IdentityKey, userId)
	c.Set(tokenKey, token)
	c.Set(expireKey, time.Unix(int64(exp), 0))
	return nil
}
