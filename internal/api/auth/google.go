package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"

	"movie-app/config"
	"movie-app/internal/service"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	googleIssuer   = "https://accounts.google.com"
	stateCookie    = "oauth_state"
	stateCookieTTL = 300
)

type googleIDClaims struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
}

// Google drives the OAuth code flow and turns a verified ID token into an
// application session.
type Google struct {
	oauth            *oauth2.Config
	verifier         *oidc.IDTokenVerifier
	frontendRedirect string
	secureCookie     bool
	svc              Service
	log              *zap.Logger
}

// NewGoogle discovers Google's OIDC configuration once at startup.
func NewGoogle(ctx context.Context, cfg config.GoogleConfig, svc Service, log *zap.Logger) (*Google, error) {
	provider, err := oidc.NewProvider(ctx, googleIssuer)
	if err != nil {
		return nil, fmt.Errorf("init google oidc provider: %w", err)
	}

	redirect, _ := url.Parse(cfg.RedirectURL)
	return &Google{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		verifier:         provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
		frontendRedirect: cfg.FrontendRedirect,
		secureCookie:     redirect != nil && redirect.Scheme == "https",
		svc:              svc,
		log:              log,
	}, nil
}

func randomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GET /auth/google
func (g *Google) Start(c *gin.Context) {
	state, err := randomState()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate state"})
		return
	}

	c.SetCookie(stateCookie, state, stateCookieTTL, "/", "", g.secureCookie, true)
	c.Redirect(http.StatusFound, g.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline))
}

// GET /auth/google/callback
func (g *Google) Callback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if code == "" || state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code/state"})
		return
	}

	cookieState, err := c.Cookie(stateCookie)
	if err != nil || cookieState != state {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid oauth state"})
		return
	}

	ctx := c.Request.Context()
	tok, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "failed to exchange code"})
		return
	}

	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing id_token"})
		return
	}

	idToken, err := g.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid id_token"})
		return
	}
	var claims googleIDClaims
	if err := idToken.Claims(&claims); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "failed to decode token claims"})
		return
	}
	if !claims.EmailVerified {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "google email is not verified"})
		return
	}

	sess, err := g.svc.GoogleSignIn(ctx, service.GoogleIdentity{
		Sub:   claims.Sub,
		Email: claims.Email,
		Name:  firstNonEmpty(claims.Name, claims.GivenName),
	})
	if err != nil {
		g.log.Warn("google sign-in failed", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "google sign-in failed"})
		return
	}

	if g.frontendRedirect == "" {
		c.JSON(http.StatusOK, sess)
		return
	}
	q := url.Values{}
	q.Set("accessToken", sess.AccessToken)
	q.Set("refreshToken", sess.RefreshToken)
	c.Redirect(http.StatusFound, g.frontendRedirect+"#"+q.Encode())
}

func firstNonEmpty(s ...string) string {
	for _, v := range s {
		if v != "" {
			return v
		}
	}
	return ""
}
