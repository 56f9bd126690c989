package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/judyrop/sns-catalog/apperrors"
	"github.com/judyrop/sns-catalog/models"
)

// AdminKey is the gin context key holding the authenticated *models.Admin.
const AdminKey = "admin"

var ErrBadCredentials = errors.New("incorrect username or password")

// AdminLookup finds active admins.
type AdminLookup interface {
	ActiveAdminByUsername(ctx context.Context, username string) (*models.Admin, error)
	ActiveAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
}

type Authenticator struct {
	tokens   *TokenService
	admins   AdminLookup
	verifier *oidc.IDTokenVerifier
	log      *zap.Logger
}

// NewAuthenticator wires local token auth. verifier may be nil, in which case
// identity-provider tokens are not accepted.
func NewAuthenticator(tokens *TokenService, admins AdminLookup, verifier *oidc.IDTokenVerifier, log *zap.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, admins: admins, verifier: verifier, log: log}
}

// NewOIDCVerifier discovers the provider at issuer and returns a verifier for
// ID tokens minted for clientID.
func NewOIDCVerifier(ctx context.Context, issuer, clientID string) (*oidc.IDTokenVerifier, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("discover oidc provider %s: %w", issuer, err)
	}
	return provider.Verifier(&oidc.Config{ClientID: clientID}), nil
}

// Login checks the credentials and returns a signed access token.
func (a *Authenticator) Login(ctx context.Context, username, password string) (string, error) {
	admin, err := a.admins.ActiveAdminByUsername(ctx, username)
	if err != nil || admin == nil || !CheckPassword(admin.HashedPassword, password) {
		return "", ErrBadCredentials
	}
	return a.tokens.Issue(admin.Username)
}

// RequireAdmin rejects requests without a valid bearer token for an active
// admin.
func (a *Authenticator) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		const prefix = "Bearer "
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, prefix) {
			_ = c.Error(apperrors.Unauthorized("Not authenticated"))
			c.Abort()
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, prefix))

		admin, err := a.resolve(c.Request.Context(), token)
		if err != nil {
			a.log.Debug("rejected bearer token", zap.Error(err))
			_ = c.Error(apperrors.Unauthorized("Could not validate credentials"))
			c.Abort()
			return
		}
		c.Set(AdminKey, admin)
		c.Next()
	}
}

func (a *Authenticator) resolve(ctx context.Context, token string) (*models.Admin, error) {
	username, err := a.tokens.Subject(token)
	if err == nil {
		return a.admins.ActiveAdminByUsername(ctx, username)
	}
	if a.verifier == nil {
		return nil, err
	}

	idToken, verr := a.verifier.Verify(ctx, token)
	if verr != nil {
		return nil, errors.Join(err, verr)
	}
	var claims struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("read id token claims: %w", err)
	}
	if claims.Email == "" || !claims.EmailVerified {
		return nil, errors.New("id token has no verified email")
	}
	return a.admins.ActiveAdminByEmail(ctx, claims.Email)
}

// RateLimiter hands out one token bucket per client IP.
type RateLimiter struct {
	mu    sync.Mutex
	ips   map[string]*rate.Limiter
	rate  rate.Limit
	burst int
}

func NewRateLimiter(perMinute int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	return &RateLimiter{
		ips:   make(map[string]*rate.Limiter),
		rate:  rate.Every(time.Minute / time.Duration(perMinute)),
		burst: perMinute,
	}
}

func (rl *RateLimiter) limiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if l, ok := rl.ips[ip]; ok {
		return l
	}
	l := rate.NewLimiter(rl.rate, rl.burst)
	rl.ips[ip] = l
	return l
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiter(c.ClientIP()).Allow() {
			_ = c.Error(apperrors.TooManyRequests("Too many login attempts, try again later"))
			c.Abort()
			return
		}
		c.Next()
	}
}
