package main

import (
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/judyrop/sns-catalog/apperrors"
	"github.com/judyrop/sns-catalog/auth"
	"github.com/judyrop/sns-catalog/codec"
	"github.com/judyrop/sns-catalog/config"
	"github.com/judyrop/sns-catalog/logger"
	"github.com/judyrop/sns-catalog/models"
	"github.com/judyrop/sns-catalog/store"
)

var registerOnce sync.Once

// registerValidators adds the encoded-field rules to gin's validator and
// reports fields by their json or form name. An empty value passes; the
// request converters fill in the empty list or map. It panics if a rule
// cannot be registered.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic("gin validator engine is not go-playground/validator")
		}
		v.RegisterTagNameFunc(fieldName)
		rules := map[string]func(string) bool{
			"jsonlist": codec.ValidList,
			"jsonmap":  codec.ValidMap,
		}
		for tag, valid := range rules {
			if err := v.RegisterValidation(tag, encodedRule(valid)); err != nil {
				panic("register " + tag + " validator: " + err.Error())
			}
		}
	})
}

func encodedRule(valid func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || valid(s)
	}
}

func fieldName(f reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

type server struct {
	cfg     *config.Config
	log     *zap.Logger
	store   *store.Store
	auth    *auth.Authenticator
	limiter *auth.RateLimiter
}

// SetupRouter builds the API over db. verifier may be nil to accept only
// locally issued tokens.
func SetupRouter(db *gorm.DB, cfg *config.Config, log *zap.Logger, verifier *oidc.IDTokenVerifier) *gin.Engine {
	registerValidators()

	s := store.New(db)
	srv := &server{
		cfg:     cfg,
		log:     log,
		store:   s,
		auth:    auth.NewAuthenticator(auth.NewTokenService(cfg.Security.SecretKey, cfg.TokenTTL()), s, verifier, log),
		limiter: auth.NewRateLimiter(cfg.Security.LoginRatePerMinute),
	}

	r := gin.New()
	r.Use(logger.RequestLogger(log), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOriginList(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(apperrors.ErrorMiddleware(log))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to " + cfg.AppName,
			"version": cfg.AppVersion,
			"docs":    "/docs",
		})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	authGroup := r.Group("/auth", srv.limiter.Middleware())
	authGroup.POST("/login", srv.login(binding.Form))
	authGroup.POST("/login-json", srv.login(binding.JSON))

	srv.registerAdmin(r.Group("/admin", srv.auth.RequireAdmin()))
	srv.registerPublic(r.Group("/public"))

	return r
}

func (srv *server) login(b binding.Binding) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBindWith(&req, b); err != nil {
			_ = c.Error(apperrors.Invalid(err))
			return
		}
		token, err := srv.auth.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			srv.log.Info("login rejected", zap.String("username", req.Username))
			_ = c.Error(apperrors.Unauthorized("Incorrect username or password"))
			return
		}
		c.JSON(http.StatusOK, models.Token{AccessToken: token, TokenType: "bearer"})
	}
}
