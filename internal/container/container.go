package container

import (
	"fmt"

	"github.com/eduquip/catalog-backend/internal/api"
	"github.com/eduquip/catalog-backend/internal/auth"
	"github.com/eduquip/catalog-backend/internal/config"
	"github.com/eduquip/catalog-backend/internal/content"
	"github.com/eduquip/catalog-backend/internal/logging"
	"github.com/eduquip/catalog-backend/internal/rbac"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	Config      *config.Config
	RedisClient *redis.Client
	JWTService  *auth.JWTService
	Revocations auth.RevocationStore
	Enforcer    *auth.Enforcer
	Store       content.Store
	Server      *api.Server
}

func New(cfg config.Config) (*Container, error) {
	// A broken role map is a configuration bug, not a runtime error:
	// refuse to start rather than serve with wrong grants.
	if err := rbac.ValidateGrants(); err != nil {
		panic(fmt.Sprintf("rbac configuration invalid: %v", err))
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	jwtService, err := auth.NewJWTService([]byte(cfg.JWT.SigningKey), cfg.JWT.Issuer, cfg.JWT.Expiry)
	if err != nil {
		return nil, err
	}

	revocations := auth.NewRedisRevocationStore(redisClient)
	enforcer := auth.NewEnforcer(jwtService, revocations, cfg.Auth.VerifyTimeout)

	store := content.NewRedisStore(redisClient)
	server := api.NewServer(store, enforcer)

	logging.Info("container initialized",
		"redis_addr", cfg.Redis.Addr,
		"jwt_issuer", cfg.JWT.Issuer)

	return &Container{
		Config:      &cfg,
		RedisClient: redisClient,
		JWTService:  jwtService,
		Revocations: revocations,
		Enforcer:    enforcer,
		Store:       store,
		Server:      server,
	}, nil
}

func (c *Container) Cleanup() {
	if c.RedisClient != nil {
		c.RedisClient.Close()
		logging.Info("redis client closed")
	}
}
