package app

import (
	"strings"
	"time"

	"github.com/yungbote/coachplan-backend/internal/platform/envutil"
	"github.com/yungbote/coachplan-backend/internal/platform/logger"
)

type Config struct {
	Port            string
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	AllowedOrigins  []string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	ServiceName string
	Environment string
	Version     string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := envutil.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := envutil.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTLSeconds := envutil.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)

	var origins []string
	for _, origin := range strings.Split(envutil.GetEnv("CORS_ORIGINS", "", log), ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}

	return Config{
		Port:            envutil.GetEnv("PORT", "8080", log),
		JWTSecretKey:    jwtSecretKey,
		AccessTokenTTL:  time.Duration(accessTokenTTLSeconds) * time.Second,
		RefreshTokenTTL: time.Duration(refreshTokenTTLSeconds) * time.Second,
		AllowedOrigins:  origins,
		RedisAddr:       envutil.GetEnv("REDIS_ADDR", "", log),
		RedisPassword:   envutil.GetEnv("REDIS_PASSWORD", "", log),
		RedisDB:         envutil.GetEnvAsInt("REDIS_DB", 0, log),
		ServiceName:     envutil.GetEnv("SERVICE_NAME", "coachplan", log),
		Environment:     envutil.GetEnv("ENVIRONMENT", "development", log),
		Version:         envutil.GetEnv("SERVICE_VERSION", "dev", log),
	}
}
