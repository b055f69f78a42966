package middlewares

import (
	"mdtcare-service/internal/app/config"
	"mdtcare-service/internal/app/services/shared/jwtmanager"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log            *zap.Logger
	JWTManager     *jwtmanager.JWTManager
	InternalConfig *config.InternalConfig
	RateLimiter    *RateLimiter
}
