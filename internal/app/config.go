package app

import (
	"strings"

	"github.com/skilltrace/skilltrace-backend/internal/platform/logger"
	"github.com/skilltrace/skilltrace-backend/internal/utils"
)

type Config struct {
	HTTPAddr     string
	JWTSecretKey string
	CORSOrigins  []string
}

func LoadConfig(log *logger.Logger) Config {
	httpAddr := utils.GetEnv("HTTP_ADDR", ":8080", log)
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	corsOrigins := utils.GetEnv("CORS_ORIGINS", "http://localhost:3000", log)
	return Config{
		HTTPAddr:     httpAddr,
		JWTSecretKey: jwtSecretKey,
		CORSOrigins:  strings.Split(corsOrigins, ","),
	}
}
