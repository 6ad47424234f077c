package config

import (
	"log"
	"os"
	"strconv"

	"github.com/VReis17/auth-service/pkg/constant"
)

type Config struct {
	Env                string
	Port               string
	UsersFile          string
	DBURL              string
	JWTSecret          string
	TokenExpiryHours   int
	BcryptCost         int
	MaxLoginAttempts   int
	ResetCodeExpiryMin int
}

func Load() *Config {
	return &Config{
		Env:                getEnv("ENV", "development"),
		Port:               getEnv("PORT", constant.DefaultPort),
		UsersFile:          getEnv("USERS_FILE", constant.DefaultUsersFile),
		DBURL:              getEnv("DB_URL", ""),
		JWTSecret:          mustGetEnv("JWT_SECRET"),
		TokenExpiryHours:   getEnvAsInt("JWT_EXPIRY_HOURS", constant.DefaultTokenExpiryHours),
		BcryptCost:         getEnvAsInt("BCRYPT_COST", constant.DefaultBcryptCost),
		MaxLoginAttempts:   getEnvAsInt("MAX_LOGIN_ATTEMPTS", constant.DefaultMaxLoginAttempts),
		ResetCodeExpiryMin: getEnvAsInt("RESET_CODE_EXPIRY_MINUTES", constant.DefaultResetCodeExpiryMin),
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}
