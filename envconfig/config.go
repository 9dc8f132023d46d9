package envconfig

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read at startup. Only PORT is required.
type envConfig struct {
	AllowedOrigins       []string
	JwtSecret            string
	Port                 string
	MaxMessagesPerSecond int
	JoinTimeout          time.Duration
	RetainEmptyRooms     bool
	MDNSEnabled          bool
	MDNSInstance         string
}

var EnvConfig *envConfig

// Keeps track if ALL required environment variables were loaded correctly
var loadedAllEnvs bool

func InitEnvConfig() bool {
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file")
	}

	loadedAllEnvs = true

	EnvConfig = &envConfig{
		AllowedOrigins:       getEnvArray("ALLOWED_ORIGINS"),
		JwtSecret:            os.Getenv("JWT_DECODE_SECRET"),
		Port:                 getEnv("PORT"),
		MaxMessagesPerSecond: getEnvInt("MAX_MESSAGES_PER_SECOND", 60),
		JoinTimeout:          getEnvDuration("JOIN_TIMEOUT", 10*time.Second),
		RetainEmptyRooms:     getEnvBool("RETAIN_EMPTY_ROOMS", false),
		MDNSEnabled:          getEnvBool("MDNS_ENABLED", false),
		MDNSInstance:         os.Getenv("MDNS_INSTANCE"),
	}

	return loadedAllEnvs
}

// Returns a single required environment variable
func getEnv(envName string) string {
	env := os.Getenv(envName)

	if len(env) == 0 {
		log.Printf("No environment variable for '%s'\n", envName)
		loadedAllEnvs = false
	}

	return env
}

// Returns an optional comma separated environment variable as an array.
// Nil when unset.
func getEnvArray(envName string) []string {
	envStr := os.Getenv(envName)
	if len(envStr) == 0 {
		return nil
	}

	var envArray []string
	for _, v := range strings.Split(envStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			envArray = append(envArray, v)
		}
	}
	return envArray
}

func getEnvInt(envName string, fallback int) int {
	envStr := os.Getenv(envName)
	if len(envStr) == 0 {
		return fallback
	}

	n, err := strconv.Atoi(envStr)
	if err != nil {
		log.Printf("Invalid value for '%s', using %d: %v\n", envName, fallback, err)
		return fallback
	}
	return n
}

func getEnvBool(envName string, fallback bool) bool {
	envStr := os.Getenv(envName)
	if len(envStr) == 0 {
		return fallback
	}

	b, err := strconv.ParseBool(envStr)
	if err != nil {
		log.Printf("Invalid value for '%s', using %t: %v\n", envName, fallback, err)
		return fallback
	}
	return b
}

func getEnvDuration(envName string, fallback time.Duration) time.Duration {
	envStr := os.Getenv(envName)
	if len(envStr) == 0 {
		return fallback
	}

	d, err := time.ParseDuration(envStr)
	if err != nil {
		log.Printf("Invalid value for '%s', using %s: %v\n", envName, fallback, err)
		return fallback
	}
	return d
}
