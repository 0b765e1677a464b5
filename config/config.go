package config

import (
	"flag"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

const (
	defaultServerAddress = ":8080"
	defaultMongoURI      = "mongodb://127.0.0.1:27017"
	defaultMongoDatabase = "parfum_delite"
	defaultLogLevel      = "debug"
)

type Config struct {
	ServerAddr      string
	MongoURI        string
	MongoDatabase   string
	LogLevel        string
	JWTSecret       string
	SMTPHost        string
	SMTPPort        string
	SMTPUser        string
	SMTPPassword    string
	SMTPFrom        string
	SuperAdminEmail string
}

var (
	once      sync.Once
	singleton *Config
)

// New returns new Config. It parses command line and environment variables only once.
func New() (*Config, error) {
	once.Do(func() {
		// .env is optional, real environment always wins
		_ = godotenv.Load()

		cfg := Config{}

		// initialize flags
		flag.StringVar(&cfg.ServerAddr, "a", defaultServerAddress, "server address")
		flag.StringVar(&cfg.MongoURI, "d", defaultMongoURI, "mongodb connection URI")
		flag.StringVar(&cfg.MongoDatabase, "n", defaultMongoDatabase, "mongodb database name")
		flag.StringVar(&cfg.LogLevel, "l", defaultLogLevel, "log level")

		flag.Parse()

		// if environment variable is set, then using it
		if runAddrEnv := os.Getenv("RUN_ADDRESS"); runAddrEnv != "" {
			cfg.ServerAddr = runAddrEnv
		}
		if mongoURIEnv := os.Getenv("MONGO_URI"); mongoURIEnv != "" {
			cfg.MongoURI = mongoURIEnv
		}
		if mongoDatabaseEnv := os.Getenv("MONGO_DB"); mongoDatabaseEnv != "" {
			cfg.MongoDatabase = mongoDatabaseEnv
		}
		if logLevelEnv := os.Getenv("LOG_LEVEL"); logLevelEnv != "" {
			cfg.LogLevel = logLevelEnv
		}

		cfg.JWTSecret = os.Getenv("JWT_SECRET")
		cfg.SMTPHost = os.Getenv("SMTP_HOST")
		cfg.SMTPPort = os.Getenv("SMTP_PORT")
		cfg.SMTPUser = os.Getenv("SMTP_USER")
		cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")
		cfg.SMTPFrom = os.Getenv("SMTP_FROM")
		cfg.SuperAdminEmail = os.Getenv("SUPER_ADMIN_EMAIL")

		singleton = &cfg
	})

	return singleton, nil
}
