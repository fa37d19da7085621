package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// BrowserPath points at the headless Chromium/Chrome binary used for
	// PDF printing. Empty means look it up on the host.
	BrowserPath string `env:"BROWSER_PATH"`

	Mongo MongoConfig
	Redis RedisConfig
	Brevo BrevoConfig
	Files FilesConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=docgen"`
}

// RedisConfig configures the optional login rate limiter. An empty Addr
// disables Redis entirely; the limiter then allows everything.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type BrevoConfig struct {
	APIKey      string `env:"BREVO_API_KEY"`
	BaseURL     string `env:"BREVO_BASE_URL, default=https://api.brevo.com"`
	SenderName  string `env:"SENDER_NAME,    default=HR Team"`
	SenderEmail string `env:"SENDER_EMAIL"`
}

type FilesConfig struct {
	OutputDir string `env:"OUTPUT_DIR, default=generated_docs"`
	UploadDir string `env:"UPLOAD_DIR, default=uploads"`
	AssetDir  string `env:"ASSET_DIR,  default=assets"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
