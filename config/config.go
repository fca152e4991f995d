package config

import (
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server     Server
	Database   Database
	Sandbox    Sandbox
	RateLimit  RateLimit
	AdminToken string
	LogLevel   string
	LogFormat  string
}

type Server struct {
	Port    string
	GinMode string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// Sandbox holds the limits applied to every code execution.
type Sandbox struct {
	Interpreter    string
	Timeout        time.Duration
	CheckTimeout   time.Duration
	ScratchDir     string
	MaxOutputBytes int
	MaxConcurrent  int
	CPUSeconds     uint64
	MemoryBytes    uint64
	MaxProcesses   uint64
	MaxFileBytes   uint64
	IsolateNetwork bool
}

type RateLimit struct {
	RPS   float64
	Burst int
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "console")

	viper.SetDefault("DATABASE_HOST", "localhost")
	viper.SetDefault("DATABASE_PORT", "5432")
	viper.SetDefault("DATABASE_SSLMODE", "disable")

	viper.SetDefault("SANDBOX_INTERPRETER", "python3")
	viper.SetDefault("SANDBOX_TIMEOUT", "10s")
	viper.SetDefault("SANDBOX_CHECK_TIMEOUT", "5s")
	viper.SetDefault("SANDBOX_SCRATCH_DIR", os.TempDir())
	viper.SetDefault("SANDBOX_MAX_OUTPUT_BYTES", 64*1024)
	viper.SetDefault("SANDBOX_MAX_CONCURRENT", 4)
	viper.SetDefault("SANDBOX_CPU_SECONDS", 10)
	viper.SetDefault("SANDBOX_MEMORY_BYTES", 256*1024*1024)
	viper.SetDefault("SANDBOX_MAX_PROCESSES", 32)
	viper.SetDefault("SANDBOX_MAX_FILE_BYTES", 1024*1024)
	viper.SetDefault("SANDBOX_ISOLATE_NETWORK", true)

	viper.SetDefault("RATE_LIMIT_RPS", 2)
	viper.SetDefault("RATE_LIMIT_BURST", 5)
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.GinMode = viper.GetString("GIN_MODE")
	config.LogLevel = viper.GetString("LOG_LEVEL")
	config.LogFormat = viper.GetString("LOG_FORMAT")
	config.AdminToken = viper.GetString("ADMIN_TOKEN")

	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.SSLMode = viper.GetString("DATABASE_SSLMODE")

	config.Sandbox.Interpreter = viper.GetString("SANDBOX_INTERPRETER")
	config.Sandbox.Timeout = viper.GetDuration("SANDBOX_TIMEOUT")
	config.Sandbox.CheckTimeout = viper.GetDuration("SANDBOX_CHECK_TIMEOUT")
	config.Sandbox.ScratchDir = viper.GetString("SANDBOX_SCRATCH_DIR")
	config.Sandbox.MaxOutputBytes = viper.GetInt("SANDBOX_MAX_OUTPUT_BYTES")
	config.Sandbox.MaxConcurrent = viper.GetInt("SANDBOX_MAX_CONCURRENT")
	config.Sandbox.CPUSeconds = viper.GetUint64("SANDBOX_CPU_SECONDS")
	config.Sandbox.MemoryBytes = viper.GetUint64("SANDBOX_MEMORY_BYTES")
	config.Sandbox.MaxProcesses = viper.GetUint64("SANDBOX_MAX_PROCESSES")
	config.Sandbox.MaxFileBytes = viper.GetUint64("SANDBOX_MAX_FILE_BYTES")
	config.Sandbox.IsolateNetwork = viper.GetBool("SANDBOX_ISOLATE_NETWORK")

	config.RateLimit.RPS = viper.GetFloat64("RATE_LIMIT_RPS")
	config.RateLimit.Burst = viper.GetInt("RATE_LIMIT_BURST")

	log.Info().
		Str("port", config.Server.Port).
		Str("db_host", config.Database.Host).
		Str("db_name", config.Database.Name).
		Str("interpreter", config.Sandbox.Interpreter).
		Dur("sandbox_timeout", config.Sandbox.Timeout).
		Msg("Config loaded")
	return &config, nil

}
