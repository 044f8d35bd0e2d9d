package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `env:"ENV" env-required:"true"`
	LogLevel   string `env:"LOG_LEVEL" env-default:"info" env-description:"logging level, debug, info, etc."`
	HttpServer HttpServer
	Database   Database
	Limiter    Limiter
	Auth       AuthConfig
	OTP        OTPConfig
	Twilio     TwilioConfig
	SMTP       SMTPConfig
	Email      EmailConfig
	Cache      Cache
}

type HttpServer struct {
	Port           string        `env:"HTTP_PORT" env-default:"8080"`
	Timeout        time.Duration `env:"HTTP_TIMEOUT" env-default:"4s"`
	IdleTimeout    time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	SwaggerEnabled bool          `env:"HTTP_SWAGGER_ENABLED" env-default:"false"`
}

type Database struct {
	Host               string        `env:"DB_HOST" env-required:"true"`
	Port               int           `env:"DB_PORT" env-default:"5432"`
	DBName             string        `env:"DB_NAME" env-required:"true"`
	User               string        `env:"DB_USER" env-required:"true"`
	Password           string        `env:"DB_PASSWORD" env-required:"true"`
	SSLMode            string        `env:"DB_SSL_MODE" env-default:"disable"`
	Timeout            time.Duration `env:"DB_TIMEOUT" env-default:"2s"`
	MaxIdleConnections int           `env:"DB_MAX_IDLE_CONNECTIONS" env-default:"40"`
	MaxOpenConnections int           `env:"DB_MAX_OPEN_CONNECTIONS" env-default:"40"`
}

type Limiter struct {
	RPS   int           `env:"LIMITER_RPS" env-default:"10"`
	Burst int           `env:"LIMITER_BURST" env-default:"20"`
	TTL   time.Duration `env:"LIMITER_TTL" env-default:"10m"`
}

type AuthConfig struct {
	JWT      JWTConfig
	CodeSalt string `env:"AUTH_CODE_SALT" env-required:"true" env-description:"salt for hashing locally issued codes"`
}

type JWTConfig struct {
	AccessTokenTTL  time.Duration `env:"JWT_ACCESS_TOKEN_TTL" env-default:"24h"`
	RefreshTokenTTL time.Duration `env:"JWT_REFRESH_TOKEN_TTL" env-default:"168h"`
	SigningKey      string        `env:"JWT_SIGNING_KEY" env-required:"true"`
}

type OTPConfig struct {
	TTL             time.Duration `env:"OTP_TTL" env-default:"10m" env-description:"lifetime of a sent code"`
	MaxAttempts     int           `env:"OTP_MAX_ATTEMPTS" env-default:"3"`
	SendCooldown    time.Duration `env:"OTP_SEND_COOLDOWN" env-default:"60s" env-description:"minimum delay between sends to one number"`
	MaxSendsPerHour int           `env:"OTP_MAX_SENDS_PER_HOUR" env-default:"5"`
}

// TwilioConfig carries the Verify API credentials. The fields are optional
// at load time; the dispatch service refuses requests when they are missing
// and the twilio provider is selected.
type TwilioConfig struct {
	Provider         string `env:"SMS_PROVIDER" env-default:"twilio" env-description:"verification provider, one of twilio/local"`
	AccountSID       string `env:"TWILIO_ACCOUNT_SID" env-default:""`
	AuthToken        string `env:"TWILIO_AUTH_TOKEN" env-default:""`
	VerifyServiceSID string `env:"TWILIO_VERIFY_SERVICE_SID" env-default:""`
}

type SMTPConfig struct {
	Host string `env:"SMTP_HOST" env-default:""`
	Port int    `env:"SMTP_PORT" env-default:"587"`
	From string `env:"SMTP_FROM" env-default:""`
	Pass string `env:"SMTP_PASS" env-default:""`
}

// EmailConfig controls the local provider's code delivery channel. When
// disabled, issued codes are only written to the log.
type EmailConfig struct {
	Enabled bool   `env:"EMAIL_ENABLED" env-default:"false"`
	Inbox   string `env:"EMAIL_DEV_INBOX" env-default:"" env-description:"catch-all inbox receiving locally issued codes"`
}

type Cache struct {
	Type  string `env:"REDIS_TYPE" env-required:"true" env-description:"specifies provider, one of redis/redisCluster"`
	Redis struct {
		Address  string `env:"REDIS_ADDR" env-default:"" env-description:"redis host:port single instance"`
		Password string `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize int    `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
	}
	RedisCluster struct {
		Addresses []string `env:"REDIS_CLUSTER_ADDRS" env-default:"" env-description:"redis cluster nodes"`
		Password  string   `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize  int      `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
	}
}

func MustLoad() *Config {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config from environment: %s", err)
	}

	return &cfg
}
