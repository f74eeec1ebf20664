package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env          string             `yaml:"env" env:"ENV" env-default:"local"`
	DSN          string             `yaml:"dsn" env:"DATABASE_URL" env-required:"true"`
	HTTP         HTTPConfig         `yaml:"http"`
	Auth         AuthConfig         `yaml:"auth"`
	SMTP         SMTPConfig         `yaml:"smtp"`
	ImageHost    ImageHostConfig    `yaml:"image_host"`
	Redis        RedisConf          `yaml:"redis"`
	ContactLimit ContactLimitConfig `yaml:"contact_limit"`
	Cache        CacheConfig        `yaml:"cache"`
}

type HTTPConfig struct {
	Host        string        `yaml:"host" env:"HTTP_HOST"`
	Port        string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
	CORSOrigins []string      `yaml:"cors_origins" env:"HTTP_CORS_ORIGINS" env-default:"*"`
}

type AuthConfig struct {
	AdminSecret    string         `yaml:"admin_secret" env:"JWT_ADMIN_SECRET" env-required:"true"`
	ClientSecret   string         `yaml:"client_secret" env:"JWT_CLIENT_SECRET" env-required:"true"`
	AdminTokenTTL  time.Duration  `yaml:"admin_token_ttl" env:"JWT_ADMIN_TTL" env-default:"1h"`
	ClientTokenTTL time.Duration  `yaml:"client_token_ttl" env:"JWT_CLIENT_TTL" env-default:"24h"`
	BootstrapAdmin BootstrapAdmin `yaml:"bootstrap_admin"`
}

// BootstrapAdmin is hashed into the admins table on startup when no admin
// with this email exists yet. It is never compared against login input.
type BootstrapAdmin struct {
	Email    string `yaml:"email" env:"ADMIN_EMAIL"`
	Password string `yaml:"password" env:"ADMIN_PASSWORD"`
	Name     string `yaml:"name" env:"ADMIN_NAME" env-default:"Studio Admin"`
}

type SMTPConfig struct {
	Host     string `yaml:"host" env:"SMTP_HOST"`
	Port     int    `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	Username string `yaml:"username" env:"SMTP_USER"`
	Password string `yaml:"password" env:"SMTP_PASSWORD"`
	From     string `yaml:"from" env:"SMTP_FROM"`
	NotifyTo string `yaml:"notify_to" env:"SMTP_NOTIFY_TO"`
	SSL      bool   `yaml:"ssl" env:"SMTP_SSL"`
}

type ImageHostConfig struct {
	Driver    string `yaml:"driver" env:"IMAGE_HOST_DRIVER" env-default:"local"`
	CloudName string `yaml:"cloud_name" env:"CLOUDINARY_CLOUD_NAME"`
	APIKey    string `yaml:"api_key" env:"CLOUDINARY_API_KEY"`
	APISecret string `yaml:"api_secret" env:"CLOUDINARY_API_SECRET"`
	Folder    string `yaml:"folder" env-default:"client-galleries"`
	Branding  string `yaml:"branding" env-default:"l_text:Arial_40_bold:PHOTO STUDIO,co_white,o_40,g_south_east,x_20,y_20"`
	BaseDir   string `yaml:"base_dir" env-default:"./uploads"`
	BaseURL   string `yaml:"base_url" env-default:"http://localhost:8080/uploads"`
	MaxSize   int64  `yaml:"max_size" env-default:"20971520"`
}

type RedisConf struct {
	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env:"REDIS_DB"`
}

type ContactLimitConfig struct {
	Requests int64         `yaml:"requests" env-default:"5"`
	Window   time.Duration `yaml:"window" env-default:"1h"`
}

type CacheConfig struct {
	TTL time.Duration `yaml:"ttl" env-default:"5m"`
}

var (
	ErrSharedSecret = errors.New("admin and client token secrets must differ")
	ErrImageDriver  = errors.New("unknown image host driver")
)

// MustLoad loads the config from CONFIG_PATH, or from the environment alone
// when the variable is not set.
func MustLoad() *Config {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return MustLoadPath(path)
	}

	return MustLoadEnv()
}

func MustLoadPath(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(err)
	}

	return cfg
}

func MustLoadEnv() *Config {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		panic("cannot read config from env: " + err.Error())
	}

	if err := cfg.validate(); err != nil {
		panic(err)
	}

	return &cfg
}

func Load(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.AdminSecret == c.Auth.ClientSecret {
		return ErrSharedSecret
	}

	switch c.ImageHost.Driver {
	case "local", "cloudinary":
	default:
		return fmt.Errorf("%w: %q", ErrImageDriver, c.ImageHost.Driver)
	}

	return nil
}
