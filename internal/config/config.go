package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Address string `yaml:"address"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"server"`
	Database struct {
		Driver string `yaml:"driver"`
		URL    string `yaml:"url"`
	} `yaml:"database"`
	Auth struct {
		SigningKey      string `yaml:"signing_key"`
		AccessTTLMin    int    `yaml:"access_ttl_minutes"`
		RefreshTTLHours int    `yaml:"refresh_ttl_hours"`
	} `yaml:"auth"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Stripe struct {
		SecretKey     string `yaml:"secret_key"`
		WebhookSecret string `yaml:"webhook_secret"`
	} `yaml:"stripe"`
	S3 struct {
		Region    string `yaml:"region"`
		Endpoint  string `yaml:"endpoint"`
		Bucket    string `yaml:"bucket"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
	} `yaml:"s3"`
	Email struct {
		APIKey string `yaml:"api_key"`
		From   string `yaml:"from"`
	} `yaml:"email"`
	FCM struct {
		CredentialsFile string `yaml:"credentials_file"`
	} `yaml:"fcm"`
}

// Load reads the YAML config and overlays secrets from the environment so
// deployments never have to commit credentials. Everything the collaborator
// clients need is validated here, at startup, not on first use.
func Load() (Config, error) {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}

	overlay(&cfg.Database.URL, "DATABASE_URL")
	overlay(&cfg.Auth.SigningKey, "JWT_SIGNING_KEY")
	overlay(&cfg.Redis.Addr, "REDIS_ADDR")
	overlay(&cfg.Redis.Password, "REDIS_PASSWORD")
	overlay(&cfg.Stripe.SecretKey, "STRIPE_SECRET_KEY")
	overlay(&cfg.Stripe.WebhookSecret, "STRIPE_WEBHOOK_SECRET")
	overlay(&cfg.S3.AccessKey, "AWS_ACCESS_KEY_ID")
	overlay(&cfg.S3.SecretKey, "AWS_SECRET_ACCESS_KEY")
	overlay(&cfg.S3.Bucket, "AWS_S3_BUCKET")
	overlay(&cfg.S3.Region, "AWS_REGION")
	overlay(&cfg.Email.APIKey, "RESEND_API_KEY")
	overlay(&cfg.Email.From, "EMAIL_FROM")
	overlay(&cfg.FCM.CredentialsFile, "FCM_CREDENTIALS_FILE")

	if cfg.Database.URL == "" {
		return cfg, fmt.Errorf("database url is required")
	}
	if cfg.Auth.SigningKey == "" {
		return cfg, fmt.Errorf("jwt signing key is required")
	}
	if cfg.Auth.AccessTTLMin == 0 {
		cfg.Auth.AccessTTLMin = 120
	}
	if cfg.Auth.RefreshTTLHours == 0 {
		cfg.Auth.RefreshTTLHours = 24 * 60
	}
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://localhost:3000"
	}

	return cfg, nil
}

func overlay(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
