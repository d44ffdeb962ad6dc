package config

import "github.com/Skotchmaster/scent_shop/pkg/config"

type ServiceConfig struct {
	config.Config
}

func Load() ServiceConfig {
	cfg := config.Load()

	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTAccessSecret, "JWT_SECRET")

	return ServiceConfig{Config: cfg}
}

func (c ServiceConfig) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func (c ServiceConfig) SearchEnabled() bool {
	return c.ESURL != ""
}

func (c ServiceConfig) MailEnabled() bool {
	return c.SMTPHost != ""
}
