package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Rewards  RewardsConfig  `mapstructure:"rewards"`
	Promo    PromoConfig    `mapstructure:"promo"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// RewardsConfig tunes the economy's per-session grants.
type RewardsConfig struct {
	CoinsPerCard int64 `mapstructure:"coins_per_card" validate:"gte=0"`
	ExpPerCard   int64 `mapstructure:"exp_per_card" validate:"gte=0"`
}

// PromoConfig holds the allow-listed promo codes and the flat grant each
// redemption is worth.
type PromoConfig struct {
	Codes        []string `mapstructure:"codes"`
	RewardAmount int64    `mapstructure:"reward_amount" validate:"gte=0"`
}
