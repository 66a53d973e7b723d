// Package config loads and validates application settings from environment
// variables and optional .env files, including the tunable economy values
// (per-card rewards, promo allow-list) alongside server and database
// settings.
package config
