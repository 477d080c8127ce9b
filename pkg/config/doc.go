// Package config loads typed configuration from environment variables using
// github.com/caarlos0/env struct tags, with optional dotenv files read through
// github.com/joho/godotenv.
//
// Load caches one value per config type, so packages may call it for the same
// struct without re-parsing the environment. Tests that change variables call
// ResetCache first.
package config
