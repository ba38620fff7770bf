package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	BackendWorkbook = "xlsx"
	BackendDB       = "db"
	BackendMemory   = "memory"
)

type Config struct {
	Port                          string   `mapstructure:"PORT"`
	TableBackend                  string   `mapstructure:"TABLE_BACKEND"`
	DatabasePath                  string   `mapstructure:"DATABASE_PATH"`
	SpreadsheetPath               string   `mapstructure:"SPREADSHEET_PATH"`
	SheetName                     string   `mapstructure:"SHEET_NAME"`
	SheetHeaders                  []string `mapstructure:"SHEET_HEADERS"`
	ScriptURL                     string   `mapstructure:"SCRIPT_URL"`
	AllowScriptURLOverride        bool     `mapstructure:"ALLOW_SCRIPT_URL_OVERRIDE"`
	GoogleFormURL                 string   `mapstructure:"GOOGLE_FORM_URL"`
	GithubRepoURL                 string   `mapstructure:"GITHUB_REPO_URL"`
	Timezone                      string   `mapstructure:"TIMEZONE"`
	EnableCORS                    bool     `mapstructure:"ENABLE_CORS"`
	DiscordBotToken               string   `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordNotificationsChannelID string   `mapstructure:"DISCORD_NOTIFICATIONS_CHANNEL_ID"`
}

func LoadConfig() *Config {
	// A local .env is optional.
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded environment from .env")
	}

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("TABLE_BACKEND", BackendDB)
	viper.SetDefault("DATABASE_PATH", "purchases.db")
	viper.SetDefault("SPREADSHEET_PATH", "purchases.xlsx")
	viper.SetDefault("SHEET_NAME", "Réponses au formulaire 1")
	// The server performs the POST, so ?scriptUrl= stays off unless enabled.
	viper.SetDefault("ALLOW_SCRIPT_URL_OVERRIDE", false)
	viper.SetDefault("TIMEZONE", "Europe/Paris")
	viper.SetDefault("ENABLE_CORS", true)

	viper.BindEnv("SHEET_HEADERS")
	viper.BindEnv("SCRIPT_URL")
	viper.BindEnv("GOOGLE_FORM_URL")
	viper.BindEnv("GITHUB_REPO_URL")
	viper.BindEnv("DISCORD_BOT_TOKEN")
	viper.BindEnv("DISCORD_NOTIFICATIONS_CHANNEL_ID")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	return &config
}

// Location resolves Timezone, falling back to the server's local zone.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("Unknown TIMEZONE %q, using local time: %v", c.Timezone, err)
		return time.Local
	}
	return loc
}
