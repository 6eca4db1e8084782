package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultDatabaseURL      = "postgres://localhost:5432/areamsg?sslmode=disable"
	defaultMigrationsPath   = "migrations"
	defaultLocale           = "en"
	defaultReplacementLimit = 50
)

type Config struct {
	Token             string
	GuildID           string
	AnnounceChannelID string
	DatabaseURL       string
	MigrationsPath    string
	Locale            string
	LangDir           string
	Timezone          string
	RichMessages      bool
	ConsoleColors     bool
	ReplacementLimit  int
	SentryDSN         string
	SentryEnvironment string
}

// Load charge la configuration depuis les variables d'environnement et la valide.
func Load() (*Config, error) {
	// .env est optionnel lorsque les variables sont fournies par l'environnement (Docker, CI, etc.).
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds and validates a Config from the given lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Token:             getenv("TOKEN"),
		GuildID:           getenv("GUILD_ID"),
		AnnounceChannelID: getenv("ANNOUNCE_CHANNEL_ID"),
		DatabaseURL:       getenv("DATABASE_URL"),
		MigrationsPath:    getenv("MIGRATIONS_PATH"),
		Locale:            getenv("LOCALE"),
		LangDir:           getenv("LANG_DIR"),
		Timezone:          getenv("TIMEZONE"),
		SentryDSN:         getenv("SENTRY_DSN"),
		SentryEnvironment: getenv("SENTRY_ENVIRONMENT"),
	}

	var err error
	if cfg.RichMessages, err = parseBool("USE_RICH_MESSAGES", getenv("USE_RICH_MESSAGES"), true); err != nil {
		return nil, err
	}
	if cfg.ConsoleColors, err = parseBool("USE_COLORS_IN_CONSOLE", getenv("USE_COLORS_IN_CONSOLE"), false); err != nil {
		return nil, err
	}
	if cfg.ReplacementLimit, err = parseInt("REPLACEMENT_LIMIT", getenv("REPLACEMENT_LIMIT"), defaultReplacementLimit); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate applique toutes les règles métier sur la configuration chargée.
func (c *Config) validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("config: TOKEN est requis et ne peut pas être vide")
	}

	if !isSnowflake(c.GuildID) {
		return fmt.Errorf("config: GUILD_ID doit être un ID de serveur Discord (chiffres uniquement)")
	}
	if !isSnowflake(c.AnnounceChannelID) {
		return fmt.Errorf("config: ANNOUNCE_CHANNEL_ID doit être un ID de salon Discord (chiffres uniquement)")
	}

	if c.ReplacementLimit < 1 {
		return fmt.Errorf("config: REPLACEMENT_LIMIT doit être strictement positif (reçu %d)", c.ReplacementLimit)
	}

	if strings.TrimSpace(c.Locale) == "" {
		c.Locale = defaultLocale
	}
	if strings.TrimSpace(c.MigrationsPath) == "" {
		c.MigrationsPath = defaultMigrationsPath
	}
	if strings.TrimSpace(c.SentryEnvironment) == "" {
		c.SentryEnvironment = "production"
	}

	if strings.TrimSpace(c.DatabaseURL) == "" {
		// Valeur par défaut utile en local lorsque DATABASE_URL n'est pas fournie.
		c.DatabaseURL = defaultDatabaseURL
	}

	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: DATABASE_URL invalide (%q): %w", c.DatabaseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: DATABASE_URL invalide (%q): scheme ou host manquant", c.DatabaseURL)
	}

	return nil
}

// isSnowflake accepts empty values (optional IDs) and digit-only IDs.
func isSnowflake(id string) bool {
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func parseBool(name, value string, fallback bool) (bool, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, fmt.Errorf("config: %s invalide (%q): %w", name, value, err)
	}
	return b, nil
}

func parseInt(name, value string, fallback int) (int, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("config: %s invalide (%q): %w", name, value, err)
	}
	return n, nil
}
