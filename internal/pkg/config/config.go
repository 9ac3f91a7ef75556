package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Resolver ResolverConfig `yaml:"resolver"`
	Aliases  AliasConfig    `yaml:"aliases"`
	Ingest   IngestConfig   `yaml:"ingest"`
	Export   ExportConfig   `yaml:"export"`
	Telegram TelegramConfig `yaml:"telegram"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ResolverConfig struct {
	// Threshold is the minimum fuzzy score to accept a match, in [0,1].
	Threshold float64 `yaml:"threshold"`
	// TieEpsilon is the score gap under which two top fuzzy candidates are
	// treated as an ambiguous tie, in [0,1).
	TieEpsilon float64 `yaml:"tie_epsilon"`
	// TokenWeight is the weight of token overlap vs edit distance in the
	// fuzzy score, in [0,1]. Zero means "use the default" (0.5).
	TokenWeight float64 `yaml:"token_weight"`
	// RequireTeamDisambiguation, when true, rejects ambiguous exact-name
	// matches that cannot be resolved by a team hint instead of falling
	// through to fuzzy scoring over the tied candidates.
	RequireTeamDisambiguation bool `yaml:"require_team_disambiguation"`
}

type AliasConfig struct {
	Teams   map[string]string `yaml:"teams"`   // "SEN" -> "Sentinels"
	Players map[string]string `yaml:"players"` // raw alias -> canonical name
}

type IngestConfig struct {
	OffersCSV     string           `yaml:"offers_csv"`
	PlayerMapsCSV string           `yaml:"player_maps_csv"`
	OverridesCSV  string           `yaml:"overrides_csv"`
	PrizePicks    PrizePicksConfig `yaml:"prizepicks"`
}

type PrizePicksConfig struct {
	BaseURL   string            `yaml:"base_url"`
	LeagueID  string            `yaml:"league_id"`
	Timeout   time.Duration     `yaml:"timeout"`
	UserAgent string            `yaml:"user_agent"`
	Headers   map[string]string `yaml:"headers"`
}

type ExportConfig struct {
	JSONPath         string `yaml:"json_path"`
	CSVPath          string `yaml:"csv_path"`
	IncludeUnmatched bool   `yaml:"include_unmatched"`
}

type TelegramConfig struct {
	Enabled  bool   `yaml:"enabled"`
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	JSONPath string `yaml:"json_path"` // optional JSON log file alongside stdout
}

// Defaults used when the config omits resolver tuning values.
const (
	DefaultThreshold  = 0.75
	DefaultTieEpsilon = 0.02
)

func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Resolver.Threshold == 0 {
		c.Resolver.Threshold = DefaultThreshold
	}
	if c.Resolver.TieEpsilon == 0 {
		c.Resolver.TieEpsilon = DefaultTieEpsilon
	}
}

// Validate fails fast on caller mistakes before any matching work starts.
func (c *Config) Validate() error {
	if c.Resolver.Threshold < 0 || c.Resolver.Threshold > 1 {
		return fmt.Errorf("resolver.threshold must be in [0,1], got %v", c.Resolver.Threshold)
	}
	if c.Resolver.TieEpsilon < 0 || c.Resolver.TieEpsilon >= 1 {
		return fmt.Errorf("resolver.tie_epsilon must be in [0,1), got %v", c.Resolver.TieEpsilon)
	}
	if c.Resolver.TokenWeight < 0 || c.Resolver.TokenWeight > 1 {
		return fmt.Errorf("resolver.token_weight must be in [0,1], got %v", c.Resolver.TokenWeight)
	}
	if c.Telegram.Enabled && c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
	}
	return nil
}
