package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Storage configuration
	DBPath string `long:"db-path" env:"DB_PATH" default:"./learnlog.db" description:"Path to the SQLite database file"`

	// Collaborator configuration
	GroqAPIKey    string `long:"groq-api-key" env:"GROQ_API_KEY" description:"Groq API key (required)" required:"true"`
	GroqBaseURL   string `long:"groq-base-url" env:"GROQ_BASE_URL" default:"https://api.groq.com/openai/v1" description:"Groq OpenAI-compatible API base URL"`
	GroqModel     string `long:"groq-model" env:"GROQ_MODEL" default:"llama-3.3-70b-versatile" description:"Groq model identifier"`
	TavilyAPIKey  string `long:"tavily-api-key" env:"TAVILY_API_KEY" description:"Tavily API key (required)" required:"true"`
	TavilyBaseURL string `long:"tavily-base-url" env:"TAVILY_BASE_URL" default:"https://api.tavily.com" description:"Tavily API base URL"`

	// Application configuration
	Port              string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	CatalogFile       string `long:"catalog-file" env:"CATALOG_FILE" description:"Optional YAML file overriding the documentation domain table and fallback tag terms"`
	WorkerCount       int    `long:"worker-count" env:"WORKER_COUNT" default:"2" description:"Number of background workers for reference content extraction"`
	SchedulerInterval int    `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"60" description:"Scheduler interval in seconds"`
	ExtractContent    bool   `long:"extract-content" env:"EXTRACT_CONTENT" description:"Enable background content extraction for saved references"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Learnlog/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Asia/Seoul)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:            raw.DBPath,
		GroqAPIKey:        raw.GroqAPIKey,
		GroqBaseURL:       raw.GroqBaseURL,
		GroqModel:         raw.GroqModel,
		TavilyAPIKey:      raw.TavilyAPIKey,
		TavilyBaseURL:     raw.TavilyBaseURL,
		Port:              raw.Port,
		CatalogFile:       raw.CatalogFile,
		WorkerCount:       raw.WorkerCount,
		SchedulerInterval: raw.SchedulerInterval,
		ExtractContent:    raw.ExtractContent,
		UserAgent:         raw.UserAgent,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
