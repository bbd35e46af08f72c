package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/EJcoding/DataAngelo/core/config"
	"github.com/EJcoding/DataAngelo/core/infrastructure/logging"
	"github.com/EJcoding/DataAngelo/core/runtime"
)

var watch bool

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:           "start",
	Short:         "Run the DataAngelo server",
	RunE:          startServer,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true, // Errors are already logged, suppress Cobra's error output
}

func init() {
	rootCmd.AddCommand(startCmd)

	// Start command runtime flags
	startCmd.Flags().StringVarP(&configFile, "file", "f", "", "Path to the configuration file (default .dataangelo.yaml)")
	startCmd.Flags().StringVarP(&port, "port", "p", "", "Server port (overrides config file and PORT env var)")
	startCmd.Flags().IntVar(&logLevel, "log-level", 0, "Log level: 1=ERROR, 2=WARN, 3=INFO, 4=DEBUG (overrides config file)")
	startCmd.Flags().BoolVarP(&verbose, "verbose", "", false, "Enable verbose logging (sets log level to DEBUG)")
	startCmd.Flags().StringVar(&logTags, "log-tags", "", "Filter logs by tags (comma-separated, use -tag to exclude). Overrides DATAANGELO_LOG_TAGS env var")
	startCmd.Flags().BoolVar(&watch, "watch", false, "Watch the prompts directory and hot-reload templates on changes")
}

func startServer(cmd *cobra.Command, args []string) error {
	rt, err := PrepareRuntime()
	if err != nil {
		return err
	}
	return rt.Start()
}

// PrepareRuntime loads config, validates, and creates a runtime ready to start
func PrepareRuntime() (*runtime.Runtime, error) {
	log := logging.New("main")

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log.Infof("Configuration loaded")
	log.Debugf("Port: %s", cfg.Server.Port)
	log.Debugf("Ollama: %s (model %s, timeout %s)", cfg.Ollama.URL, cfg.Ollama.Model, cfg.Ollama.Timeout())
	if cfg.Prompts.Dir != "" {
		log.Debugf("Prompt overrides: %s", cfg.Prompts.Dir)
	}
	if cfg.Server.RateLimit.Enabled {
		log.Debugf("Rate limit: %d requests per %s", cfg.Server.RateLimit.Requests, cfg.Server.RateLimit.Window())
	}

	rt, err := runtime.NewRuntime(cfg, GetVersion(), runtime.WithPromptWatch(watch))
	if err != nil {
		return nil, logging.WithTag("runtime", err)
	}
	log.Infof("Runtime initialized")

	return rt, nil
}

// loadConfig applies logging flags, loads .env files, and builds the
// configuration shared by all commands that talk to the model.
func loadConfig() (*config.Config, error) {
	// Set log level early based on CLI flags (before loading config)
	// so logs during config loading respect it. Updated from the config
	// file afterwards when no flag was provided.
	if verbose {
		logging.SetLogLevel(logging.LogLevelDebug)
	} else if logLevel > 0 {
		logging.SetLogLevel(logLevel)
	} else {
		logging.SetLogLevel(logging.LogLevelInfo)
	}

	// Initialize tag filtering early (CLI flag takes precedence over env var)
	tagFilterStr := logTags
	if tagFilterStr == "" {
		tagFilterStr = os.Getenv("DATAANGELO_LOG_TAGS")
	}
	if tagFilterStr != "" {
		logging.SetTagFilter(tagFilterStr)
	}

	// Load .env files from the config file directory if one is provided,
	// so they can live next to the config file.
	if configFile != "" {
		if configDir := filepath.Dir(configFile); configDir != "" && configDir != "." {
			config.LoadEnvFiles(configDir)
		} else {
			config.LoadEnvFiles(".")
		}
	} else {
		config.LoadEnvFiles(".")
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, logging.WithTag("config", err)
	}

	if port != "" {
		cfg.Server.Port = port
	}
	if logLevel == 0 && !verbose {
		logging.SetLogLevel(cfg.Log.Level)
	}

	return cfg, nil
}
