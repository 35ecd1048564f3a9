package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/kolhapurmc/civicbot/internal/api"
	"github.com/kolhapurmc/civicbot/internal/dialog"
	"github.com/kolhapurmc/civicbot/internal/genai"
	"github.com/kolhapurmc/civicbot/internal/lockfile"
	"github.com/kolhapurmc/civicbot/internal/messaging"
	"github.com/kolhapurmc/civicbot/internal/store"
	"github.com/kolhapurmc/civicbot/internal/twiliowhatsapp"
	"github.com/kolhapurmc/civicbot/internal/util"
	"github.com/kolhapurmc/civicbot/internal/whatsapp"
)

const (
	// DefaultStateDir is the default directory for civicbot state data.
	DefaultStateDir = "/var/lib/civicbot"
	// DefaultSessionDBFileName is the default SQLite session database filename.
	DefaultSessionDBFileName = "civicbot.db"
	// DefaultWhatsAppDBFileName is the default whatsmeow device database filename.
	DefaultWhatsAppDBFileName = "whatsmeow.db"

	// ChannelTwilio selects the Twilio webhook-based WhatsApp channel.
	ChannelTwilio = "twilio"
	// ChannelWhatsmeow selects the self-hosted whatsmeow channel.
	ChannelWhatsmeow = "whatsmeow"
)

func main() {
	initializeLogger()

	config := loadEnvironmentConfig()
	flags := parseCommandLineFlags(config)

	if err := ensureDirectoriesExist(flags); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	lock, err := lockfile.AcquireLock(*flags.stateDir)
	if err != nil {
		var lockErr *lockfile.LockError
		if errors.As(err, &lockErr) {
			fmt.Fprintln(os.Stderr, lockErr.Error())
		} else {
			slog.Error("Failed to acquire state directory lock", "error", err)
		}
		os.Exit(1)
	}
	defer lock.Release()

	sessionStore, err := buildSessionStore(flags)
	if err != nil {
		slog.Error("Failed to initialize session store", "error", err)
		os.Exit(1)
	}
	defer sessionStore.Close()

	genaiClient, err := genai.NewClient(buildGenAIOptions(flags)...)
	if err != nil {
		slog.Error("Failed to initialize GenAI client", "error", err)
		os.Exit(1)
	}

	controller := dialog.NewController(sessionStore, dialog.NewBridge(genaiClient))

	service, twilioService, err := buildMessagingService(flags)
	if err != nil {
		slog.Error("Failed to initialize messaging channel", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dispatcher := messaging.NewDispatcher(service, controller)
	if err := dispatcher.Start(ctx); err != nil {
		slog.Error("Failed to start dispatcher", "error", err)
		os.Exit(1)
	}
	defer dispatcher.Stop()

	server := api.NewServer(controller, twilioService, buildAPIOptions(flags)...)
	slog.Info("Bootstrapping civicbot", "channel", *flags.channel, "session_dsn_set", *flags.dbDSN != "")
	if err := server.Run(ctx); err != nil {
		slog.Error("civicbot failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("civicbot exited successfully")
}

// Config holds environment configuration.
type Config struct {
	StateDir    string
	SessionDSN  string
	WhatsAppDSN string
	OpenAIKey   string
	OpenAIModel string
	APIAddr     string
	Channel     string
	NumericCode bool
}

// Flags holds command line flag values.
type Flags struct {
	qrOutput    *string
	numeric     *bool
	stateDir    *string
	dbDSN       *string
	waDBDSN     *string
	openaiKey   *string
	openaiModel *string
	apiAddr     *string
	channel     *string
}

func initializeLogger() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and
// an optional .env file.
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	config := Config{
		StateDir:    os.Getenv("CIVICBOT_STATE_DIR"),
		SessionDSN:  os.Getenv("DATABASE_URL"),
		WhatsAppDSN: os.Getenv("WHATSAPP_DB_DSN"),
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIModel: os.Getenv("OPENAI_MODEL"),
		APIAddr:     os.Getenv("API_ADDR"),
		Channel:     os.Getenv("CIVICBOT_CHANNEL"),
		NumericCode: util.ParseBoolEnv("CIVICBOT_NUMERIC_CODE", false),
	}

	if config.StateDir == "" {
		config.StateDir = DefaultStateDir
		slog.Debug("No CIVICBOT_STATE_DIR set, using default", "default_state_dir", config.StateDir)
	}
	if config.Channel == "" {
		config.Channel = ChannelTwilio
	}
	if config.WhatsAppDSN == "" {
		config.WhatsAppDSN = filepath.Join(config.StateDir, DefaultWhatsAppDBFileName)
	}

	slog.Debug("environment variables loaded",
		"CIVICBOT_STATE_DIR", config.StateDir,
		"DATABASE_URL_SET", config.SessionDSN != "",
		"WHATSAPP_DB_DSN_SET", config.WhatsAppDSN != "",
		"OPENAI_API_KEY_SET", config.OpenAIKey != "",
		"API_ADDR", config.APIAddr,
		"CIVICBOT_CHANNEL", config.Channel)

	return config
}

// parseCommandLineFlags parses command line arguments with environment
// defaults.
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		qrOutput:    flag.String("qr-output", "", "path to write login QR code (whatsmeow channel)"),
		numeric:     flag.Bool("numeric-code", config.NumericCode, "use numeric login code instead of QR code (overrides $CIVICBOT_NUMERIC_CODE)"),
		stateDir:    flag.String("state-dir", config.StateDir, "state directory for civicbot data (overrides $CIVICBOT_STATE_DIR)"),
		dbDSN:       flag.String("db-dsn", config.SessionDSN, "session database DSN; empty uses the in-memory store (overrides $DATABASE_URL)"),
		waDBDSN:     flag.String("whatsapp-db-dsn", config.WhatsAppDSN, "whatsmeow device database DSN (overrides $WHATSAPP_DB_DSN)"),
		openaiKey:   flag.String("openai-api-key", config.OpenAIKey, "OpenAI API key (overrides $OPENAI_API_KEY)"),
		openaiModel: flag.String("openai-model", config.OpenAIModel, "OpenAI chat model (overrides $OPENAI_MODEL)"),
		apiAddr:     flag.String("api-addr", config.APIAddr, "API server address (overrides $API_ADDR)"),
		channel:     flag.String("channel", config.Channel, "WhatsApp channel: twilio or whatsmeow (overrides $CIVICBOT_CHANNEL)"),
	}

	flag.Parse()

	slog.Debug("flags parsed",
		"qrOutput", *flags.qrOutput,
		"numeric", *flags.numeric,
		"stateDir", *flags.stateDir,
		"dbDSN_set", *flags.dbDSN != "",
		"waDBDSN_set", *flags.waDBDSN != "",
		"openaiKeySet", *flags.openaiKey != "",
		"apiAddr", *flags.apiAddr,
		"channel", *flags.channel)

	return flags
}

// ensureDirectoriesExist creates the state directory for file-based
// databases.
func ensureDirectoriesExist(flags Flags) error {
	for _, dsn := range []string{*flags.dbDSN, *flags.waDBDSN} {
		if dsn == "" || store.DetectDSNType(dsn) == "postgres" {
			continue
		}
		dir := filepath.Dir(dsn)
		if err := os.MkdirAll(dir, 0755); err != nil {
			slog.Error("Failed to create state directory", "error", err, "dir", dir)
			return err
		}
	}
	return nil
}

// buildSessionStore selects the session store backend from the DSN.
func buildSessionStore(flags Flags) (store.Store, error) {
	dsn := *flags.dbDSN
	if dsn == "" {
		slog.Info("No session database DSN provided, using in-memory store; sessions will not survive restarts")
		return store.NewInMemoryStore(), nil
	}
	if store.DetectDSNType(dsn) == "postgres" {
		slog.Debug("Detected PostgreSQL DSN, configuring PostgreSQL session store")
		return store.NewPostgresStore(store.WithPostgresDSN(dsn))
	}
	slog.Debug("Detected SQLite DSN, configuring SQLite session store", "db_path", dsn)
	return store.NewSQLiteStore(store.WithSQLiteDSN(dsn))
}

// buildGenAIOptions constructs GenAI configuration options.
func buildGenAIOptions(flags Flags) []genai.Option {
	var opts []genai.Option
	if *flags.openaiKey != "" {
		opts = append(opts, genai.WithAPIKey(*flags.openaiKey))
	}
	if *flags.openaiModel != "" {
		opts = append(opts, genai.WithModel(*flags.openaiModel))
	}
	return opts
}

// buildMessagingService constructs the selected WhatsApp channel. The
// second return value is non-nil only for the Twilio channel, whose
// webhook route must be registered on the API server.
func buildMessagingService(flags Flags) (messaging.Service, *messaging.TwilioService, error) {
	switch strings.ToLower(*flags.channel) {
	case ChannelWhatsmeow:
		waOpts := []whatsapp.Option{whatsapp.WithDBDSN(*flags.waDBDSN)}
		if *flags.qrOutput != "" {
			waOpts = append(waOpts, whatsapp.WithQRCodeOutput(*flags.qrOutput))
		}
		if *flags.numeric {
			waOpts = append(waOpts, whatsapp.WithNumericCode())
		}
		waClient, err := whatsapp.NewClient(waOpts...)
		if err != nil {
			return nil, nil, err
		}
		return messaging.NewWhatsAppService(waClient), nil, nil
	default:
		twilioClient, err := twiliowhatsapp.NewClient()
		if err != nil {
			return nil, nil, err
		}
		twilioService := messaging.NewTwilioService(twilioClient)
		return twilioService, twilioService, nil
	}
}

// buildAPIOptions constructs API server configuration options.
func buildAPIOptions(flags Flags) []api.Option {
	var opts []api.Option
	if *flags.apiAddr != "" {
		opts = append(opts, api.WithAddr(*flags.apiAddr))
	}
	return opts
}
