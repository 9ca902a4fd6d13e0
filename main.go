package main

import (
	"fmt"
	"log"
	"os"

	"github.com/crewline/crewline/cmd"
	"github.com/crewline/crewline/config"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	Version   = "?"
	BuildTime = "?"
	GitCommit = "-"
	GitRef    = "-"
)

func main() {
	//version info
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("crewline %s, built %s from %s (%s)", Version, BuildTime, GitCommit, GitRef)
		return
	}
	logger := bootstrap()
	defer func() {
		_ = logger.Sync()

	}()
	cmd.TopLevelLogger = logger
	cmd.Execute()
}

func bootstrap() *zap.Logger {
	if _, err := os.Stat(".env"); err == nil {
		err := godotenv.Load()
		if err != nil {
			log.Fatal("Error loading .env file")
		}
	}
	cfg := zap.NewProductionConfig()
	if r := os.Getenv("DEBUG_LOG"); r == "true" {
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build(zap.AddStacktrace(zap.ErrorLevel))
	if err != nil {
		log.Fatal(err)
	}
	cobra.OnInitialize(func() { initConfig(logger) })
	return logger
}

func setDefaults() {
	viper.SetDefault("smtp.enabled", false)
	viper.SetDefault("behaviour.name", "crewline")
	viper.SetDefault("behaviour.invite-expiry", "72h")
	viper.SetDefault("behaviour.password-min-length", 6)
	viper.SetDefault("behaviour.seed-demo-data", false)
	viper.SetDefault("jwt.exp", "24h")
}

func initConfig(logger *zap.Logger) {
	bind := func(from string, to string) {
		err := viper.BindEnv(to, from)
		if err != nil {
			logger.Error("unable to bindenv", zap.String("from", from), zap.String(to, to), zap.Error(err))
		}

	}
	setDefaults()
	bind("PORT", "server.port")
	bind("ADDRESS", "server.address")

	bind("CREW_PORT", "server.port")
	bind("CREW_ADDRESS", "server.address")

	bind("CREW_SMTP_ENABLED", "smtp.enabled")
	bind("CREW_SMTP_HOST", "smtp.host")
	bind("CREW_SMTP_PORT", "smtp.port")
	bind("CREW_SMTP_USERNAME", "smtp.username")
	bind("CREW_SMTP_PASSWORD", "smtp.password")
	bind("CREW_SMTP_DISPLAYNAME", "smtp.display-name")
	bind("CREW_SMTP_ADDRESS", "smtp.address")

	bind("CREW_DATABASE_TYPE", "database.type")
	bind("CREW_DATABASE_DSN", "database.dsn")

	bind("CREW_BEHAVIOUR_NAME", "behaviour.name")
	bind("CREW_BEHAVIOUR_SITE", "behaviour.site")
	bind("CREW_BEHAVIOUR_INVITE_EXPIRY", "behaviour.invite-expiry")
	bind("CREW_BEHAVIOUR_PASSWORD_MIN_LENGTH", "behaviour.password-min-length")
	bind("CREW_BEHAVIOUR_SEED_DEMO_DATA", "behaviour.seed-demo-data")

	bind("CREW_JWT_ISSUER", "jwt.iss")
	bind("CREW_JWT_EXP", "jwt.exp")

	bind("CREW_JWT_HMAC_SIGNING_KEY", "jwt.hmac-signing-key")
	bind("CREW_JWT_HMAC_SIGNING_KEY_FILE", "jwt.hmac-signing-key-file")

	bind("CREW_API_CORS_ALLOWED_ORIGINS", "api.cors.allowed-origins")
	bind("CREW_API_CORS_ALLOWED_METHODS", "api.cors.allowed-methods")
	bind("CREW_API_CORS_ALLOW_CREDENTIALS", "api.cors.allow-credentials")

	if cmd.ConfigFileLocation != "" {
		logger.Debug("Using supplied config file", zap.String("file", string(cmd.ConfigFileLocation)))
		viper.SetConfigFile(string(cmd.ConfigFileLocation))
	} else {
		path, err := os.Getwd()
		if err != nil {
			logger.Warn("Unable to get current working dir", zap.Error(err))
		}
		cobra.CheckErr(err)
		viper.AddConfigPath(path)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		logger.Debug("Looking for default config file")
	}
	//precedence: environment overwrites yml
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Debug("No config file loaded")
	} else {
		logger.Debug("Config file loaded", zap.String("file", viper.ConfigFileUsed()))
	}

	conf := &config.Configuration{}
	err := viper.Unmarshal(conf)
	if err != nil {
		logger.Fatal("Unable to unmarshall config", zap.Error(err))
	}
	logger.Debug("Config loaded", zap.Any("config", conf))
	logger.Debug("Validating final config")
	if err = conf.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}
	cmd.LoadedConfig = conf
}
