package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App       App      `mapstructure:",squash"`
	Server    Server   `mapstructure:",squash"`
	Database  Database `mapstructure:",squash"`
	Scraper   Scraper  `mapstructure:",squash"`
	LinkSync  LinkSync `mapstructure:",squash"`
	Costura   Costura  `mapstructure:",squash"`
	Mail      Mail     `mapstructure:",squash"`
	SecretKey string   `mapstructure:"secret_key"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Scraper struct {
	UserAgent             string `mapstructure:"scraper_user_agent"`
	ConnectTimeoutSeconds int    `mapstructure:"scraper_connect_timeout_seconds"`
	TotalTimeoutSeconds   int    `mapstructure:"scraper_total_timeout_seconds"`
	MaxAttempts           int    `mapstructure:"scraper_max_attempts"`
	BackoffSeconds        int    `mapstructure:"scraper_backoff_seconds"`
}

type LinkSync struct {
	CronSchedule        string `mapstructure:"link_sync_cron"`
	Enabled             bool   `mapstructure:"link_sync_enabled"`
	RequestDelaySeconds int    `mapstructure:"link_sync_request_delay_seconds"`
}

type Costura struct {
	// Custo por metro usado no orçamento dos lotes. A fórmula mudou algumas
	// vezes ao longo da operação, então o valor fica em configuração.
	CustoPorMetro float64 `mapstructure:"costura_custo_por_metro"`
}

type Mail struct {
	Host     string `mapstructure:"mail_host"`
	Port     int    `mapstructure:"mail_port"`
	Username string `mapstructure:"mail_username"`
	Password string `mapstructure:"mail_password"`
	From     string `mapstructure:"mail_from"`
	Enabled  bool   `mapstructure:"mail_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/costura")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	viper.SetDefault("SCRAPER_USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	viper.SetDefault("SCRAPER_CONNECT_TIMEOUT_SECONDS", 5)
	viper.SetDefault("SCRAPER_TOTAL_TIMEOUT_SECONDS", 10)
	viper.SetDefault("SCRAPER_MAX_ATTEMPTS", 5)
	viper.SetDefault("SCRAPER_BACKOFF_SECONDS", 1)

	viper.SetDefault("LINK_SYNC_CRON", "0 * * * *") // toda hora cheia
	viper.SetDefault("LINK_SYNC_ENABLED", false)
	viper.SetDefault("LINK_SYNC_REQUEST_DELAY_SECONDS", 2)

	viper.SetDefault("COSTURA_CUSTO_POR_METRO", 0.4)

	viper.SetDefault("MAIL_HOST", "smtp.gmail.com")
	viper.SetDefault("MAIL_PORT", 587)
	viper.SetDefault("MAIL_USERNAME", "")
	viper.SetDefault("MAIL_PASSWORD", "")
	viper.SetDefault("MAIL_FROM", "")
	viper.SetDefault("MAIL_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// loadEnvFile tenta carregar o .env das localizações usuais em desenvolvimento
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de:", location)
			return
		}
	}

	logrus.Warn("Nenhum arquivo .env encontrado; usando defaults e variáveis de ambiente")
}
