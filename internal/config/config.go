package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Auth        Auth        `mapstructure:",squash"`
	Redis       Redis       `mapstructure:",squash"`
	CORS        CORS        `mapstructure:",squash"`
	KPISnapshot KPISnapshot `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Env      string `mapstructure:"app_env"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN       string `mapstructure:"-"`
	Driver    string `mapstructure:"database_driver"`
	Password  string `mapstructure:"database_password"`
	URL       string `mapstructure:"database_url"`
	User      string `mapstructure:"database_user"`
	Bootstrap bool   `mapstructure:"database_bootstrap"`
}

type Auth struct {
	SecretKey string        `mapstructure:"secret_key"`
	TokenTTL  time.Duration `mapstructure:"auth_token_ttl"`
}

// Redis é opcional. Sem endereço, os indicadores são calculados a cada consulta.
type Redis struct {
	Addr           string        `mapstructure:"redis_addr"`
	Password       string        `mapstructure:"redis_password"`
	DB             int           `mapstructure:"redis_db"`
	CacheTTL       time.Duration `mapstructure:"kpi_cache_ttl"`
	BreakerTimeout time.Duration `mapstructure:"redis_breaker_timeout"`
}

type CORS struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type KPISnapshot struct {
	CronSchedule  string `mapstructure:"kpi_snapshot_cron"`
	Enabled       bool   `mapstructure:"kpi_snapshot_enabled"`
	MonthLookBack int    `mapstructure:"kpi_snapshot_month_lookback"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "debug")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/flow?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "")
	viper.SetDefault("DATABASE_BOOTSTRAP", false)

	viper.SetDefault("SECRET_KEY", "")
	viper.SetDefault("AUTH_TOKEN_TTL", "24h")

	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("KPI_CACHE_TTL", "5m")
	viper.SetDefault("REDIS_BREAKER_TIMEOUT", "30s")

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

	viper.SetDefault("KPI_SNAPSHOT_CRON", "0 5 1 * *") // No primeiro dia de cada mês às 5h
	viper.SetDefault("KPI_SNAPSHOT_ENABLED", false)
	viper.SetDefault("KPI_SNAPSHOT_MONTH_LOOKBACK", 1)
}

func NewConfig() (*Config, error) {
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis de ambiente (viper não conseguiu ler .env): ", err)
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

	if config.Auth.SecretKey == "" {
		return nil, fmt.Errorf("SECRET_KEY não configurada")
	}
	if config.KPISnapshot.MonthLookBack < 1 {
		config.KPISnapshot.MonthLookBack = 1
	}

	config.Database.DSN = buildDSN(config.Database)

	return config, nil
}

func buildDSN(db Database) string {
	return fmt.Sprintf(
		"%s://%s:%s@%s",
		db.Driver,
		db.User,
		db.Password,
		db.URL,
	)
}

// loadEnvFile procura um .env no diretório atual e nos diretórios acima
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de: ", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
