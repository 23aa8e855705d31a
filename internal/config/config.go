package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Armazenamentos suportados para o estado do cache
const (
	StateStoreMemory   = "memory"
	StateStorePostgres = "postgres"
	StateStoreRedis    = "redis"
)

type Config struct {
	App              App              `mapstructure:",squash"`
	Server           Server           `mapstructure:",squash"`
	Database         Database         `mapstructure:",squash"`
	Redis            Redis            `mapstructure:",squash"`
	HRReport         HRReport         `mapstructure:",squash"`
	Cache            Cache            `mapstructure:",squash"`
	Auth             Auth             `mapstructure:",squash"`
	DirectoryRefresh DirectoryRefresh `mapstructure:",squash"`
}

type App struct {
	LogLevel       string   `mapstructure:"log_level"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
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

type Redis struct {
	Addr     string `mapstructure:"redis_addr"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
}

// HRReport configura o acesso ao relatório de funcionários da plataforma de RH
type HRReport struct {
	URL               string        `mapstructure:"hr_report_url"`
	Token             string        `mapstructure:"hr_report_token"`
	Timeout           time.Duration `mapstructure:"hr_report_timeout"`
	RequestsPerSecond float64       `mapstructure:"hr_report_rate_per_second"`
}

type Cache struct {
	TTL              time.Duration `mapstructure:"cache_ttl"`
	RecentHireWindow time.Duration `mapstructure:"recent_hire_window"`
	DepartmentsFile  string        `mapstructure:"departments_file"`
	StateStore       string        `mapstructure:"state_store"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type DirectoryRefresh struct {
	CronSchedule string `mapstructure:"directory_refresh_cron"`
	Enabled      bool   `mapstructure:"directory_refresh_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/directory?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("HR_REPORT_URL", "")
	viper.SetDefault("HR_REPORT_TOKEN", "")
	viper.SetDefault("HR_REPORT_TIMEOUT", "30s")
	viper.SetDefault("HR_REPORT_RATE_PER_SECOND", 1)

	viper.SetDefault("CACHE_TTL", "24h")           // Janela de validade do snapshot
	viper.SetDefault("RECENT_HIRE_WINDOW", "168h") // 7 dias
	viper.SetDefault("DEPARTMENTS_FILE", "")
	viper.SetDefault("STATE_STORE", StateStoreMemory)

	viper.SetDefault("AUTH_SECRET", "")

	viper.SetDefault("DIRECTORY_REFRESH_CRON", "0 5 * * *") // Todos os dias às 5h da manhã
	viper.SetDefault("DIRECTORY_REFRESH_ENABLED", false)
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis de ambiente (viper não conseguiu ler .env): ", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
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

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate verifica combinações inválidas de configuração
func (c *Config) Validate() error {
	if strings.TrimSpace(c.HRReport.URL) == "" {
		return fmt.Errorf("config: HR_REPORT_URL is required")
	}

	if c.Cache.TTL <= 0 {
		return fmt.Errorf("config: CACHE_TTL must be positive, got %s", c.Cache.TTL)
	}

	switch c.Cache.StateStore {
	case StateStoreMemory, StateStorePostgres, StateStoreRedis:
	default:
		return fmt.Errorf("config: unknown STATE_STORE %q", c.Cache.StateStore)
	}

	return nil
}

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
			logrus.Info("Arquivo .env carregado de: ", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
