package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/Mwenda-Eric/bvaccess-api/internal/domain"
)

type Config struct {
	App                App                `mapstructure:",squash"`
	Server             Server             `mapstructure:",squash"`
	Database           Database           `mapstructure:",squash"`
	Auth               Auth               `mapstructure:",squash"`
	Hotspot            Hotspot            `mapstructure:",squash"`
	Report             Report             `mapstructure:",squash"`
	VoucherSync        VoucherSync        `mapstructure:",squash"`
	ReportSnapshotSync ReportSnapshotSync `mapstructure:",squash"`
	SecretKey          string             `mapstructure:"secret_key"`
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

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

// Hotspot aponta para o backend do sistema de hotspot que emite os vouchers
type Hotspot struct {
	URL            string `mapstructure:"hotspot_url"`
	APIKey         string `mapstructure:"hotspot_api_key"`
	TimeoutSeconds int    `mapstructure:"hotspot_timeout_seconds"`
	PageSize       int    `mapstructure:"hotspot_page_size"`
}

// Report controla o fuso dos relatórios e a tabela de durações.
// As durações vêm como "minutos:rótulo:preço" separadas por vírgula.
type Report struct {
	Timezone      string `mapstructure:"report_timezone"`
	DurationTiers string `mapstructure:"report_duration_tiers"`
}

// Location resolve o fuso dos relatórios. Fuso inválido cai em UTC com aviso
// em vez de derrubar o serviço na inicialização.
func (r Report) Location() *time.Location {
	if r.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"timezone": r.Timezone,
			"error":    err,
		}).Warn("Fuso horário de relatório inválido, usando UTC")
		return time.UTC
	}
	return loc
}

// Tiers converte a tabela configurada de durações. Entradas malformadas são
// ignoradas; sem nenhuma entrada válida vale a tabela padrão do painel.
func (r Report) Tiers() []domain.DurationTier {
	if r.DurationTiers == "" {
		return domain.DefaultDurationTiers()
	}

	tiers := make([]domain.DurationTier, 0)
	for _, entry := range strings.Split(r.DurationTiers, ",") {
		parts := strings.SplitN(strings.TrimSpace(entry), ":", 3)
		if len(parts) != 3 {
			logrus.Warn("Entrada de duração malformada ignorada:", entry)
			continue
		}

		minutes, err := strconv.Atoi(parts[0])
		if err != nil || minutes <= 0 {
			logrus.Warn("Duração inválida ignorada:", entry)
			continue
		}

		price, err := decimal.NewFromString(parts[2])
		if err != nil || price.IsNegative() {
			logrus.Warn("Preço de duração inválido ignorado:", entry)
			continue
		}

		tiers = append(tiers, domain.DurationTier{
			Minutes: minutes,
			Label:   parts[1],
			Price:   price,
		})
	}

	if len(tiers) == 0 {
		return domain.DefaultDurationTiers()
	}
	return tiers
}

type VoucherSync struct {
	CronSchedule        string `mapstructure:"voucher_sync_cron"`
	LookbackDays        int    `mapstructure:"voucher_sync_lookback_days"`
	RequestDelaySeconds int    `mapstructure:"voucher_sync_request_delay_seconds"`
	Enabled             bool   `mapstructure:"voucher_sync_enabled"`
}

type ReportSnapshotSync struct {
	CronSchedule  string `mapstructure:"report_snapshot_sync_cron"`
	RetentionDays int    `mapstructure:"report_snapshot_retention_days"`
	Enabled       bool   `mapstructure:"report_snapshot_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/bvaccess")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	viper.SetDefault("HOTSPOT_URL", "http://localhost:5080/api")
	viper.SetDefault("HOTSPOT_API_KEY", "your_api_key")
	viper.SetDefault("HOTSPOT_TIMEOUT_SECONDS", 30)
	viper.SetDefault("HOTSPOT_PAGE_SIZE", 200)

	viper.SetDefault("REPORT_TIMEZONE", "UTC")
	viper.SetDefault("REPORT_DURATION_TIERS", "30:30 minutes:25,60:1 hour:50,120:2 hours:75,1440:24 hours:150")

	// Defaults para sincronização de vouchers com o hotspot
	viper.SetDefault("VOUCHER_SYNC_CRON", "*/15 * * * *") // A cada 15 minutos
	viper.SetDefault("VOUCHER_SYNC_LOOKBACK_DAYS", 2)
	viper.SetDefault("VOUCHER_SYNC_REQUEST_DELAY_SECONDS", 1)
	viper.SetDefault("VOUCHER_SYNC_ENABLED", false)

	// Defaults para o fechamento de relatórios diários
	viper.SetDefault("REPORT_SNAPSHOT_SYNC_CRON", "30 0 * * *") // Todos os dias às 00h30
	viper.SetDefault("REPORT_SNAPSHOT_RETENTION_DAYS", 365)
	viper.SetDefault("REPORT_SNAPSHOT_SYNC_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
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

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Info("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
