package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-LessonsService/internal/domain"
	"github.com/m04kA/SMC-LessonsService/pkg/types"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Redis    RedisConfig    `toml:"redis"`
	Calendar CalendarConfig `toml:"calendar"`
}

// ServerConfig настройки HTTP-сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RedisConfig настройки Redis для кеша заблокированного времени.
// Кеш - чистая оптимизация: при Enabled=false сервис работает
// напрямую с БД без потери корректности.
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// CalendarConfig настройки расписания и цен
type CalendarConfig struct {
	BusinessStart        string `toml:"business_start"`
	BusinessEnd          string `toml:"business_end"`
	MorningMarkupEnd     string `toml:"morning_markup_end"`
	EveningMarkupStart   string `toml:"evening_markup_start"`
	MinPrice             int    `toml:"min_price"`
	HighPrice            int    `toml:"high_price"`
	MaxPrice             int    `toml:"max_price"`
	LeadTimeHours        int    `toml:"lead_time_hours"`
	BookingHorizonDays   int    `toml:"booking_horizon_days"`
	DailyLessonThreshold int    `toml:"daily_lesson_threshold"`
}

// Constraints собирает доменные ограничения календаря из конфига.
// Пустые значения заменяются историческими значениями по умолчанию.
func (c CalendarConfig) Constraints() domain.CalendarConstraints {
	constraints := domain.CalendarConstraints{
		BusinessStart:        types.TimeString(orDefault(c.BusinessStart, domain.DefaultBusinessStart)),
		BusinessEnd:          types.TimeString(orDefault(c.BusinessEnd, domain.DefaultBusinessEnd)),
		MorningMarkupEnd:     types.TimeString(orDefault(c.MorningMarkupEnd, domain.DefaultMorningMarkupEnd)),
		EveningMarkupStart:   types.TimeString(orDefault(c.EveningMarkupStart, domain.DefaultEveningMarkupStart)),
		MinPrice:             orDefaultInt(c.MinPrice, domain.DefaultMinPrice),
		HighPrice:            orDefaultInt(c.HighPrice, domain.DefaultHighPrice),
		MaxPrice:             orDefaultInt(c.MaxPrice, domain.DefaultMaxPrice),
		LeadTime:             time.Duration(orDefaultInt(c.LeadTimeHours, domain.DefaultLeadTimeHours)) * time.Hour,
		BookingHorizon:       time.Duration(orDefaultInt(c.BookingHorizonDays, domain.DefaultBookingHorizonDays)) * 24 * time.Hour,
		DailyLessonThreshold: orDefaultInt(c.DailyLessonThreshold, domain.DefaultDailyLessonThreshold),
	}
	return constraints
}

// Load читает и валидирует конфигурацию из TOML-файла.
// Противоречивые настройки календаря - фатальная ошибка запуска.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.Calendar.Constraints().Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return &cfg, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func orDefaultInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
