package config

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/viper"
)

// Config хранит все настройки приложения
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Survey   SurveyConfig
	Email    EmailConfig
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string
	ReadTimeout  int
	WriteTimeout int
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig содержит унифицированные настройки подключения к Redis
// Поддерживает режимы: single, sentinel, cluster
type RedisConfig struct {
	// Mode: Режим работы Redis ("single", "sentinel", "cluster"). По умолчанию "single".
	Mode string `mapstructure:"mode"`

	// Addrs: Список адресов Redis (хост:порт). Используется для всех режимов.
	Addrs []string `mapstructure:"addrs"`

	// Addr: Альтернативный адрес для режима 'single', если Addrs пустой.
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName: Имя мастер-сервера Redis (только для режима "sentinel")
	MasterName string `mapstructure:"master_name"`
}

// JWTConfig содержит настройки JWT
type JWTConfig struct {
	Secret        string `mapstructure:"secret"`
	ExpirationHrs int    `mapstructure:"expirationHrs"`
}

// SurveyConfig централизует правила опросов и наград. Раньше эти значения
// были константами, разбросанными по коду.
type SurveyConfig struct {
	// QuestionsPerTheme: сколько ответов требуется для завершения попытки
	QuestionsPerTheme int `mapstructure:"questions_per_theme"`

	// PassScore: счёт, необходимый для прохождения (равен QuestionsPerTheme —
	// награда только за идеальный результат, частичных наград нет)
	PassScore int `mapstructure:"pass_score"`

	// RewardAmount: размер награды за пройденную тему в минимальных единицах
	RewardAmount int64 `mapstructure:"reward_amount"`

	// LeaderboardCacheTTLSec: время жизни кеша лидерборда в секундах
	LeaderboardCacheTTLSec int `mapstructure:"leaderboard_cache_ttl_sec"`
}

// EmailConfig содержит настройки отправки почты через Resend
type EmailConfig struct {
	ResendAPIKey string `mapstructure:"resend_api_key"`
	From         string `mapstructure:"from"`
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Load загружает конфигурацию из файла и переменных окружения
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Новый экземпляр, чтобы избежать глобального состояния

	// Значения по умолчанию для правил опросов
	vip.SetDefault("survey.questions_per_theme", 10)
	vip.SetDefault("survey.pass_score", 10)
	vip.SetDefault("survey.reward_amount", 22500)
	vip.SetDefault("survey.leaderboard_cache_ttl_sec", 30)
	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.readtimeout", 15)
	vip.SetDefault("server.writetimeout", 15)
	vip.SetDefault("jwt.expirationHrs", 24)

	// Привязываем переменные окружения явно
	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")

	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	vip.BindEnv("jwt.secret", "JWT_SECRET")
	vip.BindEnv("jwt.expirationHrs", "JWT_EXPIRATIONHRS")

	vip.BindEnv("survey.questions_per_theme", "SURVEY_QUESTIONS_PER_THEME")
	vip.BindEnv("survey.pass_score", "SURVEY_PASS_SCORE")
	vip.BindEnv("survey.reward_amount", "SURVEY_REWARD_AMOUNT")
	vip.BindEnv("survey.leaderboard_cache_ttl_sec", "SURVEY_LEADERBOARD_CACHE_TTL_SEC")

	vip.BindEnv("email.resend_api_key", "RESEND_API_KEY")
	vip.BindEnv("email.from", "EMAIL_FROM")

	vip.BindEnv("server.port", "SERVER_PORT")

	// Файл конфигурации необязателен: BindEnv покрывает прод-окружение
	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				log.Printf("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.Printf("Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Логирование конфигурации (только вне release режима)
	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Загруженные значения конфигурации ---")
		log.Printf("Database Host: %s", cfg.Database.Host)
		log.Printf("Database Name: %s", cfg.Database.DBName)
		log.Printf("Redis Addr: %s", cfg.Redis.Addr)
		log.Printf("JWT Expiration Hours: %d", cfg.JWT.ExpirationHrs)
		log.Printf("Questions Per Theme: %d", cfg.Survey.QuestionsPerTheme)
		log.Printf("Pass Score: %d", cfg.Survey.PassScore)
		log.Printf("Reward Amount: %d", cfg.Survey.RewardAmount)
		log.Printf("Resend API Key Set: %t", cfg.Email.ResendAPIKey != "")
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("-----------------------------------------")
	}

	// Проверка обязательных параметров
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT secret is required in config (check JWT_SECRET env var)")
	}
	if cfg.Database.Host == "" || cfg.Database.DBName == "" || cfg.Database.User == "" {
		return nil, fmt.Errorf("database configuration (host, dbname, user) is incomplete in config (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
	}
	if cfg.Survey.PassScore > cfg.Survey.QuestionsPerTheme {
		return nil, fmt.Errorf("survey pass_score (%d) cannot exceed questions_per_theme (%d)", cfg.Survey.PassScore, cfg.Survey.QuestionsPerTheme)
	}

	return &cfg, nil
}
