package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	DB     DBConfig
	Server ServerConfig
	Redis  RedisConfig
	LLM    LLMConfig
	Quiz   QuizConfig
	OCR    OCRConfig
	Notes  NotesConfig
	Upload UploadConfig
	Logger LoggerConfig
}

type DBConfig struct {
	Driver   string
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
	QuizTTL  time.Duration
}

// LLMConfig holds the question generator settings. API keys are read once here
// and handed to the generator at construction time.
type LLMConfig struct {
	Provider        string
	Model           string
	MaxTokens       int
	Temperature     float64
	Timeout         time.Duration
	ServerURL       string
	AnthropicAPIKey string
	OpenAIAPIKey    string
}

type QuizConfig struct {
	QuestionCount int
}

type OCRConfig struct {
	Language string
	DPI      float64
	Workers  int
}

type NotesConfig struct {
	BaseDir string
}

type UploadConfig struct {
	Dir string
}

type LoggerConfig struct {
	Level string
	Env   string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", 60)
	v.SetDefault("server.write_timeout", 120)
	v.SetDefault("server.body_limit", 10*1024*1024)
	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.quiz_ttl", 3600)
	v.SetDefault("llm.provider", "anthropic")
	v.SetDefault("llm.model", "claude-3-opus-20240229")
	v.SetDefault("llm.max_tokens", 1000)
	v.SetDefault("llm.temperature", 0.5)
	v.SetDefault("llm.timeout", 120)
	v.SetDefault("llm.server_url", "http://localhost:11434")
	v.SetDefault("quiz.question_count", 5)
	v.SetDefault("ocr.language", "eng")
	v.SetDefault("ocr.dpi", 300)
	v.SetDefault("ocr.workers", 2)
	v.SetDefault("notes.base_dir", "")
	v.SetDefault("upload.dir", "uploads")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")
}

func LoadConfig() (*Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	setDefaults(v)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	config := &Config{
		DB: DBConfig{
			Driver:   v.GetString("db.driver"),
			DSN:      v.GetString("db.dsn"),
			Host:     v.GetString("db.host"),
			Port:     v.GetInt("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			DBName:   v.GetString("db.name"),
		},
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
			BodyLimit:    v.GetInt("server.body_limit"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			QuizTTL:  time.Duration(v.GetInt("redis.quiz_ttl")) * time.Second,
		},
		LLM: LLMConfig{
			Provider:        v.GetString("llm.provider"),
			Model:           v.GetString("llm.model"),
			MaxTokens:       v.GetInt("llm.max_tokens"),
			Temperature:     v.GetFloat64("llm.temperature"),
			Timeout:         time.Duration(v.GetInt("llm.timeout")) * time.Second,
			ServerURL:       v.GetString("llm.server_url"),
			AnthropicAPIKey: v.GetString("anthropic_api_key"),
			OpenAIAPIKey:    v.GetString("openai_api_key"),
		},
		Quiz: QuizConfig{
			QuestionCount: v.GetInt("quiz.question_count"),
		},
		OCR: OCRConfig{
			Language: v.GetString("ocr.language"),
			DPI:      v.GetFloat64("ocr.dpi"),
			Workers:  v.GetInt("ocr.workers"),
		},
		Notes: NotesConfig{
			BaseDir: v.GetString("notes.base_dir"),
		},
		Upload: UploadConfig{
			Dir: v.GetString("upload.dir"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
	}

	applyEnvOverrides(config)

	if config.Notes.BaseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve working directory: %w", err)
		}
		config.Notes.BaseDir = wd
	}

	return config, nil
}

// applyEnvOverrides mirrors the flat environment names used in deployment
// manifests onto the nested config keys.
func applyEnvOverrides(config *Config) {
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		config.DB.Driver = driver
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		config.DB.DSN = dsn
	}
	if host := os.Getenv("DB_HOST"); host != "" {
		config.DB.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.DB.Port = p
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		config.DB.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		config.DB.Password = password
	}
	if dbname := os.Getenv("DB_NAME"); dbname != "" {
		config.DB.DBName = dbname
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		config.LLM.Provider = provider
	}
	if model := os.Getenv("LLM_MODEL"); model != "" {
		config.LLM.Model = model
	}
	if llmServer := os.Getenv("LLM_SERVER"); llmServer != "" {
		config.LLM.ServerURL = llmServer
	}
	if anthropicKey := os.Getenv("ANTHROPIC_API_KEY"); anthropicKey != "" {
		config.LLM.AnthropicAPIKey = anthropicKey
	}
	if openAIKey := os.Getenv("OPENAI_API_KEY"); openAIKey != "" {
		config.LLM.OpenAIAPIKey = openAIKey
	}
	if uploadDir := os.Getenv("UPLOAD_DIR"); uploadDir != "" {
		config.Upload.Dir = uploadDir
	}
	if notesDir := os.Getenv("NOTES_BASE_DIR"); notesDir != "" {
		config.Notes.BaseDir = notesDir
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logger.Level = level
	}
	if env := os.Getenv("ENV"); env == "production" {
		config.Logger.Env = env
	}
}

// GetDSN returns the connection string for the configured driver. An explicit
// db.dsn always wins.
func (c *Config) GetDSN() string {
	if c.DB.DSN != "" {
		return c.DB.DSN
	}
	switch c.DB.Driver {
	case "sqlite3":
		return c.DB.DBName
	case "oracle":
		return c.DB.dsnURL("oracle", "").String()
	case "godror":
		return fmt.Sprintf(`user="%s" password="%s" connectString="%s:%d/%s"`,
			c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.DBName)
	default:
		return c.DB.dsnURL("postgres", "sslmode=disable").String()
	}
}

// dsnURL escapes the credentials so any character is allowed in them.
func (d DBConfig) dsnURL(scheme, query string) *url.URL {
	return &url.URL{
		Scheme:   scheme,
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.DBName,
		RawQuery: query,
	}
}
