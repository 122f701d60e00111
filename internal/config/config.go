package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultConfigFile файл конфигурации по умолчанию
const DefaultConfigFile = "config.yml"

// envPrefix префикс переменных окружения, например NOTES_CLIENT_BASE_URL
const envPrefix = "NOTES"

var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandEnvWithDefaults расширяет переменные окружения с поддержкой дефолтных значений
// Формат: ${VAR:-default}
func expandEnvWithDefaults(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		matches := envPattern.FindStringSubmatch(match)
		if len(matches) < 2 {
			return match
		}

		varName := matches[1]
		defaultValue := ""
		if len(matches) > 2 {
			defaultValue = matches[2]
		}

		value := os.Getenv(varName)
		if value == "" {
			return defaultValue
		}
		return value
	})
}

// SetDefaults задает значения по умолчанию для всех секций
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "text")
	v.SetDefault("logger.file", "")

	v.SetDefault("client.base_url", "http://127.0.0.1:8000/api/notes/")
	v.SetDefault("client.timeout", 30)

	v.SetDefault("notify.duration_ms", 3000)

	v.SetDefault("server.port_http", 8000)
	v.SetDefault("server.http_read_timeout", 10)
	v.SetDefault("server.http_write_timeout", 60)
	v.SetDefault("server.http_idle_timeout", 120)
	v.SetDefault("server.http_read_header_timeout", 5)
	v.SetDefault("server.graceful_shutdown_timeout", 10)

	v.SetDefault("gateway.cors_allowed_origins", "http://localhost:5173")
	v.SetDefault("gateway.cors_max_age", 86400)
	v.SetDefault("gateway.rate_limit_rps", 100)
	v.SetDefault("gateway.rate_limit_burst", 10)

	v.SetDefault("summarizer.base_url", "https://router.huggingface.co/v1")
	v.SetDefault("summarizer.api_key", "")
	v.SetDefault("summarizer.model", "Qwen/Qwen2.5-7B-Instruct")
	v.SetDefault("summarizer.max_tokens", 250)
}

// InitConfig читает конфигурационный файл и возвращает экземпляр конфигурации
// Использует generic для работы с произвольным типом конфигурации.
// Отсутствующий файл не является ошибкой: используются значения по умолчанию
// и переменные окружения с префиксом NOTES_.
func InitConfig[C any](configFile string, setDefaults func(*viper.Viper)) (*C, error) {
	// .env необязателен
	_ = godotenv.Load()

	v := viper.New()
	if setDefaults != nil {
		setDefaults(v)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("client.base_url", "NOTES_CLIENT_BASE_URL", "NOTES_API_URL")
	_ = v.BindEnv("summarizer.api_key", "NOTES_SUMMARIZER_API_KEY", "HUGGINGFACE_API_KEY", "OPENAI_API_KEY")

	if configFile != "" {
		ext := strings.TrimLeft(filepath.Ext(configFile), ".")
		v.SetConfigFile(configFile)
		v.SetConfigType(ext)
		if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
			return nil, fmt.Errorf("v.ReadInConfig: %w", err)
		}
	}

	// Заменяем переменные окружения формата ${VAR:-default} на их значения
	for _, k := range v.AllKeys() {
		value := v.GetString(k)
		if value == "" || !strings.Contains(value, "${") {
			continue
		}
		expanded := expandEnvWithDefaults(value)

		// Если значение выглядит как число или boolean, устанавливаем его с правильным типом
		if expanded == "true" || expanded == "false" {
			boolValue, _ := strconv.ParseBool(expanded)
			v.Set(k, boolValue)
		} else if intValue, err := strconv.Atoi(expanded); err == nil {
			v.Set(k, intValue)
		} else {
			v.Set(k, expanded)
		}
	}

	cfg := new(C)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("v.Unmarshal: %w", err)
	}

	return cfg, nil
}

// Load загружает конфигурацию приложения со значениями по умолчанию
func Load(configFile string) (*Config, error) {
	return InitConfig[Config](configFile, SetDefaults)
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}
