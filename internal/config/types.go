package config

// ConfigLogger настройки логирования
type ConfigLogger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text или json
	File   string `mapstructure:"file"`   // Пусто - stderr
}

// ConfigClient настройки клиента сервиса заметок
type ConfigClient struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout"`
}

// ConfigNotify настройки уведомлений
type ConfigNotify struct {
	DurationMillis int `mapstructure:"duration_ms"`
}

// ConfigServer настройки эталонного сервера заметок
type ConfigServer struct {
	PortHTTP                int `mapstructure:"port_http"`
	HTTPReadTimeout         int `mapstructure:"http_read_timeout"`
	HTTPWriteTimeout        int `mapstructure:"http_write_timeout"`
	HTTPIdleTimeout         int `mapstructure:"http_idle_timeout"`
	HTTPReadHeaderTimeout   int `mapstructure:"http_read_header_timeout"`
	GracefulShutdownTimeout int `mapstructure:"graceful_shutdown_timeout"`
}

// ConfigGateway настройки HTTP слоя сервера: CORS и rate limiting
type ConfigGateway struct {
	CORSAllowedOrigins string `mapstructure:"cors_allowed_origins"`
	CORSMaxAge         int    `mapstructure:"cors_max_age"`
	RateLimitRPS       int    `mapstructure:"rate_limit_rps"`
	RateLimitBurst     int    `mapstructure:"rate_limit_burst"`
}

// ConfigSummarizer настройки OpenAI-совместимого сервиса суммаризации
type ConfigSummarizer struct {
	BaseURL   string `mapstructure:"base_url"`
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	MaxTokens int    `mapstructure:"max_tokens"`
}

// Config основная структура конфигурации
type Config struct {
	Logger     *ConfigLogger     `mapstructure:"logger"`
	Client     *ConfigClient     `mapstructure:"client"`
	Notify     *ConfigNotify     `mapstructure:"notify"`
	Server     *ConfigServer     `mapstructure:"server"`
	Gateway    *ConfigGateway    `mapstructure:"gateway"`
	Summarizer *ConfigSummarizer `mapstructure:"summarizer"`
}
