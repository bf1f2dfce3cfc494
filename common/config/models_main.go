package config

type GeneralConfig struct {
	LogDirectory string `yaml:"logDirectory"`
	LogColors    bool   `yaml:"logColors"`
	JsonLogs     bool   `yaml:"jsonLogs"`
	LogLevel     string `yaml:"logLevel"`
	UserAgent    string `yaml:"userAgent"`
}

type HomeserverConfig struct {
	Name            string `yaml:"name"`
	ClientServerApi string `yaml:"csApi"`
	AccessToken     string `yaml:"accessToken"`
	BackoffAt       int    `yaml:"backoffAt"`
}

type DownloadsConfig struct {
	MaxSizeBytes        int64 `yaml:"maxBytes"`
	NumWorkers          int   `yaml:"numWorkers"`
	FailureCacheMinutes int   `yaml:"failureCacheMinutes"`
}

type ThumbnailsConfig struct {
	DefaultWidth  int    `yaml:"defaultWidth"`
	DefaultHeight int    `yaml:"defaultHeight"`
	DefaultMethod string `yaml:"defaultMethod"`
}

type RenderModesConfig struct {
	CacheMinutes int `yaml:"cacheMinutes"`
}

type TimeoutsConfig struct {
	ClientServer int `yaml:"clientServer"`
	Discovery    int `yaml:"discovery"`
}

type MetricsConfig struct {
	Enabled     bool   `yaml:"enabled"`
	BindAddress string `yaml:"bindAddress"`
	Port        int    `yaml:"port"`
}

type SentryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Dsn         string `yaml:"dsn"`
	Environment string `yaml:"environment"`
	Debug       bool   `yaml:"debug"`
}
