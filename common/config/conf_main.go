package config

type MainClientConfig struct {
	General        GeneralConfig      `yaml:"client"`
	Homeservers    []HomeserverConfig `yaml:"homeservers,flow"`
	Downloads      DownloadsConfig    `yaml:"downloads"`
	Thumbnails     ThumbnailsConfig   `yaml:"thumbnails"`
	RenderModes    RenderModesConfig  `yaml:"renderModes"`
	TimeoutSeconds TimeoutsConfig     `yaml:"timeouts"`
	Metrics        MetricsConfig      `yaml:"metrics"`
	Sentry         SentryConfig       `yaml:"sentry"`
}

func NewDefaultMainConfig() MainClientConfig {
	return MainClientConfig{
		General: GeneralConfig{
			LogDirectory: "logs",
			LogColors:    false,
			JsonLogs:     false,
			LogLevel:     "info",
			UserAgent:    "matrix-media-client",
		},
		Homeservers: []HomeserverConfig{},
		Downloads: DownloadsConfig{
			MaxSizeBytes:        104857600, // 100mb
			NumWorkers:          10,
			FailureCacheMinutes: 15,
		},
		Thumbnails: ThumbnailsConfig{
			DefaultWidth:  320,
			DefaultHeight: 240,
			DefaultMethod: "scale",
		},
		RenderModes: RenderModesConfig{
			CacheMinutes: 60,
		},
		TimeoutSeconds: TimeoutsConfig{
			ClientServer: 30,
			Discovery:    10,
		},
		Metrics: MetricsConfig{
			Enabled:     false,
			BindAddress: "localhost",
			Port:        9000,
		},
		Sentry: SentryConfig{
			Enabled:     false,
			Dsn:         "",
			Environment: "",
			Debug:       false,
		},
	}
}
