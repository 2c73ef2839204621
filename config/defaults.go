package config

import "time"

// DefaultConfig returns the configuration used when neither the YAML
// file nor the environment overrides a value.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			MetricsPort:     9090,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			RateLimitRPS:    10,
			RateLimitBurst:  20,
		},
		Dataset: DatasetConfig{
			CSVPath: "data/commuter_data.csv",
		},
		Simulation: SimulationConfig{
			Capacity: 10,
			Cycles:   5,
		},
		LLM: LLMConfig{
			Provider:      "gemini",
			Model:         "gemini-2.5-flash",
			Temperature:   0.7,
			MaxTokens:     1024,
			Timeout:       60 * time.Second,
			HistoryBudget: 3000,
		},
		Redis: RedisConfig{
			Addr:       "localhost:6379",
			SessionTTL: 30 * time.Minute,
		},
		Database: DatabaseConfig{
			Driver:          "sqlite",
			Name:            "commuteflow.db",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: time.Hour,
		},
		Log: LogConfig{
			Level:       "info",
			Format:      "json",
			OutputPaths: []string{"stdout"},
		},
		Telemetry: TelemetryConfig{
			Enabled:      false,
			OTLPEndpoint: "localhost:4317",
			ServiceName:  "commuteflow",
			SampleRate:   1.0,
		},
	}
}
