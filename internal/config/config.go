package config

import (
	"errors"
	"fmt"
	"net"
	"time"

	"user-api/pkg/metrics"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Metrics   MetricsConfig
	Telemetry TelemetryConfig
}

// AppConfig holds configuration for the HTTP server
type AppConfig struct {
	Environment            string `mapstructure:"APP_ENV"`
	Host                   string `mapstructure:"HTTP_HOST"`
	Port                   string `mapstructure:"HTTP_PORT"`
	ShutdownTimeoutSeconds int    `mapstructure:"SHUTDOWN_TIMEOUT_SECONDS"`
	SwaggerEnabled         bool   `mapstructure:"SWAGGER_ENABLED"`
}

// LoggerConfig holds configuration for the logger
type LoggerConfig struct {
	Level          string `mapstructure:"LOG_LEVEL"`
	Format         string `mapstructure:"LOG_FORMAT"`
	OutputPath     string `mapstructure:"LOG_OUTPUT_PATH"`
	EnableSampling bool   `mapstructure:"LOG_ENABLE_SAMPLING"`
	ServiceName    string `mapstructure:"SERVICE_NAME"`
	ServiceVersion string `mapstructure:"SERVICE_VERSION"`
}

// MetricsConfig holds the objective attached to every user route and build metadata
type MetricsConfig struct {
	ObjectiveName      string `mapstructure:"OBJECTIVE_NAME"`
	SuccessPercentile  string `mapstructure:"OBJECTIVE_SUCCESS_PERCENTILE"`
	LatencyThresholdMs int    `mapstructure:"OBJECTIVE_LATENCY_THRESHOLD_MS"`
	LatencyPercentile  string `mapstructure:"OBJECTIVE_LATENCY_PERCENTILE"`
	RuntimeCollectors  bool   `mapstructure:"METRICS_RUNTIME_COLLECTORS"`
	BuildCommit        string `mapstructure:"BUILD_COMMIT"`
	BuildBranch        string `mapstructure:"BUILD_BRANCH"`
}

// TelemetryConfig holds the OTLP trace exporter settings
type TelemetryConfig struct {
	Endpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Headers  string `mapstructure:"OTEL_EXPORTER_OTLP_HEADERS"`
}

// LoadConfig reads configuration from path/app.env and environment variables.
// Environment variables win over the file; a missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app") // Look for app.env
	v.SetConfigType("env")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config

	config.App.Environment = v.GetString("APP_ENV")
	config.App.Host = v.GetString("HTTP_HOST")
	config.App.Port = v.GetString("HTTP_PORT")
	config.App.ShutdownTimeoutSeconds = v.GetInt("SHUTDOWN_TIMEOUT_SECONDS")
	config.App.SwaggerEnabled = v.GetBool("SWAGGER_ENABLED")

	config.Logger.Level = v.GetString("LOG_LEVEL")
	config.Logger.Format = v.GetString("LOG_FORMAT")
	config.Logger.OutputPath = v.GetString("LOG_OUTPUT_PATH")
	config.Logger.EnableSampling = v.GetBool("LOG_ENABLE_SAMPLING")
	config.Logger.ServiceName = v.GetString("SERVICE_NAME")
	config.Logger.ServiceVersion = v.GetString("SERVICE_VERSION")

	config.Metrics.ObjectiveName = v.GetString("OBJECTIVE_NAME")
	config.Metrics.SuccessPercentile = v.GetString("OBJECTIVE_SUCCESS_PERCENTILE")
	config.Metrics.LatencyThresholdMs = v.GetInt("OBJECTIVE_LATENCY_THRESHOLD_MS")
	config.Metrics.LatencyPercentile = v.GetString("OBJECTIVE_LATENCY_PERCENTILE")
	config.Metrics.RuntimeCollectors = v.GetBool("METRICS_RUNTIME_COLLECTORS")
	config.Metrics.BuildCommit = v.GetString("BUILD_COMMIT")
	config.Metrics.BuildBranch = v.GetString("BUILD_BRANCH")

	config.Telemetry.Endpoint = v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT")
	config.Telemetry.Headers = v.GetString("OTEL_EXPORTER_OTLP_HEADERS")

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_HOST", "127.0.0.1")
	v.SetDefault("HTTP_PORT", "3000")
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)
	v.SetDefault("SWAGGER_ENABLED", true)

	// Logger defaults
	if v.GetString("APP_ENV") == "production" {
		v.SetDefault("LOG_LEVEL", "info")
		v.SetDefault("LOG_FORMAT", "json")
		v.SetDefault("LOG_ENABLE_SAMPLING", true)
	} else {
		v.SetDefault("LOG_LEVEL", "debug")
		v.SetDefault("LOG_FORMAT", "console")
		v.SetDefault("LOG_ENABLE_SAMPLING", false)
	}
	v.SetDefault("LOG_OUTPUT_PATH", "stdout")
	v.SetDefault("SERVICE_NAME", "user-api")
	v.SetDefault("SERVICE_VERSION", "1.0.0")

	v.SetDefault("OBJECTIVE_NAME", metrics.APIObjective.Name)
	v.SetDefault("OBJECTIVE_SUCCESS_PERCENTILE", string(metrics.APIObjective.SuccessRate))
	v.SetDefault("OBJECTIVE_LATENCY_THRESHOLD_MS", metrics.APIObjective.Latency.Threshold.Milliseconds())
	v.SetDefault("OBJECTIVE_LATENCY_PERCENTILE", string(metrics.APIObjective.Latency.Percentile))
	v.SetDefault("METRICS_RUNTIME_COLLECTORS", true)
}

// Validate checks the values the server cannot start without.
func (c *Config) Validate() error {
	var errs []error

	if c.App.Port == "" {
		errs = append(errs, errors.New("HTTP_PORT is required"))
	}
	if c.App.ShutdownTimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be positive, got %d", c.App.ShutdownTimeoutSeconds))
	}
	if c.Logger.ServiceName == "" {
		errs = append(errs, errors.New("SERVICE_NAME is required"))
	}
	if _, err := c.Objective(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Address returns the host:port the HTTP server binds to.
func (c *Config) Address() string {
	return net.JoinHostPort(c.App.Host, c.App.Port)
}

// ShutdownTimeout returns the graceful shutdown budget.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.App.ShutdownTimeoutSeconds) * time.Second
}

// Objective builds the route objective from the OBJECTIVE_* settings.
func (c *Config) Objective() (metrics.Objective, error) {
	success, err := metrics.ParsePercentile(c.Metrics.SuccessPercentile)
	if err != nil {
		return metrics.Objective{}, fmt.Errorf("OBJECTIVE_SUCCESS_PERCENTILE: %w", err)
	}
	latency, err := metrics.ParsePercentile(c.Metrics.LatencyPercentile)
	if err != nil {
		return metrics.Objective{}, fmt.Errorf("OBJECTIVE_LATENCY_PERCENTILE: %w", err)
	}

	o := metrics.Objective{
		Name:        c.Metrics.ObjectiveName,
		SuccessRate: success,
		Latency: &metrics.LatencyTarget{
			Threshold:  time.Duration(c.Metrics.LatencyThresholdMs) * time.Millisecond,
			Percentile: latency,
		},
	}
	if err := o.Validate(); err != nil {
		return metrics.Objective{}, err
	}
	return o, nil
}
