package observability

import (
	"os"
	"strconv"
)

// Config controls the optional OTLP export of traces and metrics.
// Everything defaults to off; a collector is never required to run the
// service.
type Config struct {
	Enabled           bool
	TracesEnabled     bool
	MetricsEnabled    bool
	ServiceName       string
	ServiceVersion    string
	Environment       string
	OTLPEndpoint      string
	TraceSamplingRate float64
}

// ResolveConfig builds the observability config from the environment.
func ResolveConfig(serviceVersion string) Config {
	cfg := Config{
		Enabled:           false,
		TracesEnabled:     true,
		MetricsEnabled:    true,
		ServiceName:       "dataangelo",
		ServiceVersion:    serviceVersion,
		Environment:       "development",
		OTLPEndpoint:      "localhost:4317",
		TraceSamplingRate: 1.0,
	}
	if cfg.ServiceVersion == "" {
		cfg.ServiceVersion = "dev"
	}

	overrideBool("DATAANGELO_OTEL_ENABLED", &cfg.Enabled)
	overrideBool("DATAANGELO_OTEL_TRACES_ENABLED", &cfg.TracesEnabled)
	overrideBool("DATAANGELO_OTEL_METRICS_ENABLED", &cfg.MetricsEnabled)
	overrideString("DATAANGELO_OTEL_SERVICE_NAME", &cfg.ServiceName)
	overrideString("DATAANGELO_OTEL_ENVIRONMENT", &cfg.Environment)
	overrideString("DATAANGELO_OTEL_ENDPOINT", &cfg.OTLPEndpoint)
	overrideFloat("DATAANGELO_OTEL_TRACE_SAMPLING_RATIO", &cfg.TraceSamplingRate)

	if cfg.TraceSamplingRate < 0 {
		cfg.TraceSamplingRate = 0
	}
	if cfg.TraceSamplingRate > 1 {
		cfg.TraceSamplingRate = 1
	}

	return cfg
}

func overrideString(name string, target *string) {
	if value := os.Getenv(name); value != "" {
		*target = value
	}
}

func overrideBool(name string, target *bool) {
	value := os.Getenv(name)
	if value == "" {
		return
	}
	parsed, err := strconv.ParseBool(value)
	if err == nil {
		*target = parsed
	}
}

func overrideFloat(name string, target *float64) {
	value := os.Getenv(name)
	if value == "" {
		return
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err == nil {
		*target = parsed
	}
}
