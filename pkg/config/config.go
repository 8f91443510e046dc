package config

import (
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/vnykmshr/seqflow/pkg/common/logger"
	"github.com/vnykmshr/seqflow/pkg/metrics"
	"github.com/vnykmshr/seqflow/pkg/ratelimit/bucket"
	"github.com/vnykmshr/seqflow/pkg/streaming/source"
	"github.com/vnykmshr/seqflow/pkg/streaming/stream"
)

// Config is the complete runtime configuration.
type Config struct {
	Log     logger.Config `yaml:"log" mapstructure:"log"`
	Stream  StreamConfig  `yaml:"stream" mapstructure:"stream"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
	Redis   RedisConfig   `yaml:"redis" mapstructure:"redis"`
	Kafka   KafkaConfig   `yaml:"kafka" mapstructure:"kafka"`
	S3      S3Config      `yaml:"s3" mapstructure:"s3"`
	Pages   PagesConfig   `yaml:"pages" mapstructure:"pages"`
}

// StreamConfig holds the parallel evaluation defaults.
type StreamConfig struct {
	// Workers is the pool size used by Parallel(0). Zero means one per CPU.
	Workers int `yaml:"workers" mapstructure:"workers" validate:"gte=0,lte=1024"`

	// ChunkSize is the number of source elements per parallel task. Zero splits
	// the source evenly.
	ChunkSize int `yaml:"chunk_size" mapstructure:"chunk_size" validate:"gte=0"`
}

// MetricsConfig controls Prometheus instrumentation of terminal evaluations.
type MetricsConfig struct {
	Enabled   bool              `yaml:"enabled" mapstructure:"enabled"`
	Namespace string            `yaml:"namespace" mapstructure:"namespace" validate:"omitempty,excludesall=-."`
	Labels    map[string]string `yaml:"labels" mapstructure:"labels"`
}

// RedisConfig locates the Redis server used by list sources.
type RedisConfig struct {
	Addr     string        `yaml:"addr" mapstructure:"addr" validate:"required,hostname_port"`
	DB       int           `yaml:"db" mapstructure:"db" validate:"gte=0"`
	PageSize int64         `yaml:"page_size" mapstructure:"page_size" validate:"gte=1"`
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`
}

// KafkaConfig locates the brokers read by topic sources.
type KafkaConfig struct {
	Brokers []string `yaml:"brokers" mapstructure:"brokers" validate:"min=1,dive,hostname_port"`
	GroupID string   `yaml:"group_id" mapstructure:"group_id"`
}

// S3Config locates the object store listed by S3 sources.
type S3Config struct {
	Region         string `yaml:"region" mapstructure:"region" validate:"required"`
	Endpoint       string `yaml:"endpoint" mapstructure:"endpoint" validate:"omitempty,url"`
	AccessKey      string `yaml:"access_key" mapstructure:"access_key"`
	SecretKey      string `yaml:"secret_key" mapstructure:"secret_key"`
	ForcePathStyle bool   `yaml:"force_path_style" mapstructure:"force_path_style"`
}

// PagesConfig paces the page fetches of Redis and S3 sources.
type PagesConfig struct {
	// Rate is the number of page fetches allowed per second. Zero disables pacing.
	Rate  float64 `yaml:"rate" mapstructure:"rate" validate:"gte=0"`
	Burst int     `yaml:"burst" mapstructure:"burst" validate:"gte=1"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	cfg := &Config{
		Metrics: MetricsConfig{Namespace: metrics.DefaultNamespace},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			PageSize: 100,
			Timeout:  5 * time.Second,
		},
		Kafka: KafkaConfig{Brokers: []string{"localhost:9092"}},
		S3:    S3Config{Region: "us-east-1"},
		Pages: PagesConfig{Burst: 1},
	}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills empty fields.
func (c *Config) ApplyDefaults() {
	c.Log.ApplyDefaults()
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = metrics.DefaultNamespace
	}
	if c.Redis.PageSize == 0 {
		c.Redis.PageSize = 100
	}
}

// StreamOptions converts the stream section into parallel evaluation options.
func (c *Config) StreamOptions() stream.Options {
	opts := stream.Options{Workers: c.Stream.Workers, ChunkSize: c.Stream.ChunkSize}
	if opts.Workers == 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return opts
}

// MetricsOptions converts the metrics section into a metrics.Config registering with
// the default Prometheus registerer.
func (c *Config) MetricsOptions() metrics.Config {
	mc := metrics.DefaultConfig()
	mc.Enabled = c.Metrics.Enabled
	mc.Namespace = c.Metrics.Namespace
	if len(c.Metrics.Labels) > 0 {
		mc.Labels = c.Metrics.Labels
	}
	return mc
}

// S3Client converts the s3 section into client settings.
func (c *Config) S3Client() source.S3ClientConfig {
	return source.S3ClientConfig{
		Region:         c.S3.Region,
		Endpoint:       c.S3.Endpoint,
		AccessKey:      c.S3.AccessKey,
		SecretKey:      c.S3.SecretKey,
		ForcePathStyle: c.S3.ForcePathStyle,
	}
}

// PageLimiter returns the limiter described by the pages section, or nil when
// pacing is off.
func (c *Config) PageLimiter() (*bucket.Limiter, error) {
	if c.Pages.Rate == 0 {
		return nil, nil
	}
	return bucket.New(bucket.Rate(c.Pages.Rate), c.Pages.Burst)
}

// Logger builds the logger described by the log section.
func (c *Config) Logger() zerolog.Logger {
	return logger.New(c.Log)
}

// Apply installs the configuration as the process-wide stream defaults: parallel
// options, the evaluation logger and metrics.
func (c *Config) Apply() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := stream.Configure(c.StreamOptions()); err != nil {
		return err
	}
	stream.SetLogger(c.Logger())
	return stream.EnableMetrics(c.MetricsOptions())
}
