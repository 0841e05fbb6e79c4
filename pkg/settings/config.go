package settings

type Config struct {
	Logger  Logger  `mapstructure:"logger"`
	Queue   Queue   `mapstructure:"queue"`
	Batcher Batcher `mapstructure:"batcher"`
}

// Logger is the configuration for the logger
type Logger struct {
	LogLevel    string `mapstructure:"log_level"`
	FileLogName string `mapstructure:"file_log_name"`
	MaxBackups  int    `mapstructure:"max_backups"`
	MaxAge      int    `mapstructure:"max_age"`
	MaxSize     int    `mapstructure:"max_size"`
	Compress    bool   `mapstructure:"compress"`
}

// Queue is the configuration for bounded queues
type Queue struct {
	Capacity int64 `mapstructure:"capacity"`
}

// Batcher is the configuration for the queue-fed batcher
type Batcher struct {
	BatchSize     int   `mapstructure:"batch_size"`
	QueueCapacity int64 `mapstructure:"queue_capacity"`
	FlushInterval int   `mapstructure:"flush_interval"` // Milliseconds
	Workers       int   `mapstructure:"workers"`
}
