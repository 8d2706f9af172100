package options

type FsType int8

const (
	InMemory FsType = iota
	LocalFS
	S3
)

func (t FsType) String() string {
	switch t {
	case InMemory:
		return "memory"
	case LocalFS:
		return "local"
	case S3:
		return "s3"
	default:
		return "unknown"
	}
}

// LogConfig selects the level ("debug", "info", ...) and encoding
// ("json" or "console") of the package logger.
type LogConfig struct {
	Level  string
	Format string
}

func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:  "info",
		Format: "json",
	}
}
