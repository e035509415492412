package oracle

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of generation task being performed.
type TaskType string

const (
	TaskLesson  TaskType = "lesson"
	TaskRewrite TaskType = "rewrite"
	TaskSummary TaskType = "summary"
)

// TaskConfig holds per-task generation parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// Config holds all configuration for the oracle subsystem.
type Config struct {
	APIKey    string
	Endpoint  string
	Model     string
	TimeoutMs int
	LogCalls  bool
	Tasks     map[TaskType]TaskConfig
}

// DefaultConfig returns a Config with sensible defaults. The API key has no
// default; startup fails without one.
func DefaultConfig() Config {
	return Config{
		Endpoint:  "https://api.groq.com/openai/v1",
		Model:     "llama-3.3-70b-versatile",
		TimeoutMs: 30000,
		Tasks: map[TaskType]TaskConfig{
			TaskLesson:  {Temperature: 0.8, MaxTokens: 3000},
			TaskRewrite: {Temperature: 0.7, MaxTokens: 2000},
			TaskSummary: {Temperature: 0.5, MaxTokens: 512},
		},
	}
}

// LoadConfig reads oracle configuration from environment variables, falling
// back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	cfg.APIKey = os.Getenv("GOALGRID_ORACLE_API_KEY")
	if v := os.Getenv("GOALGRID_ORACLE_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("GOALGRID_ORACLE_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("GOALGRID_ORACLE_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("GOALGRID_ORACLE_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
func (c Config) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}
