package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"codeberg.org/snonux/yiwen/internal/phonetic"
	"codeberg.org/snonux/yiwen/internal/translation"
)

// ResolverConfig builds the gateway settings from viper, falling back to
// translation.DefaultConfig for unset keys.
func ResolverConfig() (*translation.Config, error) {
	config := translation.DefaultConfig()

	if v := viper.GetString("gateway.generic_url"); v != "" {
		config.GenericURL = v
	}
	if v := viper.GetString("gateway.besteffort_url"); v != "" {
		config.BestEffortURL = v
	}
	if v := viper.GetString("gateway.chinese_route"); v != "" {
		route := strings.ToLower(v)
		if route != translation.RouteGeneric && route != translation.RouteBestEffort {
			return nil, fmt.Errorf("invalid chinese route %q (use %s or %s)", v, translation.RouteBestEffort, translation.RouteGeneric)
		}
		config.ChineseRoute = route
	}
	if v := viper.GetString("gateway.timeout"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid gateway timeout %q: %w", v, err)
		}
		if timeout <= 0 {
			return nil, fmt.Errorf("gateway timeout must be positive, got %s", v)
		}
		config.Timeout = timeout
	}

	return config, nil
}

// PhoneticConfig builds the transcription backend settings from viper and
// the API key lookups.
func PhoneticConfig() (*phonetic.Config, error) {
	config := phonetic.DefaultConfig()

	if v := viper.GetString("phonetic.backend"); v != "" {
		config.Backend = strings.ToLower(v)
	}
	switch config.Backend {
	case phonetic.BackendLibrary, phonetic.BackendOpenAI, phonetic.BackendGemini, phonetic.BackendNone:
	default:
		return nil, fmt.Errorf("invalid pinyin backend %q (use library, openai, gemini or none)", config.Backend)
	}

	if v := viper.GetString("phonetic.openai_model"); v != "" {
		config.OpenAIModel = v
	}
	if v := viper.GetString("phonetic.gemini_model"); v != "" {
		config.GeminiModel = v
	}
	config.OpenAIKey = GetOpenAIKey()
	config.GeminiKey = GetGeminiKey()

	return config, nil
}

// NewLogger builds a console logger writing to stderr at the given level.
func NewLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.DisableStacktrace = true

	return config.Build()
}
