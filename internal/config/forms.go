package config

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// FormsConfig drives the data-entry forms. DisplayFields maps a related
// table to the column shown in its autocomplete widget.
type FormsConfig struct {
	DisplayFields     map[string]string `mapstructure:"displayFields"`
	DateYears         int               `mapstructure:"dateYears"`
	AutocompleteLimit int               `mapstructure:"autocompleteLimit"`
}

// DefaultSearchPaths lists where forms.yml is looked up.
var DefaultSearchPaths = []string{
	"/etc/coopbilling",
	".",
}

type FormsConfigHolder struct {
	current atomic.Value // holds FormsConfig
}

// NewFormsConfigHolder reads forms.yml from the search paths, falling back to
// defaults for anything the file leaves out, and reloads it when it changes.
func NewFormsConfigHolder(log *zap.Logger, defaults FormsConfig, searchPaths ...string) (*FormsConfigHolder, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("config.forms")

	v := viper.New()
	v.SetConfigName("forms")
	v.SetConfigType("yml")
	if len(searchPaths) == 0 {
		searchPaths = DefaultSearchPaths
	}
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("COOPBILLING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("forms.dateYears", defaults.DateYears)
	v.SetDefault("forms.autocompleteLimit", defaults.AutocompleteLimit)

	fileFound := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read forms config: %w", err)
		}
		fileFound = false
	}

	cfg, err := decodeFormsConfig(v, defaults)
	if err != nil {
		return nil, err
	}

	holder := &FormsConfigHolder{}
	holder.current.Store(cfg)

	if !fileFound {
		log.Info("forms config file not found, using defaults")
		return holder, nil
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := decodeFormsConfig(v, defaults)
		if err != nil {
			log.Warn("forms config reload ignored", zap.String("file", e.Name), zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("forms config reloaded", zap.String("file", e.Name))
	})
	v.WatchConfig()

	log.Info("forms config loaded", zap.String("file", v.ConfigFileUsed()))
	return holder, nil
}

// NewStaticFormsConfigHolder wraps a fixed configuration.
func NewStaticFormsConfigHolder(cfg FormsConfig) *FormsConfigHolder {
	holder := &FormsConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *FormsConfigHolder) Get() FormsConfig {
	return h.current.Load().(FormsConfig)
}

func decodeFormsConfig(v *viper.Viper, defaults FormsConfig) (FormsConfig, error) {
	// Keys missing from the file keep their default values.
	cfg := FormsConfig{
		DateYears:         defaults.DateYears,
		AutocompleteLimit: defaults.AutocompleteLimit,
	}
	if err := v.UnmarshalKey("forms", &cfg); err != nil {
		return FormsConfig{}, fmt.Errorf("decode forms config: %w", err)
	}

	merged := make(map[string]string, len(defaults.DisplayFields)+len(cfg.DisplayFields))
	for table, column := range defaults.DisplayFields {
		merged[table] = column
	}
	for table, column := range cfg.DisplayFields {
		merged[strings.ToLower(strings.TrimSpace(table))] = strings.TrimSpace(column)
	}
	cfg.DisplayFields = merged

	if err := validateFormsConfig(cfg); err != nil {
		return FormsConfig{}, err
	}
	return cfg, nil
}

func validateFormsConfig(cfg FormsConfig) error {
	if cfg.DateYears <= 0 {
		return errors.New("forms.dateYears must be positive")
	}
	if cfg.AutocompleteLimit <= 0 {
		return errors.New("forms.autocompleteLimit must be positive")
	}
	for table, column := range cfg.DisplayFields {
		if column == "" {
			return fmt.Errorf("forms.displayFields.%s cannot be empty", table)
		}
	}
	return nil
}
