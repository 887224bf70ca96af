// Package config loads journal settings from the vault and environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// Config holds the journal settings. Every field has a default, so a vault
// without a journal.yaml works out of the box.
type Config struct {
	// Dir is the vault subdirectory that holds dated pages.
	Dir string

	// FileLayout is the Go time layout for page filenames.
	FileLayout string

	// TimeLayout is the canonical clock-time layout tried first when
	// parsing time tokens.
	TimeLayout string

	// Locale selects the weekday vocabulary for expressions like
	// "next wednesday".
	Locale string

	// FlagMarker prefixes memo tokens that become tags.
	FlagMarker string

	// SameDayWeekday makes "next <today's weekday>" resolve to today
	// instead of a week ahead.
	SameDayWeekday bool
}

// Load reads journal.yaml from the vault root, if present, applying
// JOURNAL_* environment overrides on top.
func Load(vaultPath string) (Config, error) {
	v := viper.New()
	v.SetConfigName("journal")
	v.SetConfigType("yaml")
	v.AddConfigPath(vaultPath)
	v.SetEnvPrefix("JOURNAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("journal.dir", "Journal")
	v.SetDefault("journal.file_format", "2006-01-02")
	v.SetDefault("time.layout", "15:04")
	v.SetDefault("locale", "en")
	v.SetDefault("flag_marker", "#")
	v.SetDefault("weekday.same_day", false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read journal.yaml: %w", err)
		}
	}

	return Config{
		Dir:            v.GetString("journal.dir"),
		FileLayout:     v.GetString("journal.file_format"),
		TimeLayout:     v.GetString("time.layout"),
		Locale:         v.GetString("locale"),
		FlagMarker:     v.GetString("flag_marker"),
		SameDayWeekday: v.GetBool("weekday.same_day"),
	}, nil
}

// LocaleTag parses the configured locale. Unknown tags fall back to the
// undetermined tag, which downstream parsing treats as English.
func (c Config) LocaleTag() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Und
	}
	return tag
}
