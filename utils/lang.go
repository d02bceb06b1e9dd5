package utils

import (
	"path"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

var bundle = i18n.NewBundle(language.English)

// InitI18NBundle loads translated message files. The bot still works without
// them: every message carries an English default, so a missing file only
// drops the Burmese half of the copy.
func InitI18NBundle() {
	dir := viper.GetString("i18n.dir")
	if dir == "" {
		return
	}
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	bundle.MustLoadMessageFile(path.Join(dir, "en.yaml"))
	bundle.MustLoadMessageFile(path.Join(dir, "my.yaml"))
}

func NewLocalizer(lang string) *i18n.Localizer {
	return i18n.NewLocalizer(bundle, lang)
}
