package config

import (
	"fmt"
	"platodropbox/internal/core/domain/models"
	"strings"

	"github.com/spf13/viper"
)

// Settings mirrors the TOML settings file.
type Settings struct {
	DropboxToken string `mapstructure:"dropbox-token"`
}

// LoadSettings reads the TOML settings file at path. PLATO_DROPBOX_TOKEN overrides
// the file value when set.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetDefault("dropbox-token", "")
	if err := v.BindEnv("dropbox-token", "PLATO_DROPBOX_TOKEN"); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: can't load settings from %s: %w", models.ErrConfig, path, err)
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("%w: can't parse settings from %s: %w", models.ErrConfig, path, err)
	}
	return s, nil
}

// Credential splits the configured "<client_id>:<refresh_token>" string.
func (s *Settings) Credential() (models.Credential, error) {
	return ParseCredential(s.DropboxToken)
}

func ParseCredential(raw string) (models.Credential, error) {
	if strings.Count(raw, ":") != 1 {
		return models.Credential{}, fmt.Errorf("%w: invalid dropbox token: expected <client_id>:<refresh_token>", models.ErrConfig)
	}
	clientID, refreshToken, _ := strings.Cut(raw, ":")
	if clientID == "" || refreshToken == "" {
		return models.Credential{}, fmt.Errorf("%w: invalid dropbox token: client id and refresh token must not be empty", models.ErrConfig)
	}
	return models.Credential{ClientID: clientID, RefreshToken: refreshToken}, nil
}
