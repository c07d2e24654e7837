package config

import (
	"crypto/subtle"
	_ "embed"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"golang.org/x/text/language"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"
	AppLogName        = "app.log"
)

// Color modes.
const (
	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

type Configuration struct {
	configFs         afero.Fs
	configurationDir string

	Prompt      string   `json:"prompt" validate:"required"`
	Banner      string   `json:"banner"`
	StartDir    string   `json:"start_dir"`
	Locale      string   `json:"locale" validate:"required"`
	Color       string   `json:"color" validate:"oneof=always auto never"`
	LogLevel    string   `json:"log_level" validate:"oneof=debug info warn error"`
	HistoryFile string   `json:"history_file"`
	SSHPort     int      `json:"ssh_port" validate:"gte=0,lte=65535"`
	Users       []User   `json:"users" validate:"unique=Username,dive"`
	Startup     []string `json:"startup"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	if err := validate.Struct(c); err != nil {
		return err
	}

	_, err := c.LocaleTag()
	return err
}

type User struct {
	Username  string   `json:"username" validate:"required"`
	Passwords []string `json:"passwords" validate:"unique"`
}

func (c *Configuration) fs() afero.Fs {
	return c.configFs
}

// LocaleTag parses the configured locale.
func (c *Configuration) LocaleTag() (language.Tag, error) {
	return language.Parse(c.Locale)
}

// UseColor reports whether output should be colored given whether it goes
// to a terminal.
func (c *Configuration) UseColor(isTerminal bool) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return isTerminal
	}
}

// HistoryPath returns the OS path of the line editor history, or an empty
// string if history is disabled or there's no config directory.
func (c *Configuration) HistoryPath() string {
	switch {
	case c.HistoryFile == "":
		return ""
	case filepath.IsAbs(c.HistoryFile):
		return c.HistoryFile
	case c.configurationDir == "":
		return ""
	default:
		return filepath.Join(c.configurationDir, c.HistoryFile)
	}
}

// OpenAppLog opens the application log in an append only state.
func (c *Configuration) OpenAppLog() (afero.File, error) {
	return c.fs().OpenFile(AppLogName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

func (c *Configuration) ReadAppLog() (afero.File, error) {
	return c.fs().OpenFile(AppLogName, os.O_RDONLY, 0600)
}

// CheckPassword reports whether the user may log in with the password.
func (c *Configuration) CheckPassword(username, password string) bool {
	ok := false
	for _, user := range c.Users {
		if user.Username != username {
			continue
		}
		for _, candidate := range user.Passwords {
			if subtle.ConstantTimeCompare([]byte(candidate), []byte(password)) == 1 {
				ok = true
			}
		}
	}
	return ok
}

// Default returns the built-in configuration backed by an in-memory file
// system, so nothing it writes outlives the process.
func Default() *Configuration {
	out := defaultConfig()
	out.configFs = afero.NewMemMapFs()
	return out
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
