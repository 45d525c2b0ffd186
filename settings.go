package main

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"unicode"

	"github.com/kirsle/configdir"
	"gopkg.in/yaml.v3"
)

const defaultConfigFileName = "ninja.yaml"

var (
	errSettingDirectoryCreate = errors.New("failed to create config directory")
	errConfigNotFound         = errors.New("config path does not exist")
	errSettingsOpen           = errors.New("failed to open settings file")
	errSettingsDecode         = errors.New("failed to decode settings")
	errSettingsOpenOutput     = errors.New("failed to open settings file for writing")
	errSettingsEncode         = errors.New("failed to encode settings")
	errKeyInvalid             = errors.New("api key must be 32 alphanumeric characters")
	errIncludeEmpty           = errors.New("at least one include keyword is required")
)

type userSettings struct {
	// APIKey is the Steam Web API key (https://steamcommunity.com/dev/apikey).
	APIKey string `yaml:"api_key"`
	// Include keywords are each queried against the directory and results unioned.
	Include []string `yaml:"include"`
	// Exclude keywords drop any server whose name contains one. An empty first
	// keyword disables exclusion.
	Exclude []string `yaml:"exclude"`
	// PrivateNetworks controls whether servers listed on RFC 1918 addresses show up.
	PrivateNetworks bool   `yaml:"private_networks"`
	Endpoint        string `yaml:"endpoint"`
	LogLevel        string `yaml:"log_level"`
	DebugLogEnabled bool   `yaml:"debug_log_enabled"`

	// Path of the config dir holding the settings file, set once loaded.
	configRoot string `yaml:"-"`
}

func newSettings() userSettings {
	return userSettings{
		Include:  []string{},
		Exclude:  []string{},
		Endpoint: defaultEndpoint,
		LogLevel: "error",
	}
}

func (s *userSettings) applyDefaults() {
	if s.Endpoint == "" {
		s.Endpoint = defaultEndpoint
	}

	if s.LogLevel == "" {
		s.LogLevel = "error"
	}
}

func (s userSettings) Validate() error {
	if !validKey(s.APIKey) {
		return errKeyInvalid
	}

	if len(s.Include) == 0 {
		return errIncludeEmpty
	}

	return nil
}

func validKey(key string) bool {
	if len(key) != 32 {
		return false
	}

	for _, char := range key {
		if !unicode.IsLetter(char) && !unicode.IsDigit(char) {
			return false
		}
	}

	return true
}

type settingsManager struct {
	configRoot string
}

func newSettingsManager() settingsManager {
	return settingsManager{configRoot: "ninja"}
}

func (sm settingsManager) ConfigRoot() string {
	configPath := configdir.LocalConfig(sm.configRoot)
	if err := configdir.MakePath(configPath); err != nil {
		return ""
	}

	return configPath
}

func (sm settingsManager) configPath() string {
	return filepath.Join(sm.ConfigRoot(), defaultConfigFileName)
}

// readDefaultOrCreate loads the saved settings, or hands back defaults with created
// set when no settings file exists yet.
func (sm settingsManager) readDefaultOrCreate() (userSettings, bool, error) {
	configPath := configdir.LocalConfig(sm.configRoot)
	if err := configdir.MakePath(configPath); err != nil {
		return userSettings{}, false, errors.Join(err, errSettingDirectoryCreate)
	}

	var settings userSettings

	errRead := sm.readFilePath(filepath.Join(configPath, defaultConfigFileName), &settings)
	if errRead != nil {
		if errors.Is(errRead, errConfigNotFound) {
			slog.Info("Creating default config")

			return newSettings(), true, nil
		}

		return userSettings{}, false, errRead
	}

	settings.applyDefaults()

	return settings, false, nil
}

func (sm settingsManager) readFilePath(filePath string, settings *userSettings) error {
	if !exists(filePath) {
		return errConfigNotFound
	}

	settingsFile, errOpen := os.Open(filePath)
	if errOpen != nil {
		return errors.Join(errOpen, errSettingsOpen)
	}

	defer IgnoreClose(settingsFile)

	return sm.read(settingsFile, settings)
}

func (sm settingsManager) read(inputFile io.Reader, settings *userSettings) error {
	if errDecode := yaml.NewDecoder(inputFile).Decode(settings); errDecode != nil {
		return errors.Join(errDecode, errSettingsDecode)
	}

	return nil
}

func (sm settingsManager) writeFilePath(filePath string, settings userSettings) error {
	settingsFile, errOpen := os.OpenFile(filePath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if errOpen != nil {
		return errors.Join(errOpen, errSettingsOpenOutput)
	}

	defer IgnoreClose(settingsFile)

	return sm.write(settingsFile, settings)
}

func (sm settingsManager) write(outputFile io.Writer, settings userSettings) error {
	if errEncode := yaml.NewEncoder(outputFile).Encode(settings); errEncode != nil {
		return errors.Join(errEncode, errSettingsEncode)
	}

	return nil
}

// loadSettings reads the saved settings and runs the first time setup prompts for
// anything missing. With reset every value is prompted again. Whatever the prompts
// changed is persisted before the settings are handed to the browser.
func loadSettings(reset bool, prompts *prompter) (userSettings, error) {
	manager := newSettingsManager()

	settings, created, errRead := manager.readDefaultOrCreate()
	if errRead != nil {
		return settings, errRead
	}

	changed := created

	if reset || !validKey(settings.APIKey) {
		key, ok := prompts.apiKey()
		if !ok {
			return settings, errKeyInvalid
		}

		settings.APIKey = key
		changed = true
	}

	if reset || len(settings.Include) == 0 {
		include, ok := prompts.includeKeywords()
		if !ok {
			return settings, errIncludeEmpty
		}

		settings.Include = include
		changed = true
	}

	if reset || created {
		settings.Exclude = prompts.excludeKeywords()
		settings.PrivateNetworks = prompts.privateNetworks()
		changed = true
	}

	if changed {
		if errSave := manager.writeFilePath(manager.configPath(), settings); errSave != nil {
			return settings, errSave
		}
	}

	settings.configRoot = manager.ConfigRoot()

	return settings, settings.Validate()
}
