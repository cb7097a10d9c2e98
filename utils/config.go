package utils

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/DisposaBoy/JsonConfigReader"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v3"
)

// ConfigStructure is structure of main configuration
type ConfigStructure struct {
	// Logging
	LogLevel  string `json:"logLevel"       yaml:"log_level"`
	LogFormat string `json:"logFormat"      yaml:"log_format"`

	// Output
	OutputFormat string `json:"outputFormat"   yaml:"output_format"`
	Color        string `json:"color"          yaml:"color"`

	// Interactive shell
	Shell ShellConfig `json:"shell"          yaml:"shell"`
}

// ShellConfig configures interactive shell
type ShellConfig struct {
	Prompt       string `json:"prompt"         yaml:"prompt"`
	HistoryFile  string `json:"historyFile"    yaml:"history_file"`
	HistoryLimit int    `json:"historyLimit"   yaml:"history_limit"`
}

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Log formats
const (
	LogFormatDefault = "default"
	LogFormatJSON    = "json"
)

// Config is configuration for outpack-query, shared by all modules
var Config = DefaultConfig()

// DefaultConfig returns configuration used when no config file is found
func DefaultConfig() ConfigStructure {
	return ConfigStructure{
		LogLevel:     "warn",
		LogFormat:    LogFormatDefault,
		OutputFormat: "text",
		Color:        ColorAuto,
		Shell: ShellConfig{
			Prompt:       "query> ",
			HistoryFile:  "~/.outpack-query_history",
			HistoryLimit: 1000,
		},
	}
}

// ConfigLocations returns default config file locations, in order of preference
func ConfigLocations() []string {
	return []string{
		filepath.Join(os.Getenv("HOME"), ".outpack-query.conf"),
		"/etc/outpack-query.conf",
	}
}

// LoadConfig loads configuration from json or yaml file
func LoadConfig(filename string, config *ConfigStructure) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	decJSON := json.NewDecoder(JsonConfigReader.New(f))
	if err = decJSON.Decode(&config); err != nil {
		_, _ = f.Seek(0, 0)
		decYAML := yaml.NewDecoder(f)
		if err2 := decYAML.Decode(&config); err2 != nil {
			err = errors.Errorf("invalid yaml (%s) or json (%s)", err2, err)
		} else {
			err = nil
		}
	}
	if err != nil {
		return err
	}
	return config.Validate()
}

// Validate checks values which could be checked without other packages
func (conf *ConfigStructure) Validate() error {
	switch conf.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.Errorf("invalid color mode %q, expected one of: auto, always, never", conf.Color)
	}

	switch conf.LogFormat {
	case LogFormatDefault, LogFormatJSON:
	default:
		return errors.Errorf("invalid log format %q, expected one of: default, json", conf.LogFormat)
	}

	if conf.Shell.HistoryLimit < 0 {
		return errors.Errorf("invalid shell history limit %d", conf.Shell.HistoryLimit)
	}

	return nil
}

// WriteConfig writes configuration as indented json
func WriteConfig(w io.Writer, config *ConfigStructure) error {
	encoded, err := json.MarshalIndent(&config, "", "  ")
	if err != nil {
		return err
	}

	_, err = w.Write(append(encoded, '\n'))
	return err
}

// WriteConfigYAML writes configuration as yaml
func WriteConfigYAML(w io.Writer, config *ConfigStructure) error {
	yamlData, err := yaml.Marshal(&config)
	if err != nil {
		return errors.Wrap(err, "error marshaling to YAML")
	}

	_, err = w.Write(yamlData)
	return err
}

// GetHistoryFile returns the shell history file with expanded ~ as home directory
func (conf *ConfigStructure) GetHistoryFile() string {
	if conf.Shell.HistoryFile == "" {
		return ""
	}
	return strings.Replace(conf.Shell.HistoryFile, "~", os.Getenv("HOME"), 1)
}
