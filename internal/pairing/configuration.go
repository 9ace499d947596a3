package pairing

import (
	"path/filepath"
	"strings"
)

const (
	// DefaultRosterFileName is the roster created by init.
	DefaultRosterFileName = ".gitauthors"

	// DefaultTemplateFile is the commit-message template, relative to the repository root.
	DefaultTemplateFile = ".git/commit-template"

	rosterFileConfigurationKeyConstant       = "roster_file"
	templateFileConfigurationKeyConstant     = "template_file"
	workingDirectoryConfigurationKeyConstant = "working_directory"
	configurationKeySeparatorConstant        = "."
)

// CommandConfiguration captures configuration values for the pairing commands.
type CommandConfiguration struct {
	RosterFile       string `mapstructure:"roster_file"`
	TemplateFile     string `mapstructure:"template_file"`
	WorkingDirectory string `mapstructure:"working_directory"`
}

// DefaultCommandConfiguration provides baseline configuration values for the pairing commands.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		RosterFile:       DefaultRosterFileName,
		TemplateFile:     DefaultTemplateFile,
		WorkingDirectory: "",
	}
}

// DefaultConfigurationValues returns viper defaults rooted at prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		joinConfigurationKey(prefix, rosterFileConfigurationKeyConstant):       defaults.RosterFile,
		joinConfigurationKey(prefix, templateFileConfigurationKeyConstant):     defaults.TemplateFile,
		joinConfigurationKey(prefix, workingDirectoryConfigurationKeyConstant): defaults.WorkingDirectory,
	}
}

// Sanitize trims values and restores defaults for blank paths.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	defaults := DefaultCommandConfiguration()

	sanitized.RosterFile = strings.TrimSpace(configuration.RosterFile)
	if len(sanitized.RosterFile) == 0 {
		sanitized.RosterFile = defaults.RosterFile
	}

	sanitized.TemplateFile = strings.TrimSpace(configuration.TemplateFile)
	if len(sanitized.TemplateFile) == 0 {
		sanitized.TemplateFile = defaults.TemplateFile
	}

	sanitized.WorkingDirectory = strings.TrimSpace(configuration.WorkingDirectory)
	return sanitized
}

// RosterPath resolves the roster file against the working directory when it is relative.
func (configuration CommandConfiguration) RosterPath() string {
	if filepath.IsAbs(configuration.RosterFile) || len(configuration.WorkingDirectory) == 0 {
		return configuration.RosterFile
	}
	return filepath.Join(configuration.WorkingDirectory, configuration.RosterFile)
}

func joinConfigurationKey(prefix string, key string) string {
	trimmedPrefix := strings.TrimSpace(prefix)
	if len(trimmedPrefix) == 0 {
		return key
	}
	return trimmedPrefix + configurationKeySeparatorConstant + key
}
