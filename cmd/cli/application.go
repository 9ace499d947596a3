package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/gitpair/internal/pairing"
	"github.com/temirov/gitpair/internal/ui"
	"github.com/temirov/gitpair/internal/utils"
)

const (
	applicationNameConstant                 = "gitpair"
	applicationShortDescriptionConstant     = "Select commit authors and co-authors for pair programming"
	applicationLongDescriptionConstant      = "gitpair keeps a roster of collaborators and writes the chosen author and co-author into the repository's git configuration and commit template."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format (structured or console)."
	rosterFlagNameConstant                  = "roster"
	rosterFlagUsageConstant                 = "Override the roster file location."
	templateFlagNameConstant                = "template"
	templateFlagUsageConstant               = "Override the commit template location."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	pairingConfigurationKeyConstant         = "pairing"
	environmentPrefixConstant               = "GITPAIR"
	configurationNameConstant               = "gitpair"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationRosterFieldConstant        = "roster_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	commandBuildErrorTemplateConstant       = "unable to build %s command: %w"
	initCommandNameConstant                 = "init"
	addCommandNameConstant                  = "add"
	removeCommandNameConstant               = "remove"
	helpCommandNameConstant                 = "help"
	rootCommandDebugMessageConstant         = "gitpair invoked"
	logFieldArgumentsConstant               = "arguments"
	invalidInputMessageConstant             = "Invalid input - run the `help` command to see parameter options."
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common  ApplicationCommonConfiguration `mapstructure:"common"`
	Pairing pairing.CommandConfiguration   `mapstructure:"pairing"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand           *cobra.Command
	pairingBuilder        *pairing.CommandBuilder
	configurationLoader   *utils.ConfigurationLoader
	loggerFactory         *utils.LoggerFactory
	logger                *zap.Logger
	configuration         ApplicationConfiguration
	configurationMetadata utils.LoadedConfiguration
	configurationFilePath string
	logLevelFlagValue     string
	logFormatFlagValue    string
	rosterFlagValue       string
	templateFlagValue     string
	colorOutputProvider   func() bool
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() (*Application, error) {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		utils.DefaultSearchPaths(applicationNameConstant),
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader: configurationLoader,
		loggerFactory:       utils.NewLoggerFactory(),
		logger:              zap.NewNop(),
		colorOutputProvider: colorOutputEnabled,
		configuration: ApplicationConfiguration{
			Pairing: pairing.DefaultCommandConfiguration(),
		},
	}

	application.pairingBuilder = &pairing.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ColorOutputProvider: func() bool {
			return application.colorOutputProvider()
		},
		ConfigurationProvider: func() pairing.CommandConfiguration {
			return application.configuration.Pairing
		},
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.rosterFlagValue, rosterFlagNameConstant, "", rosterFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.templateFlagValue, templateFlagNameConstant, "", templateFlagUsageConstant)

	subcommandBuilders := []struct {
		name  string
		build func() (*cobra.Command, error)
	}{
		{name: initCommandNameConstant, build: application.pairingBuilder.BuildInitCommand},
		{name: addCommandNameConstant, build: application.pairingBuilder.BuildAddCommand},
		{name: removeCommandNameConstant, build: application.pairingBuilder.BuildRemoveCommand},
	}
	for _, subcommandBuilder := range subcommandBuilders {
		subcommand, buildError := subcommandBuilder.build()
		if buildError != nil {
			return nil, fmt.Errorf(commandBuildErrorTemplateConstant, subcommandBuilder.name, buildError)
		}
		cobraCommand.AddCommand(subcommand)
	}

	helpCommand, helpBuildError := application.pairingBuilder.BuildHelpCommand()
	if helpBuildError != nil {
		return nil, fmt.Errorf(commandBuildErrorTemplateConstant, helpCommandNameConstant, helpBuildError)
	}
	cobraCommand.SetHelpCommand(helpCommand)
	cobraCommand.SetHelpFunc(func(command *cobra.Command, arguments []string) {
		application.pairingBuilder.PrintUsage(command)
	})

	application.rootCommand = cobraCommand

	return application, nil
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil && executionError == nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	application, creationError := NewApplication()
	if creationError != nil {
		return creationError
	}
	return application.Execute()
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelWarn),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatConsole),
	}
	for configurationKey, configurationValue := range pairing.DefaultConfigurationValues(pairingConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	if application.persistentFlagChanged(command, rosterFlagNameConstant) {
		application.configuration.Pairing.RosterFile = application.rosterFlagValue
	}

	if application.persistentFlagChanged(command, templateFlagNameConstant) {
		application.configuration.Pairing.TemplateFile = application.templateFlagValue
	}

	application.configuration.Pairing = application.configuration.Pairing.Sanitize()

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Info(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
		zap.String(configurationRosterFieldConstant, application.configuration.Pairing.RosterPath()),
	)

	return nil
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	application.logger.Debug(
		rootCommandDebugMessageConstant,
		zap.Strings(logFieldArgumentsConstant, arguments),
	)

	if len(arguments) > 0 {
		printer := ui.NewPrinter(utils.NewFlushingWriter(command.OutOrStdout()), application.colorOutputProvider())
		printer.Failure(invalidInputMessageConstant)
		return nil
	}

	return application.pairingBuilder.RunSelection(command)
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}

func colorOutputEnabled() bool {
	return !color.NoColor
}
