package pairing

import (
	"errors"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gitpair/internal/execshell"
	"github.com/temirov/gitpair/internal/gitconfig"
	"github.com/temirov/gitpair/internal/roster"
	"github.com/temirov/gitpair/internal/ui"
	"github.com/temirov/gitpair/internal/utils"
)

const (
	addCommandUseConstant                 = "add"
	addCommandShortDescriptionConstant    = "Add an author to the roster for selection"
	removeCommandUseConstant              = "remove"
	removeCommandShortDescriptionConstant = "Remove an author from the roster"
	initCommandUseConstant                = "init"
	initCommandShortDescriptionConstant   = "Create the roster, then select an author and co-author"
	helpCommandUseConstant                = "help"
	helpCommandShortDescriptionConstant   = "Display the list of commands"
	authorsAddedTemplateConstant          = "Authors added: %d"
	authorsRemovedTemplateConstant        = "Authors removed: %d"
	unexpectedArgumentsMessageConstant    = "command does not accept positional arguments"
)

var errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the Cobra commands for the roster workflows.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider func() bool
	ColorOutputProvider          func() bool
	ConfigurationProvider        func() CommandConfiguration
	GitExecutor                  gitconfig.GitExecutor
	FileSystem                   afero.Fs
}

// BuildAddCommand constructs the add command.
func (builder *CommandBuilder) BuildAddCommand() (*cobra.Command, error) {
	return &cobra.Command{
		Use:   addCommandUseConstant,
		Short: addCommandShortDescriptionConstant,
		RunE:  builder.runAdd,
	}, nil
}

// BuildRemoveCommand constructs the remove command.
func (builder *CommandBuilder) BuildRemoveCommand() (*cobra.Command, error) {
	return &cobra.Command{
		Use:   removeCommandUseConstant,
		Short: removeCommandShortDescriptionConstant,
		RunE:  builder.runRemove,
	}, nil
}

// BuildInitCommand constructs the init command.
func (builder *CommandBuilder) BuildInitCommand() (*cobra.Command, error) {
	return &cobra.Command{
		Use:   initCommandUseConstant,
		Short: initCommandShortDescriptionConstant,
		RunE:  builder.runInit,
	}, nil
}

// BuildHelpCommand constructs the help command, which prints the static usage text.
func (builder *CommandBuilder) BuildHelpCommand() (*cobra.Command, error) {
	return &cobra.Command{
		Use:   helpCommandUseConstant,
		Short: helpCommandShortDescriptionConstant,
		RunE: func(command *cobra.Command, arguments []string) error {
			builder.PrintUsage(command)
			return nil
		},
	}, nil
}

// PrintUsage writes the static usage text to the command's output.
func (builder *CommandBuilder) PrintUsage(command *cobra.Command) {
	builder.resolvePrinter(command.OutOrStdout()).Usage(builder.resolveConfiguration().RosterPath())
}

// RunSelection runs the author and co-author selection flow.
func (builder *CommandBuilder) RunSelection(command *cobra.Command) error {
	service, serviceError := builder.resolveService(command)
	if serviceError != nil {
		return serviceError
	}
	_, selectionError := service.SelectAuthors(command.Context())
	return selectionError
}

func (builder *CommandBuilder) runAdd(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}
	service, serviceError := builder.resolveService(command)
	if serviceError != nil {
		return serviceError
	}

	addedCount, addError := service.AddAuthors(command.Context())
	if addError != nil {
		return addError
	}
	service.printer.Success(authorsAddedTemplateConstant, addedCount)
	return nil
}

func (builder *CommandBuilder) runRemove(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}
	service, serviceError := builder.resolveService(command)
	if serviceError != nil {
		return serviceError
	}

	removedCount, removeError := service.RemoveAuthors(command.Context())
	if removeError != nil {
		return removeError
	}
	service.printer.Success(authorsRemovedTemplateConstant, removedCount)
	return nil
}

func (builder *CommandBuilder) runInit(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}
	service, serviceError := builder.resolveService(command)
	if serviceError != nil {
		return serviceError
	}
	_, initializeError := service.Initialize(command.Context())
	return initializeError
}

func (builder *CommandBuilder) resolveService(command *cobra.Command) (*Service, error) {
	configuration := builder.resolveConfiguration()
	logger := builder.resolveLogger()
	fileSystem := builder.resolveFileSystem()

	store, storeError := roster.NewStore(fileSystem, configuration.RosterPath())
	if storeError != nil {
		return nil, storeError
	}

	gitExecutor, executorError := builder.resolveGitExecutor(logger)
	if executorError != nil {
		return nil, executorError
	}
	client, clientError := gitconfig.NewClient(gitExecutor, configuration.WorkingDirectory)
	if clientError != nil {
		return nil, clientError
	}
	applier, applierError := gitconfig.NewApplier(gitconfig.ApplierDependencies{
		ConfigurationPort: client,
		RootResolver:      client,
		FileSystem:        fileSystem,
		TemplateFile:      configuration.TemplateFile,
	})
	if applierError != nil {
		return nil, applierError
	}

	printer := builder.resolvePrinter(command.OutOrStdout())
	return NewService(ServiceDependencies{
		Logger:   logger,
		Store:    store,
		Applier:  applier,
		Prompter: NewPrompter(command.InOrStdin(), printer),
		Printer:  printer,
	})
}

func (builder *CommandBuilder) resolvePrinter(output io.Writer) *ui.Printer {
	colorOutput := false
	if builder.ColorOutputProvider != nil {
		colorOutput = builder.ColorOutputProvider()
	}
	return ui.NewPrinter(utils.NewFlushingWriter(output), colorOutput)
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolveFileSystem() afero.Fs {
	if builder.FileSystem != nil {
		return builder.FileSystem
	}
	return afero.NewOsFs()
}

func (builder *CommandBuilder) resolveGitExecutor(logger *zap.Logger) (gitconfig.GitExecutor, error) {
	if builder.GitExecutor != nil {
		return builder.GitExecutor, nil
	}

	executorOptions := []execshell.ShellExecutorOption{}
	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		executorOptions = append(executorOptions, execshell.WithCommandEventObserver(ui.NewConsoleCommandEventLogger(logger)))
	}
	shellExecutor, creationError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(nil), executorOptions...)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}

	provided := builder.ConfigurationProvider()
	return provided.Sanitize()
}
