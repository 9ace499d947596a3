package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
	gitConfigUnsetExitCodeConstant          = 1
	gitConfigSetArgumentCountConstant       = 3
)

const (
	gitConfigSubcommandNameConstant   = "config"
	gitConfigGetFlagConstant          = "--get"
	gitRevParseSubcommandNameConstant = "rev-parse"
	gitShowTopLevelFlagConstant       = "--show-toplevel"
)

const (
	gitConfigSetStartTemplateConstant            = "Setting git config %s to %q in %s"
	gitConfigSetSuccessTemplateConstant          = "Set git config %s to %q in %s"
	gitConfigSetFailureTemplateConstant          = "Failed to set git config %s in %s (exit code %d%s)"
	gitConfigSetExecutionFailureTemplateConstant = "Unable to set git config %s in %s: %s"
	gitConfigGetStartTemplateConstant            = "Reading git config %s in %s"
	gitConfigGetSuccessTemplateConstant          = "git config %s in %s is %q"
	gitConfigGetUnsetTemplateConstant            = "git config %s is not set in %s"
	gitConfigGetFailureTemplateConstant          = "Failed to read git config %s in %s (exit code %d%s)"
	gitConfigGetExecutionFailureTemplateConstant = "Unable to read git config %s in %s: %s"
	gitTopLevelStartTemplateConstant             = "Locating repository root from %s"
	gitTopLevelSuccessTemplateConstant           = "Repository root for %s is %s"
	gitTopLevelFailureTemplateConstant           = "Could not locate a repository root from %s (exit code %d%s)"
	gitTopLevelExecutionFailureTemplateConstant  = "Unable to locate a repository root from %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name != CommandGit || len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	switch strings.TrimSpace(command.Details.Arguments[0]) {
	case gitConfigSubcommandNameConstant:
		return formatter.describeGitConfigMessage(command, result, failure, stage)
	case gitRevParseSubcommandNameConstant:
		if containsArgument(command.Details.Arguments, gitShowTopLevelFlagConstant) {
			return formatter.describeGitTopLevelMessage(command, result, failure, stage)
		}
		return formatter.buildGenericMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitConfigMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)
	standardErrorSuffix := formatter.formatStandardErrorSuffix(result.StandardError)

	if containsArgument(arguments, gitConfigGetFlagConstant) {
		key := formatter.ensureValue(formatter.argumentAtIndex(arguments, len(arguments)-1))
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitConfigGetStartTemplateConstant, key, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitConfigGetSuccessTemplateConstant, key, workingDirectory, strings.TrimSpace(result.StandardOutput))
		case messageStageFailure:
			if result.ExitCode == gitConfigUnsetExitCodeConstant {
				return fmt.Sprintf(gitConfigGetUnsetTemplateConstant, key, workingDirectory)
			}
			return fmt.Sprintf(gitConfigGetFailureTemplateConstant, key, workingDirectory, result.ExitCode, standardErrorSuffix)
		default:
			return fmt.Sprintf(gitConfigGetExecutionFailureTemplateConstant, key, workingDirectory, formatter.describeFailure(failure))
		}
	}

	if len(arguments) != gitConfigSetArgumentCountConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	key := formatter.ensureValue(arguments[1])
	value := arguments[2]
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitConfigSetStartTemplateConstant, key, value, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitConfigSetSuccessTemplateConstant, key, value, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitConfigSetFailureTemplateConstant, key, workingDirectory, result.ExitCode, standardErrorSuffix)
	default:
		return fmt.Sprintf(gitConfigSetExecutionFailureTemplateConstant, key, workingDirectory, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeGitTopLevelMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitTopLevelStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitTopLevelSuccessTemplateConstant, workingDirectory, formatter.ensureValue(result.StandardOutput))
	case messageStageFailure:
		return fmt.Sprintf(gitTopLevelFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(gitTopLevelExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	return fmt.Sprintf(commandLabelTemplateConstant, describeCommand(command), formatter.formatWorkingDirectorySuffix(command))
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index >= 0 && index < len(arguments) {
		return arguments[index]
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}
