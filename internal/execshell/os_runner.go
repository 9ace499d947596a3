package execshell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"sort"
)

const environmentAssignmentSeparatorConstant = "="

// OSCommandRunner starts processes with os/exec.
type OSCommandRunner struct {
	environmentOverrides map[string]string
}

// NewOSCommandRunner constructs a runner that inherits the process environment. The overrides
// are appended to every invocation before per-command variables.
func NewOSCommandRunner(environmentOverrides map[string]string) *OSCommandRunner {
	copiedOverrides := make(map[string]string, len(environmentOverrides))
	for environmentKey, environmentValue := range environmentOverrides {
		copiedOverrides[environmentKey] = environmentValue
	}
	return &OSCommandRunner{environmentOverrides: copiedOverrides}
}

// Run executes the command and waits for it. A non-zero exit is reported through
// ExecutionResult.ExitCode; only failures to start or await the process return an error.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executable := exec.CommandContext(executionContext, string(command.Name), command.Details.Arguments...)
	executable.Dir = command.Details.WorkingDirectory
	executable.Env = runner.buildEnvironment(command.Details.EnvironmentVariables)

	var standardOutputBuffer bytes.Buffer
	var standardErrorBuffer bytes.Buffer
	executable.Stdout = &standardOutputBuffer
	executable.Stderr = &standardErrorBuffer
	if len(command.Details.StandardInput) > 0 {
		executable.Stdin = bytes.NewReader(command.Details.StandardInput)
	}

	exitCode := 0
	if runError := executable.Run(); runError != nil {
		var exitError *exec.ExitError
		if !errors.As(runError, &exitError) {
			return ExecutionResult{}, runError
		}
		if contextError := executionContext.Err(); contextError != nil {
			return ExecutionResult{}, contextError
		}
		exitCode = exitError.ExitCode()
	}

	return ExecutionResult{
		StandardOutput: standardOutputBuffer.String(),
		StandardError:  standardErrorBuffer.String(),
		ExitCode:       exitCode,
	}, nil
}

// buildEnvironment returns nil, meaning "inherit", when nothing needs overriding.
func (runner *OSCommandRunner) buildEnvironment(commandVariables map[string]string) []string {
	if len(runner.environmentOverrides) == 0 && len(commandVariables) == 0 {
		return nil
	}

	mergedEnvironment := append([]string{}, os.Environ()...)
	mergedEnvironment = appendAssignments(mergedEnvironment, runner.environmentOverrides)
	return appendAssignments(mergedEnvironment, commandVariables)
}

func appendAssignments(environment []string, variables map[string]string) []string {
	variableNames := make([]string, 0, len(variables))
	for variableName := range variables {
		variableNames = append(variableNames, variableName)
	}
	sort.Strings(variableNames)
	for _, variableName := range variableNames {
		environment = append(environment, variableName+environmentAssignmentSeparatorConstant+variables[variableName])
	}
	return environment
}
