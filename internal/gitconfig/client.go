package gitconfig

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/gitpair/internal/execshell"
)

const (
	configSubcommandConstant                = "config"
	getFlagConstant                         = "--get"
	revParseSubcommandConstant              = "rev-parse"
	showTopLevelFlagConstant                = "--show-toplevel"
	unsetKeyExitCodeConstant                = 1
	lineTerminatorCharactersConstant        = "\r\n"
	executorNotConfiguredMessageConstant    = "git executor not configured"
	keyRequiredMessageConstant              = "git config key required"
	repositoryRootMissingMessageConstant    = "git reported an empty repository root"
	operationErrorMessageTemplateConstant   = "%s operation failed"
	operationErrorWithCauseTemplateConstant = "%s operation failed: %s"
	keyedOperationErrorTemplateConstant     = "%s %s operation failed: %s"
	getOperationNameConstant                = OperationName("GetConfiguration")
	setOperationNameConstant                = OperationName("SetConfiguration")
	repositoryRootOperationNameConstant     = OperationName("ResolveRepositoryRoot")
)

// OperationName describes a git workflow performed by the client.
type OperationName string

// GitExecutor is the minimal interface required from execshell.ShellExecutor.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

var (
	// ErrExecutorNotConfigured indicates the client was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

	// ErrKeyRequired indicates an empty configuration key.
	ErrKeyRequired = errors.New(keyRequiredMessageConstant)

	// ErrRepositoryRootMissing indicates git succeeded but printed no repository root.
	ErrRepositoryRootMissing = errors.New(repositoryRootMissingMessageConstant)
)

// OperationError wraps git failures for a client operation.
type OperationError struct {
	Operation OperationName
	Key       string
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation)
	}
	if len(operationError.Key) > 0 {
		return fmt.Sprintf(keyedOperationErrorTemplateConstant, operationError.Operation, operationError.Key, operationError.Cause)
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// Client reads and writes repository-local git configuration.
type Client struct {
	executor         GitExecutor
	workingDirectory string
}

// NewClient constructs a Client. An empty workingDirectory runs git in the process directory.
func NewClient(executor GitExecutor, workingDirectory string) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor, workingDirectory: strings.TrimSpace(workingDirectory)}, nil
}

// Get returns the value of key. found is false when git reports the key as unset.
func (client *Client) Get(executionContext context.Context, key string) (string, bool, error) {
	trimmedKey := strings.TrimSpace(key)
	if len(trimmedKey) == 0 {
		return "", false, ErrKeyRequired
	}

	executionResult, executionError := client.executor.ExecuteGit(executionContext, client.details(configSubcommandConstant, getFlagConstant, trimmedKey))
	if executionError != nil {
		var commandFailure execshell.CommandFailedError
		if errors.As(executionError, &commandFailure) && commandFailure.Result.ExitCode == unsetKeyExitCodeConstant {
			return "", false, nil
		}
		return "", false, OperationError{Operation: getOperationNameConstant, Key: trimmedKey, Cause: executionError}
	}
	return strings.TrimRight(executionResult.StandardOutput, lineTerminatorCharactersConstant), true, nil
}

// Set assigns value to key in the repository configuration. An empty value is written as-is.
func (client *Client) Set(executionContext context.Context, key string, value string) error {
	trimmedKey := strings.TrimSpace(key)
	if len(trimmedKey) == 0 {
		return ErrKeyRequired
	}

	_, executionError := client.executor.ExecuteGit(executionContext, client.details(configSubcommandConstant, trimmedKey, value))
	if executionError != nil {
		return OperationError{Operation: setOperationNameConstant, Key: trimmedKey, Cause: executionError}
	}
	return nil
}

// RepositoryRoot reports the top-level directory of the enclosing work tree.
func (client *Client) RepositoryRoot(executionContext context.Context) (string, error) {
	executionResult, executionError := client.executor.ExecuteGit(executionContext, client.details(revParseSubcommandConstant, showTopLevelFlagConstant))
	if executionError != nil {
		return "", OperationError{Operation: repositoryRootOperationNameConstant, Cause: executionError}
	}

	repositoryRoot := strings.TrimSpace(executionResult.StandardOutput)
	if len(repositoryRoot) == 0 {
		return "", OperationError{Operation: repositoryRootOperationNameConstant, Cause: ErrRepositoryRootMissing}
	}
	return repositoryRoot, nil
}

func (client *Client) details(arguments ...string) execshell.CommandDetails {
	return execshell.CommandDetails{Arguments: arguments, WorkingDirectory: client.workingDirectory}
}
