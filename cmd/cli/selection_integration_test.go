package cli

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	integrationGitExecutableConstant            = "git"
	integrationWorkingDirectoryVariableConstant = "GITPAIR_PAIRING_WORKING_DIRECTORY"
	integrationRosterContentConstant            = "Alice:<alice@x.com>\nBob:<bob@x.com>\n"
	integrationTemplateRelativePathConstant     = ".git/commit-template"
	integrationCoAuthorTrailerConstant          = "\n\nCo-authored-by: Bob <bob@x.com>"
)

func TestApplicationSelectionWritesRepositoryConfiguration(testInstance *testing.T) {
	if _, lookupError := exec.LookPath(integrationGitExecutableConstant); lookupError != nil {
		testInstance.Skip("git executable not available")
	}

	repositoryRoot := testInstance.TempDir()
	runGit(testInstance, repositoryRoot, "init", "--quiet")
	require.NoError(testInstance, os.WriteFile(filepath.Join(repositoryRoot, testRosterFileNameConstant), []byte(integrationRosterContentConstant), 0o644))

	fixture := newApplicationFixture(testInstance)
	testInstance.Setenv(integrationWorkingDirectoryVariableConstant, repositoryRoot)

	require.NoError(testInstance, fixture.execute("1\n2\n"))

	require.Equal(testInstance, "Alice", runGit(testInstance, repositoryRoot, "config", "--get", "user.name"))
	require.Equal(testInstance, "alice@x.com", runGit(testInstance, repositoryRoot, "config", "--get", "user.email"))

	resolvedRoot := runGit(testInstance, repositoryRoot, "rev-parse", "--show-toplevel")
	templatePath := filepath.Join(resolvedRoot, integrationTemplateRelativePathConstant)
	templateContent, readError := os.ReadFile(templatePath)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, integrationCoAuthorTrailerConstant, string(templateContent))
	require.Equal(testInstance, templatePath, runGit(testInstance, repositoryRoot, "config", "--get", "commit.template"))

	renderedOutput := fixture.output.String()
	require.Contains(testInstance, renderedOutput, "[1]: Alice <alice@x.com>")
	require.Contains(testInstance, renderedOutput, "[2]: Bob <bob@x.com>")
}

func TestApplicationSelectionClearsRoles(testInstance *testing.T) {
	if _, lookupError := exec.LookPath(integrationGitExecutableConstant); lookupError != nil {
		testInstance.Skip("git executable not available")
	}

	repositoryRoot := testInstance.TempDir()
	runGit(testInstance, repositoryRoot, "init", "--quiet")
	runGit(testInstance, repositoryRoot, "config", "user.name", "Previous")
	require.NoError(testInstance, os.WriteFile(filepath.Join(repositoryRoot, testRosterFileNameConstant), []byte(integrationRosterContentConstant), 0o644))

	fixture := newApplicationFixture(testInstance)
	testInstance.Setenv(integrationWorkingDirectoryVariableConstant, repositoryRoot)

	require.NoError(testInstance, fixture.execute("0\n0\n"))

	require.Equal(testInstance, "", runGit(testInstance, repositoryRoot, "config", "--get", "user.name"))
	templateContent, readError := os.ReadFile(filepath.Join(runGit(testInstance, repositoryRoot, "rev-parse", "--show-toplevel"), integrationTemplateRelativePathConstant))
	require.NoError(testInstance, readError)
	require.Empty(testInstance, templateContent)
	require.Contains(testInstance, fixture.output.String(), "Current author: Previous")
}

func TestApplicationSelectionRejectsOutOfRangeIndex(testInstance *testing.T) {
	if _, lookupError := exec.LookPath(integrationGitExecutableConstant); lookupError != nil {
		testInstance.Skip("git executable not available")
	}

	repositoryRoot := testInstance.TempDir()
	runGit(testInstance, repositoryRoot, "init", "--quiet")
	require.NoError(testInstance, os.WriteFile(filepath.Join(repositoryRoot, testRosterFileNameConstant), []byte(integrationRosterContentConstant), 0o644))

	fixture := newApplicationFixture(testInstance)
	testInstance.Setenv(integrationWorkingDirectoryVariableConstant, repositoryRoot)

	executionError := fixture.execute("3\n")
	require.Error(testInstance, executionError)
	require.ErrorContains(testInstance, executionError, "Index out of bounds")
}

func runGit(testInstance *testing.T, workingDirectory string, arguments ...string) string {
	testInstance.Helper()
	command := exec.Command(integrationGitExecutableConstant, arguments...)
	command.Dir = workingDirectory
	outputBytes, _ := command.CombinedOutput()
	return strings.TrimSpace(string(outputBytes))
}
