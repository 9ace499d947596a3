package gitconfig_test

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/temirov/gitpair/internal/gitconfig"
)

const (
	testRelativeTemplateConstant = ".git/commit-template"
	testAbsoluteTemplateConstant = "/repo/.git/commit-template"
	testRootTemplatePathConstant = "/workspace/.git/commit-template"
	testAliceNameConstant        = "Alice"
	testAliceEmailConstant       = "alice@x.com"
	testBobNameConstant          = "Bob"
	testBobEmailConstant         = "bob@x.com"
)

type recordedAssignment struct {
	key   string
	value string
}

type fakeConfigurationPort struct {
	values      map[string]string
	assignments []recordedAssignment
	failingKeys map[string]error
	getFailure  error
}

func newFakeConfigurationPort() *fakeConfigurationPort {
	return &fakeConfigurationPort{values: map[string]string{}, failingKeys: map[string]error{}}
}

func (port *fakeConfigurationPort) Get(executionContext context.Context, key string) (string, bool, error) {
	if port.getFailure != nil {
		return "", false, port.getFailure
	}
	value, found := port.values[key]
	return value, found, nil
}

func (port *fakeConfigurationPort) Set(executionContext context.Context, key string, value string) error {
	port.assignments = append(port.assignments, recordedAssignment{key: key, value: value})
	if failure, failing := port.failingKeys[key]; failing {
		return failure
	}
	port.values[key] = value
	return nil
}

type countingRootResolver struct {
	root    string
	failure error
	calls   int
}

func (resolver *countingRootResolver) RepositoryRoot(context.Context) (string, error) {
	resolver.calls++
	return resolver.root, resolver.failure
}

func newApplier(testInstance *testing.T, port gitconfig.ConfigurationPort, resolver gitconfig.RepositoryRootResolver, fileSystem afero.Fs, templateFile string) *gitconfig.Applier {
	testInstance.Helper()
	applier, creationError := gitconfig.NewApplier(gitconfig.ApplierDependencies{
		ConfigurationPort: port,
		RootResolver:      resolver,
		FileSystem:        fileSystem,
		TemplateFile:      templateFile,
	})
	require.NoError(testInstance, creationError)
	return applier
}

func TestNewApplierValidation(testInstance *testing.T) {
	testCases := []struct {
		name         string
		dependencies gitconfig.ApplierDependencies
		expectError  error
	}{
		{
			name:         "missing_port",
			dependencies: gitconfig.ApplierDependencies{FileSystem: afero.NewMemMapFs(), TemplateFile: testRelativeTemplateConstant},
			expectError:  gitconfig.ErrPortNotConfigured,
		},
		{
			name:         "missing_filesystem",
			dependencies: gitconfig.ApplierDependencies{ConfigurationPort: newFakeConfigurationPort(), TemplateFile: testRelativeTemplateConstant},
			expectError:  gitconfig.ErrFileSystemNotConfigured,
		},
		{
			name:         "missing_template",
			dependencies: gitconfig.ApplierDependencies{ConfigurationPort: newFakeConfigurationPort(), FileSystem: afero.NewMemMapFs()},
			expectError:  gitconfig.ErrTemplatePathRequired,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			applier, creationError := gitconfig.NewApplier(testCase.dependencies)
			require.ErrorIs(testInstance, creationError, testCase.expectError)
			require.Nil(testInstance, applier)
		})
	}
}

func TestApplierSetAuthorIdentity(testInstance *testing.T) {
	port := newFakeConfigurationPort()
	applier := newApplier(testInstance, port, nil, afero.NewMemMapFs(), testAbsoluteTemplateConstant)

	require.NoError(testInstance, applier.SetAuthorIdentity(context.Background(), testAliceNameConstant, testAliceEmailConstant))
	require.Equal(testInstance, []recordedAssignment{
		{key: gitconfig.UserNameKey, value: testAliceNameConstant},
		{key: gitconfig.UserEmailKey, value: testAliceEmailConstant},
	}, port.assignments)

	require.NoError(testInstance, applier.SetAuthorIdentity(context.Background(), "", ""))
	require.Equal(testInstance, "", port.values[gitconfig.UserNameKey])
	require.Equal(testInstance, "", port.values[gitconfig.UserEmailKey])
}

func TestApplierSetAuthorIdentityStopsAtFirstFailure(testInstance *testing.T) {
	testCases := []struct {
		name                string
		failingKey          string
		expectedAssignments int
	}{
		{name: "name_failure", failingKey: gitconfig.UserNameKey, expectedAssignments: 1},
		{name: "email_failure", failingKey: gitconfig.UserEmailKey, expectedAssignments: 2},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			portFailure := errors.New("config locked")
			port := newFakeConfigurationPort()
			port.failingKeys[testCase.failingKey] = portFailure
			applier := newApplier(testInstance, port, nil, afero.NewMemMapFs(), testAbsoluteTemplateConstant)

			identityError := applier.SetAuthorIdentity(context.Background(), testAliceNameConstant, testAliceEmailConstant)
			require.ErrorIs(testInstance, identityError, portFailure)
			require.ErrorContains(testInstance, identityError, testCase.failingKey)
			require.Len(testInstance, port.assignments, testCase.expectedAssignments)
		})
	}
}

func TestApplierSetCoAuthorTemplate(testInstance *testing.T) {
	testCases := []struct {
		name            string
		coAuthorName    string
		coAuthorEmail   string
		expectedContent string
	}{
		{
			name:            "writes_trailer",
			coAuthorName:    testBobNameConstant,
			coAuthorEmail:   testBobEmailConstant,
			expectedContent: "\n\nCo-authored-by: Bob <bob@x.com>",
		},
		{
			name:            "clears_template",
			expectedContent: "",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			fileSystem := afero.NewMemMapFs()
			require.NoError(testInstance, afero.WriteFile(fileSystem, testAbsoluteTemplateConstant, []byte("previous trailer"), 0o644))
			applier := newApplier(testInstance, newFakeConfigurationPort(), nil, fileSystem, testAbsoluteTemplateConstant)

			require.NoError(testInstance, applier.SetCoAuthorTemplate(context.Background(), testCase.coAuthorName, testCase.coAuthorEmail))

			content, readError := afero.ReadFile(fileSystem, testAbsoluteTemplateConstant)
			require.NoError(testInstance, readError)
			require.Equal(testInstance, testCase.expectedContent, string(content))
		})
	}
}

func TestApplierSetCoAuthorTemplateSurfacesWriteFailures(testInstance *testing.T) {
	applier := newApplier(testInstance, newFakeConfigurationPort(), nil, afero.NewReadOnlyFs(afero.NewMemMapFs()), testAbsoluteTemplateConstant)

	templateError := applier.SetCoAuthorTemplate(context.Background(), testBobNameConstant, testBobEmailConstant)
	require.ErrorContains(testInstance, templateError, "unable to write commit template")
}

func TestApplierResolveTemplatePath(testInstance *testing.T) {
	testInstance.Run("absolute_path_skips_resolver", func(testInstance *testing.T) {
		resolver := &countingRootResolver{root: "/elsewhere"}
		applier := newApplier(testInstance, newFakeConfigurationPort(), resolver, afero.NewMemMapFs(), testAbsoluteTemplateConstant)

		templatePath, resolveError := applier.ResolveTemplatePath(context.Background())
		require.NoError(testInstance, resolveError)
		require.Equal(testInstance, testAbsoluteTemplateConstant, templatePath)
		require.Zero(testInstance, resolver.calls)
	})

	testInstance.Run("relative_path_anchored_once", func(testInstance *testing.T) {
		resolver := &countingRootResolver{root: testRepositoryRootConstant}
		applier := newApplier(testInstance, newFakeConfigurationPort(), resolver, afero.NewMemMapFs(), testRelativeTemplateConstant)

		for attempt := 0; attempt < 2; attempt++ {
			templatePath, resolveError := applier.ResolveTemplatePath(context.Background())
			require.NoError(testInstance, resolveError)
			require.Equal(testInstance, testRootTemplatePathConstant, templatePath)
		}
		require.Equal(testInstance, 1, resolver.calls)
	})

	testInstance.Run("relative_path_without_resolver", func(testInstance *testing.T) {
		applier := newApplier(testInstance, newFakeConfigurationPort(), nil, afero.NewMemMapFs(), testRelativeTemplateConstant)

		_, resolveError := applier.ResolveTemplatePath(context.Background())
		require.ErrorIs(testInstance, resolveError, gitconfig.ErrRootResolverNotConfigured)
	})

	testInstance.Run("resolver_failure", func(testInstance *testing.T) {
		resolverFailure := errors.New("not a git repository")
		applier := newApplier(testInstance, newFakeConfigurationPort(), &countingRootResolver{failure: resolverFailure}, afero.NewMemMapFs(), testRelativeTemplateConstant)

		templateError := applier.SetCoAuthorTemplate(context.Background(), testBobNameConstant, testBobEmailConstant)
		require.ErrorIs(testInstance, templateError, resolverFailure)
	})
}

func TestApplierPointCommitTemplateAt(testInstance *testing.T) {
	port := newFakeConfigurationPort()
	applier := newApplier(testInstance, port, nil, afero.NewMemMapFs(), testAbsoluteTemplateConstant)

	require.NoError(testInstance, applier.PointCommitTemplateAt(context.Background(), testAbsoluteTemplateConstant))
	require.Equal(testInstance, testAbsoluteTemplateConstant, port.values[gitconfig.CommitTemplateKey])

	portFailure := errors.New("config locked")
	port.failingKeys[gitconfig.CommitTemplateKey] = portFailure
	require.ErrorIs(testInstance, applier.PointCommitTemplateAt(context.Background(), testAbsoluteTemplateConstant), portFailure)
}

func TestApplierCurrentAuthor(testInstance *testing.T) {
	port := newFakeConfigurationPort()
	port.values[gitconfig.UserNameKey] = testAliceNameConstant
	applier := newApplier(testInstance, port, nil, afero.NewMemMapFs(), testAbsoluteTemplateConstant)

	name, email, readError := applier.CurrentAuthor(context.Background())
	require.NoError(testInstance, readError)
	require.Equal(testInstance, testAliceNameConstant, name)
	require.Empty(testInstance, email)

	port.getFailure = errors.New("git missing")
	_, _, readError = applier.CurrentAuthor(context.Background())
	require.ErrorIs(testInstance, readError, port.getFailure)
}
