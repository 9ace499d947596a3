package gitconfig

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const (
	// UserNameKey holds the commit author name.
	UserNameKey = "user.name"

	// UserEmailKey holds the commit author email.
	UserEmailKey = "user.email"

	// CommitTemplateKey points git at the commit-message template.
	CommitTemplateKey = "commit.template"
)

const (
	coAuthorTrailerTemplateConstant        = "\n\nCo-authored-by: %s <%s>"
	templateFilePermissionsConstant        = fs.FileMode(0o644)
	portNotConfiguredMessageConstant       = "git configuration port not configured"
	fileSystemNotConfiguredMessageConstant = "template filesystem not configured"
	templatePathRequiredMessageConstant    = "commit template path required"
	rootResolverMissingMessageConstant     = "repository root resolver not configured"
	setIdentityErrorTemplateConstant       = "unable to set %s: %w"
	readIdentityErrorTemplateConstant      = "unable to read %s: %w"
	writeTemplateErrorTemplateConstant     = "unable to write commit template %s: %w"
	pointTemplateErrorTemplateConstant     = "unable to point %s at %s: %w"
	resolveTemplateErrorTemplateConstant   = "unable to resolve commit template path %s: %w"
)

var (
	// ErrPortNotConfigured indicates the applier was constructed without a ConfigurationPort.
	ErrPortNotConfigured = errors.New(portNotConfiguredMessageConstant)

	// ErrFileSystemNotConfigured indicates the applier was constructed without a filesystem.
	ErrFileSystemNotConfigured = errors.New(fileSystemNotConfiguredMessageConstant)

	// ErrTemplatePathRequired indicates the applier was constructed without a template path.
	ErrTemplatePathRequired = errors.New(templatePathRequiredMessageConstant)

	// ErrRootResolverNotConfigured indicates a relative template path with no way to anchor it.
	ErrRootResolverNotConfigured = errors.New(rootResolverMissingMessageConstant)
)

// ConfigurationPort reads and writes single git configuration keys.
type ConfigurationPort interface {
	Get(executionContext context.Context, key string) (string, bool, error)
	Set(executionContext context.Context, key string, value string) error
}

// RepositoryRootResolver locates the top-level directory of the current repository.
type RepositoryRootResolver interface {
	RepositoryRoot(executionContext context.Context) (string, error)
}

// ApplierDependencies enumerates collaborators required by the Applier.
type ApplierDependencies struct {
	ConfigurationPort ConfigurationPort
	RootResolver      RepositoryRootResolver
	FileSystem        afero.Fs
	TemplateFile      string
}

// Applier translates author selections into git configuration and the commit template.
type Applier struct {
	port                 ConfigurationPort
	rootResolver         RepositoryRootResolver
	fileSystem           afero.Fs
	templateFile         string
	resolvedTemplatePath string
}

// NewApplier validates dependencies and constructs an Applier.
func NewApplier(dependencies ApplierDependencies) (*Applier, error) {
	if dependencies.ConfigurationPort == nil {
		return nil, ErrPortNotConfigured
	}
	if dependencies.FileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	templateFile := strings.TrimSpace(dependencies.TemplateFile)
	if len(templateFile) == 0 {
		return nil, ErrTemplatePathRequired
	}
	return &Applier{
		port:         dependencies.ConfigurationPort,
		rootResolver: dependencies.RootResolver,
		fileSystem:   dependencies.FileSystem,
		templateFile: templateFile,
	}, nil
}

// SetAuthorIdentity sets user.name and then user.email. The first failure stops the sequence.
// Empty values clear the author.
func (applier *Applier) SetAuthorIdentity(executionContext context.Context, name string, email string) error {
	if setError := applier.port.Set(executionContext, UserNameKey, name); setError != nil {
		return fmt.Errorf(setIdentityErrorTemplateConstant, UserNameKey, setError)
	}
	if setError := applier.port.Set(executionContext, UserEmailKey, email); setError != nil {
		return fmt.Errorf(setIdentityErrorTemplateConstant, UserEmailKey, setError)
	}
	return nil
}

// SetCoAuthorTemplate rewrites the template with a Co-authored-by trailer, or empties it when
// both name and email are empty.
func (applier *Applier) SetCoAuthorTemplate(executionContext context.Context, name string, email string) error {
	templatePath, resolveError := applier.ResolveTemplatePath(executionContext)
	if resolveError != nil {
		return resolveError
	}

	templateContent := ""
	if len(name) > 0 || len(email) > 0 {
		templateContent = fmt.Sprintf(coAuthorTrailerTemplateConstant, name, email)
	}

	if writeError := afero.WriteFile(applier.fileSystem, templatePath, []byte(templateContent), templateFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(writeTemplateErrorTemplateConstant, templatePath, writeError)
	}
	return nil
}

// PointCommitTemplateAt sets commit.template to templatePath.
func (applier *Applier) PointCommitTemplateAt(executionContext context.Context, templatePath string) error {
	if setError := applier.port.Set(executionContext, CommitTemplateKey, templatePath); setError != nil {
		return fmt.Errorf(pointTemplateErrorTemplateConstant, CommitTemplateKey, templatePath, setError)
	}
	return nil
}

// ResolveTemplatePath returns the template location. Relative paths are anchored at the
// repository root, which is looked up once per Applier.
func (applier *Applier) ResolveTemplatePath(executionContext context.Context) (string, error) {
	if len(applier.resolvedTemplatePath) > 0 {
		return applier.resolvedTemplatePath, nil
	}
	if filepath.IsAbs(applier.templateFile) {
		applier.resolvedTemplatePath = filepath.Clean(applier.templateFile)
		return applier.resolvedTemplatePath, nil
	}
	if applier.rootResolver == nil {
		return "", fmt.Errorf(resolveTemplateErrorTemplateConstant, applier.templateFile, ErrRootResolverNotConfigured)
	}

	repositoryRoot, rootError := applier.rootResolver.RepositoryRoot(executionContext)
	if rootError != nil {
		return "", fmt.Errorf(resolveTemplateErrorTemplateConstant, applier.templateFile, rootError)
	}
	applier.resolvedTemplatePath = filepath.Join(repositoryRoot, applier.templateFile)
	return applier.resolvedTemplatePath, nil
}

// CurrentAuthor reads the configured author. Unset keys yield empty strings.
func (applier *Applier) CurrentAuthor(executionContext context.Context) (string, string, error) {
	name, _, nameError := applier.port.Get(executionContext, UserNameKey)
	if nameError != nil {
		return "", "", fmt.Errorf(readIdentityErrorTemplateConstant, UserNameKey, nameError)
	}
	email, _, emailError := applier.port.Get(executionContext, UserEmailKey)
	if emailError != nil {
		return "", "", fmt.Errorf(readIdentityErrorTemplateConstant, UserEmailKey, emailError)
	}
	return name, email, nil
}
