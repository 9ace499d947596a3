package roster

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const (
	rosterNotFoundMessageConstant          = "roster file not found"
	emptyNameMessageConstant               = "author name must not be empty"
	emptyEmailMessageConstant              = "author email must not be empty"
	fileSystemMissingMessageConstant       = "roster filesystem not configured"
	rosterPathMissingMessageConstant       = "roster path must be provided"
	rosterNotFoundTemplateConstant         = "%w: %s"
	rosterOpenErrorTemplateConstant        = "unable to open roster %s: %w"
	rosterWriteErrorTemplateConstant       = "unable to write roster %s: %w"
	rosterCloseErrorTemplateConstant       = "unable to close roster %s: %w"
	rosterReadErrorTemplateConstant        = "unable to read roster %s: %w"
	temporaryCreateErrorTemplateConstant   = "unable to create temporary roster in %s: %w"
	temporaryWriteErrorTemplateConstant    = "unable to write temporary roster %s: %w"
	rosterReplaceErrorTemplateConstant     = "unable to replace roster %s: %w"
	temporaryRosterPatternTemplateConstant = "%s-*.tmp"
	rosterFilePermissionsConstant          = fs.FileMode(0o644)
)

// ErrRosterNotFound indicates the roster file does not exist yet.
var ErrRosterNotFound = errors.New(rosterNotFoundMessageConstant)

// ErrEmptyName indicates an entry without a name was offered for storage.
var ErrEmptyName = errors.New(emptyNameMessageConstant)

// ErrEmptyEmail indicates an entry without an email was offered for storage.
var ErrEmptyEmail = errors.New(emptyEmailMessageConstant)

// ErrFileSystemNotConfigured indicates the store was built without a filesystem.
var ErrFileSystemNotConfigured = errors.New(fileSystemMissingMessageConstant)

// ErrRosterPathRequired indicates the store was built without a roster path.
var ErrRosterPathRequired = errors.New(rosterPathMissingMessageConstant)

// Store persists roster entries one per line in a flat file.
type Store struct {
	fileSystem afero.Fs
	rosterPath string
}

// NewStore constructs a Store for the roster at rosterPath.
func NewStore(fileSystem afero.Fs, rosterPath string) (*Store, error) {
	if fileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	trimmedRosterPath := strings.TrimSpace(rosterPath)
	if len(trimmedRosterPath) == 0 {
		return nil, ErrRosterPathRequired
	}
	return &Store{fileSystem: fileSystem, rosterPath: trimmedRosterPath}, nil
}

// Path reports the roster file location.
func (store *Store) Path() string {
	return store.rosterPath
}

// Append writes the entry to the end of the roster, creating the file when absent.
func (store *Store) Append(entry Entry) error {
	if len(entry.Name) == 0 {
		return ErrEmptyName
	}
	if len(entry.Email) == 0 {
		return ErrEmptyEmail
	}

	rosterFile, openError := store.fileSystem.OpenFile(store.rosterPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, rosterFilePermissionsConstant)
	if openError != nil {
		return fmt.Errorf(rosterOpenErrorTemplateConstant, store.rosterPath, openError)
	}

	if _, writeError := io.WriteString(rosterFile, entry.Encode()); writeError != nil {
		_ = rosterFile.Close()
		return fmt.Errorf(rosterWriteErrorTemplateConstant, store.rosterPath, writeError)
	}

	if closeError := rosterFile.Close(); closeError != nil {
		return fmt.Errorf(rosterCloseErrorTemplateConstant, store.rosterPath, closeError)
	}
	return nil
}

// ReadAll returns every entry in file order. Blank lines are skipped.
func (store *Store) ReadAll() ([]Entry, error) {
	rosterFile, openError := store.openExisting()
	if openError != nil {
		return nil, openError
	}
	defer rosterFile.Close()

	entries := make([]Entry, 0)
	readError := forEachLine(rosterFile, func(line string) error {
		if len(strings.TrimSpace(line)) == 0 {
			return nil
		}
		entries = append(entries, DecodeEntry(line))
		return nil
	})
	if readError != nil {
		return nil, fmt.Errorf(rosterReadErrorTemplateConstant, store.rosterPath, readError)
	}
	return entries, nil
}

// Remove deletes the first line matching the entry's encoding.
func (store *Store) Remove(entry Entry) (bool, error) {
	return store.DeleteLine(entry.Encode())
}

// DeleteLine rewrites the roster without the first line equal to exactLineText.
//
// The surviving lines are streamed into a temporary file beside the roster, which then replaces
// the roster file. The result reports whether a line was dropped.
func (store *Store) DeleteLine(exactLineText string) (bool, error) {
	rosterFile, openError := store.openExisting()
	if openError != nil {
		return false, openError
	}

	rosterPermissions := rosterFilePermissionsConstant
	if rosterInformation, statError := rosterFile.Stat(); statError == nil {
		rosterPermissions = rosterInformation.Mode().Perm()
	}

	rosterDirectory := filepath.Dir(store.rosterPath)
	temporaryPattern := fmt.Sprintf(temporaryRosterPatternTemplateConstant, filepath.Base(store.rosterPath))
	temporaryFile, temporaryError := afero.TempFile(store.fileSystem, rosterDirectory, temporaryPattern)
	if temporaryError != nil {
		_ = rosterFile.Close()
		return false, fmt.Errorf(temporaryCreateErrorTemplateConstant, rosterDirectory, temporaryError)
	}
	temporaryPath := temporaryFile.Name()

	targetLine := trimLineTerminator(exactLineText)
	lineRemoved := false
	copyError := forEachLine(rosterFile, func(line string) error {
		if !lineRemoved && trimLineTerminator(line) == targetLine {
			lineRemoved = true
			return nil
		}
		_, writeError := io.WriteString(temporaryFile, line)
		return writeError
	})
	_ = rosterFile.Close()
	closeError := temporaryFile.Close()

	if copyError == nil {
		copyError = closeError
	}
	if copyError != nil {
		_ = store.fileSystem.Remove(temporaryPath)
		return false, fmt.Errorf(temporaryWriteErrorTemplateConstant, temporaryPath, copyError)
	}

	_ = store.fileSystem.Chmod(temporaryPath, rosterPermissions)

	if removeError := store.fileSystem.Remove(store.rosterPath); removeError != nil {
		_ = store.fileSystem.Remove(temporaryPath)
		return false, fmt.Errorf(rosterReplaceErrorTemplateConstant, store.rosterPath, removeError)
	}
	if renameError := store.fileSystem.Rename(temporaryPath, store.rosterPath); renameError != nil {
		return false, fmt.Errorf(rosterReplaceErrorTemplateConstant, store.rosterPath, renameError)
	}
	return lineRemoved, nil
}

func (store *Store) openExisting() (afero.File, error) {
	rosterFile, openError := store.fileSystem.Open(store.rosterPath)
	if openError != nil {
		if errors.Is(openError, fs.ErrNotExist) {
			return nil, fmt.Errorf(rosterNotFoundTemplateConstant, ErrRosterNotFound, store.rosterPath)
		}
		return nil, fmt.Errorf(rosterOpenErrorTemplateConstant, store.rosterPath, openError)
	}
	return rosterFile, nil
}

// forEachLine hands every line, newline included, to visit. A final line without a newline is
// delivered as-is.
func forEachLine(reader io.Reader, visit func(line string) error) error {
	bufferedReader := bufio.NewReader(reader)
	for {
		line, readError := bufferedReader.ReadString('\n')
		if len(line) > 0 {
			if visitError := visit(line); visitError != nil {
				return visitError
			}
		}
		if readError == io.EOF {
			return nil
		}
		if readError != nil {
			return readError
		}
	}
}
