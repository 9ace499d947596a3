package pairing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/gitpair/internal/roster"
	"github.com/temirov/gitpair/internal/ui"
)

const (
	enterNamePromptConstant                 = "Enter author's full name:"
	enterEmailPromptConstant                = "Enter author's email:"
	continueAddingPromptConstant            = "\nPress enter to add an author, or q to exit:"
	continueRemovingPromptConstant          = "\nPress enter to remove an author, or q to exit:"
	selectAuthorPromptConstant              = "\nSelect the author:"
	selectCoAuthorPromptConstant            = "Select the co-author:"
	noAuthorAddedMessageConstant            = "No author added."
	noAuthorRemovedMessageConstant          = "No author removed."
	noMatchingAuthorMessageConstant         = "No matching author found."
	authorRemovedFromRosterTemplateConstant = "Removed %s from %s."
	authorRoleRemovedMessageConstant        = "Removed author."
	authorRoleSetTemplateConstant           = "Set git user and email as %s %s"
	coAuthorRoleRemovedMessageConstant      = "Removed co-author."
	coAuthorRoleSetTemplateConstant         = "Set co-author as: %s %s"
	emailDisplayTemplateConstant            = "<%s>"
	removeRoleSentinelConstant              = -1
	loggerMissingMessageConstant            = "pairing logger not configured"
	storeMissingMessageConstant             = "roster store not configured"
	applierMissingMessageConstant           = "identity applier not configured"
	prompterMissingMessageConstant          = "prompter not configured"
	printerMissingMessageConstant           = "printer not configured"
	appendAuthorErrorTemplateConstant       = "unable to add author: %w"
	removeAuthorErrorTemplateConstant       = "unable to remove author: %w"
	readRosterErrorTemplateConstant         = "unable to read roster: %w"
	applyAuthorErrorTemplateConstant        = "unable to apply author: %w"
	applyCoAuthorErrorTemplateConstant      = "unable to apply co-author: %w"
	logFieldRosterPathConstant              = "roster_path"
	logFieldEntryCountConstant              = "entry_count"
	logFieldRoleConstant                    = "role"
	logFieldNameConstant                    = "name"
	logFieldTemplatePathConstant            = "template_path"
	logFieldAddedCountConstant              = "added_count"
	logFieldRemovedCountConstant            = "removed_count"
	authorAppendedMessageConstant           = "author appended to roster"
	authorDeletedMessageConstant            = "author removed from roster"
	rosterLoadedMessageConstant             = "roster loaded"
	roleClearedMessageConstant              = "role cleared"
	roleAssignedMessageConstant             = "role assigned"
	currentAuthorUnavailableMessageConstant = "current author unavailable"
	addLoopFinishedMessageConstant          = "add loop finished"
	removeLoopFinishedMessageConstant       = "remove loop finished"
)

// RosterStore persists roster entries.
type RosterStore interface {
	Path() string
	Append(entry roster.Entry) error
	ReadAll() ([]roster.Entry, error)
	Remove(entry roster.Entry) (bool, error)
}

// IdentityApplier writes author selections into git.
type IdentityApplier interface {
	SetAuthorIdentity(executionContext context.Context, name string, email string) error
	SetCoAuthorTemplate(executionContext context.Context, name string, email string) error
	PointCommitTemplateAt(executionContext context.Context, templatePath string) error
	ResolveTemplatePath(executionContext context.Context) (string, error)
	CurrentAuthor(executionContext context.Context) (string, string, error)
}

// ServiceDependencies enumerates collaborators required by the Service.
type ServiceDependencies struct {
	Logger   *zap.Logger
	Store    RosterStore
	Applier  IdentityApplier
	Prompter *Prompter
	Printer  *ui.Printer
}

// Selection records the outcome of the selection flow. A nil entry means the role was cleared.
type Selection struct {
	Author   *roster.Entry
	CoAuthor *roster.Entry
}

// Service runs the interactive roster workflows.
type Service struct {
	logger   *zap.Logger
	store    RosterStore
	applier  IdentityApplier
	prompter *Prompter
	printer  *ui.Printer
}

// NewService validates dependencies and constructs a Service.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.Logger == nil {
		return nil, errors.New(loggerMissingMessageConstant)
	}
	if dependencies.Store == nil {
		return nil, errors.New(storeMissingMessageConstant)
	}
	if dependencies.Applier == nil {
		return nil, errors.New(applierMissingMessageConstant)
	}
	if dependencies.Prompter == nil {
		return nil, errors.New(prompterMissingMessageConstant)
	}
	if dependencies.Printer == nil {
		return nil, errors.New(printerMissingMessageConstant)
	}
	return &Service{
		logger:   dependencies.Logger,
		store:    dependencies.Store,
		applier:  dependencies.Applier,
		prompter: dependencies.Prompter,
		printer:  dependencies.Printer,
	}, nil
}

// AddAuthors prompts for authors until a blank answer or "q" and returns how many were stored.
func (service *Service) AddAuthors(executionContext context.Context) (int, error) {
	addedCount := 0
	for {
		entry, provided, promptError := service.promptEntry(noAuthorAddedMessageConstant)
		if promptError != nil {
			return addedCount, promptError
		}
		if !provided {
			break
		}

		if appendError := service.store.Append(entry); appendError != nil {
			return addedCount, fmt.Errorf(appendAuthorErrorTemplateConstant, appendError)
		}
		addedCount++
		service.logger.Debug(authorAppendedMessageConstant, zap.String(logFieldNameConstant, entry.Name), zap.String(logFieldRosterPathConstant, service.store.Path()))

		continueAdding, confirmError := service.prompter.Confirm(continueAddingPromptConstant)
		if confirmError != nil {
			return addedCount, confirmError
		}
		if !continueAdding {
			break
		}
	}

	service.logger.Info(addLoopFinishedMessageConstant, zap.Int(logFieldAddedCountConstant, addedCount))
	return addedCount, nil
}

// RemoveAuthors prompts for authors to delete from the roster and returns how many were removed.
func (service *Service) RemoveAuthors(executionContext context.Context) (int, error) {
	removedCount := 0
	for {
		entry, provided, promptError := service.promptEntry(noAuthorRemovedMessageConstant)
		if promptError != nil {
			return removedCount, promptError
		}
		if !provided {
			break
		}

		removed, removeError := service.store.Remove(entry)
		if removeError != nil {
			if errors.Is(removeError, roster.ErrRosterNotFound) {
				return removedCount, service.rosterMissing(removeError)
			}
			return removedCount, fmt.Errorf(removeAuthorErrorTemplateConstant, removeError)
		}
		if !removed {
			service.printer.Failure(noMatchingAuthorMessageConstant)
			break
		}
		removedCount++
		service.printer.Failure(authorRemovedFromRosterTemplateConstant, entry.String(), filepath.Base(service.store.Path()))
		service.logger.Debug(authorDeletedMessageConstant, zap.String(logFieldNameConstant, entry.Name), zap.String(logFieldRosterPathConstant, service.store.Path()))

		continueRemoving, confirmError := service.prompter.Confirm(continueRemovingPromptConstant)
		if confirmError != nil {
			return removedCount, confirmError
		}
		if !continueRemoving {
			break
		}
	}

	service.logger.Info(removeLoopFinishedMessageConstant, zap.Int(logFieldRemovedCountConstant, removedCount))
	return removedCount, nil
}

// SelectAuthors shows the roster, then applies the chosen author and co-author.
func (service *Service) SelectAuthors(executionContext context.Context) (Selection, error) {
	entries, readError := service.store.ReadAll()
	if readError != nil {
		if errors.Is(readError, roster.ErrRosterNotFound) {
			return Selection{}, service.rosterMissing(readError)
		}
		return Selection{}, fmt.Errorf(readRosterErrorTemplateConstant, readError)
	}
	service.logger.Debug(rosterLoadedMessageConstant, zap.Int(logFieldEntryCountConstant, len(entries)), zap.String(logFieldRosterPathConstant, service.store.Path()))

	service.showCurrentAuthor(executionContext)
	menuItems := make([]string, 0, len(entries))
	for _, entry := range entries {
		menuItems = append(menuItems, entry.String())
	}
	service.printer.Menu(menuItems)

	selection := Selection{}

	author, authorError := service.chooseEntry(entries, RoleAuthor, selectAuthorPromptConstant)
	if authorError != nil {
		return selection, authorError
	}
	if applyError := service.applyAuthor(executionContext, author); applyError != nil {
		return selection, applyError
	}
	selection.Author = author

	coAuthor, coAuthorError := service.chooseEntry(entries, RoleCoAuthor, selectCoAuthorPromptConstant)
	if coAuthorError != nil {
		return selection, coAuthorError
	}
	if applyError := service.applyCoAuthor(executionContext, coAuthor); applyError != nil {
		return selection, applyError
	}
	selection.CoAuthor = coAuthor

	return selection, nil
}

// Initialize prints the banner, runs the add-loop and continues into selection when at least
// one author was added.
func (service *Service) Initialize(executionContext context.Context) (Selection, error) {
	service.printer.Title()
	addedCount, addError := service.AddAuthors(executionContext)
	if addError != nil {
		return Selection{}, addError
	}
	if addedCount == 0 {
		return Selection{}, ErrNoAuthorsAdded
	}
	return service.SelectAuthors(executionContext)
}

// promptEntry reads a name and an email. provided is false when either answer is blank or the
// input ended, in which case skipMessage has already been printed.
func (service *Service) promptEntry(skipMessage string) (roster.Entry, bool, error) {
	name, nameError := service.prompter.ReadLine(enterNamePromptConstant)
	if nameError != nil && !errors.Is(nameError, io.EOF) {
		return roster.Entry{}, false, nameError
	}
	if len(name) == 0 {
		service.printer.Failure(skipMessage)
		return roster.Entry{}, false, nil
	}

	email, emailError := service.prompter.ReadLine(enterEmailPromptConstant)
	if emailError != nil && !errors.Is(emailError, io.EOF) {
		return roster.Entry{}, false, emailError
	}
	if len(email) == 0 {
		service.printer.Failure(skipMessage)
		return roster.Entry{}, false, nil
	}

	return roster.Entry{Name: name, Email: email}, true, nil
}

// chooseEntry returns nil for the remove sentinel.
func (service *Service) chooseEntry(entries []roster.Entry, role Role, prompt string) (*roster.Entry, error) {
	typedIndex, readError := service.prompter.ReadIndex(prompt)
	if readError != nil {
		return nil, readError
	}

	entryIndex := typedIndex - 1
	if entryIndex < removeRoleSentinelConstant || entryIndex >= len(entries) {
		return nil, IndexOutOfBoundsError{Role: role, TypedIndex: typedIndex, EntryCount: len(entries)}
	}
	if entryIndex == removeRoleSentinelConstant {
		return nil, nil
	}

	chosenEntry := entries[entryIndex]
	return &chosenEntry, nil
}

func (service *Service) applyAuthor(executionContext context.Context, author *roster.Entry) error {
	if author == nil {
		if identityError := service.applier.SetAuthorIdentity(executionContext, "", ""); identityError != nil {
			return fmt.Errorf(applyAuthorErrorTemplateConstant, identityError)
		}
		service.printer.Failure(authorRoleRemovedMessageConstant)
		service.logger.Info(roleClearedMessageConstant, zap.String(logFieldRoleConstant, string(RoleAuthor)))
		return nil
	}

	if identityError := service.applier.SetAuthorIdentity(executionContext, author.Name, author.Email); identityError != nil {
		return fmt.Errorf(applyAuthorErrorTemplateConstant, identityError)
	}
	service.printer.Success(authorRoleSetTemplateConstant, author.Name, fmt.Sprintf(emailDisplayTemplateConstant, author.Email))
	service.printer.BlankLine()
	service.logger.Info(roleAssignedMessageConstant, zap.String(logFieldRoleConstant, string(RoleAuthor)), zap.String(logFieldNameConstant, author.Name))
	return nil
}

func (service *Service) applyCoAuthor(executionContext context.Context, coAuthor *roster.Entry) error {
	if coAuthor == nil {
		if templateError := service.applier.SetCoAuthorTemplate(executionContext, "", ""); templateError != nil {
			return fmt.Errorf(applyCoAuthorErrorTemplateConstant, templateError)
		}
		service.printer.Failure(coAuthorRoleRemovedMessageConstant)
		service.logger.Info(roleClearedMessageConstant, zap.String(logFieldRoleConstant, string(RoleCoAuthor)))
		return nil
	}

	if templateError := service.applier.SetCoAuthorTemplate(executionContext, coAuthor.Name, coAuthor.Email); templateError != nil {
		return fmt.Errorf(applyCoAuthorErrorTemplateConstant, templateError)
	}
	templatePath, resolveError := service.applier.ResolveTemplatePath(executionContext)
	if resolveError != nil {
		return fmt.Errorf(applyCoAuthorErrorTemplateConstant, resolveError)
	}
	if pointError := service.applier.PointCommitTemplateAt(executionContext, templatePath); pointError != nil {
		return fmt.Errorf(applyCoAuthorErrorTemplateConstant, pointError)
	}
	service.printer.Success(coAuthorRoleSetTemplateConstant, coAuthor.Name, fmt.Sprintf(emailDisplayTemplateConstant, coAuthor.Email))
	service.logger.Info(
		roleAssignedMessageConstant,
		zap.String(logFieldRoleConstant, string(RoleCoAuthor)),
		zap.String(logFieldNameConstant, coAuthor.Name),
		zap.String(logFieldTemplatePathConstant, templatePath),
	)
	return nil
}

func (service *Service) showCurrentAuthor(executionContext context.Context) {
	name, email, currentError := service.applier.CurrentAuthor(executionContext)
	if currentError != nil {
		service.logger.Debug(currentAuthorUnavailableMessageConstant, zap.Error(currentError))
		return
	}
	if len(name) == 0 && len(email) == 0 {
		service.printer.CurrentAuthor("")
		return
	}
	service.printer.CurrentAuthor(roster.Entry{Name: name, Email: email}.String())
}

func (service *Service) rosterMissing(cause error) error {
	return RosterMissingError{RosterFileName: filepath.Base(service.store.Path()), Cause: cause}
}
