package pairing

import (
	"errors"
	"fmt"

	"github.com/temirov/gitpair/internal/roster"
)

const (
	inputClosedMessageConstant             = "input closed before a selection was made"
	indexOutOfBoundsMessageConstant        = "Index out of bounds - exiting."
	noAuthorsAddedMessageConstant          = "no authors added; nothing to select"
	indexOutOfBoundsDetailTemplateConstant = "%s (%s index %d, expected 0-%d)"
	rosterMissingTemplateConstant          = "File %s not in directory.\nRun with the init parameter to create the file and add code authors."
)

var (
	// ErrInputClosed indicates standard input ended while a numeric selection was pending.
	ErrInputClosed = errors.New(inputClosedMessageConstant)

	// ErrIndexOutOfBounds matches every IndexOutOfBoundsError.
	ErrIndexOutOfBounds = errors.New(indexOutOfBoundsMessageConstant)

	// ErrNoAuthorsAdded indicates init finished its add-loop without storing an author.
	ErrNoAuthorsAdded = errors.New(noAuthorsAddedMessageConstant)
)

// Role names the slot being assigned during selection.
type Role string

// Selection roles.
const (
	RoleAuthor   Role = Role("author")
	RoleCoAuthor Role = Role("co-author")
)

// IndexOutOfBoundsError reports a typed menu index that maps to no roster entry.
type IndexOutOfBoundsError struct {
	Role       Role
	TypedIndex int
	EntryCount int
}

// Error describes the rejected index.
func (boundsError IndexOutOfBoundsError) Error() string {
	return fmt.Sprintf(indexOutOfBoundsDetailTemplateConstant, indexOutOfBoundsMessageConstant, boundsError.Role, boundsError.TypedIndex, boundsError.EntryCount)
}

// Is reports whether target is ErrIndexOutOfBounds.
func (boundsError IndexOutOfBoundsError) Is(target error) bool {
	return target == ErrIndexOutOfBounds
}

// RosterMissingError reports that the roster has not been created yet.
type RosterMissingError struct {
	RosterFileName string
	Cause          error
}

// Error points the user at the init command.
func (missingError RosterMissingError) Error() string {
	return fmt.Sprintf(rosterMissingTemplateConstant, missingError.RosterFileName)
}

// Unwrap exposes the underlying roster error.
func (missingError RosterMissingError) Unwrap() error {
	if missingError.Cause == nil {
		return roster.ErrRosterNotFound
	}
	return missingError.Cause
}
