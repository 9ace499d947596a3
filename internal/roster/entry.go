package roster

import (
	"fmt"
	"strings"
)

const (
	entryFieldSeparatorConstant  = ":"
	emailWrapperOpenConstant     = "<"
	emailWrapperCloseConstant    = ">"
	lineTerminatorConstant       = "\n"
	carriageReturnConstant       = "\r"
	entryLineTemplateConstant    = "%s" + entryFieldSeparatorConstant + emailWrapperOpenConstant + "%s" + emailWrapperCloseConstant
	entryDisplayTemplateConstant = "%s " + emailWrapperOpenConstant + "%s" + emailWrapperCloseConstant
)

// Entry is a single collaborator stored in the roster.
type Entry struct {
	Name  string
	Email string
}

// Line renders the on-disk representation of the entry without the trailing newline.
func (entry Entry) Line() string {
	return fmt.Sprintf(entryLineTemplateConstant, entry.Name, entry.Email)
}

// Encode renders the complete on-disk line, including the trailing newline.
func (entry Entry) Encode() string {
	return entry.Line() + lineTerminatorConstant
}

// String formats the entry the way git renders an identity.
func (entry Entry) String() string {
	return fmt.Sprintf(entryDisplayTemplateConstant, entry.Name, entry.Email)
}

// DecodeEntry parses a roster line produced by Encode.
//
// The name ends at the first colon. A single surrounding angle-bracket pair is removed from the
// remainder, which becomes the email. Lines without a colon decode to a name with no email.
func DecodeEntry(line string) Entry {
	trimmedLine := trimLineTerminator(line)
	name, remainder, separatorFound := strings.Cut(trimmedLine, entryFieldSeparatorConstant)
	if !separatorFound {
		return Entry{Name: trimmedLine}
	}
	return Entry{Name: name, Email: unwrapEmail(remainder)}
}

func unwrapEmail(wrappedEmail string) string {
	if !strings.HasPrefix(wrappedEmail, emailWrapperOpenConstant) || !strings.HasSuffix(wrappedEmail, emailWrapperCloseConstant) {
		return wrappedEmail
	}
	return wrappedEmail[len(emailWrapperOpenConstant) : len(wrappedEmail)-len(emailWrapperCloseConstant)]
}

func trimLineTerminator(line string) string {
	withoutNewline := strings.TrimSuffix(line, lineTerminatorConstant)
	return strings.TrimSuffix(withoutNewline, carriageReturnConstant)
}
