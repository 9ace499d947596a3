package pairing

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/temirov/gitpair/internal/ui"
)

const (
	quitResponseConstant           = "q"
	inputReadErrorTemplateConstant = "unable to read input: %w"
)

// Prompter reads answers to interactive prompts one line at a time.
type Prompter struct {
	reader  *bufio.Reader
	printer *ui.Printer
}

// NewPrompter constructs a Prompter reading from input and rendering prompts through printer.
func NewPrompter(input io.Reader, printer *ui.Printer) *Prompter {
	if input == nil {
		input = strings.NewReader("")
	}
	if printer == nil {
		printer = ui.NewPrinter(io.Discard, false)
	}
	return &Prompter{reader: bufio.NewReader(input), printer: printer}
}

// ReadLine prints prompt and returns the next line with surrounding whitespace removed.
// io.EOF is returned only when the input ends before any character is read.
func (prompter *Prompter) ReadLine(prompt string) (string, error) {
	prompter.printer.Prompt(ui.PromptStyleInput, prompt)
	line, readError := prompter.readLine()
	if readError != nil {
		return "", readError
	}
	return strings.TrimSpace(line), nil
}

// ReadIndex prints prompt until a line starting with an integer arrives.
func (prompter *Prompter) ReadIndex(prompt string) (int, error) {
	for {
		prompter.printer.Prompt(ui.PromptStyleSelection, prompt)
		line, readError := prompter.readLine()
		if readError != nil {
			if errors.Is(readError, io.EOF) {
				return 0, ErrInputClosed
			}
			return 0, readError
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if typedIndex, parseError := strconv.Atoi(fields[0]); parseError == nil {
			return typedIndex, nil
		}
	}
}

// Confirm prints prompt and reports whether the user wants to continue. Only a lone "q" or the
// end of input stops.
func (prompter *Prompter) Confirm(prompt string) (bool, error) {
	prompter.printer.Prompt(ui.PromptStyleContinue, prompt)
	line, readError := prompter.readLine()
	prompter.printer.BlankLine()
	if readError != nil {
		if errors.Is(readError, io.EOF) {
			return false, nil
		}
		return false, readError
	}
	return strings.TrimSpace(line) != quitResponseConstant, nil
}

func (prompter *Prompter) readLine() (string, error) {
	line, readError := prompter.reader.ReadString('\n')
	if readError == nil {
		return line, nil
	}
	if errors.Is(readError, io.EOF) {
		if len(line) > 0 {
			return line, nil
		}
		return "", io.EOF
	}
	return "", fmt.Errorf(inputReadErrorTemplateConstant, readError)
}
