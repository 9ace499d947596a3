package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// PromptStyle selects the emphasis used for an interactive prompt.
type PromptStyle int

// Prompt styles used by the interactive flow.
const (
	// PromptStyleInput asks for free-form text.
	PromptStyleInput PromptStyle = iota

	// PromptStyleSelection asks for a menu index.
	PromptStyleSelection

	// PromptStyleContinue asks whether to keep looping.
	PromptStyleContinue
)

const (
	promptSuffixConstant            = " "
	lineTerminatorConstant          = "\n"
	menuIndexTemplateConstant       = "[%d]"
	menuLineTemplateConstant        = "\t%s: %s\n"
	menuRemovalIndexConstant        = 0
	menuRemovalLabelConstant        = "Remove current author from role"
	currentAuthorTemplateConstant   = "Current author: %s\n"
	currentAuthorUnsetLabelConstant = "not set"
)

// Printer writes colored, user-facing output for the interactive flow.
type Printer struct {
	writer         io.Writer
	successColor   *color.Color
	failureColor   *color.Color
	highlightColor *color.Color
	headingColor   *color.Color
}

// NewPrinter constructs a Printer. When enableColors is false every style degrades to plain text.
func NewPrinter(writer io.Writer, enableColors bool) *Printer {
	if writer == nil {
		writer = io.Discard
	}
	printer := &Printer{
		writer:         writer,
		successColor:   color.New(color.FgGreen),
		failureColor:   color.New(color.FgRed),
		highlightColor: color.New(color.FgYellow),
		headingColor:   color.New(color.FgRed, color.Bold),
	}
	for _, style := range printer.styles() {
		if enableColors {
			style.EnableColor()
		} else {
			style.DisableColor()
		}
	}
	return printer
}

// Writer exposes the destination used by the printer.
func (printer *Printer) Writer() io.Writer {
	return printer.writer
}

// Success prints a green status line.
func (printer *Printer) Success(format string, arguments ...any) {
	printer.printLine(printer.successColor, fmt.Sprintf(format, arguments...))
}

// Failure prints a red status line.
func (printer *Printer) Failure(format string, arguments ...any) {
	printer.printLine(printer.failureColor, fmt.Sprintf(format, arguments...))
}

// Plain prints an uncolored line.
func (printer *Printer) Plain(format string, arguments ...any) {
	fmt.Fprint(printer.writer, fmt.Sprintf(format, arguments...)+lineTerminatorConstant)
}

// BlankLine prints an empty line.
func (printer *Printer) BlankLine() {
	fmt.Fprint(printer.writer, lineTerminatorConstant)
}

// Prompt prints text in the requested style followed by a single space and no newline.
func (printer *Printer) Prompt(style PromptStyle, text string) {
	promptColor := printer.successColor
	switch style {
	case PromptStyleSelection:
		promptColor = printer.highlightColor
	case PromptStyleContinue:
		promptColor = printer.failureColor
	}

	leadingNewlines, promptText := splitLeadingNewlines(text)
	fmt.Fprint(printer.writer, leadingNewlines)
	promptColor.Fprint(printer.writer, promptText)
	fmt.Fprint(printer.writer, promptSuffixConstant)
}

// Menu lists the removal option at index 0 followed by the items numbered from 1.
func (printer *Printer) Menu(items []string) {
	fmt.Fprintf(printer.writer, menuLineTemplateConstant,
		printer.successColor.Sprintf(menuIndexTemplateConstant, menuRemovalIndexConstant),
		printer.failureColor.Sprint(menuRemovalLabelConstant))
	for itemIndex, item := range items {
		fmt.Fprintf(printer.writer, menuLineTemplateConstant, printer.successColor.Sprintf(menuIndexTemplateConstant, itemIndex+1), item)
	}
}

// CurrentAuthor prints the identity presently configured in git.
func (printer *Printer) CurrentAuthor(identity string) {
	if len(strings.TrimSpace(identity)) == 0 {
		identity = currentAuthorUnsetLabelConstant
	}
	fmt.Fprintf(printer.writer, currentAuthorTemplateConstant, printer.highlightColor.Sprint(identity))
}

// Title prints the gitpair banner.
func (printer *Printer) Title() {
	printer.highlightColor.Fprint(printer.writer, titleBannerConstant)
}

// Usage prints the command summary. rosterPath is shown by its base name.
func (printer *Printer) Usage(rosterPath string) {
	rosterFileName := filepath.Base(rosterPath)
	printer.headingColor.Fprint(printer.writer, usageHeadingConstant)
	fmt.Fprint(printer.writer, lineTerminatorConstant+lineTerminatorConstant)
	for _, line := range buildUsageLines(rosterFileName) {
		paddedLabel := fmt.Sprintf("%-*s", usageCommandColumnWidthConstant, line.label)
		labelPadding := paddedLabel[len(line.label):]
		fmt.Fprint(printer.writer, usageIndentConstant)
		printer.successColor.Fprint(printer.writer, line.label)
		fmt.Fprint(printer.writer, labelPadding+usageDescriptionSeparatorConstant+line.description+lineTerminatorConstant)
	}
	fmt.Fprint(printer.writer, lineTerminatorConstant)
}

func (printer *Printer) printLine(lineColor *color.Color, text string) {
	lineColor.Fprint(printer.writer, text)
	fmt.Fprint(printer.writer, lineTerminatorConstant)
}

func (printer *Printer) styles() []*color.Color {
	return []*color.Color{printer.successColor, printer.failureColor, printer.highlightColor, printer.headingColor}
}

func splitLeadingNewlines(text string) (string, string) {
	trimmedText := strings.TrimLeft(text, lineTerminatorConstant)
	return text[:len(text)-len(trimmedText)], trimmedText
}
