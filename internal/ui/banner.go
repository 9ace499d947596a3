package ui

import "fmt"

const titleBannerConstant = "" +
	"           _ _                 _\n" +
	"      __ _(_) |_   _ __   __ _(_)_ __\n" +
	"     / _` | | __| | '_ \\ / _` | | '__|\n" +
	"    | (_| | | |_  | |_) | (_| | | |\n" +
	"     \\__, |_|\\__| | .__/ \\__,_|_|_|\n" +
	"     |___/        |_|\n" +
	"   -------------------------------------\n\n"

const (
	usageHeadingConstant                   = "Commands:"
	usageIndentConstant                    = "   "
	usageDescriptionSeparatorConstant      = " - "
	usageCommandColumnWidthConstant        = 13
	usageSelectCommandLabelConstant        = "<no command>"
	usageInitCommandLabelConstant          = "init"
	usageAddCommandLabelConstant           = "add"
	usageRemoveCommandLabelConstant        = "remove"
	usageHelpCommandLabelConstant          = "help"
	usageSelectDescriptionTemplateConstant = "Select an author and optional co-author which exists in %s"
	usageInitDescriptionConstant           = "Initiate the setup for git pair"
	usageAddDescriptionTemplateConstant    = "Add an author to your %s file for selection"
	usageRemoveDescriptionTemplateConstant = "Remove an author from your %s file"
	usageHelpDescriptionConstant           = "Display this message"
)

type usageLine struct {
	label       string
	description string
}

func buildUsageLines(rosterFileName string) []usageLine {
	return []usageLine{
		{label: usageSelectCommandLabelConstant, description: fmt.Sprintf(usageSelectDescriptionTemplateConstant, rosterFileName)},
		{label: usageInitCommandLabelConstant, description: usageInitDescriptionConstant},
		{label: usageAddCommandLabelConstant, description: fmt.Sprintf(usageAddDescriptionTemplateConstant, rosterFileName)},
		{label: usageRemoveCommandLabelConstant, description: fmt.Sprintf(usageRemoveDescriptionTemplateConstant, rosterFileName)},
		{label: usageHelpCommandLabelConstant, description: usageHelpDescriptionConstant},
	}
}
