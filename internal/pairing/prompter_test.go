package pairing_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitpair/internal/pairing"
	"github.com/temirov/gitpair/internal/ui"
)

const (
	testNamePromptConstant      = "Enter author's full name:"
	testSelectionPromptConstant = "Select the author:"
	testContinuePromptConstant  = "Press enter to add an author, or q to exit:"
)

func newTestPrompter(input string) (*pairing.Prompter, *bytes.Buffer) {
	outputBuffer := &bytes.Buffer{}
	return pairing.NewPrompter(strings.NewReader(input), ui.NewPrinter(outputBuffer, false)), outputBuffer
}

func TestPrompterReadLine(testInstance *testing.T) {
	testCases := []struct {
		name          string
		input         string
		expectedValue string
		expectedError error
	}{
		{name: "trims_whitespace", input: "  Carol Danvers \r\n", expectedValue: "Carol Danvers"},
		{name: "unterminated_line", input: "Alice", expectedValue: "Alice"},
		{name: "blank_line", input: "\n", expectedValue: ""},
		{name: "closed_input", input: "", expectedError: io.EOF},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			prompter, outputBuffer := newTestPrompter(testCase.input)

			value, readError := prompter.ReadLine(testNamePromptConstant)
			require.ErrorIs(testInstance, readError, testCase.expectedError)
			require.Equal(testInstance, testCase.expectedValue, value)
			require.Equal(testInstance, testNamePromptConstant+" ", outputBuffer.String())
		})
	}
}

func TestPrompterReadIndex(testInstance *testing.T) {
	testCases := []struct {
		name            string
		input           string
		expectedIndex   int
		expectedError   error
		expectedPrompts int
	}{
		{name: "first_line_numeric", input: "2\n", expectedIndex: 2, expectedPrompts: 1},
		{name: "reprompts_until_numeric", input: "abc\n\n 3 trailing\n", expectedIndex: 3, expectedPrompts: 3},
		{name: "accepts_negative", input: "-4\n", expectedIndex: -4, expectedPrompts: 1},
		{name: "closed_input", input: "", expectedError: pairing.ErrInputClosed, expectedPrompts: 1},
		{name: "closed_after_garbage", input: "x\n", expectedError: pairing.ErrInputClosed, expectedPrompts: 2},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			prompter, outputBuffer := newTestPrompter(testCase.input)

			typedIndex, readError := prompter.ReadIndex(testSelectionPromptConstant)
			if testCase.expectedError != nil {
				require.ErrorIs(testInstance, readError, testCase.expectedError)
			} else {
				require.NoError(testInstance, readError)
				require.Equal(testInstance, testCase.expectedIndex, typedIndex)
			}
			require.Equal(testInstance, testCase.expectedPrompts, strings.Count(outputBuffer.String(), testSelectionPromptConstant))
		})
	}
}

func TestPrompterConfirm(testInstance *testing.T) {
	testCases := []struct {
		name             string
		input            string
		expectedContinue bool
	}{
		{name: "enter_continues", input: "\n", expectedContinue: true},
		{name: "other_text_continues", input: "quit\n", expectedContinue: true},
		{name: "q_stops", input: "q\n", expectedContinue: false},
		{name: "padded_q_stops", input: " q \n", expectedContinue: false},
		{name: "closed_input_stops", input: "", expectedContinue: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			prompter, outputBuffer := newTestPrompter(testCase.input)

			continueLoop, confirmError := prompter.Confirm(testContinuePromptConstant)
			require.NoError(testInstance, confirmError)
			require.Equal(testInstance, testCase.expectedContinue, continueLoop)
			require.Equal(testInstance, testContinuePromptConstant+" \n", outputBuffer.String())
		})
	}
}
