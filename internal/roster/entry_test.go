package roster

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEntryEncoding(t *testing.T) {
	entry := Entry{Name: "Alice", Email: "alice@x.com"}

	require.Equal(t, "Alice:<alice@x.com>", entry.Line())
	require.Equal(t, "Alice:<alice@x.com>\n", entry.Encode())
	require.Equal(t, "Alice <alice@x.com>", entry.String())
}

func TestDecodeEntry(t *testing.T) {
	testCases := []struct {
		name     string
		line     string
		expected Entry
	}{
		{name: "wrapped_email", line: "Alice:<alice@x.com>\n", expected: Entry{Name: "Alice", Email: "alice@x.com"}},
		{name: "carriage_return", line: "Alice:<alice@x.com>\r\n", expected: Entry{Name: "Alice", Email: "alice@x.com"}},
		{name: "splits_on_first_colon", line: "Bob:<bob:ops@x.com>", expected: Entry{Name: "Bob", Email: "bob:ops@x.com"}},
		{name: "unwrapped_email_kept_verbatim", line: "Carol:carol@x.com", expected: Entry{Name: "Carol", Email: "carol@x.com"}},
		{name: "half_wrapped_email_kept_verbatim", line: "Dave:<dave@x.com", expected: Entry{Name: "Dave", Email: "<dave@x.com"}},
		{name: "missing_separator", line: "Eve", expected: Entry{Name: "Eve"}},
		{name: "empty_wrapper", line: "Frank:<>", expected: Entry{Name: "Frank"}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			require.Equal(t, testCase.expected, DecodeEntry(testCase.line))
		})
	}
}
