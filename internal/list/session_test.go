package list

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFilter(t *testing.T) {
	tests := []struct {
		name    string
		current Filter
		pressed Filter
		want    Filter
	}{
		{"activate done", FilterAll, FilterDone, FilterDone},
		{"activate pending", FilterAll, FilterPending, FilterPending},
		{"pressing active filter clears it", FilterDone, FilterDone, FilterAll},
		{"switch between filters", FilterDone, FilterPending, FilterPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toggleFilter(tt.current, tt.pressed))
		})
	}
}

func TestReadKey(t *testing.T) {
	tests := []struct {
		input string
		want  keyKind
	}{
		{"j", keyDown},
		{"k", keyUp},
		{"g", keyHome},
		{"G", keyEnd},
		{"d", keyFilterDone},
		{"p", keyFilterPending},
		{"r", keyReset},
		{"c", keyContinueAt},
		{"q", keyQuit},
		{"\x03", keyQuit}, // ctrl+c
		{"\x1b", keyQuit}, // bare escape
		{"\x1b[A", keyUp},
		{"\x1b[B", keyDown},
		{"\x1b[H", keyHome},
		{"\x1b[F", keyEnd},
		{"\x1b[1~", keyHome},
		{"\x1b[4~", keyEnd},
		{"\x1b[7~", keyHome},
		{"\x1b[8~", keyEnd},
		{"\x1bOH", keyHome},
		{"\x1bOF", keyEnd},
		{"x", keyUnknown},
	}

	for _, tt := range tests {
		t.Run(strings.NewReplacer("\x1b", "ESC", "\x03", "^C").Replace(tt.input), func(t *testing.T) {
			in := bufio.NewReader(strings.NewReader(tt.input))

			got, err := readKey(in)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
