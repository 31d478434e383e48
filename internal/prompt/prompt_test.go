package prompt_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/agenda-app/client/internal/prompt"
	"github.com/stretchr/testify/require"
)

func TestTerminal_Confirm(t *testing.T) {
	q := prompt.Question{Title: "Delete event", Text: "Are you sure you want to delete this event?"}

	for _, tc := range []struct {
		input string
		want  bool
	}{
		{input: "y\n", want: true},
		{input: "YES\n", want: true},
		{input: "n\n", want: false},
		{input: "\n", want: false},
		{input: "", want: false},
	} {
		t.Run("should answer "+strings.TrimSpace(tc.input), func(t *testing.T) {
			req := require.New(t)
			var out bytes.Buffer

			ok, err := prompt.NewTerminal(strings.NewReader(tc.input), &out).Confirm(context.Background(), q)

			req.NoError(err)
			req.Equal(tc.want, ok)
			req.Contains(out.String(), "Are you sure you want to delete this event?")
		})
	}
}

func TestStatic_Confirm(t *testing.T) {
	req := require.New(t)

	yes, err := prompt.Static(true).Confirm(context.Background(), prompt.Question{})
	req.NoError(err)
	req.True(yes)

	no, err := prompt.Static(false).Confirm(context.Background(), prompt.Question{})
	req.NoError(err)
	req.False(no)
}
