package cli

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/rileyhilliard/statusboard/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestIsUnknownCommandError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "unknown command error",
			err:  stderrors.New(`unknown command "foo" for "statusboard"`),
			want: true,
		},
		{
			name: "unknown flag error",
			err:  stderrors.New(`unknown flag: --foo`),
			want: true,
		},
		{
			name: "other error",
			err:  stderrors.New("connection refused"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUnknownCommandError(tt.err))
		})
	}
}

func TestExtractUnknownCommand(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "standard cobra format",
			err:  stderrors.New(`unknown command "foo" for "statusboard"`),
			want: "foo",
		},
		{
			name: "command with hyphen",
			err:  stderrors.New(`unknown command "dash-board" for "statusboard"`),
			want: "dash-board",
		},
		{
			name: "no quotes returns empty",
			err:  stderrors.New("unknown command foo"),
			want: "",
		},
		{
			name: "single quote returns empty",
			err:  stderrors.New(`unknown command "foo`),
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractUnknownCommand(tt.err))
		})
	}
}

func TestPrintError(t *testing.T) {
	t.Run("unknown command", func(t *testing.T) {
		var buf bytes.Buffer
		printError(&buf, stderrors.New(`unknown command "borad" for "statusboard"`))
		assert.Contains(t, buf.String(), "'borad' is not a statusboard command.")
		assert.NotContains(t, buf.String(), "Did you mean")

		buf.Reset()
		printError(&buf, stderrors.New(`unknown command "chekc" for "statusboard"`))
		assert.Contains(t, buf.String(), "Did you mean 'check'?")
		assert.Contains(t, buf.String(), "statusboard --help")
	})

	t.Run("structured error", func(t *testing.T) {
		var buf bytes.Buffer
		printError(&buf, errors.New(errors.ErrConfig, "No monitoring API URL configured", "Run 'statusboard init'."))
		assert.Equal(t, "✗ No monitoring API URL configured\n\n  Run 'statusboard init'.\n", buf.String())
	})
}

func TestRootCommand_Registered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"run", "init", "check", "localtime", "version", "completion"} {
		assert.True(t, names[want], "missing command %q", want)
	}

	for _, flag := range []string{"config", "no-color", "verbose"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), "missing flag --%s", flag)
	}
}
