package cli

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"dev", "dev"},
		{"1.2.3", "v1.2.3"},
		{"v1.2.3", "v1.2.3"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatVersion(tt.in), "formatVersion(%q)", tt.in)
	}
}

func TestPrintVersion(t *testing.T) {
	originalVersion, originalCommit, originalDate := version, commit, date
	defer SetVersionInfo(originalVersion, originalCommit, originalDate)

	SetVersionInfo("1.2.3", "abc1234", "2025-01-08T12:00:00Z")

	var buf bytes.Buffer
	cmd := &cobra.Command{Use: "version"}
	cmd.SetOut(&buf)

	printVersion(cmd, false)
	out := buf.String()
	assert.Contains(t, out, "statusboard v1.2.3\n")
	assert.Contains(t, out, "commit: abc1234\n")
	assert.Contains(t, out, "built: 2025-01-08T12:00:00Z\n")
	assert.Contains(t, out, "go: "+runtime.Version())
	assert.Contains(t, out, "os/arch: "+runtime.GOOS+"/"+runtime.GOARCH)

	buf.Reset()
	printVersion(cmd, true)
	assert.Equal(t, "1.2.3\n", buf.String())
}
