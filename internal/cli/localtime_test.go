package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/rileyhilliard/statusboard/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintLocaltime(t *testing.T) {
	tests := []struct {
		name string
		zone string
		args []string
		year int
		want string
	}{
		{
			name: "daylight time",
			zone: "US/Central",
			args: []string{"1625140800"},
			want: "1625140800  2021-07-01 07:00:00 AM CDT\n",
		},
		{
			name: "standard time",
			zone: "US/Central",
			args: []string{"1609459200"},
			want: "1609459200  2020-12-31 06:00:00 PM CST\n",
		},
		{
			name: "several epochs",
			zone: "US/Eastern",
			args: []string{"0", "1625140800"},
			want: "0  1969-12-31 07:00:00 PM EST\n" +
				"1625140800  2021-07-01 08:00:00 AM EDT\n",
		},
		{
			name: "no args uses now",
			zone: "US/Central",
			want: "1625140800  2021-07-01 07:00:00 AM CDT\n",
		},
		{
			name: "transitions only",
			zone: "US/Central",
			year: 2021,
			want: "US/Central 2021\n" +
				"  daylight starts  2021-03-14 03:00:00 AM CDT\n" +
				"  daylight ends    2021-11-07 01:00:00 AM CST\n",
		},
	}

	now := time.Unix(1625140800, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, printLocaltime(&buf, tt.zone, tt.args, tt.year, now))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrintLocaltime_Errors(t *testing.T) {
	var buf bytes.Buffer

	err := printLocaltime(&buf, "Mars/Olympus", nil, 0, time.Now())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Contains(t, err.Error(), "US/Central")

	err = printLocaltime(&buf, "US/Central", []string{"yesterday"}, 0, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'yesterday' is not an epoch timestamp")

	assert.Empty(t, buf.String())
}
