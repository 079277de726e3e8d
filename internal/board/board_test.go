package board

import (
	"fmt"
	"testing"
	"time"

	"github.com/rileyhilliard/statusboard/internal/errors"
	"github.com/rileyhilliard/statusboard/internal/status"
	"github.com/rileyhilliard/statusboard/internal/tiles"
	"github.com/rileyhilliard/statusboard/internal/tz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2021-07-01 12:00:00 UTC, 07:00 CDT.
const julyNoon int64 = 1625140800

func newTestBuilder(t *testing.T, slots int) (*Builder, *tiles.Atlas) {
	t.Helper()
	atlas, r, err := tiles.NewDefault()
	require.NoError(t, err)
	return NewBuilder(slots, r, tz.NewCalculator(tz.USCentral)), atlas
}

func items(n int) []status.Item {
	out := make([]status.Item, n)
	for i := range out {
		out[i] = status.Item{Kind: status.Host, Host: fmt.Sprintf("host%02d", i), State: status.HostDown}
	}
	return out
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name         string
		total, slots int
		wantVisible  int
		wantHidden   int
		wantOverflow int
		wantMessage  string
	}{
		{"empty", 0, 10, 0, 10, 0, "Nothing to report"},
		{"partial", 3, 10, 3, 7, 0, ""},
		{"exact", 10, 10, 10, 0, 0, ""},
		{"overflow", 15, 10, 10, 0, 5, "and 5 more..."},
		{"one over", 11, 10, 10, 0, 1, "and 1 more..."},
		{"zero slots", 2, 0, 0, 0, 2, "and 2 more..."},
		{"negative slots", 2, -3, 0, 0, 2, "and 2 more..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Paginate(items(tt.total), tt.slots)

			assert.Len(t, page.Visible, tt.wantVisible)
			assert.Equal(t, tt.wantHidden, page.Hidden)
			assert.Equal(t, tt.total, page.Total)
			assert.Equal(t, tt.wantOverflow, page.Overflow)
			assert.GreaterOrEqual(t, page.Overflow, 0)
			assert.Equal(t, tt.wantMessage, page.Message())
		})
	}
}

func TestPaginate_KeepsOrder(t *testing.T) {
	list := items(12)
	page := Paginate(list, 10)
	assert.Equal(t, list[:10], page.Visible)
}

func TestStateColor(t *testing.T) {
	tests := []struct {
		item status.Item
		want Color
	}{
		{status.Item{Kind: status.Host, State: status.HostUp}, ColorOK},
		{status.Item{Kind: status.Host, State: status.HostDown}, ColorCritical},
		{status.Item{Kind: status.Host, State: status.HostUnreachable}, ColorUnknown},
		{status.Item{Kind: status.Service, State: status.ServiceOK}, ColorOK},
		{status.Item{Kind: status.Service, State: status.ServiceWarning}, ColorWarning},
		{status.Item{Kind: status.Service, State: status.ServiceCritical}, ColorCritical},
		{status.Item{Kind: status.Service, State: status.ServiceUnknown}, ColorUnknown},
		{status.Item{Kind: status.Service, State: 9}, ColorUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StateColor(tt.item), "%s state %d", tt.item.Kind, tt.item.State)
	}
}

func TestColor_Hex(t *testing.T) {
	assert.Equal(t, "#23BD7D", ColorOK.Hex())
	assert.Equal(t, "#FF4C68", ColorCritical.Hex())
	assert.Equal(t, "#000000", ColorNone.Hex())
}

func TestBuild_HostAndService(t *testing.T) {
	b, atlas := newTestBuilder(t, DefaultSlots)
	at := time.Unix(julyNoon, 0)

	ranked := []status.Item{
		{Kind: status.Host, Host: "A", State: status.HostDown, LastHardStateChange: julyNoon},
		{Kind: status.Service, Host: "B", Service: "C", State: status.ServiceCritical},
	}

	frame := b.Build(ranked, at)

	require.Len(t, frame.Slots, DefaultSlots)
	assert.Equal(t, 2, frame.VisibleCount())
	assert.Equal(t, 2, frame.Total)
	assert.Zero(t, frame.Overflow)
	assert.Empty(t, frame.StatusText)
	assert.Equal(t, "", atlas.Text(frame.Status))
	assert.NoError(t, frame.Err)
	assert.Equal(t, at, frame.BuiltAt)

	host := frame.Slots[0]
	assert.True(t, host.Visible)
	assert.Equal(t, ColorCritical, host.Color)
	assert.Equal(t, "A", atlas.Text(host.Primary))
	assert.Equal(t, tiles.StyleBold, atlas.Glyph(host.Primary[0]).Style)
	assert.Equal(t, "DOWN since 2021-07-01 07:00:00 AM", atlas.Text(host.Secondary))
	assert.Equal(t, tiles.StyleNormal, atlas.Glyph(host.Secondary[0]).Style)

	svc := frame.Slots[1]
	assert.True(t, svc.Visible)
	assert.Equal(t, ColorCritical, svc.Color)
	assert.Equal(t, "C @ B", atlas.Text(svc.Primary))
	assert.Equal(t, "CRITICAL since never", atlas.Text(svc.Secondary))

	for i := 2; i < DefaultSlots; i++ {
		s := frame.Slots[i]
		assert.False(t, s.Visible, "slot %d", i)
		assert.Equal(t, status.Item{}, s.Item, "hidden slot %d must not carry an item", i)
		assert.Nil(t, s.Primary)
	}
}

func TestBuild_Empty(t *testing.T) {
	b, atlas := newTestBuilder(t, 4)

	frame := b.Build(nil, time.Now())

	assert.Len(t, frame.Slots, 4)
	assert.Zero(t, frame.VisibleCount())
	assert.Equal(t, EmptyMessage, frame.StatusText)
	assert.Equal(t, EmptyMessage, atlas.Text(frame.Status))
}

func TestBuild_Overflow(t *testing.T) {
	b, atlas := newTestBuilder(t, 3)

	frame := b.Build(items(8), time.Now())

	assert.Equal(t, 3, frame.VisibleCount())
	assert.Equal(t, 5, frame.Overflow)
	assert.Equal(t, "and 5 more...", atlas.Text(frame.Status))
	assert.Equal(t, "host02", atlas.Text(frame.Slots[2].Primary))
}

func TestBuild_LongNameTruncated(t *testing.T) {
	b, atlas := newTestBuilder(t, 1)
	long := ""
	for len(long) < 2*tiles.RowWidth {
		long += "abcdefghij"
	}

	frame := b.Build([]status.Item{{Kind: status.Host, Host: long, State: status.HostDown}}, time.Now())

	assert.Equal(t, long[:tiles.RowWidth], atlas.Text(frame.Slots[0].Primary))
}

func TestErrorFrame_KeepsSlots(t *testing.T) {
	b, atlas := newTestBuilder(t, 3)
	prev := b.Build(items(2), time.Now())

	cause := fmt.Errorf("fetch services: dial tcp: connection refused")
	frame := b.ErrorFrame(prev, cause, time.Now())

	assert.Equal(t, prev.Slots, frame.Slots)
	assert.Equal(t, prev.Total, frame.Total)
	assert.Equal(t, cause, frame.Err)
	assert.Equal(t, "ERROR: fetch services: dial tcp: connection refused", frame.StatusText)
	assert.Equal(t, frame.StatusText, atlas.Text(frame.Status))

	// The previous frame is not modified.
	frame.Slots[0].Visible = false
	assert.True(t, prev.Slots[0].Visible)
}

func TestErrorFrame_StructuredError(t *testing.T) {
	b, _ := newTestBuilder(t, 2)

	err := errors.WrapWithCode(fmt.Errorf("HTTP 503"), errors.ErrFetch, "services unavailable", "")
	frame := b.ErrorFrame(Frame{}, err, time.Now())

	assert.Equal(t, "ERROR: services unavailable: HTTP 503", frame.StatusText)
	assert.Len(t, frame.Slots, 2)
	assert.Zero(t, frame.VisibleCount())
}

func TestNewBuilder_DefaultSlots(t *testing.T) {
	_, r, err := tiles.NewDefault()
	require.NoError(t, err)
	assert.Equal(t, DefaultSlots, NewBuilder(0, r, nil).Slots())
}
