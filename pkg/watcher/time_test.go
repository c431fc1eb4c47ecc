package watcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTime(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want Time
	}{
		{0, "0s"},
		{-time.Second, "-1"},
		{10 * time.Second, "10s"},
		{90 * time.Second, "90s"},
		{5 * time.Minute, "5m"},
		{2 * time.Hour, "2h"},
		{48 * time.Hour, "2d"},
		{1500 * time.Millisecond, "1500ms"},
		{3 * time.Microsecond, "3micros"},
		{7, "7nanos"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NewTime(tc.in), tc.in.String())
	}
}

func TestTime_Duration(t *testing.T) {
	d, err := Time("5m").Duration()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, d)

	d, err = Time("250ms").Duration()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, d)

	d, err = Time("-1").Duration()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(-1), d)

	_, err = Time("soon").Duration()
	assert.Error(t, err)
	_, err = Time("12").Duration()
	assert.Error(t, err)
}

func TestTime_UnmarshalJSON(t *testing.T) {
	var tm Time
	require.NoError(t, tm.UnmarshalJSON([]byte(`"10s"`)))
	assert.Equal(t, Time("10s"), tm)

	require.NoError(t, tm.UnmarshalJSON([]byte(`1500`)))
	assert.Equal(t, Time("1500ms"), tm)

	require.NoError(t, tm.UnmarshalJSON([]byte(`-1`)))
	assert.Equal(t, Time("-1"), tm)

	err := tm.UnmarshalJSON([]byte(`{}`))
	require.Error(t, err)
	assert.True(t, IsInvalidJSONError(err))
}
