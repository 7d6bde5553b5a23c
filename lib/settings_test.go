package lib

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSettingsMixin(t *testing.T) {
	setts := Settings{"a": int64(1), "b": "x"}
	setts = setts.Mixin(
		Settings{"a": int64(2)},
		map[string]interface{}{"c": true},
		nil,
	)
	require.Equal(t, int64(2), setts.Int64("a"))
	require.Equal(t, "x", setts.String("b"))
	require.True(t, setts.Bool("c"))
}

func TestSettingsInt64(t *testing.T) {
	setts := Settings{
		"int": int(10), "int64": int64(20), "uint": uint(30),
		"uint64": uint64(40), "float64": float64(50),
	}
	require.Equal(t, int64(10), setts.Int64("int"))
	require.Equal(t, int64(20), setts.Int64("int64"))
	require.Equal(t, int64(30), setts.Int64("uint"))
	require.Equal(t, int64(40), setts.Int64("uint64"))
	require.Equal(t, int64(50), setts.Int64("float64"))

	require.Panics(t, func() { setts.Int64("missing") })
	require.Panics(t, func() { Settings{"k": "str"}.Int64("k") })
}

func TestSettingsTyped(t *testing.T) {
	setts := Settings{"flag": true, "name": "pool"}
	require.True(t, setts.Bool("flag"))
	require.Equal(t, "pool", setts.String("name"))
	require.Panics(t, func() { setts.Bool("name") })
	require.Panics(t, func() { setts.String("flag") })
	require.Panics(t, func() { setts.String("missing") })
	require.Panics(t, func() { setts.Bool("missing") })
}
