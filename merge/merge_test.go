package merge

import (
	"fmt"
	"strings"
	"testing"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/stretchr/testify/require"
)

func gridIndex(width, length int) IndexFunc {
	return func(x, y, z int) int { return x + z*width + y*width*length }
}

func TestFindOriginPicksMinCornerNonAir(t *testing.T) {
	width, height, length := 2, 2, 2
	index := gridIndex(width, length)
	keyOf := func(i int) (string, bool) {
		if i == index(1, 1, 1) {
			return "stone", true
		}
		return "", false
	}
	x, y, z := FindOrigin(width, height, length, index, keyOf)
	require.Equal(t, 1, x)
	require.Equal(t, 1, y)
	require.Equal(t, 1, z)
}

func TestEmitSingleCell(t *testing.T) {
	width, height, length := 1, 1, 1
	index := gridIndex(width, length)
	keyOf := func(i int) (string, bool) { return "stone", true }

	var buf strings.Builder
	err := Emit(width, height, length, index, keyOf, cube.Pos{0, 0, 0}, &buf)
	require.NoError(t, err)
	require.Equal(t, "setblock ~1 ~1 ~1 stone\n", buf.String())
}

func TestEmit2x1x1Run(t *testing.T) {
	width, height, length := 2, 1, 1
	index := gridIndex(width, length)
	keyOf := func(i int) (string, bool) { return "stone", true }

	var buf strings.Builder
	err := Emit(width, height, length, index, keyOf, cube.Pos{0, 0, 0}, &buf)
	require.NoError(t, err)
	require.Equal(t, "fill ~1 ~1 ~1 ~2 ~1 ~1 stone\n", buf.String())
}

func TestEmitAirSandwichSkipsAirCells(t *testing.T) {
	width, height, length := 3, 1, 1
	index := gridIndex(width, length)
	keyOf := func(i int) (string, bool) {
		if i == index(1, 0, 0) {
			return "", false
		}
		return "stone", true
	}

	var buf strings.Builder
	err := Emit(width, height, length, index, keyOf, cube.Pos{0, 0, 0}, &buf)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "setblock ~1 ~1 ~1 stone", lines[0])
	require.Equal(t, "setblock ~3 ~1 ~1 stone", lines[1])
}

func TestEmit2x2x2HomogeneousFillsToOneBox(t *testing.T) {
	width, height, length := 2, 2, 2
	index := gridIndex(width, length)
	keyOf := func(i int) (string, bool) { return "stone", true }

	var buf strings.Builder
	err := Emit(width, height, length, index, keyOf, cube.Pos{0, 0, 0}, &buf)
	require.NoError(t, err)
	require.Equal(t, "fill ~1 ~1 ~1 ~2 ~2 ~2 stone\n", buf.String())
}

func TestEmitNonOverlappingAndVolumeConserving(t *testing.T) {
	width, height, length := 4, 2, 3
	index := gridIndex(width, length)
	count := width * height * length
	keys := make([]string, count)
	for i := range keys {
		if i%5 == 0 {
			keys[i] = "a"
		} else if i%3 == 0 {
			keys[i] = "b"
		} else {
			keys[i] = ""
		}
	}
	keyOf := func(i int) (string, bool) {
		if keys[i] == "" {
			return "", false
		}
		return keys[i], true
	}

	var buf strings.Builder
	err := Emit(width, height, length, index, keyOf, cube.Pos{0, 0, 0}, &buf)
	require.NoError(t, err)
	require.NotEmpty(t, buf.String())

	// Origin is (0,0,0), so every emitted coordinate is the cell coordinate
	// plus one.
	covered := make([]bool, count)
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var x1, y1, z1, x2, y2, z2 int
		var key string
		if strings.HasPrefix(line, "setblock ") {
			_, err := fmt.Sscanf(line, "setblock ~%d ~%d ~%d %s", &x1, &y1, &z1, &key)
			require.NoError(t, err)
			x2, y2, z2 = x1, y1, z1
		} else {
			_, err := fmt.Sscanf(line, "fill ~%d ~%d ~%d ~%d ~%d ~%d %s", &x1, &y1, &z1, &x2, &y2, &z2, &key)
			require.NoError(t, err)
		}
		for y := y1 - 1; y <= y2-1; y++ {
			for z := z1 - 1; z <= z2-1; z++ {
				for x := x1 - 1; x <= x2-1; x++ {
					i := index(x, y, z)
					require.False(t, covered[i], "cell %d covered by two boxes", i)
					covered[i] = true
					require.Equal(t, keys[i], key)
				}
			}
		}
	}
	for i := range keys {
		require.Equal(t, keys[i] != "", covered[i], "cell %d", i)
	}
}
