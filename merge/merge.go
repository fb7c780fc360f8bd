package merge

import (
	"fmt"
	"io"

	"github.com/df-mc/dragonfly/server/block/cube"
)

// Box is one axis-aligned run of identically-translated cells, in
// schematic-local coordinates.
type Box struct {
	Min, Max cube.Pos
	Key      string
}

// Emit walks the volume in linear XZY order (x fastest, then z, then y),
// greedily expanding each unvisited translated cell into an axis-aligned
// box of unvisited neighbours with the same key — first along X, then Z,
// then Y, in that order, stopping each axis at the first mismatch — and
// writes one
// setblock/fill command line per box to w, relative to origin.
func Emit(width, height, length int, index IndexFunc, keyOf KeyFunc, origin cube.Pos, w io.Writer) error {
	visited := make([]bool, width*height*length)

	for y := 0; y < height; y++ {
		for z := 0; z < length; z++ {
			for x := 0; x < width; x++ {
				i := index(x, y, z)
				if visited[i] {
					continue
				}
				key, ok := keyOf(i)
				if !ok {
					visited[i] = true
					continue
				}

				box := expand(width, height, length, index, keyOf, visited, x, y, z, key)
				markVisited(index, visited, box)

				if err := writeCommand(w, box, origin); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func expand(width, height, length int, index IndexFunc, keyOf KeyFunc, visited []bool, x, y, z int, key string) Box {
	x2 := x
	for x2+1 < width && cellMatches(index, keyOf, visited, x2+1, y, z, key) {
		x2++
	}

	z2 := z
	for z2+1 < length {
		if !rowMatches(index, keyOf, visited, x, x2, y, z2+1, key) {
			break
		}
		z2++
	}

	y2 := y
	for y2+1 < height {
		if !slabMatches(index, keyOf, visited, x, x2, z, z2, y2+1, key) {
			break
		}
		y2++
	}

	return Box{
		Min: cube.Pos{x, y, z},
		Max: cube.Pos{x2, y2, z2},
		Key: key,
	}
}

func cellMatches(index IndexFunc, keyOf KeyFunc, visited []bool, x, y, z int, key string) bool {
	i := index(x, y, z)
	if visited[i] {
		return false
	}
	k, ok := keyOf(i)
	return ok && k == key
}

func rowMatches(index IndexFunc, keyOf KeyFunc, visited []bool, x1, x2, y, z int, key string) bool {
	for x := x1; x <= x2; x++ {
		if !cellMatches(index, keyOf, visited, x, y, z, key) {
			return false
		}
	}
	return true
}

func slabMatches(index IndexFunc, keyOf KeyFunc, visited []bool, x1, x2, z1, z2, y int, key string) bool {
	for z := z1; z <= z2; z++ {
		if !rowMatches(index, keyOf, visited, x1, x2, y, z, key) {
			return false
		}
	}
	return true
}

func markVisited(index IndexFunc, visited []bool, box Box) {
	for y := box.Min.Y(); y <= box.Max.Y(); y++ {
		for z := box.Min.Z(); z <= box.Max.Z(); z++ {
			for x := box.Min.X(); x <= box.Max.X(); x++ {
				visited[index(x, y, z)] = true
			}
		}
	}
}

func writeCommand(w io.Writer, box Box, origin cube.Pos) error {
	rel1 := box.Min.Sub(origin).Add(cube.Pos{1, 1, 1})
	if box.Min == box.Max {
		_, err := fmt.Fprintf(w, "setblock ~%d ~%d ~%d %s\n", rel1.X(), rel1.Y(), rel1.Z(), box.Key)
		return err
	}
	rel2 := box.Max.Sub(origin).Add(cube.Pos{1, 1, 1})
	_, err := fmt.Fprintf(w, "fill ~%d ~%d ~%d ~%d ~%d ~%d %s\n", rel1.X(), rel1.Y(), rel1.Z(), rel2.X(), rel2.Y(), rel2.Z(), box.Key)
	return err
}
