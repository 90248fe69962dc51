// Package icons holds the weather condition bitmaps drawn next to each weather block.
package icons

import (
	"fmt"
	"image"
	"sort"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Size is the width and height of every icon in pixels.
const Size = 24

// Ink and Paper are the two pixel values of a monochrome e-paper frame.
const (
	Ink   = image1bit.Off
	Paper = image1bit.On
)

// art is drawn with '#' for ink and '.' for paper, one string per row.
var art = map[string][]string{
	"sun": {
		"........................",
		"...........##...........",
		"...........##...........",
		"...##......##......##...",
		"....##.....##.....##....",
		".....##..........##.....",
		".........######.........",
		"........########........",
		".......##......##.......",
		"......##........##......",
		"......##........##......",
		".####.##........##.####.",
		".####.##........##.####.",
		"......##........##......",
		"......##........##......",
		".......##......##.......",
		"........########........",
		".........######.........",
		".....##..........##.....",
		"....##.....##.....##....",
		"...##......##......##...",
		"...........##...........",
		"...........##...........",
		"........................",
	},
	"cloud": {
		"........................",
		"........................",
		"........................",
		"........................",
		"........................",
		"..........#####.........",
		"........##.....##.......",
		".......#.........#......",
		"......#...........#.....",
		"...####...........####..",
		"..#...................#.",
		".#.....................#",
		".#.....................#",
		".#.....................#",
		"..#...................#.",
		"...###################..",
		"........................",
		"........................",
		"........................",
		"........................",
		"........................",
		"........................",
		"........................",
		"........................",
	},
	"fog": {
		"........................",
		"........................",
		"........................",
		"........................",
		"..####################..",
		"........................",
		"........................",
		"....################....",
		"........................",
		"........................",
		"..####################..",
		"........................",
		"........................",
		"....################....",
		"........................",
		"........................",
		"..####################..",
		"........................",
		"........................",
		"....################....",
		"........................",
		"........................",
		"........................",
		"........................",
	},
	"rain": {
		"........................",
		"..........#####.........",
		"........##.....##.......",
		".......#.........#......",
		"......#...........#.....",
		"...####...........####..",
		"..#...................#.",
		".#.....................#",
		".#.....................#",
		"..#...................#.",
		"...###################..",
		"........................",
		".....#.....#.....#......",
		"....#.....#.....#.......",
		"...#.....#.....#........",
		"........................",
		"......#.....#.....#.....",
		".....#.....#.....#......",
		"....#.....#.....#.......",
		"........................",
		"...#.....#.....#........",
		"..#.....#.....#.........",
		"........................",
		"........................",
	},
	"lightning": {
		"........................",
		"..........#####.........",
		"........##.....##.......",
		".......#.........#......",
		"......#...........#.....",
		"...####...........####..",
		"..#...................#.",
		".#.....................#",
		".#.....................#",
		"..#...................#.",
		"...#######.....#######..",
		"..........#...#.........",
		".........#...#..........",
		"........#...#...........",
		".......#....#####.......",
		"......#####.....#.......",
		"..........#....#........",
		".........#....#.........",
		"........#....#..........",
		"........#...#...........",
		"........#..#............",
		"........#.#.............",
		"........##..............",
		"........................",
	},
	"snow": {
		"........................",
		"...........##...........",
		"........#..##..#........",
		".........#.##.#.........",
		"...#......####......#...",
		"....#......##......#....",
		".....#.....##.....#.....",
		"..#...#....##....#...#..",
		"...#...#...##...#...#...",
		"....#...#..##..#...#....",
		"#####....#.##.#....#####",
		"..........####..........",
		"..........####..........",
		"#####....#.##.#....#####",
		"....#...#..##..#...#....",
		"...#...#...##...#...#...",
		"..#...#....##....#...#..",
		".....#.....##.....#.....",
		"....#......##......#....",
		"...#......####......#...",
		".........#.##.#.........",
		"........#..##..#........",
		"...........##...........",
		"........................",
	},
}

var bitmaps = map[string]*image1bit.VerticalLSB{}

func init() {
	for name, rows := range art {
		img, err := parse(rows)
		if err != nil {
			panic(fmt.Sprintf("icons: %s: %v", name, err))
		}
		bitmaps[name] = img
	}
}

func parse(rows []string) (*image1bit.VerticalLSB, error) {
	if len(rows) != Size {
		return nil, fmt.Errorf("got %d rows, want %d", len(rows), Size)
	}

	img := image1bit.NewVerticalLSB(image.Rect(0, 0, Size, Size))
	for y, row := range rows {
		if len(row) != Size {
			return nil, fmt.Errorf("row %d is %d wide, want %d", y, len(row), Size)
		}
		for x, c := range row {
			switch c {
			case '#':
				img.SetBit(x, y, Ink)
			case '.':
				img.SetBit(x, y, Paper)
			default:
				return nil, fmt.Errorf("row %d: unexpected %q", y, c)
			}
		}
	}
	return img, nil
}

// Get returns the bitmap for name.
func Get(name string) (image.Image, bool) {
	img, ok := bitmaps[name]
	if !ok {
		return nil, false
	}
	return img, true
}

// Names lists the known icon names in sorted order.
func Names() []string {
	names := make([]string, 0, len(bitmaps))
	for name := range bitmaps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
