package display

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/font/basicfont"
)

// Cell size of the display font. Lines are 8 or 10 px apart, so every glyph,
// descenders included, stays inside an 8x8 box.
const (
	cellWidth  = 8
	cellHeight = 8
	cellAscent = 7
)

// glyphs are 5x7 patterns for ' ' through '~'. Rows are separated by spaces,
// '#' is ink, and an optional eighth row holds descenders.
var glyphs = []string{
	"..... ..... ..... ..... ..... ..... .....", // ' '
	"..#.. ..#.. ..#.. ..#.. ..... ..... ..#..", // !
	".#.#. .#.#. .#.#. ..... ..... ..... .....", // "
	".#.#. .#.#. ##### .#.#. ##### .#.#. .#.#.", // #
	"..#.. .#### #.#.. .###. ..#.# ####. ..#..", // $
	"##... ##..# ...#. ..#.. .#... #..## ...##", // %
	".##.. #..#. #.#.. .#... #.#.# #..#. .##.#", // &
	".##.. ..#.. .#... ..... ..... ..... .....", // '
	"...#. ..#.. .#... .#... .#... ..#.. ...#.", // (
	".#... ..#.. ...#. ...#. ...#. ..#.. .#...", // )
	"..... ..#.. #.#.# .###. #.#.# ..#.. .....", // *
	"..... ..#.. ..#.. ##### ..#.. ..#.. .....", // +
	"..... ..... ..... ..... .##.. ..#.. .#...", // ,
	"..... ..... ..... ##### ..... ..... .....", // -
	"..... ..... ..... ..... ..... .##.. .##..", // .
	"..... ....# ...#. ..#.. .#... #.... .....", // /
	".###. #...# #..## #.#.# ##..# #...# .###.", // 0
	"..#.. .##.. ..#.. ..#.. ..#.. ..#.. .###.", // 1
	".###. #...# ....# ...#. ..#.. .#... #####", // 2
	"##### ...#. ..#.. ...#. ....# #...# .###.", // 3
	"...#. ..##. .#.#. #..#. ##### ...#. ...#.", // 4
	"##### #.... ####. ....# ....# #...# .###.", // 5
	"..##. .#... #.... ####. #...# #...# .###.", // 6
	"##### ....# ...#. ..#.. .#... .#... .#...", // 7
	".###. #...# #...# .###. #...# #...# .###.", // 8
	".###. #...# #...# .#### ....# ...#. .##..", // 9
	"..... .##.. .##.. ..... .##.. .##.. .....", // :
	"..... .##.. .##.. ..... .##.. ..#.. .#...", // ;
	"...#. ..#.. .#... #.... .#... ..#.. ...#.", // <
	"..... ..... ##### ..... ##### ..... .....", // =
	".#... ..#.. ...#. ....# ...#. ..#.. .#...", // >
	".###. #...# ....# ...#. ..#.. ..... ..#..", // ?
	".###. #...# ....# .##.# #.#.# #.#.# .###.", // @
	".###. #...# #...# ##### #...# #...# #...#", // A
	"####. #...# #...# ####. #...# #...# ####.", // B
	".###. #...# #.... #.... #.... #...# .###.", // C
	"###.. #..#. #...# #...# #...# #..#. ###..", // D
	"##### #.... #.... ####. #.... #.... #####", // E
	"##### #.... #.... ####. #.... #.... #....", // F
	".###. #...# #.... #.### #...# #...# .####", // G
	"#...# #...# #...# ##### #...# #...# #...#", // H
	".###. ..#.. ..#.. ..#.. ..#.. ..#.. .###.", // I
	"..### ...#. ...#. ...#. ...#. #..#. .##..", // J
	"#...# #..#. #.#.. ##... #.#.. #..#. #...#", // K
	"#.... #.... #.... #.... #.... #.... #####", // L
	"#...# ##.## #.#.# #.#.# #...# #...# #...#", // M
	"#...# #...# ##..# #.#.# #..## #...# #...#", // N
	".###. #...# #...# #...# #...# #...# .###.", // O
	"####. #...# #...# ####. #.... #.... #....", // P
	".###. #...# #...# #...# #.#.# #..#. .##.#", // Q
	"####. #...# #...# ####. #.#.. #..#. #...#", // R
	".#### #.... #.... .###. ....# ....# ####.", // S
	"##### ..#.. ..#.. ..#.. ..#.. ..#.. ..#..", // T
	"#...# #...# #...# #...# #...# #...# .###.", // U
	"#...# #...# #...# #...# #...# .#.#. ..#..", // V
	"#...# #...# #...# #.#.# #.#.# #.#.# .#.#.", // W
	"#...# #...# .#.#. ..#.. .#.#. #...# #...#", // X
	"#...# #...# #...# .#.#. ..#.. ..#.. ..#..", // Y
	"##### ....# ...#. ..#.. .#... #.... #####", // Z
	".###. .#... .#... .#... .#... .#... .###.", // [
	"..... #.... .#... ..#.. ...#. ....# .....", // \
	".###. ...#. ...#. ...#. ...#. ...#. .###.", // ]
	"..#.. .#.#. #...# ..... ..... ..... .....", // ^
	"..... ..... ..... ..... ..... ..... #####", // _
	".#... ..#.. ...#. ..... ..... ..... .....", // `
	"..... ..... .###. ....# .#### #...# .####", // a
	"#.... #.... #.##. ##..# #...# #...# ####.", // b
	"..... ..... .###. #.... #.... #...# .###.", // c
	"....# ....# .##.# #..## #...# #...# .####", // d
	"..... ..... .###. #...# ##### #.... .###.", // e
	"..##. .#..# .#... ###.. .#... .#... .#...", // f
	"..... ..... .#### #...# #...# .#### ....# .###.", // g
	"#.... #.... #.##. ##..# #...# #...# #...#", // h
	"..#.. ..... .##.. ..#.. ..#.. ..#.. .###.", // i
	"...#. ..... ..##. ...#. ...#. ...#. #..#. .##..", // j
	"#.... #.... #..#. #.#.. ##... #.#.. #..#.", // k
	".##.. ..#.. ..#.. ..#.. ..#.. ..#.. .###.", // l
	"..... ..... ##.#. #.#.# #.#.# #...# #...#", // m
	"..... ..... #.##. ##..# #...# #...# #...#", // n
	"..... ..... .###. #...# #...# #...# .###.", // o
	"..... ..... ####. #...# #...# ####. #.... #....", // p
	"..... ..... .#### #...# #...# .#### ....# ....#", // q
	"..... ..... #.##. ##..# #.... #.... #....", // r
	"..... ..... .###. #.... .###. ....# ####.", // s
	".#... .#... ###.. .#... .#... .#..# ..##.", // t
	"..... ..... #...# #...# #...# #..## .##.#", // u
	"..... ..... #...# #...# #...# .#.#. ..#..", // v
	"..... ..... #...# #...# #.#.# #.#.# .#.#.", // w
	"..... ..... #...# .#.#. ..#.. .#.#. #...#", // x
	"..... ..... #...# #...# #...# .#### ....# .###.", // y
	"..... ..... ##### ...#. ..#.. .#... #####", // z
	"...#. ..#.. ..#.. .#... ..#.. ..#.. ...#.", // {
	"..#.. ..#.. ..#.. ..#.. ..#.. ..#.. ..#..", // |
	".#... ..#.. ..#.. ...#. ..#.. ..#.. .#...", // }
	"..... ..... .#... #.#.# ...#. ..... .....", // ~
}

// face8x8 is an ASCII bitmap face with an 8x8 cell, so 30 characters span 240 px.
var face8x8 = newFace8x8()

func newFace8x8() *basicfont.Face {
	mask := image.NewAlpha(image.Rect(0, 0, cellWidth, len(glyphs)*cellHeight))
	for i, g := range glyphs {
		rows := strings.Fields(g)
		if len(rows) < cellAscent || len(rows) > cellHeight {
			panic(fmt.Sprintf("display: glyph %q has %d rows", rune(' '+i), len(rows)))
		}
		for y, row := range rows {
			if len(row) != 5 {
				panic(fmt.Sprintf("display: glyph %q row %d is %d wide", rune(' '+i), y, len(row)))
			}
			for x, c := range row {
				if c == '#' {
					// one column of space on the left, two on the right
					mask.Pix[mask.PixOffset(x+1, i*cellHeight+y)] = 0xff
				}
			}
		}
	}

	return &basicfont.Face{
		Advance: cellWidth,
		Width:   cellWidth,
		Height:  cellHeight,
		Ascent:  cellAscent,
		Descent: cellHeight - cellAscent,
		Mask:    mask,
		Ranges: []basicfont.Range{
			{Low: ' ', High: '\u007f', Offset: 0},
		},
	}
}
