package engine

import (
	"fmt"
	"strings"
)

// Difficulty selects the block-value distribution used by Reset.
type Difficulty int32

const (
	Simple Difficulty = iota
	Normal
	Hard
	Compete // Hardest tier: a SpawnBall tile is placed on every new row
)

// Difficulties lists every tier in wire order.
var Difficulties = []Difficulty{Simple, Normal, Hard, Compete}

// String returns the lowercase name of the difficulty.
func (d Difficulty) String() string {
	switch d {
	case Simple:
		return "simple"
	case Normal:
		return "normal"
	case Hard:
		return "hard"
	case Compete:
		return "compete"
	default:
		return fmt.Sprintf("difficulty(%d)", int32(d))
	}
}

// Title returns the display label of the difficulty.
func (d Difficulty) Title() string {
	switch d {
	case Simple:
		return "Simple"
	case Normal:
		return "Normal"
	case Hard:
		return "Hard"
	case Compete:
		return "Compete"
	default:
		return "?"
	}
}

// Valid reports whether d is one of the four known tiers.
func (d Difficulty) Valid() bool {
	return d >= Simple && d <= Compete
}

// ParseDifficulty converts a difficulty name to its value.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simple", "easy":
		return Simple, nil
	case "normal":
		return Normal, nil
	case "hard":
		return Hard, nil
	case "compete":
		return Compete, nil
	}
	return Simple, fmt.Errorf("engine: unknown difficulty %q", s)
}

// Special is the kind of a non-block tile.
type Special int8

const (
	SpawnBall      Special = iota // Adds one ball to every later shot
	RemoveBlock                   // Retires the ball that touches it
	Randomize                     // Re-aims the ball at random, then becomes RandomizeSpent
	RandomizeSpent                // Fired Randomize tile; cleared on the next shift
	DoubleScore                   // Marks the running shot as double-score
)

// String returns the name of the special kind.
func (s Special) String() string {
	switch s {
	case SpawnBall:
		return "spawn"
	case RemoveBlock:
		return "remove"
	case Randomize:
		return "random"
	case RandomizeSpent:
		return "random-spent"
	case DoubleScore:
		return "double"
	default:
		return "?"
	}
}

// Glyph returns the character drawn for the tile.
func (s Special) Glyph() rune {
	switch s {
	case SpawnBall:
		return '+'
	case RemoveBlock:
		return '-'
	case Randomize, RandomizeSpent:
		return '?'
	case DoubleScore:
		return '$'
	default:
		return ' '
	}
}

// CellKind discriminates the Cell union.
type CellKind uint8

const (
	KindEmpty CellKind = iota
	KindCount
	KindSpecial
)

// Cell is one grid square: empty, a breakable block with a positive hit
// count, or a special tile.
type Cell struct {
	kind    CellKind
	count   int32
	special Special
}

// EmptyCell returns an empty cell.
func EmptyCell() Cell {
	return Cell{}
}

// CountCell returns a block that takes n hits to clear. n must be positive.
func CountCell(n int32) Cell {
	if n <= 0 {
		panic(fmt.Sprintf("engine: block count must be positive, got %d", n))
	}
	return Cell{kind: KindCount, count: n}
}

// SpecialCell returns a special tile of the given kind.
func SpecialCell(s Special) Cell {
	return Cell{kind: KindSpecial, special: s}
}

// Kind returns the cell's discriminator.
func (c Cell) Kind() CellKind { return c.kind }

// Count returns the remaining hits of a block, or 0 for other kinds.
func (c Cell) Count() int32 { return c.count }

// Special returns the tile kind. Only meaningful when IsSpecial.
func (c Cell) Special() Special { return c.special }

// IsEmpty reports whether the cell is empty.
func (c Cell) IsEmpty() bool { return c.kind == KindEmpty }

// IsBlock reports whether the cell is a breakable block.
func (c Cell) IsBlock() bool { return c.kind == KindCount }

// IsSpecial reports whether the cell is a special tile.
func (c Cell) IsSpecial() bool { return c.kind == KindSpecial }

// String returns a short human-readable form.
func (c Cell) String() string {
	switch c.kind {
	case KindCount:
		return fmt.Sprintf("%d", c.count)
	case KindSpecial:
		return string(c.special.Glyph())
	default:
		return "."
	}
}

// minSpecialCode is the wire code of the last special kind (DoubleScore).
const minSpecialCode int32 = -5

// Code returns the record encoding of the cell: 0 empty, n>0 a block,
// -1..-5 the special tiles.
func (c Cell) Code() int32 {
	switch c.kind {
	case KindCount:
		return c.count
	case KindSpecial:
		return -1 - int32(c.special)
	default:
		return 0
	}
}

// CellFromCode is the inverse of Code.
func CellFromCode(code int32) (Cell, error) {
	switch {
	case code == 0:
		return EmptyCell(), nil
	case code > 0:
		return CountCell(code), nil
	case code >= minSpecialCode:
		return SpecialCell(Special(-1 - code)), nil
	}
	return Cell{}, fmt.Errorf("%w: unknown cell code %d", ErrInvalidData, code)
}
