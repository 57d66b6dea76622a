package snake

import (
	"math/rand"

	"github.com/vovakirdan/gridsnake/internal/core"
)

// Apple is the food item. Its position is always grid aligned and inside
// the borders.
type Apple struct {
	position core.Position
}

// NewApple places an apple at a random cell.
func NewApple(rng *rand.Rand, borders core.Borders, cell uint16) *Apple {
	a := &Apple{}
	a.Relocate(rng, borders, cell)
	return a
}

// Position returns the apple's position.
func (a *Apple) Position() core.Position {
	return a.position
}

// Relocate moves the apple to a uniformly random cell. The cell may be
// covered by the snake.
func (a *Apple) Relocate(rng *rand.Rand, borders core.Borders, cell uint16) {
	a.position = core.RandomPosition(rng, borders, cell)
}

// RelocateAvoiding moves the apple to a random cell for which occupied
// returns false. When every cell is occupied it falls back to Relocate.
func (a *Apple) RelocateAvoiding(rng *rand.Rand, borders core.Borders, cell uint16, occupied func(core.Position) bool) {
	cols, rows := core.GridSize(borders, cell)

	var free []core.Position
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			p := core.PositionOf(col, row, cell)
			if !occupied(p) {
				free = append(free, p)
			}
		}
	}

	if len(free) == 0 {
		a.Relocate(rng, borders, cell)
		return
	}
	a.position = free[rng.Intn(len(free))]
}
