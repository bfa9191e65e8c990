package dungeon

import (
	"github.com/hollowmoor/delve/internal/config"
	"github.com/hollowmoor/delve/internal/game/grid"
	"github.com/hollowmoor/delve/internal/game/rng"
)

// carveLeafRoom places a randomized rectangular room inside leaf and carves
// it into the map. Width and height are clamped to leaf size minus twice the
// margin before placement, so a carved room can never extend outside its
// owning leaf. Carving and room registration happen in one Map call.
//
// Postcondition: Returns the registered room, or nil when the leaf is too
// small to hold even a 2x2 room inside its margin.
func carveLeafRoom(m *grid.Map, leaf grid.Rect, cfg config.RoomsConfig, src rng.Source) *grid.Room {
	maxW := minInt(cfg.MaxSize, leaf.W-2*cfg.Margin)
	maxH := minInt(cfg.MaxSize, leaf.H-2*cfg.Margin)
	if maxW < 2 || maxH < 2 {
		return nil
	}
	minW := minInt(cfg.MinSize, maxW)
	minH := minInt(cfg.MinSize, maxH)

	w := rng.Range(src, minW, maxW)
	h := rng.Range(src, minH, maxH)
	x := leaf.X + cfg.Margin + src.Intn(leaf.W-2*cfg.Margin-w+1)
	y := leaf.Y + cfg.Margin + src.Intn(leaf.H-2*cfg.Margin-h+1)

	rt := grid.RoomChamber
	if src.Float64() < cfg.ShrineChance {
		rt = grid.RoomShrine
	}
	return m.CarveRoom(grid.Rect{X: x, Y: y, W: w, H: h}, rt)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
