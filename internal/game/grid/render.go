package grid

import "strings"

// Render returns an ASCII rendering of the terrain, one row per line. Used by
// the mapgen binary and by determinism tests, which compare renders of maps
// generated from the same seed.
func (m *Map) Render() string {
	var b strings.Builder
	b.Grow((m.Width + 1) * m.Height)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			b.WriteRune(m.Tiles[y][x].Glyph)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
