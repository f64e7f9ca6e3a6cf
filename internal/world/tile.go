// Package world provides the arena tile map: walls, black ice and snow drifts.
package world

// Tile represents a single map tile.
type Tile rune

const (
	// TileWall represents an impassable wall tile.
	TileWall Tile = '#'
	// TileFloor represents plain snow.
	TileFloor Tile = '.'
	// TileIce is black ice; stepping on it starts a slip.
	TileIce Tile = '~'
	// TileDrift is a snow drift; stepping into it trips the player.
	TileDrift Tile = '*'
)

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	return t != TileWall
}

// IsHazard reports whether the tile affects the player on entry.
func (t Tile) IsHazard() bool {
	return t == TileIce || t == TileDrift
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}

// String returns the tile name.
func (t Tile) String() string {
	switch t {
	case TileWall:
		return "wall"
	case TileFloor:
		return "floor"
	case TileIce:
		return "ice"
	case TileDrift:
		return "drift"
	default:
		return "unknown"
	}
}
