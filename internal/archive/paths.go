package archive

import (
	"path/filepath"
)

// GamePath builds the path of an archived game: {base}/games/{date}/{game_id}.csa.
func GamePath(basePath, date, gameID string) string {
	return filepath.Join(basePath, "games", date, gameID+".csa")
}
