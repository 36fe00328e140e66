package chase

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/vovakirdan/tui-chase/internal/games/chase/savefile"
)

// SaveFile writes the world to path; the extension picks YAML or JSON.
func (g *Game) SaveFile(path string) error {
	return savefile.Save(path, g.Snapshot())
}

// LoadFile restores a world saved with SaveFile.
func LoadFile(path string, rng RandomSource) (*Game, error) {
	var s Snapshot
	if err := savefile.Load(path, &s); err != nil {
		return nil, err
	}
	return FromSnapshot(s, rng)
}

// SavePath names a save for scenario inside dir, stamped with t.
func SavePath(dir, scenario string, t time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.yaml", scenario, t.Format("20060102-150405")))
}
