package voices

import (
	"encoding/json"
	"log"
	"os"

	"fact-shorts-pipeline/types"
)

// Catalog loads voice profiles from a flat JSON file. The catalog is
// read-only for a run; a missing or corrupt file degrades to empty.
type Catalog struct {
	path string
}

// NewCatalog creates a Catalog backed by the given file.
func NewCatalog(path string) *Catalog {
	return &Catalog{path: path}
}

// Load reads all voice profiles in catalog order.
func (c *Catalog) Load() []types.VoiceProfile {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[voices] Warning: could not read %s: %v", c.path, err)
		}
		return nil
	}
	var profiles []types.VoiceProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		log.Printf("[voices] Warning: corrupt voice catalog %s: %v — treating as empty", c.path, err)
		return nil
	}
	return profiles
}
