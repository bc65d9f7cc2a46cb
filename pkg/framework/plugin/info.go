package plugin

import (
	"encoding/binary"
	"fmt"
)

// Info contains plugin metadata
type Info struct {
	ID       string // four-character plugin code, e.g. "Gain"
	Name     string // Display name
	Version  string // Semantic version (e.g., "1.0.0")
	Vendor   string // Company/developer name
	Category string // Plugin category (e.g., "Fx", "Instrument")
}

// Validate checks that the ID is a four-character ASCII code and that the plugin has a name.
func (i Info) Validate() error {
	if len(i.ID) != 4 {
		return fmt.Errorf("plugin ID %q must be exactly four characters", i.ID)
	}
	for _, c := range []byte(i.ID) {
		if c < 0x20 || c > 0x7e {
			return fmt.Errorf("plugin ID %q must be printable ASCII", i.ID)
		}
	}
	if i.Name == "" {
		return fmt.Errorf("plugin %q has no name", i.ID)
	}
	return nil
}

// UniqueID packs the four-character ID big-endian, the way hosts expect a plugin code.
// It returns 0 for an invalid ID.
func (i Info) UniqueID() uint32 {
	if len(i.ID) != 4 {
		return 0
	}
	return binary.BigEndian.Uint32([]byte(i.ID))
}
