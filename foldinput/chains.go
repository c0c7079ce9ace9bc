package foldinput

import (
	"strings"

	"github.com/giygas/af3-jobgen/foldinput/entities"
)

const chainSeparator = "|"

// ParseChainIDs turns a chain field into chain identifiers. "A|C|D" is a
// multichain list with blanks dropped; anything without a separator is a
// single trimmed identifier.
func ParseChainIDs(field string) entities.ChainIDs {
	if !strings.Contains(field, chainSeparator) {
		return entities.SingleChain(strings.TrimSpace(field))
	}

	parts := strings.Split(field, chainSeparator)
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return entities.MultiChain(ids...)
}
