package core

import (
	"fmt"
	"sync"
)

var (
	regMu    sync.RWMutex
	builders = map[string]Builder{}
)

// RegisterBuilder installs a builder for a device type. It panics on
// duplicates to catch mistakes at start-up.
func RegisterBuilder(typ string, b Builder) {
	regMu.Lock()
	defer regMu.Unlock()
	if typ == "" {
		panic("core: empty device type for builder")
	}
	if _, exists := builders[typ]; exists {
		panic(fmt.Sprintf("duplicate device builder: %s", typ))
	}
	builders[typ] = b
}

func lookupBuilder(typ string) (Builder, bool) {
	regMu.RLock()
	defer regMu.RUnlock()
	b, ok := builders[typ]
	return b, ok
}
