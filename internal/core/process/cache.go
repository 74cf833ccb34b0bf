package process

import (
	"fmt"
	"os/exec"
	"sync"
)

// executable resolution is memoised process-wide. Go's sync.RWMutex has no
// poisoning state, so unlike the original's into-inner recovery dance, a
// panicking lookup simply releases the lock via defer; no special recovery
// path is required (see SPEC_FULL.md §7).
var (
	lookupMu    sync.RWMutex
	lookupCache = map[string]string{}
)

func lookupCached(name string) (string, error) {
	lookupMu.RLock()
	if resolved, ok := lookupCache[name]; ok {
		lookupMu.RUnlock()
		return resolved, nil
	}
	lookupMu.RUnlock()

	resolved, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("executable not found: '%s' (not in PATH)", name)
	}

	lookupMu.Lock()
	lookupCache[name] = resolved
	lookupMu.Unlock()
	return resolved, nil
}
