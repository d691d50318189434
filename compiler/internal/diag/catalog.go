package diag

import (
	_ "embed"
	"encoding/json"
	"sync"
)

//go:embed codes.json
var codesJSON []byte

// CodeEntry is a single diagnostic code definition.
type CodeEntry struct {
	ID    string `json:"id"`    // e.g., "AOE0002"
	Title string `json:"title"` // short human title e.g., "use of moved value"
	Help  string `json:"help"`  // optional default help text
}

// Registry is the top-level catalog format, one section per pipeline phase.
type Registry struct {
	Lexer  map[string]CodeEntry `json:"lexer"`
	Parser map[string]CodeEntry `json:"parser"`
	Check  map[string]CodeEntry `json:"check"`
}

var (
	regOnce sync.Once
	reg     Registry
	regErr  error
)

func load() error {
	regOnce.Do(func() {
		if len(codesJSON) == 0 {
			regErr = nil // empty catalog is allowed
			return
		}
		regErr = json.Unmarshal(codesJSON, &reg)
	})
	return regErr
}

// Lookup returns a code entry by (domain, key). Domain is one of
// "lexer", "parser", "check".
func Lookup(domain, key string) (CodeEntry, bool) {
	if err := load(); err != nil {
		return CodeEntry{}, false
	}
	var section map[string]CodeEntry
	switch domain {
	case "lexer":
		section = reg.Lexer
	case "parser":
		section = reg.Parser
	case "check":
		section = reg.Check
	default:
		return CodeEntry{}, false
	}
	if section == nil {
		return CodeEntry{}, false
	}
	ce, ok := section[key]
	return ce, ok
}

// LookupCheck is a convenience for the "check" domain.
func LookupCheck(key string) (CodeEntry, bool) { return Lookup("check", key) }
