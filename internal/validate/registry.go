package validate

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dgallion1/docproof/internal/config"
	"github.com/dgallion1/docproof/internal/errs"
	"github.com/dgallion1/docproof/internal/symbol"
)

// Factory builds a validator from its <validator> element and the symbol
// table in effect.
type Factory func(cfg config.ValidatorConfig, symbols symbol.Table) (Validator, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

func init() {
	Register("SentenceLength", newSentenceLength)
	Register("Pattern", newPattern)
	Register("InvalidSymbol", newInvalidSymbol)
}

// Register adds a factory under name. Names are case-insensitive; a later
// registration replaces an earlier one.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(name)] = f
}

// Names lists the registered validator names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// New builds the validator cfg names.
func New(cfg config.ValidatorConfig, symbols symbol.Table) (Validator, error) {
	registryMu.RLock()
	f, ok := registry[strings.ToLower(cfg.Name)]
	registryMu.RUnlock()
	if !ok {
		return nil, errs.Config("validators", fmt.Sprintf("unknown validator %q", cfg.Name))
	}
	return f(cfg, symbols)
}

// FromChecker builds every validator the checker config enables, in
// config order.
func FromChecker(c config.Checker) ([]Validator, error) {
	symbols := c.SymbolTable()
	out := make([]Validator, 0, len(c.Validators))
	for _, vc := range c.Validators {
		v, err := New(vc, symbols)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
