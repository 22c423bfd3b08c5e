package loader

import "sync"

var (
	symMu   sync.RWMutex
	symbols = map[string]Definition{}
)

// Link makes def available to unit descriptors under symbol. Linking the
// same symbol twice panics.
func Link(symbol string, def Definition) {
	if symbol == "" || def.Type == nil {
		panic("loader: symbol and definition type required")
	}
	symMu.Lock()
	defer symMu.Unlock()
	if _, dup := symbols[symbol]; dup {
		panic("loader: duplicate symbol " + symbol)
	}
	symbols[symbol] = def
}

func linked(symbol string) (Definition, bool) {
	symMu.RLock()
	defer symMu.RUnlock()
	d, ok := symbols[symbol]
	return d, ok
}
