package formwizard

// Derivation declares that changing Source cascades into dependent fields.
// The function sees the post-patch snapshot and returns the dependent
// values to set (display labels, dependent dropdown resets). Derived fields
// are validated against the combined snapshot, same as patched ones.
type Derivation struct {
	Source string
	Derive func(values Values) Values
}

// applyDerivations runs every rule whose source is present in the patch and
// returns the extra values to merge. Derived values never override a key
// the caller patched explicitly.
func applyDerivations(rules []Derivation, patch Values, snapshot Values) Values {
	derived := Values{}
	for _, rule := range rules {
		if _, ok := patch[rule.Source]; !ok {
			continue
		}
		if rule.Derive == nil {
			continue
		}
		for name, value := range rule.Derive(snapshot) {
			if _, patched := patch[name]; patched {
				continue
			}
			derived[name] = value
		}
	}
	return derived
}
