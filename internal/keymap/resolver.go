package keymap

import "slices"

// Resolver maps key strings, as reported by tea.KeyMsg.String, to actions.
type Resolver struct {
	byKey     map[string]Action
	byAction  map[Action][]string
	conflicts []Conflict
}

// Conflict is a key claimed by two actions. The binding declared first
// keeps it.
type Conflict struct {
	Key     string
	Kept    Action
	Dropped Action
}

// NewResolver indexes bindings in order.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		byKey:    make(map[string]Action),
		byAction: make(map[Action][]string),
	}
	for _, b := range bindings {
		for _, k := range b.Keys {
			prev, taken := r.byKey[k]
			switch {
			case !taken:
				r.byKey[k] = b.Action
				r.byAction[b.Action] = append(r.byAction[b.Action], k)
			case prev != b.Action:
				r.conflicts = append(r.conflicts, Conflict{Key: k, Kept: prev, Dropped: b.Action})
			}
		}
	}
	return r
}

// Resolve returns the action for a key, or "" if the key is unbound.
func (r *Resolver) Resolve(key string) Action {
	return r.byKey[key]
}

// KeysFor returns the keys that resolve to action, in declaration order.
func (r *Resolver) KeysFor(action Action) []string {
	return slices.Clone(r.byAction[action])
}

// Conflicts lists the keys that were bound more than once.
func (r *Resolver) Conflicts() []Conflict {
	return slices.Clone(r.conflicts)
}
