package termmap

import (
	"errors"
	"fmt"
	"sync"

	"github.com/c360studio/semmap/vocabulary/rml"
)

// Arena errors.
var (
	ErrUnknownGroup  = errors.New("unknown rule group")
	ErrUnknownMap    = errors.New("unknown term map")
	ErrNotObjectMap  = errors.New("only object maps link into a parent rule group")
	ErrAlreadyLinked = errors.New("object map already linked to another rule group")
)

// GroupID addresses a rule group in an Arena.
type GroupID int

// MapID addresses a term map in an Arena.
type MapID int

type ruleGroup struct {
	name       string
	maps       []MapID
	objectMaps []MapID
	objectSet  map[MapID]struct{}
}

type mapEntry struct {
	tm     *TermMap
	owner  GroupID
	parent GroupID
	linked bool
}

// Arena owns the rule groups of one mapping specification and the term maps built
// for them. Parents and children refer to each other by id only. All methods are
// safe for concurrent use.
type Arena struct {
	mu     sync.RWMutex
	groups []*ruleGroup
	maps   []mapEntry
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// NewGroup adds a rule group and returns its id.
func (a *Arena) NewGroup(name string) GroupID {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.groups = append(a.groups, &ruleGroup{
		name:      name,
		objectSet: make(map[MapID]struct{}),
	})
	return GroupID(len(a.groups) - 1)
}

// GroupName returns the name a group was created with.
func (a *Arena) GroupName(g GroupID) (string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	grp, ok := a.group(g)
	if !ok {
		return "", false
	}
	return grp.name, true
}

// Groups returns every group id in creation order.
func (a *Arena) Groups() []GroupID {
	a.mu.RLock()
	defer a.mu.RUnlock()

	ids := make([]GroupID, len(a.groups))
	for i := range a.groups {
		ids[i] = GroupID(i)
	}
	return ids
}

// Add stores tm under its owning group. Object maps are also linked into the
// owner's object-map set.
func (a *Arena) Add(owner GroupID, tm *TermMap) (MapID, error) {
	if tm == nil {
		return -1, fmt.Errorf("add term map: nil term map")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	grp, ok := a.group(owner)
	if !ok {
		return -1, fmt.Errorf("add term map: %w: %d", ErrUnknownGroup, owner)
	}

	id := MapID(len(a.maps))
	a.maps = append(a.maps, mapEntry{tm: tm, owner: owner})
	grp.maps = append(grp.maps, id)

	if tm.Role() == RoleObject {
		if err := a.link(owner, id); err != nil {
			return -1, err
		}
	}
	return id, nil
}

// Link records parent as the rule group of an object map and adds the map to the
// parent's child set. Linking the same map to the same parent again is a no-op.
func (a *Arena) Link(parent GroupID, id MapID) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.link(parent, id)
}

func (a *Arena) link(parent GroupID, id MapID) error {
	grp, ok := a.group(parent)
	if !ok {
		return fmt.Errorf("link object map: %w: %d", ErrUnknownGroup, parent)
	}
	if id < 0 || int(id) >= len(a.maps) {
		return fmt.Errorf("link object map: %w: %d", ErrUnknownMap, id)
	}

	entry := &a.maps[id]
	if entry.tm.Role() != RoleObject {
		role := entry.tm.Role()
		return fmt.Errorf("link %s map %d as %s: %w",
			rml.FieldIRI(role.GroupPredicate()), id, rml.FieldIRI(rml.RuleGroupObject), ErrNotObjectMap)
	}
	if entry.linked && entry.parent != parent {
		return fmt.Errorf("link object map %d to group %d: %w (%d)", id, parent, ErrAlreadyLinked, entry.parent)
	}

	entry.parent = parent
	entry.linked = true
	if _, exists := grp.objectSet[id]; !exists {
		grp.objectSet[id] = struct{}{}
		grp.objectMaps = append(grp.objectMaps, id)
	}
	return nil
}

// Map returns the term map stored under id.
func (a *Arena) Map(id MapID) (*TermMap, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if id < 0 || int(id) >= len(a.maps) {
		return nil, false
	}
	return a.maps[id].tm, true
}

// Owner returns the rule group a term map was added under.
func (a *Arena) Owner(id MapID) (GroupID, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if id < 0 || int(id) >= len(a.maps) {
		return -1, false
	}
	return a.maps[id].owner, true
}

// Parent returns the rule group an object map is linked to.
func (a *Arena) Parent(id MapID) (GroupID, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if id < 0 || int(id) >= len(a.maps) || !a.maps[id].linked {
		return -1, false
	}
	return a.maps[id].parent, true
}

// Maps returns every term map owned by g, in insertion order.
func (a *Arena) Maps(g GroupID) []MapID {
	a.mu.RLock()
	defer a.mu.RUnlock()

	grp, ok := a.group(g)
	if !ok {
		return nil
	}
	out := make([]MapID, len(grp.maps))
	copy(out, grp.maps)
	return out
}

// ObjectMaps returns the ordered, duplicate-free object maps linked to g.
func (a *Arena) ObjectMaps(g GroupID) []MapID {
	a.mu.RLock()
	defer a.mu.RUnlock()

	grp, ok := a.group(g)
	if !ok {
		return nil
	}
	out := make([]MapID, len(grp.objectMaps))
	copy(out, grp.objectMaps)
	return out
}

// Len returns the number of stored term maps.
func (a *Arena) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.maps)
}

func (a *Arena) group(g GroupID) (*ruleGroup, bool) {
	if g < 0 || int(g) >= len(a.groups) {
		return nil, false
	}
	return a.groups[g], true
}
