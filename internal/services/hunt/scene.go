package hunt

import "github.com/shadowhunt/shadowhunt-go/internal/model"

// SceneObject is one placed prop in the arena. Objects are loaded once and
// toggled per room; the arena itself never changes during a session.
type SceneObject struct {
	ID   int
	Item model.SceneItem
}

// Arena is the full set of scene objects, indexed by stable id and by
// name. Names repeat for duplicated props, so the name index holds every
// copy.
type Arena struct {
	objects []SceneObject
	byName  map[string][]int
}

// NewArena builds the arena from the item catalog
func NewArena(items []model.SceneItem) *Arena {
	a := &Arena{
		objects: make([]SceneObject, len(items)),
		byName:  make(map[string][]int),
	}
	for i, item := range items {
		a.objects[i] = SceneObject{ID: i, Item: item}
		a.byName[item.Name] = append(a.byName[item.Name], i)
	}
	return a
}

// Len returns the number of placed objects
func (a *Arena) Len() int { return len(a.objects) }

// Has reports whether any placed object carries the name
func (a *Arena) Has(name string) bool { return len(a.byName[name]) > 0 }

// Object returns the scene object with the given id
func (a *Arena) Object(id int) (SceneObject, bool) {
	if id < 0 || id >= len(a.objects) {
		return SceneObject{}, false
	}
	return a.objects[id], true
}

// computeVisibility returns the ids visible for a room: every copy of the
// room's targets and decoys, nothing else. Pure in the room; rendering
// state never feeds back into it.
func (a *Arena) computeVisibility(room *model.Room) map[int]bool {
	visible := make(map[int]bool)
	for _, name := range room.Objects {
		for _, id := range a.byName[name] {
			visible[id] = true
		}
	}
	for _, name := range room.FakeObjects {
		for _, id := range a.byName[name] {
			visible[id] = true
		}
	}
	return visible
}

// visibleObjects resolves a visibility set minus the session's found and
// currently-animating objects into hit-testable items
func (a *Arena) visibleObjects(visible map[int]bool, hidden func(name string) bool) []*SceneObject {
	out := make([]*SceneObject, 0, len(visible))
	for id := range visible {
		obj := &a.objects[id]
		if hidden(obj.Item.Name) {
			continue
		}
		out = append(out, obj)
	}
	return out
}
