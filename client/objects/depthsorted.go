package objects

import (
	"fmt"
	"sort"
)

// Depther is implemented by objects standing on the world plane. Objects
// with a greater depth are nearer the viewer.
type Depther interface {
	Depth() float64
}

// DepthSortedObject draws its children back to front. The order is
// recomputed on every update since children move.
type DepthSortedObject struct {
	*BaseObject

	sorted []GameObject
}

var _ GameObject = &DepthSortedObject{}

func NewDepthSortedObject(id string, opts *NewBaseObjectOpts) *DepthSortedObject {
	return &DepthSortedObject{
		BaseObject: NewBaseObject(id, opts),
	}
}

func depthOf(obj GameObject) float64 {
	if d, ok := obj.(Depther); ok {
		return d.Depth()
	}
	return 0
}

func (o *DepthSortedObject) AddChild(id string, child GameObject) error {
	if o.children.Get(id) != nil {
		return fmt.Errorf("child object with id already exists")
	}
	if err := InitTree(child); err != nil {
		return fmt.Errorf("failed to initialize child object tree: %v", err)
	}
	o.children.Add(id, child)
	child.SetParent(o)
	o.sorted = append(o.sorted, child)
	o.Sort()
	return nil
}

func (o *DepthSortedObject) RemoveChild(id string) error {
	child := o.children.Get(id)
	if child == nil {
		return fmt.Errorf("child object with id does not exist")
	}
	if err := DestroyTree(child); err != nil {
		return fmt.Errorf("failed to destroy child object tree: %v", err)
	}
	o.children.Remove(id)
	child.SetParent(nil)
	for i, obj := range o.sorted {
		if obj == child {
			o.sorted = append(o.sorted[:i], o.sorted[i+1:]...)
			break
		}
	}
	return nil
}

// Sort orders the children by depth. Equal depths keep insertion order.
func (o *DepthSortedObject) Sort() {
	sort.SliceStable(o.sorted, func(i, j int) bool {
		return depthOf(o.sorted[i]) < depthOf(o.sorted[j])
	})
}

func (o *DepthSortedObject) Update() error {
	o.Sort()
	return nil
}

func (o *DepthSortedObject) GetChildren() []GameObject {
	return o.sorted
}

func (o *DepthSortedObject) Len() int {
	return len(o.sorted)
}
