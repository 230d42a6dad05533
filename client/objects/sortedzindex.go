package objects

import (
	"fmt"
	"slices"
	"sort"
)

// SortedZIndexObject draws and updates its children in z-index order.
// Children with equal z-index keep the order they were added in.
type SortedZIndexObject struct {
	*BaseObject

	sorted []GameObject
}

var _ GameObject = &SortedZIndexObject{}

func NewSortedZIndexObject(id string, opts *NewBaseObjectOpts) *SortedZIndexObject {
	return &SortedZIndexObject{
		BaseObject: NewBaseObject(id, opts),
		sorted:     make([]GameObject, 0),
	}
}

func (o *SortedZIndexObject) AddChild(id string, child GameObject) error {
	if o.children.Get(id) != nil {
		return fmt.Errorf("child object with id %s already exists", id)
	}
	if err := InitTree(child); err != nil {
		return fmt.Errorf("failed to initialize child object tree: %v", err)
	}
	o.children.Add(id, child)
	child.SetParent(o)

	z := child.GetZIndex()
	i := sort.Search(len(o.sorted), func(i int) bool {
		return o.sorted[i].GetZIndex() > z
	})
	o.sorted = slices.Insert(o.sorted, i, child)
	return nil
}

func (o *SortedZIndexObject) RemoveChild(id string) error {
	child := o.children.Get(id)
	if child == nil {
		return fmt.Errorf("child object with id %s does not exist", id)
	}
	if err := DestroyTree(child); err != nil {
		return fmt.Errorf("failed to destroy child object tree: %v", err)
	}
	o.children.Remove(id)
	child.SetParent(nil)

	i := slices.IndexFunc(o.sorted, func(obj GameObject) bool {
		return obj.GetID() == id
	})
	if i < 0 {
		return fmt.Errorf("child %s not found in sorted list", id)
	}
	o.sorted = slices.Delete(o.sorted, i, i+1)
	return nil
}

func (o *SortedZIndexObject) GetChildren() []GameObject {
	return o.sorted
}
