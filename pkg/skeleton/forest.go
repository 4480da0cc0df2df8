package skeleton

import (
	"github.com/texrig/texrig/pkg/errors"
	"github.com/texrig/texrig/pkg/model"
)

// Forest is a bone hierarchy indexed for fast parent/child and cumulative
// scale traversal. The zero value is not usable; build one with NewForest.
type Forest struct {
	bones    []model.Bone
	index    map[string]int // bone name -> index in bones
	parent   []int          // bones[i]'s parent index, or -1 for a root
	children [][]int        // bones[i]'s child indices
}

// NewForest indexes bones into a Forest and verifies the parent links form
// a forest (no cycles, no dangling parent references).
//
// Cycle detection is a depth-first search with white/gray/black coloring
// over bone indices.
func NewForest(bones []model.Bone) (*Forest, error) {
	f := &Forest{
		bones:    bones,
		index:    make(map[string]int, len(bones)),
		parent:   make([]int, len(bones)),
		children: make([][]int, len(bones)),
	}
	for i, b := range bones {
		if _, dup := f.index[b.Name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "duplicate bone name %q", b.Name)
		}
		f.index[b.Name] = i
	}
	for i, b := range bones {
		if b.ParentName == "" {
			f.parent[i] = -1
			continue
		}
		pIdx, ok := f.index[b.ParentName]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "bone %q references unknown parent %q", b.Name, b.ParentName)
		}
		f.parent[i] = pIdx
		f.children[pIdx] = append(f.children[pIdx], i)
	}
	if err := f.detectCycles(); err != nil {
		return nil, err
	}
	return f, nil
}

const (
	white = iota
	gray
	black
)

// detectCycles walks every bone with white/gray/black DFS coloring,
// following a parent pointer at a time rather than a child-adjacency walk
// (a bone forest's only edges worth cycling on are parent links).
func (f *Forest) detectCycles() error {
	color := make([]int, len(f.bones))
	for start := range f.bones {
		if color[start] != white {
			continue
		}
		path := []int{}
		cur := start
		for cur != -1 {
			switch color[cur] {
			case white:
				color[cur] = gray
				path = append(path, cur)
				cur = f.parent[cur]
			case gray:
				return errors.New(errors.ErrCodeInvalidGraph, "cyclic bone hierarchy involving %q", f.bones[cur].Name)
			case black:
				cur = -1
			}
		}
		for _, idx := range path {
			color[idx] = black
		}
	}
	return nil
}

// Index returns the bone's position in the forest's bone slice, or false
// if no bone with that name exists.
func (f *Forest) Index(name string) (int, bool) {
	i, ok := f.index[name]
	return i, ok
}

// Bone returns the bone at index i.
func (f *Forest) Bone(i int) model.Bone { return f.bones[i] }

// Parent returns the parent index of bone i, or -1 if it is a root.
func (f *Forest) Parent(i int) int { return f.parent[i] }

// Len returns the number of bones in the forest.
func (f *Forest) Len() int { return len(f.bones) }

// Path returns the dot-separated bone path from the forest root down to
// bone i, e.g. "root.torso.arm".
func (f *Forest) Path(i int) string {
	var names []string
	for cur := i; cur != -1; cur = f.parent[cur] {
		names = append(names, f.bones[cur].Name)
	}
	// reverse
	for l, r := 0, len(names)-1; l < r; l, r = l+1, r-1 {
		names[l], names[r] = names[r], names[l]
	}
	path := names[0]
	for _, n := range names[1:] {
		path += "." + n
	}
	return path
}
