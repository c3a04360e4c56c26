package animation

import (
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/turtlemotion/pkg/math"
)

// LinkOptions selects the attachment points of a link.
type LinkOptions struct {
	// At names the parent anchor the child hangs from. Empty uses the parent's
	// own position.
	At string
	// From names the child anchor that is snapped onto the attachment point when
	// the link is made.
	From string
	// InheritRotation makes the child rotate with the attachment point instead of
	// only following its translation.
	InheritRotation bool
}

// LinkEntry is a parent/child relation in the link graph.
type LinkEntry struct {
	Child           string
	Parent          string
	ParentAnchor    string
	ChildAnchor     string
	InheritRotation bool

	// rest is the child's geometry at link time; used while the child has no
	// animation of its own.
	rest rest
	// pivot is the parent's attachment pose at link time. The child follows the
	// parent's motion away from it.
	pivot math.Pose
}

// Link makes child follow parent. A link replaces any existing link of child.
// Links that would make a mesh its own ancestor are rejected with ErrLinkCycle.
func (e *Engine) Link(child, parent string, opts LinkOptions) error {
	cm, ok := e.meshes[child]
	if !ok {
		return errors.Wrapf(ErrUnknownMesh, "link child %q", child)
	}
	pm, ok := e.meshes[parent]
	if !ok {
		return errors.Wrapf(ErrUnknownMesh, "link parent %q", parent)
	}
	if e.isAncestor(child, parent) {
		return errors.Wrapf(ErrLinkCycle, "link %q to %q", child, parent)
	}

	attach := pm.CreationPose.Position
	if opts.At != "" {
		a, ok := pm.Anchor(opts.At)
		if !ok {
			return errors.Wrapf(ErrUnknownAnchor, "parent %q anchor %q", parent, opts.At)
		}
		attach = a.Position
	}
	if opts.From != "" {
		a, ok := cm.Anchor(opts.From)
		if !ok {
			return errors.Wrapf(ErrUnknownAnchor, "child %q anchor %q", child, opts.From)
		}
		e.snap(child, attach.Sub(a.Position))
	}

	pivot, _ := e.linkPivot(parent, opts.At)
	e.links[child] = &LinkEntry{
		Child:           child,
		Parent:          parent,
		ParentAnchor:    opts.At,
		ChildAnchor:     opts.From,
		InheritRotation: opts.InheritRotation,
		rest:            restOf(cm),
		pivot:           pivot,
	}
	e.log.Debug("linked",
		zap.String("child", child),
		zap.String("parent", parent),
		zap.String("at", opts.At),
		zap.String("from", opts.From),
		zap.Bool("inheritRotation", opts.InheritRotation))
	return nil
}

// Unlink removes the link of child. It reports whether a link existed.
func (e *Engine) Unlink(child string) bool {
	if _, ok := e.links[child]; !ok {
		return false
	}
	delete(e.links, child)
	return true
}

// LinkOf returns the link of child.
func (e *Engine) LinkOf(child string) (LinkEntry, bool) {
	l, ok := e.links[child]
	if !ok {
		return LinkEntry{}, false
	}
	return *l, true
}

// linkPivot returns the current attachment pose on parent: the named anchor, or
// the parent's own pose.
func (e *Engine) linkPivot(parent, anchor string) (math.Pose, bool) {
	if anchor != "" {
		return e.ResolveAnchor(parent, anchor)
	}
	m, ok := e.meshes[parent]
	if !ok {
		return math.Pose{}, false
	}
	return m.CreationPose, true
}

// follow carries own along with the parent's motion since the link was made.
func (e *Engine) follow(l *LinkEntry, own math.Pose) math.Pose {
	cur, ok := e.linkPivot(l.Parent, l.ParentAnchor)
	if !ok {
		return own
	}
	if !l.InheritRotation {
		return own.Translate(cur.Position.Sub(l.pivot.Position))
	}
	return carry(own, l.pivot, cur)
}

// settleFollowers re-poses the idle link descendants of parent after parent
// was moved outside a tick.
func (e *Engine) settleFollowers(parent string) {
	var children []string
	for child, l := range e.links {
		if l.Parent == parent {
			children = append(children, child)
		}
	}
	sort.Strings(children)
	for _, child := range children {
		if e.animating(child) {
			continue
		}
		l := e.links[child]
		delete(e.applied, child)
		e.applyMeshPose(child, e.follow(l, l.rest.Pose), l.rest)
		e.settleFollowers(child)
	}
}

// animating reports whether any animation of target is playing or paused.
func (e *Engine) animating(target string) bool {
	for _, d := range e.anims {
		if d.Target == target && d.State != Stopped {
			return true
		}
	}
	return false
}

// isAncestor reports whether candidate is node or one of node's link ancestors.
func (e *Engine) isAncestor(candidate, node string) bool {
	seen := map[string]bool{}
	for cur := node; ; {
		if cur == candidate {
			return true
		}
		if seen[cur] {
			return false
		}
		seen[cur] = true
		l, ok := e.links[cur]
		if !ok {
			return false
		}
		cur = l.Parent
	}
}

// snap translates a mesh and the timelines of every animation targeting it.
func (e *Engine) snap(name string, offset math.Vec3) {
	if offset == math.Zero {
		return
	}
	m := e.meshes[name]
	m.Translate(offset)
	e.updateGeometry(name, m.Vertices, m.Faces)

	for _, d := range e.anims {
		if d.Target != name || !d.HasBase {
			continue
		}
		r := d.base()
		r.translate(offset)
		d.BasePose, d.BaseVertices = r.Pose, r.Vertices
		for i := range d.Frames {
			d.Frames[i] = d.Frames[i].Translate(offset)
		}
	}
	for _, l := range e.links {
		if l.Parent == name {
			l.pivot = l.pivot.Translate(offset)
		}
	}
}
