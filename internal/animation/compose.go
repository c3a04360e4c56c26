package animation

import (
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/turtlemotion/pkg/math"
)

// applyTimelines poses every target of the active preprocessed animations, parents
// before children. Linked meshes without an animation of their own follow their
// parent from the geometry they had when linked.
func (e *Engine) applyTimelines(active []*Descriptor) {
	byTarget := make(map[string][]*Descriptor)
	var targets []string
	for _, d := range active {
		if d.Kind != KindPreprocessed || len(d.Frames) == 0 {
			continue
		}
		if _, ok := byTarget[d.Target]; !ok {
			targets = append(targets, d.Target)
		}
		byTarget[d.Target] = append(byTarget[d.Target], d)
	}
	if len(targets) == 0 {
		return
	}

	for k := range e.applied {
		delete(e.applied, k)
	}
	for _, target := range e.schedule(targets) {
		own, base, ok := e.ownPose(target, byTarget[target])
		if !ok {
			continue
		}
		pose := e.resolveLink(target, own)
		e.applied[target] = applied{Base: base.Pose, Current: pose}

		if target == CameraTarget {
			e.applyCameraPose(pose)
			continue
		}
		e.applyMeshPose(target, pose, base)
	}
}

// schedule returns targets plus their link descendants, ordered so that a parent
// comes before its children. A target whose parent is not in the set is a root.
func (e *Engine) schedule(targets []string) []string {
	children := make(map[string][]string)
	for child, l := range e.links {
		children[l.Parent] = append(children[l.Parent], child)
	}
	for _, c := range children {
		sort.Strings(c)
	}

	set := make(map[string]bool)
	queue := append([]string(nil), targets...)
	for _, t := range targets {
		set[t] = true
	}
	for i := 0; i < len(queue); i++ {
		for _, c := range children[queue[i]] {
			if !set[c] {
				set[c] = true
				queue = append(queue, c)
			}
		}
	}

	order := make([]string, 0, len(queue))
	visited := make(map[string]bool)
	var visit func(string)
	visit = func(t string) {
		if visited[t] {
			return
		}
		visited[t] = true
		if l, ok := e.links[t]; ok && set[l.Parent] {
			visit(l.Parent)
		}
		order = append(order, t)
	}
	for _, t := range queue {
		visit(t)
	}
	return order
}

// ownPose returns the pose a target reaches through its own animations and the
// rest geometry that pose is measured from.
func (e *Engine) ownPose(target string, ds []*Descriptor) (math.Pose, rest, bool) {
	if len(ds) == 0 {
		l, ok := e.links[target]
		if !ok {
			return math.Pose{}, rest{}, false
		}
		return l.rest.Pose, l.rest, true
	}

	first := ds[0]
	if target != CameraTarget && !first.HasBase {
		e.log.Debug("no base pose, skipping", zap.String("animation", first.Name))
		return math.Pose{}, rest{}, false
	}
	if len(ds) == 1 {
		return first.Frames[first.frame], first.base(), true
	}

	poses := make([]math.Pose, len(ds))
	for i, d := range ds {
		poses[i] = d.Frames[d.frame]
	}
	return Compose(first.BasePose, poses), first.base(), true
}

// Compose adds the offsets of several poses from a shared base and re-orthonormalizes
// the summed heading and up with Gram-Schmidt.
func Compose(base math.Pose, poses []math.Pose) math.Pose {
	pos, h, u := base.Position, base.Heading, base.Up
	for _, p := range poses {
		pos = pos.Add(p.Position.Sub(base.Position))
		h = h.Add(p.Heading.Sub(base.Heading))
		u = u.Add(p.Up.Sub(base.Up))
	}
	h, u = math.Orthonormalize(h, u)
	return math.Pose{Position: pos, Heading: h, Up: u}
}

// resolveLink carries own along with the target's parent when the parent was
// posed earlier in this tick.
func (e *Engine) resolveLink(target string, own math.Pose) math.Pose {
	l, ok := e.links[target]
	if !ok {
		return own
	}
	if _, ok := e.applied[l.Parent]; !ok {
		return own
	}
	return e.follow(l, own)
}
