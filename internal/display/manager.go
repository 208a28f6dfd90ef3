// Package display owns the lifecycle of the 3D component model on the
// lab table: asynchronous loading with supersession, caching,
// normalization to a consistent display size, and rotation.
package display

import (
	"context"
	"log"
	"sync"

	"github.com/solarlune/tetra3d"
	"golang.org/x/sync/errgroup"
)

// idleYaw is the radians of turntable spin per frame while the model
// is not being held.
const idleYaw = 0.005

// preloadWorkers bounds how many models load concurrently during a
// warmup pass.
const preloadWorkers = 4

// LoadFunc loads one model scene from an asset path. The production
// loader reads glTF from disk; tests inject scenes built in code.
type LoadFunc func(path string) (*tetra3d.Scene, error)

type loadResult struct {
	gen  int
	path string
	scn  *tetra3d.Scene
	err  error
}

// Manager displays at most one model at a time under its anchor node.
// Show is asynchronous: the scene goes on loading in the background
// and is committed on a later Update. Every Show or Unload bumps a
// generation counter, so a load that finishes after it was superseded
// is discarded instead of flashing the wrong model.
type Manager struct {
	anchor *tetra3d.Node
	load   LoadFunc
	size   float32
	floor  float32

	mu    sync.Mutex
	cache map[string]*tetra3d.Scene

	gen     int
	current string
	holder  *tetra3d.Node
	held    bool
	pending chan loadResult
}

func NewManager(anchor *tetra3d.Node, load LoadFunc, size, floor float64) *Manager {
	return &Manager{
		anchor:  anchor,
		load:    load,
		size:    float32(size),
		floor:   float32(floor),
		cache:   map[string]*tetra3d.Scene{},
		pending: make(chan loadResult, 8),
	}
}

// Displayed returns the asset path being shown or loaded, or "".
func (m *Manager) Displayed() string {
	return m.current
}

// Show starts displaying the model at path. Showing the path that is
// already displayed (or already loading) is a no-op, which is what
// keeps the model steady across screens that share it.
func (m *Manager) Show(path string) {
	if path == "" || path == m.current {
		return
	}
	m.gen++
	m.current = path
	m.detach()

	gen := m.gen
	go func() {
		scn, err := m.lookup(path)
		m.pending <- loadResult{gen: gen, path: path, scn: scn, err: err}
	}()
}

// Unload removes the displayed model. Safe to call when nothing is
// shown; any in-flight load is abandoned.
func (m *Manager) Unload() {
	if m.current == "" && m.holder == nil {
		return
	}
	m.gen++
	m.current = ""
	m.detach()
}

// Update commits finished loads and advances the idle spin. Call once
// per frame from the game loop.
func (m *Manager) Update() {
	for {
		select {
		case res := <-m.pending:
			m.commit(res)
		default:
			if m.holder != nil && !m.held {
				m.holder.Rotate(0, 1, 0, idleYaw)
			}
			return
		}
	}
}

// SetHeld marks the model as grabbed; held models stop idle-spinning.
func (m *Manager) SetHeld(held bool) {
	m.held = held
}

// RotateByDrag turns the model by a mouse drag: horizontal motion
// yaws, vertical motion pitches.
func (m *Manager) RotateByDrag(dx, dy float64) {
	if m.holder == nil {
		return
	}
	m.holder.Rotate(0, 1, 0, float32(dx))
	m.holder.Rotate(1, 0, 0, float32(dy))
}

// RotateByGrab turns the model to follow a VR hand's yaw.
func (m *Manager) RotateByGrab(yaw float64) {
	if m.holder == nil {
		return
	}
	m.holder.Rotate(0, 1, 0, float32(yaw))
}

// HitRoot returns the node holding the displayed model's bounds for
// ray testing, or nil while nothing is committed.
func (m *Manager) HitRoot() tetra3d.INode {
	if m.holder == nil {
		return nil
	}
	return m.holder
}

// Preload loads paths into the cache ahead of time so later Shows
// commit without a disk round-trip.
func (m *Manager) Preload(ctx context.Context, paths []string) error {
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(preloadWorkers)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			_, err := m.lookup(path)
			return err
		})
	}
	return g.Wait()
}

func (m *Manager) lookup(path string) (*tetra3d.Scene, error) {
	m.mu.Lock()
	scn, ok := m.cache[path]
	m.mu.Unlock()
	if ok {
		return scn, nil
	}

	scn, err := m.load(path)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.cache[path] = scn
	m.mu.Unlock()
	return scn, nil
}

func (m *Manager) commit(res loadResult) {
	if res.gen != m.gen {
		return
	}
	if res.err != nil {
		log.Printf("display: loading %s: %v", res.path, res.err)
		m.current = ""
		return
	}

	// Clone so repeated shows of a cached scene never share node state.
	instance := res.scn.Clone()

	holder := tetra3d.NewNode("model " + res.path)
	for _, child := range instance.Root.Children() {
		holder.AddChildren(child)
	}
	m.normalize(holder)
	m.anchor.AddChildren(holder)
	m.holder = holder
}

// normalize scales the model so its largest span matches the display
// size, centers it over the table, and rests it on the table surface.
func (m *Manager) normalize(holder *tetra3d.Node) {
	dims, ok := mergedDimensions(holder)
	if !ok {
		return
	}
	span := dims.MaxSpan()
	scale := float32(1)
	if span > 0 {
		scale = m.size / span
	}
	center := dims.Center()

	holder.SetLocalScale(scale, scale, scale)
	holder.SetLocalPosition(
		-center.X*scale,
		m.floor-dims.Min.Y*scale,
		-center.Z*scale,
	)

	radius := m.size / 2 * 1.1
	bounds := tetra3d.NewBoundingSphere("model bounds", radius/scale)
	bounds.SetLocalPosition(center.X, center.Y, center.Z)
	holder.AddChildren(bounds)
}

// mergedDimensions unions the mesh dimensions of every model under
// node. Models are assumed untransformed within their source scene,
// which holds for single-asset component files.
func mergedDimensions(node tetra3d.INode) (tetra3d.Dimensions, bool) {
	var dims tetra3d.Dimensions
	found := false
	node.SearchTree().ForEach(func(n tetra3d.INode) bool {
		model, ok := n.(*tetra3d.Model)
		if !ok {
			return true
		}
		md := model.Mesh.Dimensions
		if !found {
			dims = md
			found = true
			return true
		}
		dims.Min.X = min(dims.Min.X, md.Min.X)
		dims.Min.Y = min(dims.Min.Y, md.Min.Y)
		dims.Min.Z = min(dims.Min.Z, md.Min.Z)
		dims.Max.X = max(dims.Max.X, md.Max.X)
		dims.Max.Y = max(dims.Max.Y, md.Max.Y)
		dims.Max.Z = max(dims.Max.Z, md.Max.Z)
		return true
	})
	return dims, found
}

func (m *Manager) detach() {
	if m.holder != nil {
		m.holder.Unparent()
		m.holder = nil
	}
}
