package display

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/solarlune/tetra3d"
)

// boxScene builds a scene holding a single box model of the given
// dimensions.
func boxScene(w, h, d float32) *tetra3d.Scene {
	scene := tetra3d.NewScene("test")
	mesh := tetra3d.NewCubeMesh()
	mesh.Select().ApplyMatrix(tetra3d.NewMatrix4Scale(w/2, h/2, d/2))
	mesh.UpdateBounds()
	model := tetra3d.NewModel("box", mesh)
	scene.Root.AddChildren(model)
	return scene
}

type countingLoader struct {
	mu    sync.Mutex
	calls map[string]int
	scn   func(path string) (*tetra3d.Scene, error)
}

func newCountingLoader(scn func(path string) (*tetra3d.Scene, error)) *countingLoader {
	return &countingLoader{calls: map[string]int{}, scn: scn}
}

func (c *countingLoader) load(path string) (*tetra3d.Scene, error) {
	c.mu.Lock()
	c.calls[path]++
	c.mu.Unlock()
	return c.scn(path)
}

// settle pumps Update until the manager commits or gives up on a load.
func settle(t *testing.T, m *Manager) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		m.Update()
		if m.HitRoot() != nil || m.Displayed() == "" {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("load never settled")
}

func TestShowCommitsAndNormalizes(t *testing.T) {
	anchor := tetra3d.NewNode("anchor")
	loader := newCountingLoader(func(path string) (*tetra3d.Scene, error) {
		return boxScene(4, 1, 1), nil
	})
	m := NewManager(anchor, loader.load, 2.0, 0.0)

	m.Show("models/monitor.glb")
	settle(t, m)

	root := m.HitRoot()
	if root == nil {
		t.Fatal("no model committed")
	}
	// Largest span 4 must scale to the display size 2.
	scale := root.LocalScale()
	if math.Abs(float64(scale.X)-0.5) > 1e-6 {
		t.Errorf("scale = %v, want 0.5", scale.X)
	}
	// The mesh spans -0.5..0.5 in Y before the 1x scale, so resting it
	// on the floor lifts the holder by 0.25 at half scale.
	pos := root.LocalPosition()
	if math.Abs(float64(pos.Y)-0.25) > 1e-6 {
		t.Errorf("holder Y = %v, want 0.25", pos.Y)
	}
	if math.Abs(float64(pos.X)) > 1e-6 || math.Abs(float64(pos.Z)) > 1e-6 {
		t.Errorf("holder should be centered, at (%v, %v)", pos.X, pos.Z)
	}
}

func TestShowSamePathIsANoOp(t *testing.T) {
	anchor := tetra3d.NewNode("anchor")
	loader := newCountingLoader(func(path string) (*tetra3d.Scene, error) {
		return boxScene(1, 1, 1), nil
	})
	m := NewManager(anchor, loader.load, 2.0, 0.0)

	m.Show("models/cpu.glb")
	settle(t, m)
	before := m.HitRoot()

	m.Show("models/cpu.glb")
	m.Update()
	if m.HitRoot() != before {
		t.Error("re-showing the displayed model should not rebuild it")
	}
	if loader.calls["models/cpu.glb"] != 1 {
		t.Errorf("loader ran %d times, want 1", loader.calls["models/cpu.glb"])
	}
}

func TestSupersededLoadIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	var slowStarted atomic.Bool
	loader := func(path string) (*tetra3d.Scene, error) {
		if path == "slow.glb" {
			slowStarted.Store(true)
			<-release
		}
		return boxScene(1, 1, 1), nil
	}
	anchor := tetra3d.NewNode("anchor")
	m := NewManager(anchor, loader, 2.0, 0.0)

	m.Show("slow.glb")
	for !slowStarted.Load() {
		time.Sleep(time.Millisecond)
	}
	m.Show("fast.glb")
	settle(t, m)
	committed := m.HitRoot()

	close(release)
	time.Sleep(20 * time.Millisecond)
	m.Update()

	if m.HitRoot() != committed {
		t.Error("a stale load replaced the current model")
	}
	if m.Displayed() != "fast.glb" {
		t.Errorf("displayed = %q, want fast.glb", m.Displayed())
	}
}

func TestUnloadAbandonsInFlightLoad(t *testing.T) {
	release := make(chan struct{})
	loader := func(path string) (*tetra3d.Scene, error) {
		<-release
		return boxScene(1, 1, 1), nil
	}
	anchor := tetra3d.NewNode("anchor")
	m := NewManager(anchor, loader, 2.0, 0.0)

	m.Show("models/ram.glb")
	m.Unload()
	close(release)
	time.Sleep(20 * time.Millisecond)
	m.Update()

	if m.HitRoot() != nil {
		t.Error("unloaded manager committed an abandoned load")
	}
	if m.Displayed() != "" {
		t.Errorf("displayed = %q after unload", m.Displayed())
	}

	// Unloading again must be harmless.
	m.Unload()
}

func TestLoadErrorLeavesTableEmpty(t *testing.T) {
	loader := func(path string) (*tetra3d.Scene, error) {
		return nil, errors.New("corrupt file")
	}
	anchor := tetra3d.NewNode("anchor")
	m := NewManager(anchor, loader, 2.0, 0.0)

	m.Show("models/broken.glb")
	settle(t, m)

	if m.HitRoot() != nil {
		t.Error("failed load should not attach a model")
	}
}

func TestCachedScenesCommitAsClones(t *testing.T) {
	loader := newCountingLoader(func(path string) (*tetra3d.Scene, error) {
		return boxScene(1, 1, 1), nil
	})
	anchor := tetra3d.NewNode("anchor")
	m := NewManager(anchor, loader.load, 2.0, 0.0)

	m.Show("models/gpu.glb")
	settle(t, m)
	first := m.HitRoot()

	m.Unload()
	m.Show("models/gpu.glb")
	settle(t, m)
	second := m.HitRoot()

	if loader.calls["models/gpu.glb"] != 1 {
		t.Errorf("loader ran %d times, want 1 (cache miss only once)", loader.calls["models/gpu.glb"])
	}
	if first == second {
		t.Error("cached scene must be cloned per show, not shared")
	}
}

func TestIdleSpinPausesWhileHeld(t *testing.T) {
	loader := func(path string) (*tetra3d.Scene, error) {
		return boxScene(1, 1, 1), nil
	}
	anchor := tetra3d.NewNode("anchor")
	m := NewManager(anchor, loader, 2.0, 0.0)

	m.Show("models/psu.glb")
	settle(t, m)
	root := m.HitRoot()

	before := root.LocalRotation()
	m.Update()
	if root.LocalRotation().Equals(before) {
		t.Error("idle model should spin each update")
	}

	m.SetHeld(true)
	at := root.LocalRotation()
	m.Update()
	if !root.LocalRotation().Equals(at) {
		t.Error("held model should not idle-spin")
	}
}

func TestPreloadFillsCache(t *testing.T) {
	loader := newCountingLoader(func(path string) (*tetra3d.Scene, error) {
		return boxScene(1, 1, 1), nil
	})
	anchor := tetra3d.NewNode("anchor")
	m := NewManager(anchor, loader.load, 2.0, 0.0)

	paths := []string{"a.glb", "b.glb", "c.glb"}
	if err := m.Preload(context.Background(), paths); err != nil {
		t.Fatalf("preload: %v", err)
	}

	m.Show("b.glb")
	settle(t, m)
	if loader.calls["b.glb"] != 1 {
		t.Errorf("preloaded model loaded %d times, want 1", loader.calls["b.glb"])
	}
}
