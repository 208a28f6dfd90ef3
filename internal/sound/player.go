// Package sound plays component narration clips and the lab's short
// feedback effects. Narration comes from mp3 assets on disk; the
// feedback effects are synthesized once at startup so the app needs no
// extra audio files.
package sound

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"golang.org/x/sync/errgroup"

	"hardware-lab/internal/app"
)

const sampleRate = 44100

const preloadWorkers = 4

// Player is the audio backend behind the controller's narration and
// effect calls. At most one narration plays at a time; starting a new
// one stops the old one first. Effects are fire-and-forget.
type Player struct {
	ctx    *audio.Context
	dir    string
	volume float64

	mu        sync.Mutex
	narration *audio.Player
	clips     map[string][]byte
	effects   map[string][]byte
}

func NewPlayer(dir string, narrationVolume float64) *Player {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}
	return &Player{
		ctx:     ctx,
		dir:     dir,
		volume:  narrationVolume,
		clips:   map[string][]byte{},
		effects: effectTable(),
	}
}

// PlayNarration starts the narration clip at path, replacing any clip
// already playing. A missing or corrupt clip is logged and skipped.
func (p *Player) PlayNarration(path string) {
	p.StopNarration()

	data, err := p.clip(path)
	if err != nil {
		log.Printf("sound: narration %s: %v", path, err)
		return
	}

	player := p.ctx.NewPlayerFromBytes(data)
	player.SetVolume(p.volume)
	player.Play()

	p.mu.Lock()
	p.narration = player
	p.mu.Unlock()
}

// StopNarration silences the current narration, if any.
func (p *Player) StopNarration() {
	p.mu.Lock()
	player := p.narration
	p.narration = nil
	p.mu.Unlock()

	if player != nil {
		player.Pause()
		player.Close()
	}
}

// PlaySound plays one of the built-in effects by name. Unknown names
// are ignored.
func (p *Player) PlaySound(name string) {
	data, ok := p.effects[name]
	if !ok {
		return
	}
	p.ctx.NewPlayerFromBytes(data).Play()
}

// Preload decodes narration clips ahead of time so the first play of
// each component does not stall on the decoder.
func (p *Player) Preload(ctx context.Context, paths []string) error {
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(preloadWorkers)
	for _, path := range paths {
		if path == "" {
			continue
		}
		path := path
		g.Go(func() error {
			_, err := p.clip(path)
			return err
		})
	}
	return g.Wait()
}

// clip returns the decoded PCM for a narration asset, loading and
// caching it on first use.
func (p *Player) clip(path string) ([]byte, error) {
	p.mu.Lock()
	data, ok := p.clips[path]
	p.mu.Unlock()
	if ok {
		return data, nil
	}

	raw, err := os.ReadFile(filepath.Join(p.dir, path))
	if err != nil {
		return nil, fmt.Errorf("reading clip: %w", err)
	}
	stream, err := mp3.DecodeWithSampleRate(sampleRate, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decoding clip: %w", err)
	}
	data, err = io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("reading decoded clip: %w", err)
	}

	p.mu.Lock()
	p.clips[path] = data
	p.mu.Unlock()
	return data, nil
}

func effectTable() map[string][]byte {
	return map[string][]byte{
		app.SoundPress:    tone(880, 60, 0.25),
		app.SoundCorrect:  sequence([]float64{523.25, 659.25, 783.99}, 120, 0.2),
		app.SoundWrong:    tone(196, 300, 0.3),
		app.SoundComplete: sequence([]float64{523.25, 659.25, 783.99, 1046.5}, 150, 0.2),
	}
}
