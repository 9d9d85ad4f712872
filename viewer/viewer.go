// Package viewer draws a running evolution in the terminal
package viewer

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/mazewalk/genetic"
	"github.com/lixenwraith/mazewalk/maze"
	"github.com/lixenwraith/mazewalk/parameter"
)

// Tracer replays a genome into the positions it visits
type Tracer interface {
	Trace(genome genetic.Genome) []maze.Position
}

// Options configures a Viewer
type Options struct {
	// Screen overrides the terminal; nil opens the real one
	Screen tcell.Screen
	Sound  bool
}

type Viewer struct {
	screen tcell.Screen
	maze   *maze.Maze
	tracer Tracer

	latest   *genetic.Report
	finished bool
	chimed   bool

	// Audio
	audioInit bool
}

// New initializes the screen and, when enabled, the speaker
func New(m *maze.Maze, tracer Tracer, opts Options) (*Viewer, error) {
	if m == nil || tracer == nil {
		return nil, fmt.Errorf("viewer: maze and tracer are required")
	}

	screen := opts.Screen
	if screen == nil {
		var err error
		if screen, err = tcell.NewScreen(); err != nil {
			return nil, err
		}
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	v := &Viewer{screen: screen, maze: m, tracer: tracer}

	if opts.Sound {
		if err := v.initAudio(); err != nil {
			// Non-fatal, viewer runs without sound
			log.Printf("Audio initialization failed: %v", err)
		}
	}

	return v, nil
}

func (v *Viewer) initAudio() error {
	sampleRate := beep.SampleRate(parameter.ViewerSampleRate)
	err := speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	if err == nil {
		v.audioInit = true
	}
	return err
}

func (v *Viewer) playChime() {
	if !v.audioInit {
		return
	}

	sampleRate := beep.SampleRate(parameter.ViewerSampleRate)
	sine, err := generators.SineTone(sampleRate, parameter.ViewerChimeFrequency)
	if err != nil {
		log.Printf("chime: %v", err)
		return
	}
	speaker.Play(beep.Take(sampleRate.N(parameter.ViewerChimeDuration), sine))
}

// handleInput reports false when the user asks to quit
func (v *Viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q')) {
			return false
		}

	case *tcell.EventResize:
		v.screen.Sync()
	}

	return true
}

func (v *Viewer) apply(r genetic.Report) {
	v.latest = &r
	if r.Solved && !v.chimed {
		v.chimed = true
		v.playChime()
	}
}

// Run draws reports until the user quits or ctx ends
// Quitting calls stop so the engine can wind down; a closed reports channel leaves the final frame up
func (v *Viewer) Run(ctx context.Context, reports <-chan genetic.Report, stop context.CancelFunc) {
	ticker := time.NewTicker(parameter.ViewerFrameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				// Screen finalized
				return
			}
			eventChan <- ev
		}
	}()

	dirty := true
	for {
		select {
		case <-ctx.Done():
			return

		case ev := <-eventChan:
			if !v.handleInput(ev) {
				if stop != nil {
					stop()
				}
				return
			}
			dirty = true

		case r, ok := <-reports:
			if !ok {
				reports = nil
				v.finished = true
			} else {
				v.apply(r)
			}
			dirty = true

		case <-ticker.C:
			if dirty {
				v.draw()
				dirty = false
			}
		}
	}
}

// Close restores the terminal and releases the speaker
func (v *Viewer) Close() {
	if v.audioInit {
		speaker.Close()
	}
	v.screen.Fini()
}
