package state

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/leonelquinteros/gotext"

	"karelworld/pkg/engine/bridge"
	"karelworld/pkg/engine/geometry"
	"karelworld/pkg/engine/input"
	"karelworld/pkg/engine/world"
	"karelworld/pkg/game/config"
	"karelworld/pkg/game/editor"
	"karelworld/pkg/game/karel"
	"karelworld/pkg/game/worldfile"
)

// Message durations
const (
	MessageShort = 2500 * time.Millisecond
	MessageLong  = 5000 * time.Millisecond
)

// Message is a transient status line
type Message struct {
	Text  string
	Until time.Time
	Alert bool
}

// Session is the render goroutine's view of one running world. It owns the
// world state and the bridge; worker goroutines reach the world only through
// Worker().
//
// All methods except Worker, Close and the asynchronous open/save helpers
// must be called from the goroutine that calls Tick.
type Session struct {
	cfg    config.Config
	state  *world.State
	bridge *bridge.Bridge
	geom   geometry.Geometry

	local  *karel.World
	remote *karel.World

	editor *editor.Controller
	legend bool

	message Message
	now     time.Time

	ctx    context.Context
	cancel context.CancelFunc

	// Prompt reads a file name from the user; it runs off the render goroutine
	Prompt func(label string) (string, error)

	promptMu  sync.Mutex
	prompting bool

	quit      bool
	dumpFrame bool
	shotFrame bool
}

// NewSession creates a world laid out per cfg. With editing set, pointer
// input edits the world.
func NewSession(cfg config.Config, editing bool) *Session {
	state := world.NewState()
	b := bridge.New()
	ctx, cancel := context.WithCancel(context.Background())

	s := &Session{
		cfg:    cfg,
		state:  state,
		bridge: b,
		geom: geometry.New(cfg.World.Streets, cfg.World.Avenues,
			float64(cfg.Window.Size), float64(cfg.Window.Inset)),
		legend: true,
		ctx:    ctx,
		cancel: cancel,
		Prompt: input.Prompt,
		now:    time.Now(),
	}
	s.local = karel.New(state, b.Local())
	s.local.SetSpeed(cfg.Speed)
	s.remote = s.local.WithExecutor(b.Remote())

	if editing {
		s.editor = editor.New(s.local)
		s.SetMessage(gotext.Get("Mode: %s", modeLabel(editor.ModeSingleBeeper)), MessageShort)
	}
	return s
}

// Context is cancelled when the session closes
func (s *Session) Context() context.Context {
	return s.ctx
}

// Worker returns the world as seen from a task goroutine. Every call blocks
// until the render goroutine has applied it.
func (s *Session) Worker() *karel.World {
	return s.remote
}

// Local returns the world for code running on the render goroutine
func (s *Session) Local() *karel.World {
	return s.local
}

// Editing reports whether pointer input edits the world
func (s *Session) Editing() bool {
	return s.editor != nil
}

// Geometry returns the current layout
func (s *Session) Geometry() geometry.Geometry {
	return s.geom
}

// Resize re-lays the board out for a new drawing height
func (s *Session) Resize(height float64) {
	if height <= 2*s.geom.Inset() || height == s.geom.Height() {
		return
	}
	s.geom.SetHeight(height)
}

// Tick runs one frame: it applies every queued worker mutation, then feeds
// the pointer to the editor.
func (s *Session) Tick(now time.Time, p input.Pointer) {
	s.now = now
	s.bridge.Drain()
	if s.editor == nil {
		return
	}
	if err := s.editor.Update(s.ctx, s.geom, p); err != nil {
		log.Printf("editor: %v", err)
		s.SetMessage(gotext.Get("Edit failed: %v", err), MessageLong)
	}
}

// HandleAction applies a keyboard action. Editor actions are ignored when
// not editing.
func (s *Session) HandleAction(a input.Action) {
	if input.IsEditorAction(a) && s.editor == nil {
		return
	}
	switch a {
	case input.ActionQuit:
		s.quit = true
	case input.ActionSlower:
		s.local.SetSpeed(s.local.Speed() - karel.SpeedStep)
	case input.ActionFaster:
		s.local.SetSpeed(s.local.Speed() + karel.SpeedStep)
	case input.ActionDumpMap:
		s.dumpFrame = true
	case input.ActionScreenshot:
		s.shotFrame = true
	case input.ActionModeSingleBeeper:
		s.setMode(editor.ModeSingleBeeper)
	case input.ActionModeInfiniteBeeper:
		s.setMode(editor.ModeInfiniteBeeper)
	case input.ActionModeVerticalWall:
		s.setMode(editor.ModeVerticalWall)
	case input.ActionModeHorizontalWall:
		s.setMode(editor.ModeHorizontalWall)
	case input.ActionToggleLegend:
		s.legend = !s.legend
	case input.ActionOpenWorld:
		s.promptAsync(gotext.Get("Open world file: "), s.openPrompted)
	case input.ActionSaveWorld:
		s.promptAsync(gotext.Get("Save world file in %s/ as: ", s.cfg.WorldsDir), s.savePrompted)
	}
}

func (s *Session) setMode(m editor.Mode) {
	s.editor.SetMode(m)
	s.SetMessage(gotext.Get("Mode: %s", modeLabel(m)), MessageShort)
}

// Quit reports whether the user asked to close the window
func (s *Session) Quit() bool {
	return s.quit
}

// TakeDumpRequest reports and clears a pending map dump request
func (s *Session) TakeDumpRequest() bool {
	d := s.dumpFrame
	s.dumpFrame = false
	return d
}

// TakeScreenshotRequest reports and clears a pending screenshot request
func (s *Session) TakeScreenshotRequest() bool {
	shot := s.shotFrame
	s.shotFrame = false
	return shot
}

// SetMessage shows text in the status line for d
func (s *Session) SetMessage(text string, d time.Duration) {
	s.message = Message{Text: text, Until: s.now.Add(d), Alert: d >= MessageLong}
}

// Close stops workers: their pending and future bridge calls fail.
func (s *Session) Close() {
	s.cancel()
	s.bridge.Close()
}

// LoadWorld reads path and installs its beepers and walls. It runs on the
// render goroutine; a parse error leaves the world untouched.
func (s *Session) LoadWorld(path string) error {
	return s.loadWorld(s.ctx, s.local, path)
}

// SaveWorld writes the current beepers and walls to path
func (s *Session) SaveWorld(path string) error {
	return worldfile.SaveFile(path, worldfile.FromSnapshot(s.state.Snapshot()))
}

func (s *Session) loadWorld(ctx context.Context, w *karel.World, path string) error {
	contents, err := worldfile.LoadFile(path)
	if err != nil {
		return err
	}
	err = w.Update(ctx, func(st *world.State) error {
		streets, avenues := s.geom.Streets(), s.geom.Avenues()
		if err := contents.Apply(st); err != nil {
			return err
		}
		if contents.SizeMismatch(streets, avenues) {
			s.SetMessage(gotext.Get("Loaded %s (file world %dx%d; current window %dx%d)",
				path, contents.Size.Streets, contents.Size.Avenues, streets, avenues), MessageLong)
		} else {
			s.SetMessage(gotext.Get("Loaded: %s", path), MessageShort)
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Printf("world loaded from %s", path)
	return nil
}

// promptAsync asks for a file name off the render goroutine and hands the
// answer to then, also off the render goroutine. A second request while a
// prompt is open is ignored.
func (s *Session) promptAsync(label string, then func(name string)) {
	s.promptMu.Lock()
	if s.prompting {
		s.promptMu.Unlock()
		return
	}
	s.prompting = true
	s.promptMu.Unlock()

	go func() {
		defer func() {
			s.promptMu.Lock()
			s.prompting = false
			s.promptMu.Unlock()
		}()
		name, err := s.Prompt(label)
		if err != nil {
			log.Printf("prompt: %v", err)
			return
		}
		if name == "" {
			return
		}
		then(name)
	}()
}

// Prompting reports whether a file prompt is waiting for input
func (s *Session) Prompting() bool {
	s.promptMu.Lock()
	defer s.promptMu.Unlock()
	return s.prompting
}

func (s *Session) openPrompted(name string) {
	path := worldfile.Resolve(s.cfg.WorldsDir, name)
	if err := s.loadWorld(s.ctx, s.remote, path); err != nil {
		log.Printf("open %s: %v", path, err)
		s.postMessage(gotext.Get("Open failed: %v", err), MessageLong)
	}
}

func (s *Session) savePrompted(name string) {
	path := worldfile.Resolve(s.cfg.WorldsDir, name)
	snap, err := s.remote.Snapshot(s.ctx)
	if err != nil {
		log.Printf("save %s: %v", path, err)
		return
	}
	if err := worldfile.SaveFile(path, worldfile.FromSnapshot(snap)); err != nil {
		log.Printf("save %s: %v", path, err)
		s.postMessage(gotext.Get("Save failed: %v", err), MessageLong)
		return
	}
	log.Printf("world saved to %s", path)
	s.postMessage(gotext.Get("Saved: %s", path), MessageShort)
}

// postMessage sets the status line from a worker goroutine
func (s *Session) postMessage(text string, d time.Duration) {
	err := s.bridge.Submit(s.ctx, func() { s.SetMessage(text, d) })
	if err != nil {
		log.Printf("message %q dropped: %v", text, err)
	}
}

func modeLabel(m editor.Mode) string {
	switch m {
	case editor.ModeSingleBeeper:
		return fmt.Sprintf("%s: %s", m.Key(), gotext.Get("single beepers"))
	case editor.ModeInfiniteBeeper:
		return fmt.Sprintf("%s: %s", m.Key(), gotext.Get("infinity beepers"))
	case editor.ModeVerticalWall:
		return fmt.Sprintf("%s: %s", m.Key(), gotext.Get("vertical walls"))
	case editor.ModeHorizontalWall:
		return fmt.Sprintf("%s: %s", m.Key(), gotext.Get("horizontal walls"))
	default:
		return m.String()
	}
}
