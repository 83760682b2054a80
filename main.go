package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/leonelquinteros/gotext"

	"karelworld/pkg/engine/input"
	"karelworld/pkg/engine/world"
	"karelworld/pkg/game/config"
	"karelworld/pkg/game/devtools"
	"karelworld/pkg/game/headless"
	"karelworld/pkg/game/karel"
	"karelworld/pkg/game/renderer"
	ebitenrenderer "karelworld/pkg/game/renderer/ebiten"
	"karelworld/pkg/game/renderer/tui"
	"karelworld/pkg/game/state"
	"karelworld/pkg/game/worldfile"
)

func initGettext(cfg config.Config) {
	gotext.Configure(cfg.Locale.Dir, cfg.Locale.Language, "default")
}

func main() {
	configPath := flag.String("config", "karelworld.yaml", "YAML settings file (missing file means defaults)")
	streets := flag.Int("streets", 0, "number of streets (overrides the settings file)")
	avenues := flag.Int("avenues", 0, "number of avenues (overrides the settings file)")
	size := flag.Int("size", 0, "window size in pixels (overrides the settings file)")
	speed := flag.Int("speed", -1, "initial speed 0-100 (overrides the settings file)")
	worldPath := flag.String("world", "", "world file to load at startup")
	edit := flag.Bool("editor", false, "edit the world with the mouse")
	textMode := flag.Bool("headless", false, "draw the world as text in the terminal instead of a window")
	demo := flag.String("demo", "", "built-in task to run ("+strings.Join(karel.DemoNames(), ", ")+")")
	listDemos := flag.Bool("list-demos", false, "list the built-in tasks and exit")
	devWorld := flag.Bool("devworld", false, "start with the developer test world (for developer testing)")
	var robots karel.Placements
	flag.Var(&robots, "robot", "add a robot at street,avenue[,direction[,color]] (repeatable)")
	flag.Parse()

	if *listDemos {
		for _, name := range karel.DemoNames() {
			fmt.Println(name)
		}
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	applyFlags(&cfg, *streets, *avenues, *size, *speed)
	if *devWorld {
		cfg.World.Streets = max(cfg.World.Streets, devtools.DevWorldMinSize)
		cfg.World.Avenues = max(cfg.World.Avenues, devtools.DevWorldMinSize)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	if *edit && *textMode {
		log.Fatal("the world editor needs a window; drop -headless")
	}

	if err := input.Rebind(cfg.Keys); err != nil {
		log.Fatalf("config: keys: %v", err)
	}
	initGettext(cfg)

	var task karel.Task
	if *demo != "" {
		t, ok := karel.Demo(*demo)
		if !ok {
			log.Fatalf("unknown demo %q (have %s)", *demo, strings.Join(karel.DemoNames(), ", "))
		}
		task = t
	}

	s := state.NewSession(cfg, *edit)
	defer s.Close()

	if *devWorld {
		err := s.Local().Update(s.Context(), func(st *world.State) error {
			devtools.BuildDevWorld(st)
			return nil
		})
		if err != nil {
			log.Fatalf("dev world: %v", err)
		}
	}
	if *worldPath != "" {
		path := worldfile.Resolve(cfg.WorldsDir, *worldPath)
		if err := s.LoadWorld(path); err != nil {
			log.Fatalf("load %s: %v", path, err)
		}
	}
	if err := robots.Place(s.Context(), s.Local()); err != nil {
		log.Fatalf("%v", err)
	}

	if *textMode {
		runHeadless(s, cfg, *demo, task)
		return
	}
	runWindow(s, cfg, *demo, task, *edit)
}

func applyFlags(cfg *config.Config, streets, avenues, size, speed int) {
	if streets > 0 {
		cfg.World.Streets = streets
	}
	if avenues > 0 {
		cfg.World.Avenues = avenues
	}
	if size > 0 {
		cfg.Window.Size = size
	}
	if speed >= 0 {
		cfg.Speed = speed
	}
}

func runWindow(s *state.Session, cfg config.Config, name string, task karel.Task, editing bool) {
	title := gotext.Get("Karel World")
	if editing {
		title = gotext.Get("Karel World Maker")
	}
	win := ebitenrenderer.New(s, cfg.Window, title)
	renderer.SetRenderer(win)
	renderer.Init()

	if task != nil {
		karel.Run(s.Context(), s.Worker(), name, task)
	}
	if err := win.Run(); err != nil {
		log.Fatalf("window: %v", err)
	}
}

func runHeadless(s *state.Session, cfg config.Config, name string, task karel.Task) {
	renderer.SetRenderer(tui.New())
	renderer.Init()

	ctx, stop := signal.NotifyContext(s.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmds := make(chan input.RawInput)
	go func() {
		defer close(cmds)
		if err := input.ReadCommands(os.Stdin, cmds); err != nil {
			log.Printf("stdin: %v", err)
		}
	}()

	var done <-chan struct{}
	if task != nil {
		done = karel.Run(ctx, s.Worker(), name, task)
	}

	opts := headless.Options{
		Period:   time.Second / time.Duration(cfg.Window.FrameRate),
		Commands: cmds,
		Done:     done,
	}
	if err := headless.Run(ctx, s, renderer.Current, opts); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("headless: %v", err)
	}
}
