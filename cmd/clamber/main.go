// Headless simulation runner: loads a level and its tuning config, drives
// the fixed-timestep loop, and logs what the character is doing. With
// -watch the level file is hot-reloaded on change, restarting the character
// from the level's spawn point.
package main

import (
	"flag"
	"log"
	"time"

	"clamber/internal/character"
	"clamber/internal/config"
	"clamber/internal/world"

	"github.com/fsnotify/fsnotify"
)

func main() {
	levelPath := flag.String("level", "levels/intro.json", "level file to load")
	configPath := flag.String("config", "", "optional tuning config (YAML)")
	ticks := flag.Int("ticks", 0, "run this many ticks then exit (0 = realtime)")
	watch := flag.Bool("watch", false, "hot-reload the level file on change")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}

	level, err := world.LoadLevel(*levelPath, cfg)
	if err != nil {
		log.Fatalf("load level: %v", err)
	}
	attachCallbacks(level)

	reload := make(chan struct{}, 1)
	if *watch {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			log.Fatalf("watch level: %v", err)
		}
		defer watcher.Close()
		if err := watcher.Add(*levelPath); err != nil {
			log.Fatalf("watch level: %v", err)
		}
		go func() {
			for {
				select {
				case ev, ok := <-watcher.Events:
					if !ok {
						return
					}
					if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) {
						select {
						case reload <- struct{}{}:
						default:
						}
					}
				case err, ok := <-watcher.Errors:
					if !ok {
						return
					}
					log.Printf("watch: %v", err)
				}
			}
		}()
	}

	loop := world.NewLoop(level)
	if *ticks > 0 {
		for i := 0; i < *ticks; i++ {
			level.FixedUpdate(character.Input{})
		}
		head := level.Char.Particle(character.Head).Position
		log.Printf("ran %d ticks, head at (%.2f, %.2f, %.2f)", *ticks, head.X, head.Y, head.Z)
		return
	}

	log.Printf("running %q at %d Hz", *levelPath, cfg.TickRate)
	last := time.Now()
	report := time.NewTicker(time.Second)
	defer report.Stop()

	for {
		select {
		case <-reload:
			fresh, err := world.LoadLevel(*levelPath, cfg)
			if err != nil {
				log.Printf("reload level: %v", err)
				continue
			}
			attachCallbacks(fresh)
			level = fresh
			loop = world.NewLoop(level)
			log.Printf("reloaded %q", *levelPath)
		case <-report.C:
			head := level.Char.Particle(character.Head).Position
			log.Printf("tick %d head (%.2f, %.2f, %.2f) grounded=%v holding=%v",
				level.Tick(), head.X, head.Y, head.Z, level.Char.Grounded(), level.Char.Holding())
		default:
		}

		now := time.Now()
		loop.Advance(now.Sub(last), character.Input{})
		last = now
		time.Sleep(loop.TickDuration() / 4)
	}
}

func attachCallbacks(level *world.Level) {
	level.OnTrigger = func(kind world.TriggerKind, h world.Handle) {
		log.Printf("trigger %s (%d)", kind, h)
	}
	level.OnHazardHit = func() {
		log.Printf("hazard hit at tick %d", level.Tick())
	}
}
