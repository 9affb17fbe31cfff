package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"github.com/lixenwraith/particles/audio"
	"github.com/lixenwraith/particles/config"
	"github.com/lixenwraith/particles/field"
	"github.com/lixenwraith/particles/host/desktop"
	"github.com/lixenwraith/particles/host/tui"
	"github.com/lixenwraith/particles/host/web"
	"github.com/lixenwraith/particles/parameter"
	"github.com/lixenwraith/particles/render"
	"github.com/lixenwraith/particles/stats"
)

var (
	hostFlag   = flag.String("host", "tui", "Host: tui, web, desktop")
	configFlag = flag.String("config", "", "Config file (.toml, .yaml, .yml)")
	seedFlag   = flag.Uint64("seed", 0, "Random seed, 0 picks one from the clock")
	debugFlag  = flag.Bool("debug", false, "Write logs to "+logDir+"/"+logFileName)
	statsFlag  = flag.Bool("stats", false, "Print a frame-time summary on exit")
	addrFlag   = flag.String("addr", parameter.WebAddr, "Listen address for the web host")
	countFlag  = flag.Int("count", 0, "Particle count override")
	audioFlag  = flag.Bool("audio", false, "Play pointer enter/leave cues")
)

func main() {
	// Panic Recovery: hosts restore the screen while unwinding, report here
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n\x1b[31mPARTICLES CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(); err != nil {
		if errors.Is(err, tui.ErrNoTTY) {
			fmt.Fprintln(os.Stderr, "particles: stdin/stdout is not a terminal, nothing to render (try -host web)")
		} else {
			fmt.Fprintf(os.Stderr, "particles: %v\n", err)
		}
		if logFile != nil {
			logFile.Close()
		}
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var observers []render.Observer

	var recorder *stats.Recorder
	if *statsFlag {
		recorder = stats.NewRecorder(parameter.StatsCapacity)
		observers = append(observers, recorder.Observe)
	}

	var sm *audio.SoundManager
	if cfg.Audio {
		sm = audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			log.Printf("[main] audio disabled: %v", err)
			sm = nil
		} else {
			defer sm.Cleanup()
		}
	}

	seed := *seedFlag
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Printf("[main] host=%s seed=%d particles=%d", *hostFlag, seed, cfg.ParticleCount)

	err = runHost(ctx, cfg, seed, observers, sm)

	if recorder != nil {
		fmt.Println(recorder.Report())
	}
	return err
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return nil, err
	}
	if *countFlag > 0 {
		cfg.ParticleCount = *countFlag
	}
	if *audioFlag {
		cfg.Audio = true
	}
	return cfg, cfg.Validate()
}

// audioObserver cues pointer edges of one surface, nil when audio is off
func audioObserver(sm *audio.SoundManager) []render.Observer {
	if sm == nil {
		return nil
	}
	et := sm.NewTracker()
	return []render.Observer{func(s render.FrameStats) { et.Track(s.Pointer.Active) }}
}

func runHost(ctx context.Context, cfg *config.Config, seed uint64, observers []render.Observer, sm *audio.SoundManager) error {
	single := append(append([]render.Observer(nil), observers...), audioObserver(sm)...)

	switch *hostFlag {
	case "tui":
		h, err := tui.New(tui.Options{
			Config:    cfg,
			Rand:      rand.New(rand.NewSource(seed)),
			Observers: single,
		})
		if err != nil {
			return err
		}
		return h.Run(ctx)

	case "web":
		// One independent source per browser session
		var sessions atomic.Uint64
		srv, err := web.NewServer(web.Options{
			Config: cfg,
			Addr:   *addrFlag,
			NewRand: func() field.Source {
				return rand.New(rand.NewSource(seed + sessions.Add(1)))
			},
			Observers: observers,
			// Each browser tab is its own pointer stream
			SessionObservers: func() []render.Observer { return audioObserver(sm) },
		})
		if err != nil {
			return err
		}
		fmt.Printf("particles: serving on http://%s\n", *addrFlag)
		return srv.Run(ctx)

	case "desktop":
		return desktop.Run(ctx, desktop.Options{
			Config:    cfg,
			Rand:      rand.New(rand.NewSource(seed)),
			Observers: single,
		})

	default:
		return errors.Errorf("unknown host %q (want tui, web or desktop)", *hostFlag)
	}
}
