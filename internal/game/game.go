package game

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/noisewalk/internal/config"
	"github.com/samdwyer/noisewalk/internal/entity"
	"github.com/samdwyer/noisewalk/internal/gamedata"
	"github.com/samdwyer/noisewalk/internal/input"
	"github.com/samdwyer/noisewalk/internal/movement"
	"github.com/samdwyer/noisewalk/internal/noise"
	"github.com/samdwyer/noisewalk/internal/telemetry"
	"github.com/samdwyer/noisewalk/internal/ui"
	"github.com/samdwyer/noisewalk/internal/world"
)

const helpText = "Move with WASD or arrow keys. q quits."

// Game holds the entire game state.
type Game struct {
	cfg      *config.Config
	log      *log.Logger
	screen   *ui.Screen
	renderer *ui.Renderer
	world    *world.WorldState
	player   *entity.Player
	mover    *movement.Controller
	keyboard *input.Keyboard
	state    State
	running  bool
}

// New creates a new game instance on the terminal.
func New(cfg *config.Config, logger *log.Logger) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("open screen: %w", err)
	}

	g, err := NewWithScreen(cfg, logger, screen)
	if err != nil {
		screen.Close()
		return nil, err
	}
	return g, nil
}

// NewWithScreen creates a game drawing to an already initialized screen.
// A nil logger discards output.
func NewWithScreen(cfg *config.Config, logger *log.Logger, screen *ui.Screen) (*Game, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	palette, err := gamedata.LoadPalette()
	if err != nil {
		return nil, fmt.Errorf("load palette: %w", err)
	}

	return &Game{
		cfg:      cfg,
		log:      logger,
		screen:   screen,
		renderer: ui.NewRenderer(screen, palette),
		keyboard: input.NewKeyboard(cfg.KeyFirstRepeat, cfg.KeyRelease),
		state:    StateGenerating,
		running:  true,
	}, nil
}

// Init generates the world and places the player at the grid center.
// It must complete before any movement step is applied.
func (g *Game) Init(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.init")
	defer span.End()

	sampler, err := noise.New(g.cfg.NoiseBackend, g.cfg.Seed, g.cfg.NoiseScale)
	if err != nil {
		return fmt.Errorf("create noise sampler: %w", err)
	}

	g.world = world.NewWorldState(sampler.Seed())
	gen := world.NewGenerator(sampler, g.cfg.GenConfig(), g.log)
	records, err := gen.Generate(ctx, g.world)
	if err != nil {
		return fmt.Errorf("generate world: %w", err)
	}
	g.renderer.SetRecords(records)

	start := entity.StartPos(g.cfg.GridSize)
	g.player = entity.NewPlayer(start)
	g.mover = movement.NewController(g.player, g.world.Tiles, g.cfg.CellSize, g.log)
	g.state = StateExplore

	span.SetAttributes(
		attribute.String("noise.backend", g.cfg.NoiseBackend),
		attribute.Int("player.start_x", start.X),
		attribute.Int("player.start_y", start.Y),
		attribute.Bool("player.start_passable", g.world.Tiles.IsPassable(start)),
	)
	g.log.Info("game ready", "start", start, "backend", g.cfg.NoiseBackend)
	return nil
}

// Run executes the main game loop until the player quits or ctx is done.
func (g *Game) Run(ctx context.Context) error {
	defer g.screen.Close()

	if err := g.Init(ctx); err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)
	events := g.pollEvents(done)

	ticker := time.NewTicker(g.cfg.StepInterval)
	defer ticker.Stop()

	g.render()
	for g.running {
		select {
		case <-ctx.Done():
			g.running = false
		case ev, ok := <-events:
			if !ok {
				g.running = false
				break
			}
			g.handleEvent(ev, time.Now())
		case now := <-ticker.C:
			g.Step(ctx, now)
			g.render()
		}
	}

	g.log.Info("game stopped", "position", g.player.Pos)
	return nil
}

// pollEvents forwards terminal events until the screen is closed or done
// is closed.
func (g *Game) pollEvents(done <-chan struct{}) <-chan tcell.Event {
	events := make(chan tcell.Event, 64)
	go func() {
		defer close(events)
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	return events
}

// Step applies the key presses gathered since the previous step.
func (g *Game) Step(ctx context.Context, now time.Time) (movement.Moved, bool) {
	pressed := g.keyboard.Step(now)
	if g.state != StateExplore {
		return movement.Moved{}, false
	}

	moved, ok := g.mover.Step(ctx, pressed)
	if ok {
		g.log.Debug("player moved", "to", moved.To, "world", moved.World)
	}
	return moved, ok
}

// handleEvent processes a single terminal event.
func (g *Game) handleEvent(ev tcell.Event, now time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ev, now)
	case *tcell.EventMouse:
		col, row := ev.Position()
		for _, h := range g.renderer.PointerAt(col, row) {
			g.log.Debug("hover", "record", h.ID, "entered", h.Entered)
		}
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ev *tcell.EventKey, now time.Time) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false
		return
	case tcell.KeyRune:
		if ev.Rune() == 'q' || ev.Rune() == 'Q' {
			g.running = false
			return
		}
	}

	if d, ok := keyDirection(ev); ok {
		g.keyboard.Press(d, now)
	}
}

// keyDirection maps arrow keys and WASD to a direction.
func keyDirection(ev *tcell.EventKey) (input.Direction, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return input.Up, true
	case tcell.KeyDown:
		return input.Down, true
	case tcell.KeyLeft:
		return input.Left, true
	case tcell.KeyRight:
		return input.Right, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return input.Up, true
		case 's', 'S':
			return input.Down, true
		case 'a', 'A':
			return input.Left, true
		case 'd', 'D':
			return input.Right, true
		}
	}
	return 0, false
}

// render draws the current frame.
func (g *Game) render() {
	msg := helpText
	if g.player != nil {
		msg = fmt.Sprintf("%s  (%d,%d)", helpText, g.player.Pos.X, g.player.Pos.Y)
	}
	for _, h := range g.renderer.Render(g.player, msg) {
		g.log.Debug("hover", "record", h.ID, "entered", h.Entered)
	}
}

// Position returns the player position, or false before Init.
func (g *Game) Position() (world.Pos, bool) {
	if g.mover == nil {
		return world.Pos{}, false
	}
	return g.mover.Position(), true
}

// State returns the current game phase.
func (g *Game) State() State {
	return g.state
}
