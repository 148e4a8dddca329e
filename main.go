package main

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi/features/math"

	"github.com/automoto/netplayer/client/device"
	"github.com/automoto/netplayer/client/input"
	"github.com/automoto/netplayer/client/settings"
	"github.com/automoto/netplayer/network"
	"github.com/automoto/netplayer/shared/health"
	"github.com/automoto/netplayer/shared/logger"
	"github.com/automoto/netplayer/shared/protocol"
)

const (
	screenWidth  = 640
	screenHeight = 360
	zoom         = 16 // screen pixels per world unit
	maxEventLog  = 5
)

// Game is a headless-looking client: it drives input, prediction and the
// health mirror, and draws a debug readout only.
type Game struct {
	client  *network.Client
	sampler *input.Sampler
	poller  *device.Poller
	camera  *input.OrthoCamera
	aim     *input.AimRig
	mirror  *health.Mirror

	predictor *network.Predictor
	remote    []network.PlayerView
	events    []string

	store *settings.Store
	prefs settings.Settings
	saved bool

	lastUpdate time.Time
}

func NewGame(client *network.Client, store *settings.Store, prefs settings.Settings) *Game {
	camera := &input.OrthoCamera{Zoom: zoom, Width: screenWidth, Height: screenHeight}
	aim := input.NewAimRig()
	sampler := input.NewSampler(client.SendMessage, camera, aim)

	g := &Game{
		client:     client,
		sampler:    sampler,
		poller:     device.NewPoller(sampler, device.DefaultBindings(), prefs.VectorMove),
		camera:     camera,
		aim:        aim,
		mirror:     &health.Mirror{},
		store:      store,
		prefs:      prefs,
		lastUpdate: time.Now(),
	}
	g.mirror.Subscribe(health.ListenerFuncs{
		OnChanged: func(current, maxHealth uint32) {
			g.logEvent(fmt.Sprintf("health %d/%d", current, maxHealth))
		},
		OnDied: func() {
			g.logEvent("you died")
		},
	})
	return g
}

func (g *Game) Update() error {
	now := time.Now()
	elapsed := now.Sub(g.lastUpdate)
	g.lastUpdate = now

	if g.client.State() == network.StateJoinedGame && !g.sampler.Enabled() {
		g.onJoined()
	}

	g.poller.Update()
	g.applyEvents()

	if snap := g.client.LatestSnapshot(); snap != nil {
		g.applySnapshot(*snap)
	}

	if g.predictor != nil {
		g.predictor.Advance(g.sampler.Intent(), elapsed)
		pos := g.predictor.Interpolated()
		g.camera.Position = pos
		g.sampler.SetOrigin(pos)
	}
	g.aim.Update(elapsed.Seconds())
	return nil
}

func (g *Game) onJoined() {
	g.sampler.Enable()

	predictor, err := network.NewPredictor(g.client.Movement(), time.Second/60)
	if err != nil {
		logger.Log.WithError(err).Warn("Prediction disabled")
	} else {
		g.predictor = predictor
	}

	maxHealth := g.client.MaxHealth()
	g.mirror.Apply(maxHealth, maxHealth)

	if g.store != nil && !g.saved {
		if err := g.store.Save(g.prefs); err != nil {
			logger.Log.WithError(err).Warn("Could not save settings")
		}
		g.saved = true
	}
}

func (g *Game) applyEvents() {
	for _, evt := range g.client.DrainHealthEvents() {
		if g.client.IsLocal(esync.NetworkId(evt.NetworkID)) {
			g.mirror.Apply(evt.Health, evt.MaxHealth)
		}
	}
	for _, evt := range g.client.DrainDeathEvents() {
		if g.client.IsLocal(esync.NetworkId(evt.VictimID)) {
			g.mirror.MarkDead()
		} else {
			g.logEvent(fmt.Sprintf("player %d died", evt.VictimID))
		}
	}
	for _, evt := range g.client.DrainSpawnEvents() {
		g.logEvent(fmt.Sprintf("%s joined", evt.PlayerName))
	}
	for _, evt := range g.client.DrainDespawnEvents() {
		g.logEvent(fmt.Sprintf("player %d left", evt.NetworkID))
	}
}

func (g *Game) applySnapshot(snap esync.WorldSnapshot) {
	g.remote = network.DecodeSnapshot(snap)
	for _, view := range g.remote {
		if !g.client.IsLocal(view.ID) {
			continue
		}
		if g.predictor != nil && view.Position != nil {
			g.predictor.Reconcile(view.Pos(), view.Vel())
		}
		if view.State != nil {
			g.mirror.Apply(view.State.Health, view.State.MaxHealth)
		}
	}
}

func (g *Game) logEvent(msg string) {
	g.events = append(g.events, msg)
	if len(g.events) > maxEventLog {
		g.events = g.events[len(g.events)-maxEventLog:]
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  id=%d\n", g.client.ServerName(), g.client.State(), g.client.NetworkID())
	if err := g.client.LastError(); err != nil {
		fmt.Fprintf(&b, "error: %v\n", err)
	}
	fmt.Fprintf(&b, "health %d/%d dead=%v\n", g.mirror.Health(), g.mirror.Max(), g.mirror.Dead())

	var pos math.Vec2
	if g.predictor != nil {
		pos = g.predictor.Interpolated()
	}
	in := g.sampler.Intent()
	fmt.Fprintf(&b, "pos (%.2f, %.2f) move (%.2f, %.2f) jump %.0f aim %.0f deg\n",
		pos.X, pos.Y, in.Move.X, in.Move.Y, in.Jump, g.aim.Angle())

	for _, view := range g.remote {
		if view.State == nil || g.client.IsLocal(view.ID) {
			continue
		}
		p := view.Pos()
		fmt.Fprintf(&b, "  %s #%d %s (%.1f, %.1f) %d/%d\n",
			view.State.Name, view.ID, view.State.StateID, p.X, p.Y, view.State.Health, view.State.MaxHealth)
	}
	for _, e := range g.events {
		b.WriteString(e + "\n")
	}
	ebitenutil.DebugPrint(screen, b.String())
}

func (g *Game) Layout(width, height int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	logger.Init()

	// Register network components for client-side deserialization
	if err := protocol.RegisterComponents(); err != nil {
		logger.Log.WithError(err).Fatal("Failed to register network components")
	}

	store, err := settings.Open("netplayer")
	if err != nil {
		logger.Log.WithError(err).Warn("Could not initialize persistence")
	}
	prefs := settings.Defaults()
	if store != nil {
		if saved, err := store.Load(); err != nil {
			logger.Log.WithError(err).Warn("Could not load settings")
		} else {
			prefs = saved
		}
	}

	addr := flag.String("addr", prefs.Address, "Server address host:port")
	name := flag.String("name", prefs.PlayerName, "Player name")
	version := flag.String("version", "", "Client version sent in the join request")
	vector := flag.Bool("vector", prefs.VectorMove, "Send 2D move vectors instead of a horizontal axis")
	flag.Parse()
	prefs = settings.Settings{Address: *addr, PlayerName: *name, VectorMove: *vector}

	client := network.NewClient()
	client.Connect(*addr, *version, *name)
	defer client.Disconnect()

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("netplayer")

	if err := ebiten.RunGame(NewGame(client, store, prefs)); err != nil {
		logger.Log.WithError(err).Fatal("Game exited")
	}
}
