package main

import (
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/hitbox/common"
	"github.com/milk9111/hitbox/ecs"
	"github.com/milk9111/hitbox/ecs/component"
	"github.com/milk9111/hitbox/ecs/entity"
	"github.com/milk9111/hitbox/ecs/system"
	"github.com/milk9111/hitbox/physics"
	"github.com/milk9111/hitbox/prefabs"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	playerSpeed   = 3.0
	cameraLerp    = 0.1
	maxScriptLogs = 6
)

type Game struct {
	frames int
	paused bool

	scenePath string
	world     *ecs.World
	physics   *physics.Physics
	scripts   *system.TriggerScriptSystem
	debugDraw *system.ColliderDebugSystem
	watcher   *prefabs.Watcher

	camX, camY float64
	scriptLog  []string

	hud *HUD
}

func NewGame(scenePath, physicsPath string, debug bool) (*Game, error) {
	cfg, err := loadPhysicsConfig(physicsPath)
	if err != nil {
		return nil, err
	}
	if debug {
		cfg.Debug = true
	}

	g := &Game{
		scenePath: scenePath,
		world:     ecs.NewWorld(),
		scripts:   system.NewTriggerScriptSystem(),
		debugDraw: system.NewColliderDebugSystem(true),
	}
	g.debugDraw.ShowBounds = debug
	g.scripts.OnEmit = g.recordScriptEvent

	g.physics, err = system.NewWorldPhysics(g.world, cfg)
	if err != nil {
		return nil, fmt.Errorf("physics config %s: %w", physicsPath, err)
	}

	g.world.AddSystem(system.NewAutoSizeSystem())
	g.world.AddSystem(system.NewPhysicsSystem())
	g.world.AddSystem(g.scripts)
	g.world.AddSystem(g.debugDraw)

	if _, err := entity.BuildScene(g.world, scenePath); err != nil {
		return nil, err
	}

	g.hud = NewHUD(g)

	if w, err := prefabs.NewWatcher(watchDirs()...); err != nil {
		log.Printf("Game: hot reload disabled: %v", err)
	} else {
		g.watcher = w
	}
	return g, nil
}

func loadPhysicsConfig(path string) (physics.Config, error) {
	if path == "" {
		return physics.DefaultConfig(), nil
	}
	data, err := prefabs.Load(path)
	if err != nil {
		log.Printf("Game: physics config %s not found, using defaults", path)
		return physics.DefaultConfig(), nil
	}
	return physics.ParseConfig(data)
}

func watchDirs() []string {
	var dirs []string
	for _, dir := range []string{prefabs.Dir, prefabs.Dir + "/scripts"} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.toggleBounds()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.togglePause()
	}

	g.applyChanges()
	if !g.paused {
		g.movePlayer()
		g.world.Update()
		g.followPlayer()
	}

	g.hud.Update(g)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.world.Draw(screen, g.camX, g.camY, 1)
	g.hud.Draw(screen)
}

func (g *Game) toggleBounds() {
	g.debugDraw.ShowBounds = !g.debugDraw.ShowBounds
}

func (g *Game) togglePause() {
	g.paused = !g.paused
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) movePlayer() {
	player, ok := g.world.First(component.PlayerTagComponent.ID())
	if !ok {
		return
	}
	t, ok := g.world.Transform(player)
	if !ok {
		return
	}
	dx, dy := 0.0, 0.0
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx -= playerSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx += playerSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dy -= playerSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy += playerSpeed
	}
	if dx == 0 && dy == 0 {
		return
	}
	if err := entity.SetEntityPosition(g.world, player, t.X+dx, t.Y+dy); err != nil {
		log.Printf("Game: move player: %v", err)
	}
}

func (g *Game) followPlayer() {
	player, ok := g.world.First(component.PlayerTagComponent.ID())
	if !ok {
		return
	}
	t, ok := g.world.Transform(player)
	if !ok {
		return
	}
	g.camX = common.Lerp(g.camX, t.X-baseWidth/2, cameraLerp)
	g.camY = common.Lerp(g.camY, t.Y-baseHeight/2, cameraLerp)
}

func (g *Game) applyChanges() {
	reload := false
	for _, change := range g.watcher.Poll() {
		if change.Script {
			log.Printf("Game: script changed: %s", change.Path)
			g.scripts.Invalidate(change.Path)
			continue
		}
		reload = true
	}
	if reload {
		g.reloadScene()
	}
}

// reloadScene rebuilds every entity from the scene file. A broken edit
// keeps the previous scene.
func (g *Game) reloadScene() {
	if _, err := entity.BuildScene(ecs.NewWorld(), g.scenePath); err != nil {
		log.Printf("Game: reload %s: %v", g.scenePath, err)
		return
	}

	for _, e := range g.world.Entities() {
		g.world.DestroyEntity(e)
	}
	if _, err := entity.BuildScene(g.world, g.scenePath); err != nil {
		log.Printf("Game: reload %s: %v", g.scenePath, err)
		return
	}
	g.scripts.Invalidate("")
	log.Printf("Game: reloaded %s (%d colliders)", g.scenePath, g.physics.Len())
}

func (g *Game) recordScriptEvent(se system.ScriptEvent) {
	g.scriptLog = append(g.scriptLog, fmt.Sprintf("%v: %s", se.Entity, se.Name))
	if len(g.scriptLog) > maxScriptLogs {
		g.scriptLog = g.scriptLog[len(g.scriptLog)-maxScriptLogs:]
	}
}
