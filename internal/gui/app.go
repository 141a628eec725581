package gui

import (
	"fmt"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/threebody/internal/palette"
	"github.com/san-kum/threebody/internal/render"
	"github.com/san-kum/threebody/internal/scene"
	"github.com/san-kum/threebody/internal/storage"
)

const (
	hudHeight    = 28
	maxTelemetry = 200
)

type App struct {
	Scene     *scene.Scene
	Frame     *scene.Frame
	Size      int32
	Running   bool
	ShowHUD   bool
	Telemetry []float64 // closed contours per frame

	store  *storage.Store
	logger *log.Logger
	status string
}

// initWindow opens a square window sized to the scene canvas plus the HUD
// strip and paces the loop at the scene frame rate.
func initWindow(size, fps int) {
	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(int32(size), int32(size+hudHeight), "threebody")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

func NewApp(sc *scene.Scene, store *storage.Store, logger *log.Logger) *App {
	a := &App{
		Scene:     sc,
		Size:      int32(sc.Config.Size),
		Running:   true,
		ShowHUD:   true,
		Telemetry: make([]float64, 0, maxTelemetry),
		store:     store,
		logger:    logger,
	}
	a.Frame = sc.Frame()
	return a
}

// Run opens the window and blocks until it is closed.
func Run(sc *scene.Scene, store *storage.Store, logger *log.Logger) {
	initWindow(sc.Config.Size, sc.Config.FPS)
	defer rl.CloseWindow()
	NewApp(sc, store, logger).RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			return
		}
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyT) {
		a.Scene.Scheme = palette.Next(a.Scene.Scheme.Name)
		a.Frame.Scheme = a.Scene.Scheme
	}
	if rl.IsKeyPressed(rl.KeyA) {
		a.Scene.Config.Grid.Arrows = !a.Scene.Config.Grid.Arrows
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.ShowHUD = !a.ShowHUD
	}
	if rl.IsKeyPressed(rl.KeyS) {
		a.snapshot()
	}

	if !a.Running {
		return
	}
	a.Scene.Advance(float64(rl.GetFrameTime()))
	a.Frame = a.Scene.Frame()
	a.Telemetry = append(a.Telemetry, float64(a.Frame.Stats.Closed))
	if len(a.Telemetry) > maxTelemetry {
		a.Telemetry = a.Telemetry[1:]
	}
}

// snapshot renders the current frame at full resolution into a PNG export.
func (a *App) snapshot() {
	if a.store == nil {
		return
	}
	id, err := a.savePNG()
	if err != nil {
		a.status = err.Error()
		a.logger.Error("snapshot failed", "err", err)
		return
	}
	a.status = "saved " + id
	a.logger.Info("snapshot saved", "export", id)
}

func (a *App) savePNG() (string, error) {
	if err := a.store.Init(); err != nil {
		return "", err
	}
	sess, err := a.store.Begin("png", a.Scene)
	if err != nil {
		return "", err
	}
	out, err := sess.Create("frame.png")
	if err != nil {
		return "", err
	}
	img := render.NewRaster(a.Scene.Config.Size).Render(a.Frame)
	if err := render.WritePNG(out, img); err != nil {
		out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return sess.ID(), sess.Commit()
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(Colour(a.Frame.Scheme.Background, 1))
	a.drawFrame()
	if a.ShowHUD {
		a.DrawHUD()
	}
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	s := a.Frame.Scheme
	y := a.Size
	rl.DrawRectangle(0, y, a.Size, hudHeight, Colour(s.Background.BlendLab(s.Foreground, 0.1), 1))
	fg, dim := Colour(s.Foreground, 1), Colour(s.Foreground, 0.5)

	rl.DrawText(a.Scene.Config.Seed, 8, y+8, 12, fg)
	status := "RUNNING"
	if !a.Running {
		status = "PAUSED"
	}
	if a.status != "" {
		status = a.status
	}
	rl.DrawText(fmt.Sprintf("%s  %d FPS  %s", status, rl.GetFPS(), s.Name), 120, y+8, 12, dim)
	a.DrawTelemetry(a.Size-130, y+4, 120, hudHeight-8)
}

// DrawTelemetry plots the closed contour count of recent frames.
func (a *App) DrawTelemetry(x, y, width, height int32) {
	if len(a.Telemetry) < 2 {
		return
	}
	lo, hi := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		lo, hi = min(lo, v), max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, v := range a.Telemetry {
		px := float32(x) + float32(i)/float32(len(a.Telemetry))*float32(width)
		py := float32(y+height) - float32((v-lo)/(hi-lo))*float32(height)
		points[i] = rl.NewVector2(px, py)
	}
	rl.DrawLineStrip(points, Colour(a.Frame.Scheme.Contour, 1))
}
