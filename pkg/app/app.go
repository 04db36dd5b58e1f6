// Package app 提供 hero 查看器的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
//
// The viewer shows the developer and creative effects side by side. Both
// are full-window populations; a vertical split decides which columns of
// each are visible.
package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"io/fs"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/hero/pkg/config"
	"github.com/decker502/hero/pkg/hero"
	"github.com/decker502/hero/pkg/settings"
	"github.com/decker502/hero/pkg/surface"
	"github.com/decker502/hero/pkg/utils"
)

// Background colours per side (背景颜色)
var (
	developerBackground = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	creativeBackground  = color.RGBA{R: 11, G: 13, B: 23, A: 255}
	dividerColor        = color.RGBA{R: 255, G: 255, B: 255, A: 160}
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Developer and Creative are the resolved settings of each side.
	Developer config.HeroSettings
	Creative  config.HeroSettings
	// Assets holds the silhouette images named by the settings.
	Assets fs.FS
	// Prefs stores the split position and window size. May be nil.
	Prefs *settings.Manager
}

// half is one side of the viewer.
type half struct {
	effect     *hero.Effect
	surface    *surface.Ebiten
	canvas     *ebiten.Image
	background color.Color
	err        error
}

type loadResult struct {
	side hero.Side
	img  image.Image
	err  error
}

// App 是查看器的核心包装器，实现 ebiten.Game 接口
type App struct {
	developer *half
	creative  *half

	pointer *hero.Pointer
	tracker utils.PointerTracker

	split       float64
	touchIDs    []ebiten.TouchID
	justTouched []ebiten.TouchID

	width, height int
	outsideW      int
	outsideH      int
	resize        *Debouncer

	loads  chan loadResult
	cancel context.CancelFunc

	prefs   *settings.Manager
	verbose bool
	now     func() time.Time
}

// NewApp 创建并初始化查看器，并在后台开始加载两侧的剪影图像
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	prefs := cfg.Prefs
	if prefs == nil {
		prefs = settings.NewManager(nil)
	}

	pointer := hero.NewPointer()
	devHalf, err := newHalf(hero.SideDeveloper, cfg.Developer, pointer, developerBackground)
	if err != nil {
		return nil, err
	}
	creHalf, err := newHalf(hero.SideCreative, cfg.Creative, pointer, creativeBackground)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		developer: devHalf,
		creative:  creHalf,
		pointer:   pointer,
		split:     prefs.Settings().Split,
		resize:    NewDebouncer(ResizeDelay),
		loads:     make(chan loadResult, 2),
		cancel:    cancel,
		prefs:     prefs,
		verbose:   cfg.Verbose,
		now:       time.Now,
	}

	a.startLoad(ctx, hero.SideDeveloper, cfg.Developer, cfg.Assets)
	a.startLoad(ctx, hero.SideCreative, cfg.Creative, cfg.Assets)
	log.Printf("[App] Viewer created (developer type=matrix, creative type=%s)", typeName(cfg.Creative))
	return a, nil
}

func newHalf(side hero.Side, s config.HeroSettings, pointer *hero.Pointer, bg color.Color) (*half, error) {
	surf, err := surface.NewEbiten(bg)
	if err != nil {
		return nil, fmt.Errorf("%s surface: %w", side, err)
	}
	return &half{
		effect:     hero.NewEffect(side, s, pointer),
		surface:    surf,
		background: bg,
	}, nil
}

func typeName(s config.HeroSettings) string {
	if s.Type == "" {
		return config.TypeBrush
	}
	return s.Type
}

// startLoad decodes the side's image off the frame goroutine. The result
// is applied in Update.
func (a *App) startLoad(ctx context.Context, side hero.Side, s config.HeroSettings, assets fs.FS) {
	var src hero.ImageSource
	switch {
	case s.Image == "":
		src = func(context.Context) (image.Image, error) {
			return nil, errors.New("no image configured")
		}
	case assets == nil:
		src = func(context.Context) (image.Image, error) {
			return nil, errors.New("no asset filesystem")
		}
	default:
		src = hero.FSImage(assets, s.Image)
	}

	go func() {
		img, err := hero.LoadImage(ctx, src, s.LoadTimeout)
		a.loads <- loadResult{side: side, img: img, err: err}
	}()
}

func (a *App) halfFor(side hero.Side) *half {
	if side == hero.SideDeveloper {
		return a.developer
	}
	return a.creative
}

// applyLoads builds every population whose image has arrived.
func (a *App) applyLoads() {
	for {
		select {
		case r := <-a.loads:
			h := a.halfFor(r.side)
			if r.err != nil {
				h.err = r.err
				log.Printf("[App] %s image: %v", r.side, r.err)
				continue
			}
			h.effect.Resize(a.width, a.height)
			h.effect.Build(r.img)
		default:
			return
		}
	}
}

// applySize resizes both canvases and rebuilds both populations.
func (a *App) applySize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	a.width, a.height = w, h
	for _, hf := range []*half{a.developer, a.creative} {
		if hf.canvas != nil {
			hf.canvas.Deallocate()
		}
		hf.canvas = ebiten.NewImage(w, h)
		hf.effect.Resize(w, h)
	}
	log.Printf("[App] Canvas resized to %dx%d", w, h)
}

// Update 更新查看器逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	a.applyLoads()
	if w, h, ok := a.resize.Poll(a.now()); ok {
		a.applySize(w, h)
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		toggleFullscreen(a.prefs, ebiten.IsFullscreen, ebiten.SetFullscreen)
	}

	a.updateSplit()
	if a.tracker.Update() {
		x, y := a.tracker.Position()
		a.pointer.Set(float64(x), float64(y))
	}

	devVisible, creVisible := visibleHalves(a.width, a.split)
	if devVisible {
		a.developer.effect.Step()
	}
	if creVisible {
		a.creative.effect.Step()
	}
	return nil
}

// toggleFullscreen flips the fullscreen state and records it in prefs.
func toggleFullscreen(prefs *settings.Manager, current func() bool, set func(bool)) {
	on := !current()
	set(on)
	prefs.SetFullscreen(on)
	log.Printf("[App] Fullscreen %v", on)
}

// updateSplit cycles the view presets: Tab on desktop, a second finger
// touching down on mobile.
func (a *App) updateSplit() {
	next := inpututil.IsKeyJustPressed(ebiten.KeyTab)
	if utils.IsMobile() {
		a.justTouched = inpututil.AppendJustPressedTouchIDs(a.justTouched[:0])
		a.touchIDs = ebiten.AppendTouchIDs(a.touchIDs[:0])
		next = next || (len(a.justTouched) > 0 && len(a.touchIDs) >= 2)
	}
	if next {
		a.split = NextPreset(a.split)
		a.prefs.SetSplit(a.split)
		log.Printf("[App] Split preset %.2f", a.split)
	}
}

// Draw 绘制两侧画面并按分割线拼接
func (a *App) Draw(screen *ebiten.Image) {
	if a.developer.canvas == nil {
		return
	}
	splitX := SplitX(a.width, a.split)
	devVisible, creVisible := visibleHalves(a.width, a.split)

	if devVisible {
		a.drawHalf(a.developer)
		part := a.developer.canvas.SubImage(image.Rect(0, 0, splitX, a.height)).(*ebiten.Image)
		screen.DrawImage(part, nil)
		a.drawStatus(screen, a.developer, 0, splitX)
	}
	if creVisible {
		a.drawHalf(a.creative)
		part := a.creative.canvas.SubImage(image.Rect(splitX, 0, a.width, a.height)).(*ebiten.Image)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(splitX), 0)
		screen.DrawImage(part, op)
		a.drawStatus(screen, a.creative, splitX, a.width)
	}

	if devVisible && creVisible {
		vector.StrokeLine(screen, float32(splitX), 0, float32(splitX), float32(a.height), 1, dividerColor, true)
	}
}

func (a *App) drawHalf(h *half) {
	if !h.effect.Ready() {
		h.canvas.Fill(h.background)
		return
	}
	h.surface.SetTarget(h.canvas)
	h.effect.Draw(h.surface)
}

// drawStatus prints the loading or error line of a half between columns x0 and x1.
func (a *App) drawStatus(screen *ebiten.Image, h *half, x0, x1 int) {
	var msg string
	switch {
	case h.err != nil:
		msg = h.err.Error()
	case !h.effect.Ready():
		msg = "loading..."
	default:
		return
	}
	ebitenutil.DebugPrintAt(screen, msg, x0+(x1-x0)/2-len(msg)*3, a.height/2)
}

// Layout 返回逻辑屏幕尺寸，与窗口尺寸一致
//
// The first size is applied at once; later changes are debounced.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != a.outsideW || outsideHeight != a.outsideH {
		if a.outsideW == 0 && a.outsideH == 0 {
			a.applySize(outsideWidth, outsideHeight)
		} else {
			a.resize.Trigger(a.now(), outsideWidth, outsideHeight)
		}
		a.outsideW, a.outsideH = outsideWidth, outsideHeight
	}
	return outsideWidth, outsideHeight
}

// Close stops pending loads and saves the viewer preferences.
func (a *App) Close() error {
	a.cancel()
	if !ebiten.IsFullscreen() {
		w, h := ebiten.WindowSize()
		if w > 0 && h > 0 {
			a.prefs.SetWindowSize(w, h)
		}
	}
	a.developer.effect.Stop()
	a.creative.effect.Stop()
	return a.prefs.Save()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
