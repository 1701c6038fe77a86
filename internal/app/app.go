// Package app hosts the shiny window shell around the annotation editor:
// the image tab strip, the tool and label toolbar, the shortcut bar, and
// the event loop that feeds pointer and key events into the engine.
package app

import (
	"context"
	"fmt"
	"image"
	"log"
	"sync"
	"time"
	"unicode"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/pixelmark/internal/annotation"
	"github.com/example/pixelmark/internal/clipboard"
	"github.com/example/pixelmark/internal/config"
	"github.com/example/pixelmark/internal/editor"
	"github.com/example/pixelmark/internal/export"
	"github.com/example/pixelmark/internal/notify"
	"github.com/example/pixelmark/internal/render"
	"github.com/example/pixelmark/internal/theme"
)

// ImageTab is one open image in the tab strip.
type ImageTab struct {
	ID     string
	Path   string
	Title  string
	Image  image.Image
	Width  int
	Height int
}

// App holds the UI state around a single editor instance.
type App struct {
	cfg         *config.Config
	theme       *theme.Theme
	tabs        []*ImageTab
	templates   []*annotation.Template
	editor      *editor.Editor
	notifier    *notify.Notifier
	sessionPath string
	exportDir   string

	updateCh chan struct{}

	msgMu        sync.Mutex
	message      string
	messageUntil time.Time

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an App during creation.
type Option func(*App)

// WithImages sets the images opened in the tab strip.
func WithImages(tabs []*ImageTab) Option { return func(a *App) { a.tabs = tabs } }

// WithConfig sets the application configuration.
func WithConfig(cfg *config.Config) Option { return func(a *App) { a.cfg = cfg } }

// WithTheme sets the UI color palette.
func WithTheme(th *theme.Theme) Option { return func(a *App) { a.theme = th } }

// WithTemplates sets the keypoint templates offered by the keypoints tool.
func WithTemplates(ts []*annotation.Template) Option { return func(a *App) { a.templates = ts } }

// WithNotifier sets the desktop notifier used after save, export, and copy.
func WithNotifier(n *notify.Notifier) Option { return func(a *App) { a.notifier = n } }

// WithSessionPath sets where Ctrl+S writes the session file.
func WithSessionPath(path string) Option { return func(a *App) { a.sessionPath = path } }

// WithExportDir sets where Ctrl+E writes the YOLO export.
func WithExportDir(dir string) Option { return func(a *App) { a.exportDir = dir } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *App) { a.onClose = fn } }

// New creates an App and its editor with the provided options.
func New(opts ...Option) *App {
	a := &App{
		cfg:      config.New(),
		updateCh: make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(a)
	}
	if a.theme == nil {
		a.theme = theme.Default()
	}
	a.editor = editor.New(
		editor.WithHistoryLimit(a.cfg.HistoryLimit),
		editor.WithTemplates(a.templates),
		editor.WithBrushRadius(float64(a.cfg.BrushRadius)),
		editor.WithOnChange(a.requestRepaint),
		editor.WithOnMessage(a.setMessage),
	)
	if len(a.cfg.Labels) > 0 {
		a.editor.SetLabel(a.cfg.Labels[0].Name)
	}
	return a
}

// Editor exposes the engine, mainly so a caller can preload annotations
// before Run.
func (a *App) Editor() *editor.Editor { return a.editor }

func (a *App) requestRepaint() {
	select {
	case a.updateCh <- struct{}{}:
	default:
	}
}

func (a *App) setMessage(text string) {
	a.msgMu.Lock()
	a.message = text
	a.messageUntil = time.Now().Add(2 * time.Second)
	a.msgMu.Unlock()
	log.Print(text)
	a.requestRepaint()
}

func (a *App) currentMessage() (string, time.Time) {
	a.msgMu.Lock()
	defer a.msgMu.Unlock()
	return a.message, a.messageUntil
}

func (a *App) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// session freezes the whole collection for saving, exporting, or copying.
func (a *App) session() *export.Session {
	infos := make([]export.ImageInfo, 0, len(a.tabs))
	for _, t := range a.tabs {
		infos = append(infos, export.ImageInfo{ID: t.ID, Path: t.Path, Width: t.Width, Height: t.Height})
	}
	labels := make([]export.Label, 0, len(a.cfg.Labels))
	for _, l := range a.cfg.Labels {
		labels = append(labels, export.Label{Name: l.Name, Color: l.Color})
	}
	return export.BuildSession(a.editor.Collection(), infos, labels)
}

// Run executes the UI loop using shiny's driver.
func (a *App) Run() { driver.Main(a.Main) }

func (a *App) Main(s screen.Screen) {
	if len(a.tabs) == 0 {
		log.Print("no images to annotate")
		return
	}

	// Widen the toolbar to fit the longest tool or label caption so the
	// UI contents are not clipped on start up.
	d := &font.Drawer{Face: basicfont.Face7x13}
	max := d.MeasureString("Pixelmark").Ceil() + 8
	captions := []string{"S:Select", "B:Box", "P:Polygon", "L:Polyline", "O:Point", "K:Keypoints", "M:Mask"}
	for _, l := range a.cfg.Labels {
		captions = append(captions, l.Name)
	}
	for _, t := range a.templates {
		captions = append(captions, t.ID)
	}
	for _, lbl := range captions {
		w := d.MeasureString(lbl).Ceil() + 24
		if w > max {
			max = w
		}
	}
	if max > toolbarWidth {
		toolbarWidth = max
	}

	first := a.tabs[0]
	width := first.Width + toolbarWidth
	height := first.Height + tabHeight + bottomHeight
	if width < 800 {
		width = 800
	}
	if height < 600 {
		height = 600
	}
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "Pixelmark"})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer a.notifyClose()

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-a.updateCh:
				w.Send(paint.Event{})
			case <-done:
				return
			}
		}
	}()
	defer close(done)

	ed := a.editor
	current := 0
	renderer := render.New(a.theme)

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
		}
	}()

	canvasSize := func() (int, int) {
		return width - toolbarWidth, height - tabHeight - bottomHeight
	}

	selectTab := func(idx int) {
		if idx < 0 || idx >= len(a.tabs) {
			return
		}
		current = idx
		t := a.tabs[current]
		ed.SetImage(t.ID, t.Width, t.Height)
		vw, vh := canvasSize()
		ed.Camera.FitToViewport(t.Width, t.Height, vw, vh, 0)
		w.Send(paint.Event{})
	}

	keyboardAction = map[KeyShortcut]string{}
	actions := map[string]func(){}
	register := func(name string, keys KeyboardShortcuts, fn func()) {
		actions[name] = fn
		if keys != nil {
			for _, sc := range keys.KeyboardShortcuts() {
				keyboardAction[sc] = name
			}
		}
	}

	register("save", shortcutList{{Rune: 's', Modifiers: key.ModControl}}, func() {
		sess := a.session()
		if err := export.WriteSession(sess, a.sessionPath); err != nil {
			log.Printf("save: %v", err)
			return
		}
		a.notifier.Save(a.sessionPath)
		a.setMessage(fmt.Sprintf("saved %s", a.sessionPath))
	})

	register("export", shortcutList{{Rune: 'e', Modifiers: key.ModControl}}, func() {
		sess := a.session()
		if err := export.WriteYOLO(sess, a.exportDir); err != nil {
			log.Printf("export: %v", err)
			return
		}
		a.notifier.Export("yolo", a.exportDir)
		a.setMessage(fmt.Sprintf("exported yolo to %s", a.exportDir))
	})

	register("copy", shortcutList{{Rune: 'c', Modifiers: key.ModControl}}, func() {
		sess := a.session()
		text := export.YOLOText(sess, a.tabs[current].ID)
		if text == "" {
			a.setMessage("nothing to copy")
			return
		}
		if err := clipboard.WriteText(text); err != nil {
			log.Printf("copy: %v", err)
			return
		}
		a.notifier.Copy(a.tabs[current].Title)
		a.setMessage("annotations copied to clipboard")
	})

	register("undo", shortcutList{{Rune: 'z', Modifiers: key.ModControl}}, ed.Undo)
	register("redo", shortcutList{
		{Rune: 'y', Modifiers: key.ModControl},
		{Rune: 'z', Modifiers: key.ModControl | key.ModShift},
	}, ed.Redo)
	register("dup", shortcutList{{Rune: 'd', Modifiers: key.ModControl}}, ed.DuplicateSelected)
	register("delete", nil, ed.DeleteSelected)
	register("clear", shortcutList{{Rune: 'x', Modifiers: key.ModControl | key.ModShift}}, ed.ClearImage)
	register("finish", nil, ed.FinishShape)
	register("cancel", nil, ed.Cancel)
	register("fit", shortcutList{{Rune: 'f'}}, func() {
		t := a.tabs[current]
		vw, vh := canvasSize()
		ed.Camera.FitToViewport(t.Width, t.Height, vw, vh, 0)
		w.Send(paint.Event{})
	})
	register("actual", shortcutList{{Rune: '0'}}, func() {
		ed.Camera.ActualSize()
		w.Send(paint.Event{})
	})
	register("quit", nil, func() {
		w.Send(lifecycle.Event{To: lifecycle.StageDead})
	})

	handleShortcut := func(action string) {
		if fn, ok := actions[action]; ok {
			fn()
		}
		w.Send(paint.Event{})
	}

	toolButtons = toolButtons[:0]
	for _, tc := range []struct {
		label string
		tool  editor.Tool
	}{
		{"S:Select", editor.ToolSelect},
		{"B:Box", editor.ToolBox},
		{"P:Polygon", editor.ToolPolygon},
		{"L:Polyline", editor.ToolPolyline},
		{"O:Point", editor.ToolPoint},
		{"K:Keypoints", editor.ToolKeypoints},
		{"M:Mask", editor.ToolMask},
	} {
		t := tc.tool
		tb := &ToolButton{label: tc.label, tool: t}
		tb.onSelect = func() { ed.SetTool(t) }
		toolButtons = append(toolButtons, &CacheButton{Button: tb})
	}

	labelButtons = labelButtons[:0]
	for _, l := range a.cfg.Labels {
		lb := &LabelButton{label: l}
		name := l.Name
		lb.onSelect = func() { ed.SetLabel(name) }
		labelButtons = append(labelButtons, &CacheButton{Button: lb})
	}

	templateButtons = templateButtons[:0]
	for _, t := range a.templates {
		id := t.ID
		tb := &ToolButton{label: id}
		tb.onSelect = func() { ed.SetTemplate(id) }
		templateButtons = append(templateButtons, &CacheButton{Button: tb})
	}

	selectTab(0)

	for {
		e := w.NextEvent()
		switch e := e.(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				paintMu.Lock()
				if paintCancel != nil {
					paintCancel()
				}
				paintMu.Unlock()
				return
			}
		case size.Event:
			width = e.WidthPx
			height = e.HeightPx
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil {
				if dropCount < frameDropThreshold {
					paintCancel()
					dropCount++
				}
			}
			paintMu.Unlock()
			msg, until := a.currentMessage()
			st := paintState{
				width:          width,
				height:         height,
				tabs:           a.tabs,
				current:        current,
				snap:           ed.Snapshot(),
				label:          ed.Label(),
				templateID:     currentTemplateID(ed),
				message:        msg,
				messageUntil:   until,
				handleShortcut: handleShortcut,
				renderer:       renderer,
			}
			select {
			case paintCh <- st:
			default:
				<-paintCh
				paintCh <- st
			}
		case mouse.Event:
			a.handleMouse(e, w, ed, width, height, selectTab)
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			ks := KeyShortcut{Rune: unicode.ToLower(e.Rune), Code: e.Code, Modifiers: e.Modifiers}
			action, ok := keyboardAction[ks]
			if !ok {
				// rune-only registrations leave Code unset
				action, ok = keyboardAction[KeyShortcut{Rune: unicode.ToLower(e.Rune), Modifiers: e.Modifiers}]
			}
			if ok {
				handleShortcut(action)
				continue
			}
			switch e.Rune {
			case 's', 'S':
				ed.SetTool(editor.ToolSelect)
				w.Send(paint.Event{})
			case 'b', 'B':
				ed.SetTool(editor.ToolBox)
				w.Send(paint.Event{})
			case 'p', 'P':
				ed.SetTool(editor.ToolPolygon)
				w.Send(paint.Event{})
			case 'l', 'L':
				ed.SetTool(editor.ToolPolyline)
				w.Send(paint.Event{})
			case 'o', 'O':
				ed.SetTool(editor.ToolPoint)
				w.Send(paint.Event{})
			case 'k', 'K':
				ed.SetTool(editor.ToolKeypoints)
				w.Send(paint.Event{})
			case 'm', 'M':
				ed.SetTool(editor.ToolMask)
				w.Send(paint.Event{})
			case 'q', 'Q':
				paintMu.Lock()
				if paintCancel != nil {
					paintCancel()
				}
				paintMu.Unlock()
				return
			case '+', '=':
				vw, vh := canvasSize()
				ed.Camera.ZoomIn(float64(vw)/2, float64(vh)/2)
				w.Send(paint.Event{})
			case '-':
				vw, vh := canvasSize()
				ed.Camera.ZoomOut(float64(vw)/2, float64(vh)/2)
				w.Send(paint.Event{})
			case '1', '2', '3', '4', '5', '6', '7', '8', '9':
				if e.Modifiers&key.ModControl != 0 {
					selectTab(int(e.Rune - '1'))
				}
			case -1:
				switch e.Code {
				case key.CodeLeftArrow:
					ed.Camera.PanBy(20, 0)
					w.Send(paint.Event{})
				case key.CodeRightArrow:
					ed.Camera.PanBy(-20, 0)
					w.Send(paint.Event{})
				case key.CodeUpArrow:
					ed.Camera.PanBy(0, 20)
					w.Send(paint.Event{})
				case key.CodeDownArrow:
					ed.Camera.PanBy(0, -20)
					w.Send(paint.Event{})
				default:
					ed.Key(e)
					w.Send(paint.Event{})
				}
			default:
				ed.Key(e)
				w.Send(paint.Event{})
			}
		}
	}
}

func (a *App) handleMouse(e mouse.Event, w screen.Window, ed *editor.Editor, width, height int, selectTab func(int)) {
	// Shortcut bar along the bottom.
	if int(e.Y) >= height-bottomHeight {
		p := image.Point{int(e.X), int(e.Y)}
		hoverShortcut = -1
		for i := range shortcutRects {
			sc := &shortcutRects[i]
			if p.In(sc.rect) {
				hoverShortcut = i
				if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
					sc.Activate()
				}
				break
			}
		}
		if e.Direction == mouse.DirNone {
			w.Send(paint.Event{})
		}
		return
	}

	// Image tabs along the top.
	if int(e.Y) < tabHeight {
		hoverTab = -1
		p := image.Point{int(e.X), int(e.Y)}
		for i := range tabButtons {
			if p.In(tabButtons[i].rect) {
				hoverTab = i
				if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
					selectTab(i)
				}
				break
			}
		}
		if e.Direction == mouse.DirNone {
			w.Send(paint.Event{})
		}
		return
	}

	// Toolbar on the left.
	if int(e.X) < toolbarWidth {
		p := image.Point{int(e.X), int(e.Y)}
		hoverTool = -1
		hoverLabel = -1
		hoverTemplate = -1
		for i, cb := range toolButtons {
			if p.In(cb.Rect()) {
				hoverTool = i
				if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
					cb.Activate()
					w.Send(paint.Event{})
				}
				break
			}
		}
		for i, cb := range labelButtons {
			if p.In(cb.Rect()) {
				hoverLabel = i
				if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
					cb.Activate()
					w.Send(paint.Event{})
				}
				break
			}
		}
		if ed.Tool() == editor.ToolKeypoints {
			for i, cb := range templateButtons {
				if p.In(cb.Rect()) {
					hoverTemplate = i
					if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
						cb.Activate()
						w.Send(paint.Event{})
					}
					break
				}
			}
		}
		if e.Direction == mouse.DirNone {
			w.Send(paint.Event{})
		}
		return
	}

	// Canvas: translate to viewport-local coordinates for the editor.
	e.X -= float32(toolbarWidth)
	e.Y -= float32(tabHeight)

	switch e.Button {
	case mouse.ButtonWheelUp:
		if e.Direction == mouse.DirPress {
			ed.Camera.ZoomIn(float64(e.X), float64(e.Y))
			w.Send(paint.Event{})
		}
		return
	case mouse.ButtonWheelDown:
		if e.Direction == mouse.DirPress {
			ed.Camera.ZoomOut(float64(e.X), float64(e.Y))
			w.Send(paint.Event{})
		}
		return
	}

	ed.Mouse(e)
	w.Send(paint.Event{})
}

func currentTemplateID(ed *editor.Editor) string {
	// The engine keeps the active template private; surface it through the
	// pending shape when one is being built, otherwise leave the highlight
	// on whichever template the last SetTemplate chose.
	if snap := ed.Snapshot(); snap.Pending != nil && snap.Pending.Kind == annotation.KindKeypoints {
		return snap.Pending.TemplateID
	}
	return ed.TemplateID()
}
