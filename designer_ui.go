package main

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/milk9111/gamefeel/common"
	"github.com/milk9111/gamefeel/ecs/system"
	"github.com/milk9111/gamefeel/tuning"
)

// sectionConfig is the panel tab holding save/load controls.
const sectionConfig tuning.Section = "Config"

const (
	panelWidth = 470
	rowHeight  = 26
	labelWidth = 220
	valueWidth = 90
)

var (
	panelColor      = color.NRGBA{R: 0x10, G: 0x10, B: 0x18, A: 220}
	buttonIdle      = color.NRGBA{R: 0x3a, G: 0x3a, B: 0x48, A: 0xff}
	buttonHover     = color.NRGBA{R: 0x50, G: 0x50, B: 0x64, A: 0xff}
	buttonPressed   = color.NRGBA{R: 0x2a, G: 0x2a, B: 0x34, A: 0xff}
	textColor       = color.NRGBA{R: 0xe8, G: 0xe8, B: 0xe8, A: 0xff}
	valueColor      = color.NRGBA{R: 0xff, G: 0xd8, B: 0x6a, A: 0xff}
	statusColor     = color.NRGBA{R: 0x9a, G: 0xd0, B: 0xff, A: 0xff}
	mutedColor      = color.NRGBA{R: 0x90, G: 0x90, B: 0x98, A: 0xff}
	inputBackground = color.NRGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}
)

// designerUI is the Tab tuning panel. Rows read and write through live on
// every refresh, so a rebuilt world is picked up without rebuilding widgets.
type designerUI struct {
	ui      *ebitenui.UI
	face    text.Face
	live    func() tuning.Live
	store   *tuning.Store
	changed func()
	logger  *log.Logger

	tabs      map[tuning.Section]*widget.Button
	sections  map[tuning.Section]*widget.Container
	refresh   []func()
	nameInput *widget.TextInput
	saved     *widget.Text
	status    *widget.Text

	pointer system.PanelPointer

	clipboardErr error
}

func newDesignerUI(live func() tuning.Live, store *tuning.Store, changed func(), logger *log.Logger) *designerUI {
	u := &designerUI{
		live:     live,
		store:    store,
		changed:  changed,
		logger:   logger,
		tabs:     make(map[tuning.Section]*widget.Button),
		sections: make(map[tuning.Section]*widget.Container),
		pointer:  system.PanelPointer{Width: panelWidth},
	}
	if u.changed == nil {
		u.changed = func() {}
	}

	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		logger.Fatal("load panel font", "err", err)
	}
	u.face = &text.GoTextFace{Source: src, Size: 14}

	u.clipboardErr = clipboard.Init()
	if u.clipboardErr != nil {
		logger.Warn("clipboard unavailable", "err", u.clipboardErr)
	}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(panelColor)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 12, Bottom: 12, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(panelWidth, common.BaseHeight),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
				StretchVertical:    true,
			}),
		),
	)

	panel.AddChild(u.newText("Game Feel Tuning", textColor, 0))
	panel.AddChild(u.newText("Shift+click steps x10. Tab closes.", mutedColor, 0))

	all := append(append([]tuning.Section(nil), tuning.Sections...), sectionConfig)
	panel.AddChild(u.tabRow(all[:3]))
	panel.AddChild(u.tabRow(all[3:]))

	content := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	for _, s := range tuning.Sections {
		c := u.parameterSection(s)
		u.sections[s] = c
		content.AddChild(c)
	}
	cfg := u.configSection()
	u.sections[sectionConfig] = cfg
	content.AddChild(cfg)
	panel.AddChild(content)

	u.status = u.newText("", statusColor, 0)
	panel.AddChild(u.status)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	u.ui = &ebitenui.UI{Container: root}

	u.show(tuning.SectionPlayer)
	u.Refresh()
	return u
}

func (u *designerUI) Update() { u.ui.Update() }

func (u *designerUI) Draw(screen *ebiten.Image) { u.ui.Draw(screen) }

// Typing reports whether a text input has focus, so gameplay keys should
// be ignored.
func (u *designerUI) Typing() bool {
	if u == nil || u.ui == nil {
		return false
	}
	_, ok := u.ui.GetFocusedWidget().(*widget.TextInput)
	return ok
}

// Pointing reports whether the mouse is on the panel. Shift+click steps
// would otherwise dash.
func (u *designerUI) Pointing() bool {
	if u == nil {
		return false
	}
	x, _ := ebiten.CursorPosition()
	return u.pointer.Capture(x, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

// Refresh re-reads every row value from the live structs.
func (u *designerUI) Refresh() {
	for _, fn := range u.refresh {
		fn()
	}
	u.refreshSaved()
}

func (u *designerUI) SetName(name string) {
	if u.nameInput != nil {
		u.nameInput.SetText(name)
	}
}

func (u *designerUI) setStatus(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	u.status.Label = msg
	u.logger.Debug(msg)
}

func (u *designerUI) show(section tuning.Section) {
	for s, c := range u.sections {
		if s == section {
			c.GetWidget().Visibility = widget.Visibility_Show
		} else {
			c.GetWidget().Visibility = widget.Visibility_Hide
		}
	}
	for s, b := range u.tabs {
		label := string(s)
		if s == section {
			label = "[" + label + "]"
		}
		b.Text().Label = label
	}
}

func (u *designerUI) tabRow(sections []tuning.Section) *widget.Container {
	row := hbox(6)
	for _, s := range sections {
		b := u.newButton(string(s), 140, func() { u.show(s) })
		u.tabs[s] = b
		row.AddChild(b)
	}
	return row
}

func (u *designerUI) parameterSection(section tuning.Section) *widget.Container {
	c := vbox(4)
	for _, f := range tuning.FieldsIn(section) {
		c.AddChild(u.fieldRow(f))
	}
	for _, t := range tuning.TogglesIn(section) {
		c.AddChild(u.toggleRow(t))
	}
	return c
}

func (u *designerUI) fieldRow(f tuning.Field) *widget.Container {
	row := hbox(6)
	value := u.newText(f.Format(u.live()), valueColor, valueWidth)

	nudge := func(dir int) {
		steps := dir
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			steps *= 10
		}
		f.Nudge(u.live(), steps)
		value.Label = f.Format(u.live())
		u.changed()
	}

	row.AddChild(u.newText(f.Label, textColor, labelWidth))
	row.AddChild(u.newButton("-", 40, func() { nudge(-1) }))
	row.AddChild(value)
	row.AddChild(u.newButton("+", 40, func() { nudge(1) }))

	u.refresh = append(u.refresh, func() { value.Label = f.Format(u.live()) })
	return row
}

func (u *designerUI) toggleRow(t tuning.Toggle) *widget.Container {
	row := hbox(6)
	var btn *widget.Button
	label := func() string {
		v, ok := t.Get(u.live())
		switch {
		case !ok:
			return "-"
		case v:
			return "On"
		}
		return "Off"
	}
	btn = u.newButton(label(), 90, func() {
		t.Flip(u.live())
		btn.Text().Label = label()
		u.changed()
	})

	row.AddChild(u.newText(t.Label, textColor, labelWidth))
	row.AddChild(btn)

	u.refresh = append(u.refresh, func() { btn.Text().Label = label() })
	return row
}

func (u *designerUI) configSection() *widget.Container {
	c := vbox(8)

	c.AddChild(u.newText("Config name", textColor, 0))
	u.nameInput = widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(widget.WidgetOpts.MinSize(panelWidth-24, 28)),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     imageui.NewNineSliceColor(inputBackground),
			Disabled: imageui.NewNineSliceColor(inputBackground),
		}),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:     color.Black,
			Disabled: color.Gray{Y: 128},
			Caret:    color.Black,
		}),
		widget.TextInputOpts.Face(&u.face),
	)
	c.AddChild(u.nameInput)

	actions := hbox(6)
	actions.AddChild(u.newButton("Save", 100, u.save))
	actions.AddChild(u.newButton("Load", 100, u.load))
	actions.AddChild(u.newButton("Delete", 100, u.delete))
	c.AddChild(actions)

	clip := hbox(6)
	clip.AddChild(u.newButton("Copy JSON", 150, u.copyConfig))
	clip.AddChild(u.newButton("Paste JSON", 150, u.pasteConfig))
	c.AddChild(clip)

	c.AddChild(u.newText("Saved configs", textColor, 0))
	u.saved = u.newText("", mutedColor, 0)
	c.AddChild(u.saved)
	return c
}

func (u *designerUI) name() string {
	return strings.TrimSpace(u.nameInput.GetText())
}

func (u *designerUI) save() {
	if u.store == nil {
		u.setStatus("no config store")
		return
	}
	name := u.name()
	if name == "" {
		u.setStatus("enter a name to save")
		return
	}
	if err := u.store.SaveCurrent(tuning.Capture(name, u.live())); err != nil {
		u.setStatus("save failed: %v", err)
		return
	}
	u.refreshSaved()
	u.setStatus("saved %q", name)
}

func (u *designerUI) load() {
	if u.store == nil {
		u.setStatus("no config store")
		return
	}
	name := u.name()
	cfg, err := u.store.LoadNamed(name)
	if errors.Is(err, tuning.ErrConfigNotFound) {
		u.setStatus("config %q not found", name)
		return
	}
	if err != nil {
		u.setStatus("load failed: %v", err)
		return
	}
	u.apply(cfg)
	u.setStatus("loaded %q", name)
}

func (u *designerUI) delete() {
	if u.store == nil {
		u.setStatus("no config store")
		return
	}
	name := u.name()
	if err := u.store.DeleteNamed(name); err != nil {
		u.setStatus("delete failed: %v", err)
		return
	}
	u.refreshSaved()
	u.setStatus("deleted %q", name)
}

func (u *designerUI) copyConfig() {
	if u.clipboardErr != nil {
		u.setStatus("clipboard unavailable")
		return
	}
	b, err := tuning.Marshal(tuning.Capture(u.name(), u.live()))
	if err != nil {
		u.setStatus("copy failed: %v", err)
		return
	}
	clipboard.Write(clipboard.FmtText, b)
	u.setStatus("config copied to clipboard")
}

func (u *designerUI) pasteConfig() {
	if u.clipboardErr != nil {
		u.setStatus("clipboard unavailable")
		return
	}
	b := clipboard.Read(clipboard.FmtText)
	if len(bytes.TrimSpace(b)) == 0 {
		u.setStatus("clipboard is empty")
		return
	}
	cfg, err := tuning.Unmarshal(b)
	if err != nil {
		u.setStatus("paste failed: %v", err)
		return
	}
	u.apply(cfg)
	if cfg.Name != "" {
		u.nameInput.SetText(cfg.Name)
	}
	u.setStatus("config pasted")
}

func (u *designerUI) apply(cfg tuning.GameConfig) {
	tuning.Apply(cfg, u.live())
	u.changed()
	u.Refresh()
}

func (u *designerUI) refreshSaved() {
	if u.saved == nil {
		return
	}
	if u.store == nil {
		u.saved.Label = "(no store)"
		return
	}
	names, err := u.store.Names()
	if err != nil {
		u.saved.Label = "(unreadable)"
		u.logger.Warn("list configs", "err", err)
		return
	}
	if len(names) == 0 {
		u.saved.Label = "(none)"
		return
	}
	u.saved.Label = strings.Join(names, "\n")
}

func (u *designerUI) newText(label string, c color.Color, minWidth int) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(label, &u.face, c),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.MinSize(minWidth, rowHeight)),
	)
}

func (u *designerUI) newButton(label string, minWidth int, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(buttonImage(buttonIdle)),
		widget.ButtonOpts.Text(label, &u.face, &widget.ButtonTextColor{Idle: textColor}),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(minWidth, rowHeight)),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

func buttonImage(idle color.NRGBA) *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:    imageui.NewNineSliceColor(idle),
		Hover:   imageui.NewNineSliceColor(buttonHover),
		Pressed: imageui.NewNineSliceColor(buttonPressed),
	}
}

func hbox(spacing int) *widget.Container {
	return widget.NewContainer(widget.ContainerOpts.Layout(widget.NewRowLayout(
		widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
		widget.RowLayoutOpts.Spacing(spacing),
	)))
}

func vbox(spacing int) *widget.Container {
	return widget.NewContainer(widget.ContainerOpts.Layout(widget.NewRowLayout(
		widget.RowLayoutOpts.Direction(widget.DirectionVertical),
		widget.RowLayoutOpts.Spacing(spacing),
	)))
}
