package main

import (
	"image/color"
	"strings"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/chromagate/common"
	"github.com/milk9111/chromagate/levels"
	"github.com/milk9111/chromagate/session"
	"golang.org/x/image/font/basicfont"
)

var (
	menuTextColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	menuPanel     = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200}
	menuButton    = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}
	menuHover     = color.NRGBA{R: 0x4a, G: 0x4a, B: 0x55, A: 255}
)

// MenuUI holds one ebitenui screen per menu state.
type MenuUI struct {
	game    *Game
	face    *ebtext.Face
	screens map[session.MenuState]*ebitenui.UI
}

func NewMenuUI(g *Game) *MenuUI {
	face := ebtext.Face(ebtext.NewGoXFace(basicfont.Face7x13))
	m := &MenuUI{game: g, face: &face, screens: make(map[session.MenuState]*ebitenui.UI)}

	m.screens[session.MenuMain] = newMenuScreen(m.face, "chromagate",
		menuItem{"Play", func() { g.session.LoadLevel(firstLevel()) }},
		menuItem{"Level Select", func() { g.session.Request(session.Menu(session.MenuLevelSelect)) }},
		menuItem{"Quit", func() { g.quit = true }},
	)
	m.screens[session.MenuPause] = newMenuScreen(m.face, "Paused",
		menuItem{"Resume", func() { g.session.Request(session.To(session.StateGame)) }},
		menuItem{"Restart", func() { g.session.Request(session.To(session.StateLoadLevel)) }},
		menuItem{"Main Menu", func() { g.session.Request(session.Menu(session.MenuMain)) }},
	)
	m.RefreshLevelSelect()
	return m
}

// RefreshLevelSelect rebuilds the level list from the embedded and on-disk
// levels.
func (m *MenuUI) RefreshLevelSelect() {
	g := m.game
	var items []menuItem
	for _, name := range levels.List() {
		name := name
		items = append(items, menuItem{strings.TrimSuffix(name, ".json"), func() { g.session.LoadLevel(name) }})
	}
	items = append(items, menuItem{"Back", func() { g.session.Request(session.Menu(session.MenuMain)) }})
	m.screens[session.MenuLevelSelect] = newMenuScreen(m.face, "Select Level", items...)
}

func (m *MenuUI) Update(menu session.MenuState) {
	if ui, ok := m.screens[menu]; ok {
		ui.Update()
	}
}

func (m *MenuUI) Draw(screen *ebiten.Image, menu session.MenuState) {
	if ui, ok := m.screens[menu]; ok {
		ui.Draw(screen)
	}
}

type menuItem struct {
	label   string
	onClick func()
}

// newMenuScreen builds a centered panel with a title and a column of buttons.
func newMenuScreen(face *ebtext.Face, title string, items ...menuItem) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(menuPanel)
	btnImg := imageui.NewNineSliceColor(menuButton)
	hoverImg := imageui.NewNineSliceColor(menuHover)
	btnTextColor := &widget.ButtonTextColor{Idle: menuTextColor}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/3, common.BaseHeight/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)

	panel.AddChild(widget.NewText(
		widget.TextOpts.Text(title, face, menuTextColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	))

	for _, item := range items {
		onClick := item.onClick
		panel.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: hoverImg, Pressed: btnImg}),
			widget.ButtonOpts.Text(item.label, face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter, Stretch: true})),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		))
	}

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}

func firstLevel() string {
	if names := levels.List(); len(names) > 0 {
		return names[0]
	}
	return "level1.json"
}
