package app

import (
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/scrub/internal/input/mouse"
	"github.com/dshills/scrub/internal/renderer/backend"
	"github.com/dshills/scrub/internal/rules"
)

// Palette geometry.
const (
	paletteCols  = 12
	paletteRows  = 5
	swatchWidth  = 2
	pickerWidth  = paletteCols*swatchWidth + 2
	pickerHeight = paletteRows + 2
)

var stylePickerFrame = tcell.StyleDefault.Reverse(true)

// Picker is a popup color palette drawn over the view. It implements
// rules.Picker. Clicking a swatch (or moving the selection with the
// arrow keys) reports the color; Enter, Escape or a click outside the
// popup closes it.
type Picker struct {
	view    *View
	palette []colorful.Color

	open    bool
	session int
	req     rules.PickerRequest
	sel     int
	x, y    int
}

// NewPicker creates a picker positioned relative to view.
func NewPicker(view *View) *Picker {
	return &Picker{view: view, palette: newPalette()}
}

func newPalette() []colorful.Color {
	p := make([]colorful.Color, 0, paletteCols*paletteRows)
	for r := 0; r < paletteRows-1; r++ {
		l := 0.3 + 0.15*float64(r)
		for c := 0; c < paletteCols; c++ {
			p = append(p, colorful.Hsl(float64(c)*360/paletteCols, 0.75, l))
		}
	}
	for c := 0; c < paletteCols; c++ {
		v := float64(c) / (paletteCols - 1)
		p = append(p, colorful.Color{R: v, G: v, B: v})
	}
	return p
}

// Open shows the popup for req, closing any open one first.
func (p *Picker) Open(req rules.PickerRequest) func() {
	p.Close()

	p.session++
	session := p.session
	p.open = true
	p.req = req
	p.sel = p.nearest(req.Initial)
	p.place()

	return func() {
		if p.open && p.session == session {
			p.Close()
		}
	}
}

// IsOpen returns true while the popup is shown.
func (p *Picker) IsOpen() bool { return p.open }

// Selected returns the selected color as #rrggbb.
func (p *Picker) Selected() string {
	return p.palette[p.sel].Hex()
}

// Close hides the popup and runs the request's OnClose once.
func (p *Picker) Close() {
	if !p.open {
		return
	}
	p.open = false
	onClose := p.req.OnClose
	p.req = rules.PickerRequest{}
	if onClose != nil {
		onClose()
	}
}

func (p *Picker) nearest(hex string) int {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0
	}
	best, bestDist := 0, -1.0
	for i, sw := range p.palette {
		if d := c.DistanceLab(sw); bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// place puts the popup below the anchor, or above it when there is no
// room, keeping it on screen.
func (p *Picker) place() {
	ax, ay, ok := p.view.BufferToScreen(p.req.Anchor)
	if !ok {
		ax, ay = 0, 0
	}
	p.x, p.y = ax, ay+1
	if p.y+pickerHeight > p.view.textHeight() && ay-pickerHeight >= 0 {
		p.y = ay - pickerHeight
	}
	if p.x+pickerWidth > p.view.width {
		p.x = max(p.view.width-pickerWidth, 0)
	}
}

func (p *Picker) contains(x, y int) bool {
	return x >= p.x && x < p.x+pickerWidth && y >= p.y && y < p.y+pickerHeight
}

// swatchAt returns the palette index under a screen point.
func (p *Picker) swatchAt(x, y int) (int, bool) {
	col := (x - p.x - 1) / swatchWidth
	row := y - p.y - 1
	if x-p.x-1 < 0 || col >= paletteCols || row < 0 || row >= paletteRows {
		return 0, false
	}
	return row*paletteCols + col, true
}

// HandleMouse reports whether the popup took the event. A press outside
// closes the popup and is left for the editor.
func (p *Picker) HandleMouse(ev backend.Event) bool {
	if !p.open {
		return false
	}
	if !p.contains(ev.MouseX, ev.MouseY) {
		if ev.MouseButton != mouse.ButtonNone {
			p.Close()
		}
		return false
	}
	if ev.MouseButton == mouse.ButtonLeft {
		if i, ok := p.swatchAt(ev.MouseX, ev.MouseY); ok {
			p.choose(i)
		}
	}
	return true
}

// HandleKey reports whether the popup took the key.
func (p *Picker) HandleKey(ev backend.Event) bool {
	if !p.open {
		return false
	}
	switch ev.Key {
	case backend.KeyEscape, backend.KeyEnter:
		p.Close()
	case backend.KeyLeft:
		p.moveSel(-1, 0)
	case backend.KeyRight:
		p.moveSel(1, 0)
	case backend.KeyUp:
		p.moveSel(0, -1)
	case backend.KeyDown:
		p.moveSel(0, 1)
	default:
		return false
	}
	return true
}

func (p *Picker) moveSel(dx, dy int) {
	col := (p.sel%paletteCols + dx + paletteCols) % paletteCols
	row := (p.sel/paletteCols + dy + paletteRows) % paletteRows
	p.choose(row*paletteCols + col)
}

func (p *Picker) choose(i int) {
	p.sel = i
	if p.req.OnChange != nil {
		p.req.OnChange(p.palette[i].Hex())
	}
}

// Draw renders the popup.
func (p *Picker) Draw(b backend.Backend) {
	if !p.open {
		return
	}
	for y := p.y; y < p.y+pickerHeight; y++ {
		for x := p.x; x < p.x+pickerWidth; x++ {
			b.SetContent(x, y, ' ', nil, stylePickerFrame)
		}
	}
	title := " " + p.Selected() + " "
	drawString(b, p.x+1, p.y, pickerWidth-2, title, stylePickerFrame)

	for i, c := range p.palette {
		r, g, bl := c.Clamped().RGB255()
		style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(r), int32(g), int32(bl)))
		x := p.x + 1 + (i%paletteCols)*swatchWidth
		y := p.y + 1 + i/paletteCols
		mark := ' '
		if i == p.sel {
			mark = '*'
			style = style.Foreground(contrast(c))
		}
		b.SetContent(x, y, mark, nil, style)
		b.SetContent(x+1, y, ' ', nil, style)
	}
}

// contrast picks black or white text for a swatch.
func contrast(c colorful.Color) tcell.Color {
	_, _, l := c.Hcl()
	if l > 0.6 {
		return tcell.ColorBlack
	}
	return tcell.ColorWhite
}
