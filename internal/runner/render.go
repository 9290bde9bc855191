package runner

import (
	"fmt"
	"math"
	"sort"

	"github.com/vovakirdan/momorun/internal/core"
	"github.com/vovakirdan/momorun/internal/iso"
)

// Screen pixels covered by one terminal cell.
const (
	pxPerCol = 8.0
	pxPerRow = 8.0
)

// camera is the world point drawn at the center of the screen.
var camera = iso.Vec(2, 1, 0)

// sprite is one glyph to be drawn at a projected position.
type sprite struct {
	at    iso.ScreenPoint
	depth float64
	glyph string
	color core.Color
}

// Render draws the floor, obstacles and player in depth order, then the HUD.
// Rendering is derived from simulation state and never feeds back into it.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	sprites := make([]sprite, 0, len(g.scroller.Tiles())+len(g.spawner.Obstacles())*6+1)

	for _, t := range g.scroller.Tiles() {
		s := sprite{at: t.Screen(), depth: t.Depth(), glyph: "░░", color: core.ColorGreen}
		if t.Kind == TileBorder {
			s.glyph, s.color = "▓▓", core.ColorOrange
		}
		sprites = append(sprites, s)
	}

	for _, o := range g.spawner.Obstacles() {
		glyph, color := obstacleGlyph(o.Kind)
		frac := o.Offset - math.Floor(o.Offset)
		for _, p := range o.Parts() {
			x := float64(p.X) + frac
			sprites = append(sprites, sprite{
				at:    iso.ProjectSmooth(x, p.Y, p.Z),
				depth: iso.DepthSmooth(x, p.Y, p.Z),
				glyph: glyph,
				color: color,
			})
		}
	}

	pos := g.player.Position()
	sprites = append(sprites, sprite{
		at:    iso.Project(pos),
		depth: iso.Depth(pos),
		glyph: playerGlyph(g.player.State()),
		color: core.ColorBrightYellow,
	})

	// Painter's order: lower depth first
	sort.SliceStable(sprites, func(i, j int) bool { return sprites[i].depth < sprites[j].depth })

	cam := iso.Project(camera)
	cx, cy := dst.Width()/2, dst.Height()/2
	for _, s := range sprites {
		col := cx + int(math.Round((s.at.X-cam.X)/pxPerCol))
		row := cy - int(math.Round((s.at.Y-cam.Y)/pxPerRow))
		dst.DrawTextColored(col, row, s.glyph, s.color)
	}

	g.drawHUD(dst)
}

func obstacleGlyph(k ObstacleKind) (string, core.Color) {
	switch k {
	case Rock:
		return "◆◆", core.ColorGray
	case CutTree:
		return "♣♣", core.ColorBrightGreen
	default:
		return "══", core.ColorYellow
	}
}

func playerGlyph(p PlayerState) string {
	if !p.Alive {
		return "xx"
	}
	switch p.Vertical {
	case Jumping:
		return "^^"
	case Crouching:
		return "__"
	default:
		return "@@"
	}
}

// drawHUD draws score and status text over the world.
func (g *Game) drawHUD(dst *core.Screen) {
	st := g.State()
	dst.DrawTextColored(2, 0, fmt.Sprintf(" Score: %d  Time: %.1fs  Cleared: %d ", st.Score, st.Elapsed, st.Cleared), core.ColorBrightWhite)

	// Show speed if progression is enabled
	if g.difficulty.IsEnabled() {
		speedText := fmt.Sprintf(" Spd: %.1f ", st.Speed)
		dst.DrawText(dst.Width()-len(speedText)-2, 0, speedText)
	}

	if st.Paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if st.GameOver {
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", st.Score))
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := core.Max(len(title), len([]rune(subtitle))) + 4
	box := core.CenteredRect(dst.Width(), dst.Height(), boxW, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorBrightRed)

	dst.DrawTextColored(box.X+(boxW-len(title))/2, box.Y+1, title, core.ColorBrightRed)
	dst.DrawText(box.X+(boxW-len([]rune(subtitle)))/2, box.Y+3, subtitle)
}
