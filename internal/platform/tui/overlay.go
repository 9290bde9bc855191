package tui

import (
	"fmt"

	"github.com/vovakirdan/momorun/internal/core"
)

// drawPanel draws a boxed block of centered lines in the middle of dst.
func drawPanel(dst *core.Screen, title string, color core.Color, lines ...string) {
	w := len([]rune(title))
	for _, l := range lines {
		w = core.Max(w, len([]rune(l)))
	}
	w += 4
	h := len(lines) + 4
	box := core.CenteredRect(dst.Width(), dst.Height(), w, h)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, color)
	dst.DrawTextColored(box.X+(w-len([]rune(title)))/2, box.Y+1, title, color)
	for i, l := range lines {
		dst.DrawText(box.X+(w-len([]rune(l)))/2, box.Y+3+i, l)
	}
}

func drawMainMenu(dst *core.Screen) {
	drawPanel(dst, "MOMORUN", core.ColorBrightCyan,
		"Enter  start running",
		"C      set calorie goal",
		"Q      quit",
	)
}

func drawCalorieSetup(dst *core.Screen, goal int) {
	drawPanel(dst, "DAILY CALORIE GOAL", core.ColorBrightMagenta,
		fmt.Sprintf("<  %d kcal  >", goal),
		"",
		"Up/Down adjust  Enter confirm",
	)
}

// drawLinkStatus shows whether a controller is attached, bottom left.
func drawLinkStatus(dst *core.Screen, reachable bool) {
	if dst.Height() < 2 {
		return
	}
	text, color := " controller: offline ", core.ColorGray
	if reachable {
		text, color = " controller: linked ", core.ColorBrightGreen
	}
	dst.DrawTextColored(2, dst.Height()-1, text, color)
}
