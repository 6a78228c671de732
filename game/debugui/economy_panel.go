package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/coinfall/game"
)

// EconomyPanel shows the live run state: phase, score against target, cash,
// the bonus meter and a short history plot of the meter level.
type EconomyPanel struct {
	econ *game.Economy
	tun  *game.Tuning

	historyFrames int
	bonusHistory  []float32
	bonusIndex    int
}

func NewEconomyPanel(econ *game.Economy, tun *game.Tuning, historyFrames int) *EconomyPanel {
	return &EconomyPanel{
		econ:          econ,
		tun:           tun,
		historyFrames: historyFrames,
		bonusHistory:  make([]float32, historyFrames),
	}
}

func (ep *EconomyPanel) Render() {
	if !imgui.BeginV("Economy", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	e := ep.econ
	ep.bonusHistory[ep.bonusIndex] = float32(e.Bonus())
	ep.bonusIndex = (ep.bonusIndex + 1) % ep.historyFrames

	imgui.Text(fmt.Sprintf("Phase: %s", e.Phase()))
	imgui.Text(fmt.Sprintf("Ante: %d", e.Ante()))
	imgui.Text(fmt.Sprintf("Score: %d / %d", e.Score(), e.Target()))
	imgui.Text(fmt.Sprintf("Cash: %d", e.Cash()))
	imgui.Text(fmt.Sprintf("Score Multiplier: x%.2f", e.ScoreMultiplier()))

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Bonus Level %d", e.BonusLevel()))
	imgui.ProgressBarV(float32(e.Bonus()/100.0), imgui.NewVec2(-1, 0), fmt.Sprintf("%.0f / 100", e.Bonus()))
	imgui.PlotLinesFloatPtr("##bonushistory", &ep.bonusHistory[0], int32(len(ep.bonusHistory)))

	if imgui.TreeNodeStr("Artifacts") {
		for _, a := range ep.tun.Artifacts {
			level := e.ArtifactLevel(a.ID)
			cost, _ := e.ArtifactCost(a.ID)
			imgui.BulletText(fmt.Sprintf("%s: level %d (next %d)", a.ID, level, cost))
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Deck") {
		deck := e.DeckCounts()
		for name := range ep.tun.Coins {
			ct, ok := game.ParseCoinType(name)
			if !ok {
				continue
			}
			if n := deck.Count(ct); n > 0 {
				imgui.BulletText(fmt.Sprintf("%s: %d", name, n))
			}
		}
		imgui.TreePop()
	}

	imgui.End()
}
