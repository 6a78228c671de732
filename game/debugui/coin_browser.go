package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/coinfall/game"
)

type coinRow struct {
	ID       game.CoinID
	Type     game.CoinType
	Pos      game.Vec3
	HasSplit bool
}

// CoinBrowser is a sortable, filterable table over the live coin set.
type CoinBrowser struct {
	reg *game.Registry

	rows          []coinRow
	lastLen       int
	sortColumn    int
	sortAscending bool

	selectedID     game.CoinID
	filterText     string
	maxRowsPerPage int
	currentPage    int
	filterType     game.CoinType
	filterByType   bool
}

func NewCoinBrowser(reg *game.Registry, maxRowsPerPage int) *CoinBrowser {
	return &CoinBrowser{
		reg:            reg,
		sortAscending:  true,
		maxRowsPerPage: maxRowsPerPage,
	}
}

func (cb *CoinBrowser) Render() {
	if !imgui.BeginV("Coin Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	cb.rebuildIfNeeded()

	imgui.InputTextWithHint("##search", "Search...", &cb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		cb.filterText = ""
		cb.filterByType = false
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("CoinTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("ID")
		imgui.TableSetupColumn("Type")
		imgui.TableSetupColumn("Position")
		imgui.TableSetupColumn("Split")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			cb.sortColumn = int(spec.ColumnIndex())
			cb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			cb.sortRows()
			sortSpecs.SetSpecsDirty(false)
		}

		filtered := cb.filteredRows()

		startIdx := cb.currentPage * cb.maxRowsPerPage
		endIdx := startIdx + cb.maxRowsPerPage
		if startIdx > len(filtered) {
			startIdx = 0
			cb.currentPage = 0
		}
		if endIdx > len(filtered) {
			endIdx = len(filtered)
		}

		for i := startIdx; i < endIdx; i++ {
			row := filtered[i]
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := cb.selectedID == row.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", row.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				cb.selectedID = row.ID
			}

			imgui.TableNextColumn()
			imgui.Text(row.Type.String())

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.2f %.2f %.2f", row.Pos.X, row.Pos.Y, row.Pos.Z))

			imgui.TableNextColumn()
			if row.HasSplit {
				imgui.Text("yes")
			} else {
				imgui.Text("-")
			}
		}

		imgui.EndTable()
	}

	filtered := cb.filteredRows()

	if len(filtered) > cb.maxRowsPerPage {
		totalPages := (len(filtered) + cb.maxRowsPerPage - 1) / cb.maxRowsPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d coins)", cb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && cb.currentPage > 0 {
			cb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && cb.currentPage < totalPages-1 {
			cb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d coins", len(filtered)))
	}

	imgui.End()
}

// rebuildIfNeeded resnapshots the registry when the live count changed.
// Positions go stale between spawns/removals, which is fine for a browser.
func (cb *CoinBrowser) rebuildIfNeeded() {
	if cb.rows != nil && cb.lastLen == cb.reg.Len() {
		return
	}
	cb.lastLen = cb.reg.Len()

	coins := cb.reg.Coins()
	cb.rows = make([]coinRow, 0, len(coins))
	for _, c := range coins {
		cb.rows = append(cb.rows, coinRow{
			ID:       c.ID,
			Type:     c.Type,
			Pos:      c.Pos,
			HasSplit: c.HasSplit,
		})
	}
	cb.sortRows()
}

func (cb *CoinBrowser) sortRows() {
	sort.Slice(cb.rows, func(i, j int) bool {
		a, b := cb.rows[i], cb.rows[j]
		var less bool

		switch cb.sortColumn {
		case 1:
			less = a.Type < b.Type
		case 2:
			less = a.Pos.Y < b.Pos.Y
		case 3:
			less = !a.HasSplit && b.HasSplit
		default:
			less = a.ID < b.ID
		}

		if !cb.sortAscending {
			return !less
		}
		return less
	})
}

func (cb *CoinBrowser) filteredRows() []coinRow {
	if cb.filterText == "" && !cb.filterByType {
		return cb.rows
	}

	filtered := make([]coinRow, 0, len(cb.rows))
	filterLower := strings.ToLower(cb.filterText)

	for _, row := range cb.rows {
		if cb.filterByType && row.Type != cb.filterType {
			continue
		}

		if cb.filterText != "" {
			idStr := fmt.Sprintf("%d", row.ID)
			typeStr := row.Type.String()

			if !strings.Contains(idStr, filterLower) &&
				!strings.Contains(typeStr, filterLower) {
				continue
			}
		}

		filtered = append(filtered, row)
	}

	return filtered
}

// FilterType restricts the browser to one coin type until the filter clears.
func (cb *CoinBrowser) FilterType(t game.CoinType) {
	cb.filterType = t
	cb.filterByType = true
}

// SelectedCoin returns the coin picked in the table, if it is still live.
func (cb *CoinBrowser) SelectedCoin() (*game.Coin, bool) {
	return cb.reg.Get(cb.selectedID)
}
