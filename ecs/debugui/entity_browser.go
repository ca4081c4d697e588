package debugui

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/divvy/ecs"
)

// EntityRow is one occupied slot as listed by the EntityBrowser.
type EntityRow struct {
	ID    ecs.EntityID
	Types []string
}

// EntityBrowser lists the live entities of Target, paged and filterable, and
// publishes the clicked entity to Selection.
type EntityBrowser struct {
	Target    *ecs.World
	Selection *Selection
	PageSize  int

	rows          []EntityRow
	filterText    string
	currentPage   int
	sortColumn    int
	sortAscending bool
}

func NewEntityBrowser(target *ecs.World, selection *Selection, pageSize int) EntityBrowser {
	if pageSize <= 0 {
		pageSize = 100
	}
	return EntityBrowser{
		Target:        target,
		Selection:     selection,
		PageSize:      pageSize,
		sortAscending: true,
	}
}

func (eb *EntityBrowser) Update() {
	eb.Render()
}

// Clone copies the browser settings. The row cache is rebuilt on the next
// render.
func (eb *EntityBrowser) Clone(src *EntityBrowser) {
	*eb = *src
	eb.rows = nil
}

func (eb *EntityBrowser) Render() {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	if eb.Target == nil || eb.Selection == nil {
		imgui.Text("No world attached")
		imgui.End()
		return
	}

	eb.rows = collectRows(eb.Target)
	sortRows(eb.rows, eb.sortColumn, eb.sortAscending)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.Selection.Type = ""
		eb.currentPage = 0
	}
	if eb.Selection.Type != "" {
		imgui.Text(fmt.Sprintf("Type filter: %s", eb.Selection.Type))
	}

	filtered := filterRows(eb.rows, eb.filterText, eb.Selection.Type)
	totalPages := (len(filtered) + eb.PageSize - 1) / eb.PageSize
	if eb.currentPage >= totalPages {
		eb.currentPage = max(totalPages-1, 0)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.sortColumn = int(spec.ColumnIndex())
			eb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortRows(filtered, eb.sortColumn, eb.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		start := eb.currentPage * eb.PageSize
		end := min(start+eb.PageSize, len(filtered))

		for _, row := range filtered[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.Selection.HasEntity && eb.Selection.Entity == row.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", row.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.Selection.Select(row.ID)
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(row.Types, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(row.Types)))
		}

		imgui.EndTable()
	}

	if totalPages > 1 {
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}

// collectRows walks every slot of w in id order and returns the live ones.
func collectRows(w *ecs.World) []EntityRow {
	rows := make([]EntityRow, 0, w.Len())
	for i := 0; i < w.Capacity(); i++ {
		id := ecs.EntityID(i)
		if !w.IsAlive(id) {
			continue
		}

		components := w.ComponentsOf(id)
		types := make([]string, 0, len(components))
		for name := range components {
			types = append(types, name)
		}
		sort.Strings(types)

		rows = append(rows, EntityRow{ID: id, Types: types})
	}
	return rows
}

func sortRows(rows []EntityRow, column int, ascending bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		var less bool

		switch column {
		case 1:
			less = strings.Join(a.Types, ",") < strings.Join(b.Types, ",")
		case 2:
			less = len(a.Types) < len(b.Types)
		default:
			less = a.ID < b.ID
		}

		if !ascending {
			return !less
		}
		return less
	})
}

// filterRows keeps rows whose id or component names contain text, and which
// carry typeName when it is set.
func filterRows(rows []EntityRow, text, typeName string) []EntityRow {
	if text == "" && typeName == "" {
		return rows
	}

	filtered := make([]EntityRow, 0, len(rows))
	filterLower := strings.ToLower(text)

	for _, row := range rows {
		if typeName != "" && !slices.Contains(row.Types, typeName) {
			continue
		}

		if text != "" {
			idStr := fmt.Sprintf("%d", row.ID)
			componentsStr := strings.ToLower(strings.Join(row.Types, " "))
			if !strings.Contains(idStr, filterLower) && !strings.Contains(componentsStr, filterLower) {
				continue
			}
		}

		filtered = append(filtered, row)
	}

	return filtered
}
