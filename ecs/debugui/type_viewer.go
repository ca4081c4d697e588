package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/divvy/ecs"
)

// TypeViewer tabulates the registered component types of Target. Clicking a
// row sets Selection.Type, which narrows the EntityBrowser to that type.
type TypeViewer struct {
	Target    *ecs.World
	Selection *Selection

	rows          []ecs.TypeStats
	sortColumn    int
	sortAscending bool
}

func NewTypeViewer(target *ecs.World, selection *Selection) TypeViewer {
	return TypeViewer{
		Target:        target,
		Selection:     selection,
		sortAscending: true,
	}
}

func (tv *TypeViewer) Update() {
	tv.Render()
}

func (tv *TypeViewer) Clone(src *TypeViewer) {
	*tv = *src
	tv.rows = nil
}

func (tv *TypeViewer) Render() {
	if !imgui.BeginV("Component Types", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	if tv.Target == nil || tv.Selection == nil {
		imgui.Text("No world attached")
		imgui.End()
		return
	}

	tv.rows = tv.Target.Stats().Types
	sortTypeRows(tv.rows, tv.sortColumn, tv.sortAscending)

	imgui.Text(fmt.Sprintf("Registered types: %d", len(tv.rows)))

	maxActive := 0
	for _, row := range tv.rows {
		maxActive = max(maxActive, row.Active)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("TypeTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Type ID")
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Active")
		imgui.TableSetupColumn("Storage")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			tv.sortColumn = int(spec.ColumnIndex())
			tv.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortTypeRows(tv.rows, tv.sortColumn, tv.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		for _, row := range tv.rows {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := tv.Selection.Type == row.Name
			if imgui.SelectableBoolV(fmt.Sprintf("%d", row.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				if isSelected {
					tv.Selection.Type = ""
				} else {
					tv.Selection.Type = row.Name
				}
			}

			imgui.TableNextColumn()
			imgui.Text(row.Name)

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.Active))

			if maxActive > 0 {
				barWidth := float32(row.Active) / float32(maxActive) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.StorageLen))
		}

		imgui.EndTable()
	}

	imgui.End()
}

func sortTypeRows(rows []ecs.TypeStats, column int, ascending bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		var less bool

		switch column {
		case 1:
			less = a.Name < b.Name
		case 2:
			less = a.Active < b.Active
		case 3:
			less = a.StorageLen < b.StorageLen
		default:
			less = a.ID < b.ID
		}

		if !ascending {
			return !less
		}
		return less
	})
}
