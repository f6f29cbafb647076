package formatter

import (
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"
)

// FileStats records what one file's reorganization did.
type FileStats struct {
	Path            string
	MovedDirectives int
	MovedMembers    int
	SkippedScopes   int
	Changed         bool
}

// RenderStats writes a summary table of stats, sorted by path.
func RenderStats(w io.Writer, stats []FileStats) {
	sorted := make([]FileStats, len(stats))
	copy(sorted, stats)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"File", "Directives", "Members", "Skipped", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
	})

	changed, directives, members := 0, 0, 0
	for _, s := range sorted {
		status := "ok"
		if s.Changed {
			status = "changed"
			changed++
		}
		directives += s.MovedDirectives
		members += s.MovedMembers
		table.Append([]string{
			s.Path,
			fmt.Sprintf("%d", s.MovedDirectives),
			fmt.Sprintf("%d", s.MovedMembers),
			fmt.Sprintf("%d", s.SkippedScopes),
			status,
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(sorted)),
		fmt.Sprintf("%d", directives),
		fmt.Sprintf("%d", members),
		"",
		fmt.Sprintf("%d changed", changed),
	})
	table.Render()
}
