package main

import (
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"pagemark/internal/api"
	"pagemark/internal/search"
)

// queueStatusOrder fixes row ordering for queue summaries.
var queueStatusOrder = []string{"pending", "processing", "completed", "failed"}

// renderBookmarkTable lists bookmarks with abbreviated IDs; full IDs remain
// available via `pagemark show`.
func renderBookmarkTable(views []api.BookmarkView) string {
	tw := newTableWriter(table.Row{"ID", "Kind", "Title", "Tagging", "Tags"})
	for _, view := range views {
		tw.AppendRow(table.Row{
			shortID(view.ID),
			displayLabel(view.Kind),
			truncateText(view.Title, 48),
			displayLabel(view.TaggingStatus),
			strings.Join(view.Tags, ", "),
		})
	}
	return tw.Render()
}

func renderSearchHitTable(hits []search.Hit) string {
	tw := newTableWriter(table.Row{"ID", "Kind", "Title", "Tags"})
	for _, hit := range hits {
		tw.AppendRow(table.Row{
			shortID(hit.ID),
			displayLabel(hit.Kind),
			truncateText(hit.Title, 48),
			strings.Join(hit.Tags, ", "),
		})
	}
	return tw.Render()
}

func renderQueueJobTable(jobs []api.QueueJob) string {
	tw := newTableWriter(table.Row{"ID", "Kind", "Bookmark", "Status", "Attempts", "Error"}, 1, 5)
	for _, job := range jobs {
		tw.AppendRow(table.Row{
			strconv.FormatInt(job.ID, 10),
			displayLabel(job.Kind),
			job.BookmarkID,
			displayLabel(job.Status),
			strconv.Itoa(job.Attempts),
			truncateText(job.ErrorMessage, 48),
		})
	}
	return tw.Render()
}

func renderQueueStatusTable(stats map[string]int) string {
	tw := newTableWriter(table.Row{"Status", "Count"}, 2)
	for _, row := range queueStatusRows(stats) {
		tw.AppendRow(table.Row{row.label, strconv.Itoa(row.count)})
	}
	return tw.Render()
}

type queueStatusRow struct {
	label string
	count int
}

// queueStatusRows emits known statuses in lifecycle order; anything the
// daemon reports beyond those is appended afterwards.
func queueStatusRows(stats map[string]int) []queueStatusRow {
	rows := make([]queueStatusRow, 0, len(stats))
	seen := make(map[string]bool, len(stats))
	for _, status := range queueStatusOrder {
		if count, ok := stats[status]; ok {
			rows = append(rows, queueStatusRow{displayLabel(status), count})
			seen[status] = true
		}
	}
	for status, count := range stats {
		if !seen[status] {
			rows = append(rows, queueStatusRow{displayLabel(status), count})
		}
	}
	return rows
}

// newTableWriter returns a rounded-style writer with left-aligned headers.
// rightAligned lists 1-based column numbers holding numeric values.
func newTableWriter(headers table.Row, rightAligned ...int) table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(headers)

	right := make(map[int]bool, len(rightAligned))
	for _, number := range rightAligned {
		right[number] = true
	}
	configs := make([]table.ColumnConfig, 0, len(headers))
	for i := range headers {
		align := text.AlignLeft
		if right[i+1] {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)
	return tw
}
