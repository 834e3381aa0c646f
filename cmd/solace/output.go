package main

import (
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable(w io.Writer, header table.Row) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(header)
	return tw
}

// relativeTime renders a millisecond timestamp as "3 days ago".
func relativeTime(millis int64) string {
	return humanize.Time(time.UnixMilli(millis))
}

func checkmark(done bool) string {
	if done {
		return "✓"
	}
	return ""
}
