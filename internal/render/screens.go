package render

import (
	"fmt"
	"time"

	"github.com/i474232898/eink-weather/internal/common"
	"github.com/i474232898/eink-weather/internal/weather"
)

// MaxSummaryLines bounds how much of the daily narrative is shown.
const MaxSummaryLines = 3

// FormatDate renders t as "d Mon HH:MM".
func FormatDate(t time.Time) string {
	return t.Format("2 Jan 15:04")
}

// ShowConnecting replaces the screen with the Wi-Fi join message.
func (e *Engine) ShowConnecting(cur *Cursor, ssid string) error {
	return e.Text(cur, Options{Blank: true, Flush: true}, fmt.Sprintf("Connecting to %s...", ssid))
}

// ShowConnected appends the address obtained from the network.
func (e *Engine) ShowConnected(cur *Cursor, ip string) error {
	return e.Text(cur, Options{Flush: true}, "Connected", "IP: "+ip)
}

// ShowError replaces the screen with the reason the cycle failed.
func (e *Engine) ShowError(cur *Cursor, cause error) error {
	lines := common.WrapText("Failed: "+cause.Error(), common.MaxTextWidth)
	return e.Text(cur, Options{Blank: true, Flush: true}, lines...)
}

// ShowReport draws the full weather screen and flushes it once.
func (e *Engine) ShowReport(cur *Cursor, report weather.Report) error {
	header := "Weather " + FormatDate(report.Current.CapturedAt.Local())
	if err := e.Text(cur, Options{Clear: true, Blank: true, Stride: StrideThin}, header); err != nil {
		return err
	}

	e.HorizontalSeparator(cur)
	if err := e.Text(cur, Options{}, "NOW"); err != nil {
		return err
	}
	if err := e.weatherBlock(cur, report.Current, false); err != nil {
		return err
	}

	e.HorizontalSeparator(cur)
	if err := e.Text(cur, Options{}, "TODAY"); err != nil {
		return err
	}
	if err := e.Text(cur, Options{}, common.TruncateLines(report.Daily.DaySummary, MaxSummaryLines)...); err != nil {
		return err
	}
	e.AddVerticalSpace(cur, 2)
	if err := e.weatherBlock(cur, report.Daily, true); err != nil {
		return err
	}

	return e.Flush()
}

// weatherBlock draws the condition icons with the temperature, titles and
// description beside them. With showRange the min-max range is drawn right
// aligned on the temperature line.
func (e *Engine) weatherBlock(cur *Cursor, w weather.Weather, showRange bool) error {
	names := make([]string, 0, len(w.Titles))
	for _, title := range w.Titles {
		if name, ok := weather.IconForTitle(title); ok {
			names = append(names, name)
		}
	}
	x := e.Icons(cur, names)

	if err := e.TextAt(cur, Options{}, x, fmt.Sprintf("%.1f C", w.Temp.Main)); err != nil {
		return err
	}
	if showRange {
		if err := e.TextRight(cur, Options{}, fmt.Sprintf("%.1f-%.1f C", w.Temp.Min, w.Temp.Max)); err != nil {
			return err
		}
	}

	lines := []string{common.SentenceJoin(w.Titles)}
	lines = append(lines, common.WrapText(w.Description, e.columnsFrom(x))...)
	return e.TextAt(cur, Options{}, x, lines...)
}

// columnsFrom is how many characters fit between column x and the text limit.
func (e *Engine) columnsFrom(x int) int {
	cw := e.canvas.CharWidth()
	if cw <= 0 {
		return common.MaxTextWidth
	}
	return max(common.MaxTextWidth-(x+cw-1)/cw, 1)
}
