package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`  ___  ___ ___ _ __   __ _ _ __(_)___| |_ `, "#74b9ff"},
	{` / __|/ __/ _ \ '_ \ / _' | '__| / __| __|`, "#55a6f7"},
	{` \__ \ (_|  __/ | | | (_| | |  | \__ \ |_ `, "#00b894"},
	{` |___/\___\___|_| |_|\__,_|_|  |_|___/\__|`, "#00a383"},
}

// PrintBanner writes the scenarist banner followed by the version line.
// Colours are dropped when w is not a terminal.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  scenario step authoring  v"+version).Faint())
	fmt.Fprintln(w)
}
