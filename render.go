package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
)

const (
	ansiClearScreen = "\x1b[2J\x1b[H"
	ansiHideCursor  = "\x1b[?25l"
	ansiShowCursor  = "\x1b[?25h"
)

func clearScreen(out io.Writer) {
	fmt.Fprint(out, ansiClearScreen)
}

func hideCursor(out io.Writer) {
	fmt.Fprint(out, ansiHideCursor)
}

func showCursor(out io.Writer) {
	fmt.Fprint(out, ansiShowCursor)
}

func errorLine(err error) string {
	return text.FgRed.Sprintf("ERROR: %s", err)
}

// renderServers produces one line per entry, sorted by game then name, with every
// column left justified to the widest value it holds. The password mark sits
// directly in front of the name and the connect URI goes last, unpadded, since
// nothing follows it.
func renderServers(servers map[string]ServerEntry) []string {
	entries := make([]ServerEntry, 0, len(servers))
	for _, entry := range servers {
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Game != entries[j].Game {
			return entries[i].Game < entries[j].Game
		}

		return entries[i].Name < entries[j].Name
	})

	var widthGame, widthPass, widthName, widthPlayers, widthMap int

	for _, entry := range entries {
		widthGame = max(widthGame, text.StringWidth(entry.Game))
		widthPass = max(widthPass, text.StringWidth(entry.Password))
		widthName = max(widthName, text.StringWidth(entry.Name))
		widthPlayers = max(widthPlayers, text.StringWidth(entry.Players))
		widthMap = max(widthMap, text.StringWidth(entry.Map))
	}

	lines := make([]string, 0, len(entries))

	for _, entry := range entries {
		var line strings.Builder

		line.WriteString(text.Pad(entry.Game, widthGame, ' '))
		line.WriteString(" - ")
		line.WriteString(text.Pad(entry.Password, widthPass, ' '))
		line.WriteString(text.Pad(entry.Name, widthName, ' '))
		line.WriteString(" - ")
		line.WriteString(text.Pad(entry.Players, widthPlayers, ' '))
		line.WriteString(" - ")
		line.WriteString(text.Pad(entry.Map, widthMap, ' '))
		line.WriteString(" - ")
		line.WriteString("steam://connect/" + entry.Address)

		lines = append(lines, line.String())
	}

	return lines
}
