package lib

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/zshtools/z2f/client/data"
)

// fish_history stores each command on a single physical line, escaping the
// only two characters its reader treats specially.
var fishCommandEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`)

// RenderFishHistory renders entries into the fish_history on-disk format, in
// the given order (fish, like zsh, keeps the oldest entry first). The result
// is a complete file: an empty entry slice renders to an empty (and valid)
// fish history.
func RenderFishHistory(entries []data.HistoryEntry) string {
	return strings.Join(lo.Map(entries, func(entry data.HistoryEntry, _ int) string {
		return renderFishRecord(entry)
	}), "")
}

func renderFishRecord(entry data.HistoryEntry) string {
	var sb strings.Builder
	sb.WriteString("- cmd: ")
	sb.WriteString(fishCommandEscaper.Replace(entry.Command))
	sb.WriteByte('\n')
	if entry.When != nil {
		// fish only understands epoch seconds here, same as zsh's metadata
		fmt.Fprintf(&sb, "  when: %d\n", *entry.When)
	}
	return sb.String()
}
