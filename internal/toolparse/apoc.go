// Package toolparse extracts geometric accuracy metrics from the text output
// of the external alignment tools (APoc, DockRMSD). The tools themselves run
// outside this pipeline; their outputs are consumed as opaque text.
package toolparse

import (
	"regexp"
	"strings"
)

// PocketAlignment holds the pocket-level metrics reported by APoc for one
// predicted/experimental complex pair. Fields missing from the output stay
// empty; blank-vs-zero matters downstream, so values pass through as text.
type PocketAlignment struct {
	RMSD        string
	SeqIdentity string
	PSScore     string
}

const pocketSectionMarker = "Pocket alignment"

var (
	rmsdPat    = regexp.MustCompile(`RMSD\s*=\s*([0-9]*\.?[0-9]+)`)
	seqIDPat   = regexp.MustCompile(`Seq identity\s*=\s*([0-9]*\.?[0-9]+)`)
	psScorePat = regexp.MustCompile(`PS-score\s*=\s*([0-9]*\.?[0-9]+)`)
)

// ParseAPoc extracts the pocket-alignment metrics from APoc output text.
// Only the "Pocket alignment" section is considered; the preceding global
// alignment reports the same field names with different values.
func ParseAPoc(text string) PocketAlignment {
	idx := strings.Index(text, pocketSectionMarker)
	if idx < 0 {
		return PocketAlignment{}
	}
	section := text[idx:]

	return PocketAlignment{
		RMSD:        firstGroup(rmsdPat, section),
		SeqIdentity: firstGroup(seqIDPat, section),
		PSScore:     firstGroup(psScorePat, section),
	}
}

func firstGroup(pat *regexp.Regexp, text string) string {
	m := pat.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}
