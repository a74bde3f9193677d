package toolparse

import "regexp"

var dockRMSDPat = regexp.MustCompile(`Calculated Docking RMSD:\s*([\d.]+)`)

// ParseDockRMSD extracts the RMSD value from DockRMSD output text. Returns
// an empty string when the tool did not report one.
func ParseDockRMSD(text string) string {
	return firstGroup(dockRMSDPat, text)
}
