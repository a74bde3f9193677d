package enrichment

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Class is the membership class of a candidate for one target.
type Class int

const (
	// Excluded marks candidates absent from both membership lists. They do
	// not move the ROC curve.
	Excluded Class = iota
	// Active marks known binders (true positives when ranked).
	Active
	// Decoy marks presumed non-binders (false positives when ranked).
	Decoy
)

// Membership partitions a target's candidates into actives and decoys.
// The two sets are disjoint; an identifier listed in both input files is
// kept as an active and dropped from the decoys with a warning.
type Membership struct {
	actives map[string]struct{}
	decoys  map[string]struct{}
}

// LoadMembership reads the two newline-delimited identifier files for a
// target (ligands.name, decoys.name).
func LoadMembership(ligandsPath, decoysPath string) (*Membership, error) {
	actives, err := loadNameFile(ligandsPath)
	if err != nil {
		return nil, err
	}
	decoys, err := loadNameFile(decoysPath)
	if err != nil {
		return nil, err
	}

	for id := range decoys {
		if _, dup := actives[id]; dup {
			slog.Warn("candidate listed as both ligand and decoy, keeping as ligand", "candidate", id)
			delete(decoys, id)
		}
	}

	return &Membership{actives: actives, decoys: decoys}, nil
}

func loadNameFile(path string) (map[string]struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("membership file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	ids := map[string]struct{}{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		id := strings.TrimSpace(scanner.Text())
		if id == "" {
			continue
		}
		ids[id] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("membership file %s: %w", path, err)
	}
	return ids, nil
}

// Classify returns the membership class of a candidate.
func (m *Membership) Classify(id string) Class {
	if _, ok := m.actives[id]; ok {
		return Active
	}
	if _, ok := m.decoys[id]; ok {
		return Decoy
	}
	return Excluded
}

// NumActives returns the total number of known actives for the target,
// whether or not they appear in the ranked list.
func (m *Membership) NumActives() int { return len(m.actives) }

// NumDecoys returns the total number of decoys for the target.
func (m *Membership) NumDecoys() int { return len(m.decoys) }
