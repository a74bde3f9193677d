package ranking

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
)

// Record is one scored candidate from a target split file.
type Record struct {
	CandidateID string
	Score       float64
}

// LoadSplit reads a two-column split file (candidate_id, raw_score) and
// returns its records in file order. An empty file (header only) yields an
// empty slice, not an error.
func LoadSplit(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("split file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("split file %s is empty (no header row)", path)
	}
	if err != nil {
		return nil, fmt.Errorf("split file %s: %w", path, err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("split file %s has %d columns, expected 2", path, len(header))
	}

	var records []Record
	row := 1
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("split file %s: %w", path, err)
		}
		row++

		score, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("split file %s row %d: bad score %q: %w", path, row, rec[1], err)
		}
		records = append(records, Record{CandidateID: rec[0], Score: score})
	}

	return records, nil
}

// Rank orders candidates by score in the given direction and returns their
// identifiers best first. The sort is stable: candidates with equal scores
// keep their input order, so reranking the same split always yields the same
// list. AUC and logAUC are sensitive to tie order when actives and decoys
// share a score, which makes this determinism part of the contract.
func Rank(records []Record, dir Direction) []string {
	ordered := make([]Record, len(records))
	copy(ordered, records)

	sort.SliceStable(ordered, func(i, j int) bool {
		if dir == HigherIsBetter {
			return ordered[i].Score > ordered[j].Score
		}
		return ordered[i].Score < ordered[j].Score
	})

	ids := make([]string, len(ordered))
	for i, r := range ordered {
		ids[i] = r.CandidateID
	}
	return ids
}
