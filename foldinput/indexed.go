package foldinput

import (
	"fmt"
	"strings"

	"github.com/giygas/af3-jobgen/foldinput/entities"
	"github.com/giygas/af3-jobgen/manifest"
)

// Manifest column naming for molecule triplets
const (
	JobNameColumn = "job_name"

	typeColumnFormat  = "mol%d_type"
	chainColumnFormat = "mol%d_chain"
	seqColumnFormat   = "mol%d_seq"
)

// TripletColumns returns the type, chain and sequence column names of
// molecule n (1-based)
func TripletColumns(n int) (typeCol, chainCol, seqCol string) {
	return fmt.Sprintf(typeColumnFormat, n), fmt.Sprintf(chainColumnFormat, n), fmt.Sprintf(seqColumnFormat, n)
}

// ParseStats counts what ParseMolecules did with a row
type ParseStats struct {
	Triplets   int // molN_type columns scanned
	Skipped    int // triplets with a blank field
	Unmodified int // RNA blocks whose terminal base has no CCD code
}

// ParseMolecules collects the molN_type/molN_chain/molN_seq triplets of a
// row, starting at 1 and stopping at the first missing molN_type column.
// Triplets with any blank field are skipped.
func ParseMolecules(row manifest.Row) ([]entities.Molecule, ParseStats) {
	var stats ParseStats
	molecules := make([]entities.Molecule, 0)

	for n := 1; ; n++ {
		typeCol, chainCol, seqCol := TripletColumns(n)
		if !row.Has(typeCol) {
			break
		}
		stats.Triplets++

		molType := strings.TrimSpace(row.Value(typeCol))
		chain := strings.TrimSpace(row.Value(chainCol))
		seq := strings.TrimSpace(row.Value(seqCol))
		if molType == "" || chain == "" || seq == "" {
			stats.Skipped++
			continue
		}

		mol := BuildMolecule(molType, chain, seq, true)
		if IsRNA(molType) && len(mol.Modifications) == 0 {
			stats.Unmodified++
		}
		molecules = append(molecules, mol)
	}

	return molecules, stats
}

// BuildMolecule makes one molecule block. With applyMods, an RNA whose
// terminal base has a CCD code gets a terminal 2'-O-methylation; other
// terminal bases are left unmodified.
func BuildMolecule(molType, chain, seq string, applyMods bool) entities.Molecule {
	seq = strings.TrimSpace(seq)
	mol := entities.Molecule{
		Type:     molType,
		ID:       ParseChainIDs(chain),
		Sequence: seq,
	}

	if applyMods && IsRNA(molType) {
		if mod, _, ok := TerminalMethylation(seq); ok {
			mol.Modifications = []entities.Modification{mod}
		}
	}

	return mol
}

// IsRNA reports whether a molecule type names RNA, ignoring case
func IsRNA(molType string) bool {
	return strings.EqualFold(molType, entities.RNA)
}

// ManifestJob builds the fold input for one manifest row
func ManifestJob(row manifest.Row) (entities.FoldInput, ParseStats) {
	name := strings.TrimSpace(row.Value(JobNameColumn))
	molecules, stats := ParseMolecules(row)
	return Assemble(name, molecules, ManifestSeeds), stats
}
