package foldinput

import (
	"slices"

	"github.com/giygas/af3-jobgen/foldinput/entities"
)

// Default seed lists. Manifest jobs sample one seed, piRNA complexes three.
var (
	ManifestSeeds = []int{1}
	PiRNASeeds    = []int{1, 2, 3}
)

// Assemble wraps molecules into a fold input document. An empty molecule
// list still yields a well-formed document.
func Assemble(name string, molecules []entities.Molecule, seeds []int) entities.FoldInput {
	seqs := make([]entities.Molecule, len(molecules))
	copy(seqs, molecules)
	if seeds == nil {
		seeds = []int{}
	}
	return entities.FoldInput{
		Name:       name,
		Sequences:  seqs,
		ModelSeeds: slices.Clone(seeds),
		Dialect:    entities.Dialect,
		Version:    entities.Version,
	}
}
