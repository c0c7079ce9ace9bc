package foldinput

import (
	"strings"
	"unicode/utf8"

	"github.com/giygas/af3-jobgen/foldinput/entities"
)

// Chain identifiers of a piRNA complex
const (
	ProteinChain = "A"
	PiRNAChain   = "R"
	TargetChain  = "T"
)

// PiRNA manifest columns
const (
	NameColumn            = "name"
	ProteinSequenceColumn = "fasta_protein_sequence"
)

// PiRNAComplex describes the RNA shared by every job of a piRNA run. The
// piRNA must end in a base that can carry the terminal 2'-O-methylation;
// the target RNA is optional.
type PiRNAComplex struct {
	PiRNA     string
	TargetRNA string
}

// Methylation returns the terminal modification of the piRNA. An empty
// piRNA yields ErrEmptySequence and an unmapped terminal base an
// *UnsupportedBaseError.
func (c PiRNAComplex) Methylation() (entities.Modification, error) {
	seq := strings.ToUpper(strings.TrimSpace(c.PiRNA))
	if seq == "" {
		return entities.Modification{}, ErrEmptySequence
	}
	mod, last, ok := TerminalMethylation(seq)
	if !ok {
		return entities.Modification{}, &UnsupportedBaseError{Base: last, Position: utf8.RuneCountInString(seq)}
	}
	return mod, nil
}

// Molecules returns the protein, piRNA and optional target blocks
func (c PiRNAComplex) Molecules(proteinSeq string) ([]entities.Molecule, error) {
	mod, err := c.Methylation()
	if err != nil {
		return nil, err
	}

	molecules := []entities.Molecule{
		{
			Type:     entities.Protein,
			ID:       entities.SingleChain(ProteinChain),
			Sequence: cleanSequence(proteinSeq),
		},
		{
			Type:          entities.RNA,
			ID:            entities.SingleChain(PiRNAChain),
			Sequence:      strings.ToUpper(cleanSequence(c.PiRNA)),
			Modifications: []entities.Modification{mod},
		},
	}

	if target := strings.TrimSpace(c.TargetRNA); target != "" {
		molecules = append(molecules, entities.Molecule{
			Type:     entities.RNA,
			ID:       entities.SingleChain(TargetChain),
			Sequence: strings.ToUpper(cleanSequence(target)),
		})
	}

	return molecules, nil
}

// Job builds the fold input for one protein of a piRNA run
func (c PiRNAComplex) Job(name, proteinSeq string) (entities.FoldInput, error) {
	molecules, err := c.Molecules(proteinSeq)
	if err != nil {
		return entities.FoldInput{}, err
	}
	return Assemble(name, molecules, PiRNASeeds), nil
}

// cleanSequence trims a sequence and drops embedded line breaks
func cleanSequence(seq string) string {
	return strings.ReplaceAll(strings.TrimSpace(seq), "\n", "")
}
