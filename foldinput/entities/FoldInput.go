package entities

const (
	// Dialect and Version identify the AlphaFold 3 input schema.
	Dialect = "alphafold3"
	Version = 1
)

// FoldInput is the document written to data_inputs/fold_input.json
type FoldInput struct {
	Name       string     `json:"name"`
	Sequences  []Molecule `json:"sequences"`
	ModelSeeds []int      `json:"modelSeeds"`
	Dialect    string     `json:"dialect"`
	Version    int        `json:"version"`
}
