package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Molecule types understood by the structure-prediction tool.
// Any other type string is passed through as the block key.
const (
	Protein = "protein"
	RNA     = "rna"
)

// Molecule is one entry of FoldInput.Sequences. It serializes as a block
// keyed by its type: {"<type>": {"id": ..., "sequence": ...}}.
type Molecule struct {
	Type          string         `json:"-"`
	ID            ChainIDs       `json:"id"`
	Sequence      string         `json:"sequence"`
	Modifications []Modification `json:"modifications,omitempty"`
}

// Modification marks a chemically modified residue by its CCD code.
// BasePosition is 1-based.
type Modification struct {
	ModificationType string `json:"modificationType"`
	BasePosition     int    `json:"basePosition"`
}

// moleculeBody drops the MarshalJSON method so the body encodes with tags
type moleculeBody Molecule

func (m Molecule) MarshalJSON() ([]byte, error) {
	if m.Type == "" {
		return nil, fmt.Errorf("molecule has no type")
	}
	body, err := marshalUnescaped(moleculeBody(m))
	if err != nil {
		return nil, err
	}
	return marshalUnescaped(map[string]json.RawMessage{m.Type: body})
}

func (m *Molecule) UnmarshalJSON(data []byte) error {
	var block map[string]json.RawMessage
	if err := json.Unmarshal(data, &block); err != nil {
		return err
	}
	if len(block) != 1 {
		return fmt.Errorf("molecule block must have exactly one type key, got %d", len(block))
	}
	for typ, raw := range block {
		var body moleculeBody
		if err := json.Unmarshal(raw, &body); err != nil {
			return fmt.Errorf("invalid %s block: %w", typ, err)
		}
		*m = Molecule(body)
		m.Type = typ
	}
	return nil
}

// ChainIDs holds the chain identifiers of a molecule. A single chain is
// written as a JSON string, a multichain molecule as a JSON array.
type ChainIDs struct {
	ids   []string
	multi bool
}

// SingleChain returns a ChainIDs serialized as a scalar
func SingleChain(id string) ChainIDs {
	return ChainIDs{ids: []string{id}}
}

// MultiChain returns a ChainIDs serialized as a list, whatever its length
func MultiChain(ids ...string) ChainIDs {
	out := make([]string, len(ids))
	copy(out, ids)
	return ChainIDs{ids: out, multi: true}
}

// IDs returns a copy of the identifiers in order
func (c ChainIDs) IDs() []string {
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

func (c ChainIDs) IsMulti() bool {
	return c.multi
}

func (c ChainIDs) String() string {
	if !c.multi && len(c.ids) == 1 {
		return c.ids[0]
	}
	return fmt.Sprintf("%v", c.ids)
}

func (c ChainIDs) MarshalJSON() ([]byte, error) {
	if c.multi {
		return marshalUnescaped(c.IDs())
	}
	if len(c.ids) != 1 {
		return nil, fmt.Errorf("single chain id expected, got %d", len(c.ids))
	}
	return marshalUnescaped(c.ids[0])
}

func (c *ChainIDs) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*c = SingleChain(single)
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("chain id must be a string or a list of strings: %w", err)
	}
	*c = MultiChain(many...)
	return nil
}

// marshalUnescaped is json.Marshal without HTML escaping. Marshaler output
// is only compacted by the caller's encoder, so escaping here would stick.
func marshalUnescaped(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
