package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Encoder writes line-delimited messages.
type Encoder struct {
	enc *json.Encoder
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{enc: json.NewEncoder(w)}
}

func (e *Encoder) Encode(m Message) error {
	return e.enc.Encode(m)
}

// ParseCheckpoint decodes an inbound state document. A nil result means the
// run starts fresh: the document is empty, null, or has no column1 field.
func ParseCheckpoint(raw []byte) (*ColumnData, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("state: %w", err)
	}
	v, ok := fields["column1"]
	if !ok {
		return nil, nil
	}
	if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return nil, errors.New("state: column1 is null, must be an integer")
	}
	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(v))
	dec.UseNumber()
	if err := dec.Decode(&n); err != nil {
		return nil, fmt.Errorf("state: column1 must be an integer: %w", err)
	}
	i, err := n.Int64()
	if err != nil {
		return nil, errors.New("state: column1 must be an integer, got " + n.String())
	}
	return &ColumnData{Column1: i}, nil
}
