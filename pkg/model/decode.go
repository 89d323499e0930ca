package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeBatch strictly decodes a batch document. Unknown fields anywhere
// in the Batch, Term, Section, or Relationship records are rejected.
// Enumeration and pattern violations are not checked here; the structural
// validator collects those exhaustively instead of stopping at the first.
func DecodeBatch(data []byte) (*Batch, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var b Batch
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("decode batch: %w", err)
	}
	// Reject trailing content after the document.
	if dec.More() {
		return nil, fmt.Errorf("decode batch: trailing data after document")
	}
	return &b, nil
}

// DecodeTerms decodes a published corpus artifact. Corpus files are
// either a bare JSON array of terms or a batch-shaped document.
func DecodeTerms(data []byte) ([]Term, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var terms []Term
		if err := json.Unmarshal(data, &terms); err != nil {
			return nil, fmt.Errorf("decode term array: %w", err)
		}
		return terms, nil
	}
	var b Batch
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decode term document: %w", err)
	}
	return b.Terms, nil
}
