package event

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON string

var schema = jsonschema.MustCompileString("events.json", schemaJSON)

// Validate checks an events list against the blob document schema.
func Validate(events []Event) error {
	encoded, err := json.Marshal(events)
	if err != nil {
		return err
	}
	return ValidateJSON(encoded)
}

// ValidateJSON checks a raw JSON document against the events schema.
func ValidateJSON(document []byte) error {
	var decoded interface{}
	decoder := json.NewDecoder(bytes.NewReader(document))
	decoder.UseNumber()
	if err := decoder.Decode(&decoded); err != nil {
		return fmt.Errorf("decoding events document: %w", err)
	}
	if err := schema.Validate(decoded); err != nil {
		return fmt.Errorf("events document failed validation: %w", err)
	}
	return nil
}
