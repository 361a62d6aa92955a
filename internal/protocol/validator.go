package protocol

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas
var schemaFiles embed.FS

const commandSchemaURL = "https://blackjack.lox.dev/schemas/command.json"

// Validator checks incoming commands against the embedded JSON schema
type Validator struct {
	command *jsonschema.Schema
}

// NewValidator compiles the embedded schemas
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	data, err := schemaFiles.ReadFile("schemas/command.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read command schema: %w", err)
	}
	if err := compiler.AddResource(commandSchemaURL, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to add command schema: %w", err)
	}
	schema, err := compiler.Compile(commandSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile command schema: %w", err)
	}
	return &Validator{command: schema}, nil
}

// ParseCommand validates raw JSON and decodes it into a Command
func (v *Validator) ParseCommand(data []byte) (Command, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return Command{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := v.command.Validate(doc); err != nil {
		return Command{}, fmt.Errorf("invalid command: %w", err)
	}

	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return Command{}, fmt.Errorf("invalid command: %w", err)
	}
	return cmd, nil
}
