package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed profile.schema.json
var profileSchema []byte

const profileSchemaURL = "schema://profile.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(profileSchema))
		if err != nil {
			compileErr = fmt.Errorf("parse profile schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(profileSchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(profileSchemaURL)
	})
	return compiled, compileErr
}

// validateDocument checks a decoded YAML document against the profile
// schema. The document is round-tripped through JSON so that the validator
// sees the same value types it would for a JSON file.
func validateDocument(doc any) error {
	s, err := schema()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("decode profile: %w", err)
	}

	if err := s.Validate(inst); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}
	return nil
}
