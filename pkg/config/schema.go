package config

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/invopop/jsonschema"

	"github.com/macropower/termicon/pkg/yaml"
)

// SchemaID is the $id of the configuration schema.
const SchemaID = "https://raw.githubusercontent.com/macropower/termicon/refs/heads/main/pkg/config/config.v1beta1.json"

var (
	schemaOnce = sync.OnceValues(reflectSchema)

	// DefaultValidator returns the validator for the configuration schema.
	DefaultValidator = sync.OnceValue(func() *yaml.Validator {
		data, err := Schema()
		if err != nil {
			panic(err)
		}

		return yaml.MustNewValidator(SchemaID, data)
	})
)

// Schema returns the JSON schema of [Config].
func Schema() ([]byte, error) {
	return schemaOnce()
}

func reflectSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}

	jss := r.Reflect(&Config{})
	jss.ID = SchemaID
	jss.Title = "termicon configuration"

	data, err := json.MarshalIndent(jss, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	return data, nil
}
