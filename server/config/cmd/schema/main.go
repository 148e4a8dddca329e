// Command schema writes the JSON schema for the movement tunables file read
// by the server's -tunables flag.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/invopop/jsonschema"

	"github.com/automoto/netplayer/shared/netconfig"
)

func main() {
	var outPath string
	flag.StringVar(&outPath, "out", "", "path to write the JSON schema")
	flag.Parse()

	if outPath == "" {
		fmt.Fprintln(os.Stderr, "--out is required")
		os.Exit(1)
	}

	if err := writeSchema(outPath, buildSchema()); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write schema: %v\n", err)
		os.Exit(1)
	}
}

var modelIDType = reflect.TypeOf(netconfig.ModelID(0))

// buildSchema describes a tunables file. Files are layered over the server's
// defaults, so no field is required.
func buildSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		Mapper:                     mapType,
	}
	schema := reflector.Reflect(new(netconfig.MovementConfig))
	schema.Title = "Movement tunables"
	schema.Description = "Per-player movement parameters loaded with -tunables"

	// Minimum is an int with omitempty, so a zero bound has to go in Extras.
	if prop, ok := property(schema, "damping"); ok {
		if prop.Extras == nil {
			prop.Extras = map[string]interface{}{}
		}
		prop.Extras["exclusiveMinimum"] = 0
	}
	return schema
}

// mapType encodes model ids by name, matching ModelID.UnmarshalText.
func mapType(t reflect.Type) *jsonschema.Schema {
	if t != modelIDType {
		return nil
	}
	names := make([]interface{}, 0, len(netconfig.Models()))
	for _, m := range netconfig.Models() {
		names = append(names, m.String())
	}
	return &jsonschema.Schema{Type: "string", Enum: names}
}

func property(schema *jsonschema.Schema, name string) (*jsonschema.Schema, bool) {
	if schema.Properties == nil {
		return nil, false
	}
	v, ok := schema.Properties.Get(name)
	if !ok {
		return nil, false
	}
	prop, ok := v.(*jsonschema.Schema)
	return prop, ok
}

func writeSchema(outPath string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}

	return os.Rename(tmpPath, outPath)
}
