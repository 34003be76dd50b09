package scene

import (
	"encoding/json"
	"reflect"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON schema of the flat scene form.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}
	s := reflector.ReflectFromType(reflect.TypeOf(Scene{}))
	s.Title = "Scene"
	s.Description = "Declarative mini-game: an ordered list of shapes on an 800x600 surface."
	return s
}

// SchemaJSON returns the indented scene schema.
func SchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
