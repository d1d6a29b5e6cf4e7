package capability

// JSONSchema renders the schema as a JSON Schema object of type "object".
// Both the Anthropic planner and the MCP bridge hand this to their SDKs
// verbatim.
func (s Schema) JSONSchema() map[string]any {
	properties := make(map[string]any, len(s.Fields))
	required := make([]string, 0, len(s.Fields))

	for _, f := range s.Fields {
		properties[f.Name] = f.jsonSchema()
		if f.Required {
			required = append(required, f.Name)
		}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func (f Field) jsonSchema() map[string]any {
	out := map[string]any{}

	switch f.Type {
	case TypeString:
		out["type"] = "string"
	case TypeNumber:
		out["type"] = "number"
	case TypeInteger:
		out["type"] = "integer"
	case TypeBoolean:
		out["type"] = "boolean"
	case TypeEnum:
		out["type"] = "string"
		values := make([]any, len(f.EnumValues))
		for i, v := range f.EnumValues {
			values[i] = v
		}
		out["enum"] = values
	case TypeList:
		out["type"] = "array"
		if f.Elem != nil {
			out["items"] = f.Elem.jsonSchema()
		}
	case TypeObject:
		out["type"] = "object"
		children := make(map[string]any, len(f.Fields))
		required := make([]string, 0)
		for _, c := range f.Fields {
			children[c.Name] = c.jsonSchema()
			if c.Required {
				required = append(required, c.Name)
			}
		}
		out["properties"] = children
		if len(required) > 0 {
			out["required"] = required
		}
	}

	if f.Description != "" {
		out["description"] = f.Description
	}
	if f.Default != nil {
		out["default"] = f.Default
	}
	return out
}
