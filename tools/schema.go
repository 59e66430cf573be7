package tools

// JSON Schema type literals used by tool input schemas.
const (
	TypeObject  = "object"
	TypeString  = "string"
	TypeInteger = "integer"
	TypeArray   = "array"
)

// Schema is the declared input contract of a tool, serialized verbatim as
// the MCP inputSchema. It documents the argument shape for callers; the
// enforcement of required fields and formats lives with each handler.
type Schema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties,omitempty"`
	Required   []string            `json:"required,omitempty"`
}

// Property describes one declared argument.
type Property struct {
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	Enum        []string  `json:"enum,omitempty"`
	Minimum     *int      `json:"minimum,omitempty"`
	Maximum     *int      `json:"maximum,omitempty"`
	MinLength   *int      `json:"minLength,omitempty"`
	MaxLength   *int      `json:"maxLength,omitempty"`
	MinItems    *int      `json:"minItems,omitempty"`
	MaxItems    *int      `json:"maxItems,omitempty"`
	Items       *Property `json:"items,omitempty"`
	Default     any       `json:"default,omitempty"`
}

func objectSchema(properties map[string]Property, required ...string) Schema {
	return Schema{
		Type:       TypeObject,
		Properties: properties,
		Required:   required,
	}
}

func emptySchema() Schema {
	return Schema{Type: TypeObject}
}

func intPtr(v int) *int {
	return &v
}

func addressProperty(description string) Property {
	return Property{
		Type:        TypeString,
		Description: description,
		MinLength:   intPtr(minAddressLen),
		MaxLength:   intPtr(maxAddressLen),
	}
}

func signatureProperty(description string) Property {
	return Property{
		Type:        TypeString,
		Description: description,
		MinLength:   intPtr(minSignatureLen),
		MaxLength:   intPtr(maxSignatureLen),
	}
}

func limitProperty(description string, def, max int) Property {
	return Property{
		Type:        TypeInteger,
		Description: description,
		Minimum:     intPtr(1),
		Maximum:     intPtr(max),
		Default:     def,
	}
}
