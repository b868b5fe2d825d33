package describe

// File is the root of a description file
type File struct {
	Types     []TypeSpec    `yaml:"types" toml:"types"`
	Transform TransformSpec `yaml:"transform" toml:"transform"`
}

// TransformSpec names the modifier contributors applied when transforming members
type TransformSpec struct {
	// Context is the type members are transformed into; every type when empty
	Context         string   `yaml:"context" toml:"context"`
	FieldModifiers  []string `yaml:"fieldModifiers" toml:"field_modifiers"`
	MethodModifiers []string `yaml:"methodModifiers" toml:"method_modifiers"`
}

type TypeSpec struct {
	Name      string         `yaml:"name" toml:"name"`
	Modifiers []string       `yaml:"modifiers" toml:"modifiers"`
	Variables []VariableSpec `yaml:"variables" toml:"variables"`
	// Enclosing names another type of the same file
	Enclosing string       `yaml:"enclosing" toml:"enclosing"`
	Fields    []FieldSpec  `yaml:"fields" toml:"fields"`
	Methods   []MethodSpec `yaml:"methods" toml:"methods"`
}

type VariableSpec struct {
	Symbol      string   `yaml:"symbol" toml:"symbol"`
	Bounds      []string `yaml:"bounds" toml:"bounds"`
	Annotations []string `yaml:"annotations" toml:"annotations"`
}

type FieldSpec struct {
	Name        string   `yaml:"name" toml:"name"`
	Modifiers   []string `yaml:"modifiers" toml:"modifiers"`
	Type        string   `yaml:"type" toml:"type"`
	Annotations []string `yaml:"annotations" toml:"annotations"`
}

type MethodSpec struct {
	Name        string          `yaml:"name" toml:"name"`
	Modifiers   []string        `yaml:"modifiers" toml:"modifiers"`
	Variables   []VariableSpec  `yaml:"variables" toml:"variables"`
	Returns     string          `yaml:"returns" toml:"returns"`
	Parameters  []ParameterSpec `yaml:"parameters" toml:"parameters"`
	Throws      []string        `yaml:"throws" toml:"throws"`
	Annotations []string        `yaml:"annotations" toml:"annotations"`
	Default     *string         `yaml:"default" toml:"default"`
	Receiver    *string         `yaml:"receiver" toml:"receiver"`
}

type ParameterSpec struct {
	Type string `yaml:"type" toml:"type"`
	// Name and Modifiers are left unspecified when absent
	Name        *string   `yaml:"name" toml:"name"`
	Modifiers   *[]string `yaml:"modifiers" toml:"modifiers"`
	Annotations []string  `yaml:"annotations" toml:"annotations"`
}
