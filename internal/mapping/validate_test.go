package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signature-resolver/internal/diagnostic"
)

const validHeader = `
version: "1"
types:
  preset: java
  classes:
    - {name: Car}
    - {name: CarDto}
`

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		code        string
		severity    diagnostic.DiagnosticSeverity
		suggestions []string
	}{
		{
			name: "unsupported version",
			yaml: `
version: "2"
declarations: []
`,
			code:     diagnostic.CodeUnsupportedVersion,
			severity: diagnostic.DiagnosticError,
		},
		{
			name: "unknown preset",
			yaml: `
types:
  preset: jav
`,
			code:        diagnostic.CodeUnknownPreset,
			severity:    diagnostic.DiagnosticError,
			suggestions: []string{"java"},
		},
		{
			name: "unknown parameter type",
			yaml: validHeader + `
declarations:
  - name: M
    methods:
      - name: m
        params: [{car: Carr}]
        returns: CarDto
`,
			code:        diagnostic.CodeUnknownType,
			severity:    diagnostic.DiagnosticError,
			suggestions: []string{"Car"},
		},
		{
			name: "unknown type argument",
			yaml: validHeader + `
declarations:
  - name: M
    methods:
      - name: m
        params: [{cars: "List<Carx>"}]
        returns: CarDto
`,
			code:        diagnostic.CodeUnknownType,
			severity:    diagnostic.DiagnosticError,
			suggestions: []string{"Car"},
		},
		{
			name: "unknown supertype",
			yaml: validHeader + `
    - {name: Truck, supers: [Vehicle]}
`,
			code:     diagnostic.CodeUnknownType,
			severity: diagnostic.DiagnosticError,
		},
		{
			name: "unknown alias target",
			yaml: validHeader + `
  aliases:
    - {name: Auto, target: Carr}
`,
			code:        diagnostic.CodeUnknownType,
			severity:    diagnostic.DiagnosticError,
			suggestions: []string{"Car"},
		},
		{
			name: "wrong argument count",
			yaml: validHeader + `
declarations:
  - name: M
    methods:
      - name: m
        params: [{cars: "Map<Car>"}]
        returns: CarDto
`,
			code:     diagnostic.CodeInvalidType,
			severity: diagnostic.DiagnosticError,
		},
		{
			name: "malformed type expression",
			yaml: validHeader + `
declarations:
  - name: M
    methods:
      - name: m
        params: [{cars: "List<Car"}]
        returns: CarDto
`,
			code:     diagnostic.CodeInvalidType,
			severity: diagnostic.DiagnosticError,
		},
		{
			name: "missing parameter type",
			yaml: validHeader + `
declarations:
  - name: M
    methods:
      - name: m
        params: [{name: car}]
        returns: CarDto
`,
			code:     diagnostic.CodeInvalidType,
			severity: diagnostic.DiagnosticError,
		},
		{
			name: "bad type parameter",
			yaml: validHeader + `
declarations:
  - name: M
    methods:
      - name: m
        type_params: ["T extends"]
        params: [Car]
        returns: CarDto
`,
			code:     diagnostic.CodeInvalidType,
			severity: diagnostic.DiagnosticError,
		},
		{
			name: "duplicate class",
			yaml: validHeader + `
    - {name: Car}
`,
			code:     diagnostic.CodeDuplicateClass,
			severity: diagnostic.DiagnosticError,
		},
		{
			name: "duplicate declaration",
			yaml: validHeader + `
declarations:
  - {name: M, package: p}
  - {name: M, package: p}
`,
			code:     diagnostic.CodeDuplicateDeclaration,
			severity: diagnostic.DiagnosticError,
		},
		{
			name: "declaration without a name",
			yaml: validHeader + `
declarations:
  - {package: p}
`,
			code:     diagnostic.CodeMissingName,
			severity: diagnostic.DiagnosticError,
		},
		{
			name: "invalid visibility",
			yaml: validHeader + `
declarations:
  - name: M
    methods:
      - {name: m, params: [Car], returns: CarDto, visibility: internal}
`,
			code:     diagnostic.CodeInvalidVisibility,
			severity: diagnostic.DiagnosticError,
		},
		{
			name: "unknown uses is only a warning",
			yaml: validHeader + `
declarations:
  - {name: CarMapper, uses: [DateMaper]}
  - {name: DateMapper}
`,
			code:        diagnostic.CodeUnknownDeclaration,
			severity:    diagnostic.DiagnosticWarning,
			suggestions: []string{"DateMapper"},
		},
		{
			name: "unknown call type",
			yaml: validHeader + `
declarations:
  - name: M
    calls:
      - {name: c, sources: [Car], target: Dto}
`,
			code:     diagnostic.CodeUnknownType,
			severity: diagnostic.DiagnosticError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)

			diags := Validate(f)

			found := diags.WithCode(tt.code)
			require.Len(t, found, 1, "diagnostics: %v", diags.All())
			assert.Equal(t, tt.severity, found[0].Severity)

			if tt.suggestions != nil {
				assert.Subset(t, found[0].Suggestions, tt.suggestions)
			}

			assert.Len(t, diags.All(), 1, "no follow-up diagnostics: %v", diags.All())
		})
	}
}

func TestValidate_ValidFile(t *testing.T) {
	f, err := Parse([]byte(validHeader + `
declarations:
  - name: M
    methods:
      - name: m
        type_params: ["T extends Comparable<T>"]
        params: [{items: "List<? extends T>"}, {arr: "Car[]"}]
        returns: "Map<String, T>"
    calls:
      - {sources: ["List<Integer>", "Car[]"], target: "Map<String, Integer>"}
`))
	require.NoError(t, err)

	diags := Validate(f)
	assert.Empty(t, diags.All())
	assert.True(t, diags.IsValid())
}

func TestValidate_LocatesParameter(t *testing.T) {
	f, err := Parse([]byte(validHeader + `
declarations:
  - name: M
    package: p
    methods:
      - name: m
        params: [{car: Carr}]
        returns: CarDto
`))
	require.NoError(t, err)

	found := Validate(f).WithCode(diagnostic.CodeUnknownType)
	require.Len(t, found, 1)
	assert.Equal(t, diagnostic.Location{Declaration: "p.M", Method: "m", Parameter: "car"}, found[0].Location)
}

func TestValidate_NilFile(t *testing.T) {
	assert.True(t, Validate(nil).HasErrors())
}
