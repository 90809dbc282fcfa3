package mapping

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	yaml := `
version: "1"
types:
  root: Object
  primitives:
    - {name: int, boxed: Integer}
  classes:
    - {name: Integer}
    - {name: List, params: E, supers: ["Iterable<E>"], iterable: true}
  aliases:
    - {name: java.lang.Integer, target: Integer}
declarations:
  - name: CarMapper
    package: com.example
    uses: DateMapper
    methods:
      - name: carToDto
        abstract: true
        type_params: ["T extends Number"]
        params:
          - car: Car
          - {name: dto, type: CarDto, target: true}
          - Date
          - {name: type, type: "Class<T>", target_type: true}
        throws: [IOException, ParseException]
      - name: helper
        params: [String]
        returns: Long
        visibility: private
    calls:
      - {sources: [Date, Car], target: String}
      - {name: named, target: CarDto}
`

	f, err := Parse([]byte(yaml))
	require.NoError(t, err)
	require.NotNil(t, f)

	assert.Equal(t, "1", f.Version)
	assert.Equal(t, "Object", f.Types.Root)
	assert.Equal(t, []PrimitiveDef{{Name: "int", Boxed: "Integer"}}, f.Types.Primitives)
	require.Len(t, f.Types.Classes, 2)
	assert.Equal(t, StringOrArray{"E"}, f.Types.Classes[1].Params)
	assert.True(t, f.Types.Classes[1].Iterable)
	assert.Equal(t, []AliasDef{{Name: "java.lang.Integer", Target: "Integer"}}, f.Types.Aliases)

	require.Len(t, f.Declarations, 1)

	d := f.Declarations[0]
	assert.Equal(t, "com.example.CarMapper", d.QualifiedName())
	assert.Equal(t, StringOrArray{"DateMapper"}, d.Uses)
	require.Len(t, d.Methods, 2)

	m := d.Methods[0]
	assert.True(t, m.Abstract)
	assert.Equal(t, "void", m.Returns, "missing return defaults to void")
	assert.Equal(t, "public", m.Visibility, "missing visibility defaults to public")
	assert.Equal(t, StringOrArray{"T extends Number"}, m.TypeParams)
	assert.Equal(t, StringOrArray{"IOException", "ParseException"}, m.Throws)
	assert.Equal(t, []ParamDef{
		{Name: "car", Type: "Car"},
		{Name: "dto", Type: "CarDto", Target: true},
		{Type: "Date"},
		{Name: "type", Type: "Class<T>", TargetType: true},
	}, m.Params)

	assert.Equal(t, "private", d.Methods[1].Visibility)
	assert.Equal(t, "Long", d.Methods[1].Returns)

	require.Len(t, d.Calls, 2)
	assert.Equal(t, "call1", d.Calls[0].Name, "unnamed calls are numbered")
	assert.Equal(t, StringOrArray{"Date", "Car"}, d.Calls[0].Sources)
	assert.Equal(t, "named", d.Calls[1].Name)
	assert.Empty(t, d.Calls[1].Sources)
}

func TestParse_DefaultVersion(t *testing.T) {
	f, err := Parse([]byte("declarations: []"))
	require.NoError(t, err)
	assert.Equal(t, SupportedVersion, f.Version)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "malformed",
			yaml: "declarations: [",
			want: "failed to parse declaration YAML",
		},
		{
			name: "unknown parameter field",
			yaml: `
declarations:
  - name: M
    methods:
      - name: m
        params:
          - {name: car, type: Car, source: true}
`,
			want: `unknown parameter field "source"`,
		},
		{
			name: "shorthand with a nested value",
			yaml: `
declarations:
  - name: M
    methods:
      - name: m
        params:
          - car: [Car]
`,
			want: `parameter "car": expected a type expression`,
		},
		{
			name: "uses as a mapping",
			yaml: `
declarations:
  - name: M
    uses: {a: b}
`,
			want: "expected string or array, got mapping",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	f := &File{
		Version: "1",
		Declarations: []DeclarationDef{{
			Name: "CarMapper",
			Uses: StringOrArray{"DateMapper"},
			Methods: []MethodDef{{
				Name: "carToDto",
				Params: []ParamDef{
					{Name: "car", Type: "Car"},
					{Name: "dto", Type: "CarDto", Target: true},
				},
				Returns:    "void",
				Visibility: "public",
			}},
		}},
	}

	data, err := Marshal(f)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "uses: DateMapper", "single-element lists are written as a scalar")
	assert.Contains(t, out, "- car: Car", "plain parameters use the shorthand form")
	assert.Contains(t, out, "target: true")

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, f, back)
}

func TestLoadAndWriteFile(t *testing.T) {
	f, err := LoadFile(filepath.Join("testdata", "cars.yaml"))
	require.NoError(t, err)
	require.Len(t, f.Declarations, 3)
	assert.Equal(t, "java", f.Types.Preset)

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, WriteFile(f, path))

	back, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, f.Types, back.Types)
	assert.Equal(t, f.Declarations, back.Declarations)
	assert.Equal(t, filepath.Dir(path), back.BaseDir)

	_, err = LoadFile(filepath.Join("testdata", "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read declaration file")
}
