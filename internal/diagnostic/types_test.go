package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_ReportRoutesBySeverity(t *testing.T) {
	var d Diagnostics

	var sink Sink = &d
	sink.Report(DiagnosticError, CodeVoidResult, "return type void", Location{Declaration: "CarMapper", Method: "map"})
	sink.Report(DiagnosticWarning, "w", "careful", Location{})
	sink.Report(DiagnosticInfo, CodeDuplicateOrigin, "seen twice", Location{Declaration: "DateMapper"})

	require.Len(t, d.Errors, 1)
	require.Len(t, d.Warnings, 1)
	require.Len(t, d.Infos, 1)
	assert.True(t, d.HasErrors())
	assert.False(t, d.IsValid())
	assert.Len(t, d.All(), 3)
	assert.Len(t, d.WithCode(CodeDuplicateOrigin), 1)
}

func TestDiagnostics_Error(t *testing.T) {
	var d Diagnostics
	require.NoError(t, d.Error())

	d.AddError(CodeNoInputArguments, "no input arguments", Location{Declaration: "M", Method: "map"})
	d.AddError(CodeUnknownDeclaration, "unknown declaration Foo", Location{}, "Food")

	err := d.Error()
	require.Error(t, err)
	assert.Equal(t,
		"M.map: [no_input_arguments] no input arguments; [unknown_declaration] unknown declaration Foo (did you mean Food?)",
		err.Error())
}

func TestDiagnostics_Merge(t *testing.T) {
	var a, b Diagnostics

	a.AddInfo("i", "one", Location{})
	b.AddWarning("w", "two", Location{})
	b.AddError("e", "three", Location{})

	a.Merge(b)

	assert.Len(t, a.Infos, 1)
	assert.Len(t, a.Warnings, 1)
	assert.Len(t, a.Errors, 1)
}

func TestLocation_String(t *testing.T) {
	tests := []struct {
		loc      Location
		expected string
	}{
		{Location{}, ""},
		{Location{Declaration: "CarMapper"}, "CarMapper"},
		{Location{Declaration: "CarMapper", Method: "map"}, "CarMapper.map"},
		{Location{Declaration: "CarMapper", Method: "map", Parameter: "car"}, "CarMapper.map(car)"},
		{Location{Method: "map"}, "map"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.loc.String())
		})
	}
}

func TestDiagnosticSeverity_String(t *testing.T) {
	assert.Equal(t, "error", DiagnosticError.String())
	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "info", DiagnosticInfo.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(42).String())
}
