package diagnostic

// Codes reported while validating candidate methods.
const (
	CodeNoInputArguments           = "no_input_arguments"
	CodeMultipleTargetParameters   = "multiple_target_parameters"
	CodeVoidResult                 = "void_result"
	CodeResultNotAssignable        = "result_not_assignable"
	CodeIterableToNonIterable      = "iterable_to_non_iterable"
	CodeNonIterableToIterable      = "non_iterable_to_iterable"
	CodeTargetTypeOnImplementation = "target_type_on_implementation"
	CodePrimitiveParameter         = "primitive_parameter"
	CodePrimitiveResult            = "primitive_result"
	CodeEnumToNonEnum              = "enum_to_non_enum"
	CodeNonEnumToEnum              = "non_enum_to_enum"
)

// Codes reported while retrieving candidates.
const (
	CodeInaccessibleCandidate = "inaccessible_candidate"
	CodeDuplicateOrigin       = "duplicate_origin"
)

// Codes reported while validating a declaration file.
const (
	CodeUnknownType          = "unknown_type"
	CodeInvalidType          = "invalid_type"
	CodeDuplicateDeclaration = "duplicate_declaration"
	CodeDuplicateClass       = "duplicate_class"
	CodeUnknownDeclaration   = "unknown_declaration"
	CodeMissingName          = "missing_name"
	CodeUnsupportedVersion   = "unsupported_version"
	CodeInvalidVisibility    = "invalid_visibility"
	CodeUnknownPreset        = "unknown_preset"
	CodeImportFailed         = "import_failed"
)
