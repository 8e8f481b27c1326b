package schema

// Code identifies a diagnostic in the message catalog.
type Code string

const (
	CodeBadParamType          Code = "BAD_PARAM_TYPE"
	CodeBadParamInnerType     Code = "BAD_PARAM_INNERTYPE"
	CodeBadParamBoundary      Code = "BAD_PARAM_BOUNDARY"
	CodeFailedConstrainsParam Code = "FAILED_CONSTRAINS_PARAM"
	CodeMissingRequiredParam  Code = "MISSING_REQUIRED_PARAM"
	CodeUnknownParam          Code = "UNKNOWN_PARAM"
	CodeMissingValidation     Code = "MISSING_VALIDATION"
	CodeMissingJSONBody       Code = "MISSING_JSON_BODY"
)

// Message templates, one per Code.
const (
	MsgBadParamType          = "Input type error for parameter: %s; Expected: %s but got %s"
	MsgBadParamInnerType     = "Input inner type error for parameter: %s; Expected: %s but got %s"
	MsgBadParamBoundary      = "Failed to check constrains for parameter: %s; Expect values between %v and %v but got: %s"
	MsgFailedConstrainsParam = "Failed to check constrains for parameter: %s. Expected: [%s] but got: %s"
	MsgMissingRequiredParam  = "Missing required parameter in body: [%s]"
	MsgUnknownParam          = "The parameter %s was not declared as part of the validations"
	MsgMissingValidation     = "Not validated parameter declared as part of the validations: [%s]"

	// MsgMissingJSONBody is never produced by Validate. Transports use it
	// when a request carries no payload at all.
	MsgMissingJSONBody = "Missing JSON object in body"
)

// Status codes carried by a Result.
const (
	StatusOK            = 200
	StatusBadRequest    = 400
	StatusInternalError = 500
)
