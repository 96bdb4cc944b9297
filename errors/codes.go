package errors

// ErrorCode identifies an application error category
type ErrorCode int32

const (
	ErrorCode_UNKNOWN ErrorCode = iota
	ErrorCode_HTTP_OK
	ErrorCode_INTERNAL
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_INVALID_PAYLOAD
	ErrorCode_INVALID_SIGNATURE
	ErrorCode_SOURCE_FETCH_FAILED
	ErrorCode_SYNTHESIS_FAILED
	ErrorCode_DELIVERY_FAILED
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED
)

var codeNames = map[ErrorCode]string{
	ErrorCode_UNKNOWN:                         "UNKNOWN",
	ErrorCode_HTTP_OK:                         "HTTP_OK",
	ErrorCode_INTERNAL:                        "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:                "INVALID_ARGUMENT",
	ErrorCode_INVALID_PAYLOAD:                 "INVALID_PAYLOAD",
	ErrorCode_INVALID_SIGNATURE:               "INVALID_SIGNATURE",
	ErrorCode_SOURCE_FETCH_FAILED:             "SOURCE_FETCH_FAILED",
	ErrorCode_SYNTHESIS_FAILED:                "SYNTHESIS_FAILED",
	ErrorCode_DELIVERY_FAILED:                 "DELIVERY_FAILED",
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED: "INTEGRATION_EXTERNAL_API_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
