package transport

import "encoding/json"

// Envelope wraps every API response so clients can branch on status
// before inspecting the payload.
type Envelope struct {
	Status string `json:"status"`
	Code   string `json:"code,omitempty"`
	Data   any    `json:"data,omitempty"`
	Error  any    `json:"error,omitempty"`
	Meta   any    `json:"meta,omitempty"`
}

const (
	statusSuccess = "success"
	statusError   = "error"
)

// NewSuccess wraps a payload in a success envelope.
func NewSuccess(data any, meta any) Envelope {
	return Envelope{Status: statusSuccess, Data: data, Meta: meta}
}

// NewError wraps an error payload under the given machine-readable code.
func NewError(code string, err any, meta any) Envelope {
	return Envelope{Status: statusError, Code: code, Error: err, Meta: meta}
}

// String renders the envelope as JSON for log output.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}
