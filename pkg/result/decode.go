package result

import (
	"encoding/json"
	"strings"

	"github.com/numview/numview/pkg/errors"
	"github.com/numview/numview/pkg/method"
)

// envelope is the success body of every endpoint.
type envelope struct {
	Results   json.RawMessage `json:"results"`
	Converged *bool           `json:"converged"`
}

// Decode parses a success body for req into a result set.
//
// An undecodable body, a missing or null "results" key, or an empty results
// array is a malformed payload: the returned error carries
// [errors.ErrCodeMalformedPayload] and no set is returned.
func Decode(req Request, body []byte) (Set, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedPayload, err, "malformed response from server")
	}
	if len(env.Results) == 0 || string(env.Results) == "null" {
		return nil, errors.New(errors.ErrCodeMalformedPayload, "response is missing results")
	}

	meta := Meta{Function: req.FunctionText()}

	switch r := req.(type) {
	case *ODERequest:
		if r.method == method.Euler {
			var records []EulerRecord
			if err := decodeRecords(env.Results, &records); err != nil {
				return nil, err
			}
			if len(records) == 0 {
				return nil, errEmpty()
			}
			return &EulerSet{Records: records, Meta: meta}, nil
		}
		var records []RungeRecord
		if err := decodeRecords(env.Results, &records); err != nil {
			return nil, err
		}
		if len(records) == 0 {
			return nil, errEmpty()
		}
		return &RungeSet{Records: records, Meta: meta}, nil

	case *NewtonRequest:
		var records []NewtonRecord
		if err := decodeRecords(env.Results, &records); err != nil {
			return nil, err
		}
		if len(records) == 0 {
			return nil, errEmpty()
		}
		meta.Derivative = strings.TrimSpace(r.Derivative)
		meta.Converged = env.Converged != nil && *env.Converged
		return &NewtonSet{Records: records, Meta: meta}, nil
	}

	return nil, errors.New(errors.ErrCodeInternal, "unsupported request type %T", req)
}

func decodeRecords(data json.RawMessage, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrap(errors.ErrCodeMalformedPayload, err, "malformed results in response")
	}
	return nil
}

func errEmpty() error {
	return errors.New(errors.ErrCodeMalformedPayload, "response contains no iterations")
}

// ErrorMessage extracts the "error" string of a failure body. It returns ""
// when the body is not JSON or carries no message.
func ErrorMessage(body []byte) string {
	var env struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &env); err != nil || len(env.Error) == 0 {
		return ""
	}
	var msg string
	if err := json.Unmarshal(env.Error, &msg); err != nil {
		return strings.TrimSpace(string(env.Error))
	}
	return msg
}
