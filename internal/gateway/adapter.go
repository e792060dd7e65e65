package gateway

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Validator is implemented by request types that check their own invariants
// after decoding.
type Validator interface {
	Validate() error
}

// decodeArgs converts the raw argument map supplied by the model into a typed
// request. Weak typing tolerates the model sending numbers as floats and
// booleans as strings.
func decodeArgs[Req any](args map[string]any) (*Req, error) {
	req := new(Req)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           req,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build decoder: %w", err)
	}
	if err := dec.Decode(args); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if v, ok := any(req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return req, nil
}
