package output

import (
	"encoding/json"

	"github.com/rotisserie/eris"
)

// ToJSON serializes v, indented when pretty is set.
func ToJSON(v any, pretty bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return nil, eris.Wrap(err, "failed to serialize results")
	}
	return data, nil
}
