// Package output serializes extracted datasets and analysis results.
package output

import "encoding/json"

// ToJSON serializes any value to JSON, optionally pretty-printed.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
