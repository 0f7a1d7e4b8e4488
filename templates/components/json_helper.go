package components

import (
	"encoding/json"

	"go.uber.org/zap"
)

// JSON marshals an object to a JSON string, returning "{}" on error
func JSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		zap.L().Warn("Error marshaling JSON for template", zap.Error(err))
		return "{}"
	}
	return string(b)
}
