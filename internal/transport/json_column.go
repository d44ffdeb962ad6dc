package transport

import (
	"database/sql/driver"
	"encoding/json"
)

type jsonValue struct {
	v any
}

// jsonColumn wraps a value for map-based gorm updates of json-serialized
// columns; map updates bypass the model field's serializer.
func jsonColumn(v any) jsonValue {
	return jsonValue{v: v}
}

func (j jsonValue) Value() (driver.Value, error) {
	b, err := json.Marshal(j.v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
