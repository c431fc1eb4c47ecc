package watcher

import (
	"github.com/duke-git/lancet/v2/slice"

	"github.com/martinferreira/elasticsearch-net/internal/utils"
)

// encodeVariant writes {"key": payload}, or {} when key is empty.
func encodeVariant(key string, payload any) ([]byte, error) {
	if key == "" {
		return []byte("{}"), nil
	}
	raw, err := utils.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return utils.WriteObject([]utils.Member{{Key: key, Raw: raw}})
}

// decodeVariant finds the single known key in a container object.
//
// No known key yields an empty key and no error. More than one distinct known
// key is a malformed variant. Unknown keys are ignored. When a known key
// repeats, the last occurrence wins.
func decodeVariant(typ string, data []byte, known []string) (string, []byte, error) {
	if utils.IsNull(data) {
		return "", nil, nil
	}
	members, err := utils.ObjectMembers(data)
	if err != nil {
		return "", nil, NewInvalidJSONError(typ, "expected a json object", err)
	}

	var found []string
	var key string
	var raw []byte
	for _, m := range members {
		if !slice.Contain(known, m.Key) {
			continue
		}
		if !slice.Contain(found, m.Key) {
			found = append(found, m.Key)
		}
		key, raw = m.Key, m.Raw
	}
	if len(found) > 1 {
		return "", nil, NewMalformedVariantError(typ, found)
	}
	return key, raw, nil
}

// decodePayload unmarshals a variant payload, tagging failures with the container type.
func decodePayload(typ, key string, raw []byte, v any) error {
	if err := utils.Unmarshal(raw, v); err != nil {
		if _, ok := err.(*Error); ok {
			return err
		}
		return NewInvalidJSONError(typ, "invalid "+key+" payload", err)
	}
	return nil
}
