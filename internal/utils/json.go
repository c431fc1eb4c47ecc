package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/bytedance/sonic/ast"
)

// api 使用标准库兼容配置：map key 排序、HTML 转义，保证输出稳定
var api = sonic.ConfigStd

// numberAPI 与 api 相同，但数字解析为 json.Number，保留大整数精度
var numberAPI = sonic.Config{
	EscapeHTML:       true,
	SortMapKeys:      true,
	CompactMarshaler: true,
	CopyString:       true,
	ValidateString:   true,
	UseNumber:        true,
}.Froze()

// Member 是 JSON 对象中的一个成员，保留原始字节
type Member struct {
	Key string
	Raw []byte
}

// Marshal 将对象序列化为JSON字节数组
func Marshal(v any) ([]byte, error) {
	return api.Marshal(v)
}

// ToJSONPretty 将对象转换为格式化的JSON字符串
func ToJSONPretty(v any) (string, error) {
	b, err := api.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Unmarshal 将JSON字节数组解析到指定对象
func Unmarshal(data []byte, v any) error {
	return api.Unmarshal(data, v)
}

// UnmarshalNumber 解析JSON，数字保留为 json.Number
func UnmarshalNumber(data []byte, v any) error {
	return numberAPI.Unmarshal(data, v)
}

// UnmarshalString 将JSON字符串解析到指定对象
func UnmarshalString(s string, v any) error {
	return api.UnmarshalFromString(s, v)
}

// Valid 验证是否为有效的JSON
func Valid(data []byte) bool {
	return api.Valid(data)
}

// IsNull 判断是否为 JSON null（忽略空白）
func IsNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

// GetString 从JSON中获取指定路径的字符串值
func GetString(data []byte, path ...any) (string, error) {
	node, err := sonic.Get(data, path...)
	if err != nil {
		return "", err
	}
	return node.String()
}

// ObjectMembers 按文档顺序返回 JSON 对象的成员
func ObjectMembers(data []byte) ([]Member, error) {
	if !Valid(data) {
		return nil, fmt.Errorf("invalid json")
	}
	root, err := sonic.Get(data)
	if err != nil {
		return nil, err
	}
	if root.TypeSafe() != ast.V_OBJECT {
		return nil, fmt.Errorf("expected json object")
	}

	var members []Member
	var walkErr error
	err = root.ForEach(func(path ast.Sequence, node *ast.Node) bool {
		if path.Key == nil {
			walkErr = fmt.Errorf("object member without key")
			return false
		}
		raw, err := node.Raw()
		if err != nil {
			walkErr = err
			return false
		}
		members = append(members, Member{Key: *path.Key, Raw: []byte(raw)})
		return true
	})
	if err != nil {
		return nil, err
	}
	if walkErr != nil {
		return nil, walkErr
	}
	return members, nil
}

// WriteObject 按给定顺序拼接 JSON 对象，值必须已经是合法 JSON
func WriteObject(members []Member) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range members {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(m.Raw)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ArrayElements 按顺序返回 JSON 数组的元素原始字节
func ArrayElements(data []byte) ([][]byte, error) {
	if !Valid(data) {
		return nil, fmt.Errorf("invalid json")
	}
	root, err := sonic.Get(data)
	if err != nil {
		return nil, err
	}
	if root.TypeSafe() != ast.V_ARRAY {
		return nil, fmt.Errorf("expected json array")
	}

	var items [][]byte
	var walkErr error
	err = root.ForEach(func(_ ast.Sequence, node *ast.Node) bool {
		raw, err := node.Raw()
		if err != nil {
			walkErr = err
			return false
		}
		items = append(items, []byte(raw))
		return true
	})
	if err != nil {
		return nil, err
	}
	if walkErr != nil {
		return nil, walkErr
	}
	return items, nil
}

// IndentJSON 按原有成员顺序缩进已序列化的 JSON
func IndentJSON(dst *bytes.Buffer, data []byte, spaces int) error {
	if err := json.Indent(dst, data, "", strings.Repeat(" ", spaces)); err != nil {
		return err
	}
	dst.WriteByte('\n')
	return nil
}
