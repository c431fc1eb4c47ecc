package utils

import (
	"sort"

	"github.com/duke-git/lancet/v2/convertor"
	"github.com/duke-git/lancet/v2/maputil"
)

// SortedKeys 返回排序后的 map key
func SortedKeys[V any](m map[string]V) []string {
	keys := maputil.Keys(m)
	sort.Strings(keys)
	return keys
}

// CloneStrings 复制字符串切片，nil 保持 nil
func CloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return convertor.DeepClone(s)
}

// CloneStringMap 复制 map[string]string，nil 保持 nil
func CloneStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	return convertor.DeepClone(m)
}

// CloneAnyMap 深拷贝 map[string]any，nil 保持 nil
func CloneAnyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	return convertor.DeepClone(m)
}
