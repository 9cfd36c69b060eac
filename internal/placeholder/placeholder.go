// Package placeholder xử lý các token dạng {name} trong template tin nhắn.
// Cú pháp template là hợp đồng chung với agent runtime phía downstream:
// ngoặc nhọn đơn, không escape, không lồng nhau — không được mở rộng.
package placeholder

import (
	"regexp"
	"strings"
)

// tokenRegex nhận diện token {identifier} hợp lệ. Token sai cú pháp (ngoặc lẻ,
// ký tự lạ bên trong) bị bỏ qua, không báo lỗi.
var tokenRegex = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// canonicalInvalidRegex match các ký tự không hợp lệ trong tên biến canonical.
var canonicalInvalidRegex = regexp.MustCompile(`[^a-z0-9_]+`)

// canonicalCollapseRegex gom nhiều underscore liên tiếp thành một.
var canonicalCollapseRegex = regexp.MustCompile(`_+`)

// Extract quét text và trả về danh sách tên placeholder duy nhất,
// giữ thứ tự xuất hiện đầu tiên. Text rỗng trả về slice rỗng.
func Extract(text string) []string {
	if text == "" {
		return []string{}
	}

	matches := tokenRegex.FindAllStringSubmatch(text, -1)
	seen := make(map[string]bool, len(matches))
	names := make([]string, 0, len(matches))
	for _, match := range matches {
		name := match[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// ExtractAll quét nhiều template và union kết quả, giữ thứ tự xuất hiện đầu tiên
// xuyên suốt các template (dùng cho action có nhiều template email/SMS).
func ExtractAll(texts ...string) []string {
	seen := make(map[string]bool)
	names := []string{}
	for _, text := range texts {
		for _, name := range Extract(text) {
			if seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// Render thay các token {name} trong template bằng giá trị trong values.
// Token không có giá trị được giữ nguyên (không xóa, không báo lỗi).
func Render(template string, values map[string]string) string {
	return tokenRegex.ReplaceAllStringFunc(template, func(token string) string {
		name := token[1 : len(token)-1]
		if value, ok := values[name]; ok {
			return value
		}
		return token
	})
}

// Canonicalize chuẩn hóa tên biến về dạng lowercase + underscore.
// Hàm idempotent: Canonicalize(Canonicalize(x)) == Canonicalize(x),
// kết quả khác rỗng luôn match ^[a-z_][a-z0-9_]*$.
func Canonicalize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = canonicalInvalidRegex.ReplaceAllString(s, "_")
	s = canonicalCollapseRegex.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return ""
	}
	// Tên bắt đầu bằng chữ số phải có prefix underscore
	if s[0] >= '0' && s[0] <= '9' {
		s = "_" + s
	}
	return s
}
