// Package schema tổng hợp parameter schema dạng JSON-Schema cho tool definition.
// Đầu vào là skeleton cố định theo loại action, danh sách placeholder trích từ
// template và snapshot properties của variable folder đang chọn.
package schema

import "fmt"

// Các kiểu dữ liệu hợp lệ của một property.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeArray   = "array"
	TypeObject  = "object"
)

// PropertyDef định nghĩa một property trong parameter schema (và trong variable folder).
type PropertyDef struct {
	Type        string   `json:"type" bson:"type" validate:"required,oneof=string number boolean array object"`
	Description string   `json:"description" bson:"description" validate:"required"`
	Enum        []string `json:"enum,omitempty" bson:"enum,omitempty"`
}

// Parameters là object parameter hoàn chỉnh theo shape JSON-Schema.
// Invariant: Required không chứa phần tử trùng và là tập con của keys(Properties).
type Parameters struct {
	Type       string                 `json:"type" bson:"type"`
	Properties map[string]PropertyDef `json:"properties" bson:"properties"`
	Required   []string               `json:"required" bson:"required"`
}

// SkeletonField là một parameter cố định của skeleton, có thứ tự.
type SkeletonField struct {
	Name     string
	Def      PropertyDef
	Required bool
}

// FallbackDef trả về định nghĩa thay thế cho placeholder không còn tồn tại trong
// folder (folder bị đổi tên/xóa sau khi action đã lưu). Đây là leniency có chủ đích:
// action cũ vẫn load được thay vì fail cứng.
func FallbackDef(name string) PropertyDef {
	return PropertyDef{
		Type:        TypeString,
		Description: fmt.Sprintf("Variable: %s", name),
	}
}

// BuildParameters tổng hợp parameter schema từ skeleton, placeholders và snapshot
// properties của folder đang chọn.
//
// Quy tắc:
//  1. Skeleton vào trước, theo đúng thứ tự khai báo.
//  2. Placeholder chưa có trong properties: tra folderProps, không thấy thì dùng FallbackDef.
//  3. Required = tên required của skeleton + các placeholder thêm ở bước 2,
//     theo thứ tự xuất hiện, bỏ trùng.
//
// Kết quả deterministic với cùng một bộ (skeleton, placeholders, folderProps).
func BuildParameters(skeleton []SkeletonField, placeholders []string, folderProps map[string]PropertyDef) Parameters {
	properties := make(map[string]PropertyDef, len(skeleton)+len(placeholders))
	required := make([]string, 0, len(skeleton)+len(placeholders))
	inRequired := make(map[string]bool, len(skeleton)+len(placeholders))

	for _, field := range skeleton {
		properties[field.Name] = field.Def
		if field.Required && !inRequired[field.Name] {
			inRequired[field.Name] = true
			required = append(required, field.Name)
		}
	}

	for _, name := range placeholders {
		if _, exists := properties[name]; exists {
			continue
		}
		def, found := folderProps[name]
		if !found {
			def = FallbackDef(name)
		}
		properties[name] = def
		if !inRequired[name] {
			inRequired[name] = true
			required = append(required, name)
		}
	}

	return Parameters{
		Type:       TypeObject,
		Properties: properties,
		Required:   required,
	}
}
