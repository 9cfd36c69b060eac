package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"voice_reception/internal/schema"
)

// DefaultPropertyNames là các property mặc định bắt buộc có trong mọi variable folder.
// Agent runtime luôn hỏi các thông tin này khi nhận cuộc gọi nên không được xóa/đổi kiểu.
var DefaultPropertyNames = []string{
	"first_name",
	"last_name",
	"birthdate",
	"phone_number",
	"email_address",
	"reason_for_visit",
}

// DefaultProperties trả về bản copy mới của bộ property mặc định (mỗi lần gọi một map riêng
// để caller mutate thoải mái không ảnh hưởng nhau).
func DefaultProperties() map[string]schema.PropertyDef {
	return map[string]schema.PropertyDef{
		"first_name":       {Type: schema.TypeString, Description: "First name of the caller"},
		"last_name":        {Type: schema.TypeString, Description: "Last name of the caller"},
		"birthdate":        {Type: schema.TypeString, Description: "Birthdate of the caller"},
		"phone_number":     {Type: schema.TypeString, Description: "Phone number of the caller"},
		"email_address":    {Type: schema.TypeString, Description: "Email address of the caller"},
		"reason_for_visit": {Type: schema.TypeString, Description: "Reason for the visit or call"},
	}
}

// IsDefaultPropertyName kiểm tra name (đã canonical) có phải property mặc định không.
func IsDefaultPropertyName(name string) bool {
	for _, defaultName := range DefaultPropertyNames {
		if name == defaultName {
			return true
		}
	}
	return false
}

// VariableFolder là một nhóm placeholder có kiểu, loại trừ lẫn nhau:
// mỗi action chỉ chọn đúng một folder khi compile parameter schema.
type VariableFolder struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của folder

	Name      string              `json:"name" bson:"name" index:"unique"`                   // Tên folder, duy nhất
	IsDefault bool                `json:"isDefault" bson:"isDefault" index:"single:1"`       // Folder mặc định do hệ thống seed
	IsSystem  bool                `json:"isSystem" bson:"isSystem"`                          // Dữ liệu hệ thống, không cho sửa/xóa qua API
	OwnerID   *primitive.ObjectID `json:"ownerId,omitempty" bson:"ownerId,omitempty" index:"single:1"` // Tenant sở hữu folder

	// Properties map tên canonical -> định nghĩa. Luôn chứa đủ DefaultPropertyNames.
	Properties map[string]schema.PropertyDef `json:"properties" bson:"properties"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo (Unix millis)
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật (Unix millis)

	// Chặn xóa folder đang được action tham chiếu qua folderId
	_Relationships struct{} `json:"-" bson:"-" relationship:"collection:actions,field:folderId,msg:Khong the xoa thu muc bien vi co %d action dang su dung. Vui long xoa hoac chuyen cac action truoc."`
}
