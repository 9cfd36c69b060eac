package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"voice_reception/internal/api/action/compiler"
)

// Action là một Tool Definition đã compile, lưu kèm metadata phục vụ query/index.
// Definition là document chuẩn agent runtime tiêu thụ; các field metadata
// (Type, FunctionType, FolderID) được nhân bản từ Definition để đánh index.
type Action struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của action

	Name         string `json:"name" bson:"name" index:"single:1"`                            // Tên action
	Type         string `json:"type" bson:"type"`                                             // Discriminator cấp 1 (compound index với functionType)
	FunctionType string `json:"functionType,omitempty" bson:"functionType,omitempty"`         // Discriminator cấp 2 khi type=function

	FolderID        *primitive.ObjectID `json:"folderId,omitempty" bson:"folderId,omitempty"`               // Variable folder đã chọn lúc compile
	CrmConnectionID *primitive.ObjectID `json:"crmConnectionId,omitempty" bson:"crmConnectionId,omitempty"` // Kết nối CRM (kind zoho)

	Definition compiler.Document `json:"definition" bson:"definition"` // Tool Definition chuẩn

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo (Unix millis)
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật (Unix millis)
}
