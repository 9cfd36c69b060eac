package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Provider CRM được hỗ trợ.
const (
	ProviderZoho = "zoho"
)

// Trạng thái kết nối CRM.
const (
	StatusConnected    = "connected"
	StatusDisconnected = "disconnected"
)

// CrmConnection là một kết nối tới CRM bên ngoài. Zoho action tham chiếu kết nối
// qua crmConnectionId khi push dữ liệu cuộc gọi sang CRM.
type CrmConnection struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của kết nối

	Name     string `json:"name" bson:"name" index:"unique"`       // Tên kết nối, duy nhất
	Provider string `json:"provider" bson:"provider" index:"single:1"` // Provider (hiện chỉ zoho)
	Status   string `json:"status" bson:"status"`                  // connected | disconnected

	AccountEmail string `json:"accountEmail,omitempty" bson:"accountEmail,omitempty"` // Email tài khoản CRM
	APIDomain    string `json:"apiDomain,omitempty" bson:"apiDomain,omitempty"`       // Domain API của tenant CRM

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo (Unix millis)
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật (Unix millis)
}
