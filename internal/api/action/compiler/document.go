// Package compiler biến form state do operator soạn thành Tool Definition document
// chuẩn mà agent runtime tiêu thụ khi xử lý cuộc gọi, và ngược lại (hydrate) khi
// mở lại action để sửa. Mỗi loại action có đúng một cặp compile/hydrate thuần,
// dispatch qua bảng lookup theo kind.
package compiler

import (
	"voice_reception/internal/schema"
)

// Discriminator cấp một của document (field `type`).
const (
	TypeAPIRequest   = "apiRequest"
	TypeEndCall      = "endCall"
	TypeTransferCall = "transferCall"
	TypeQuery        = "query"
	TypeFunction     = "function"
	TypeZoho         = "zoho"
)

// Discriminator cấp hai cho type=function (field `function_type`).
const (
	FunctionTypeNotification      = "notification"
	FunctionTypeBooking           = "booking_appointment"
	FunctionTypeCheckAvailability = "check_availability"
	FunctionTypeCancelAppointment = "cancel_appointment"
)

// Kind là khóa dispatch của compiler: bằng `type`, riêng type=function thì bằng `function_type`.
const (
	KindAPIRequest        = TypeAPIRequest
	KindEndCall           = TypeEndCall
	KindTransferCall      = TypeTransferCall
	KindQuery             = TypeQuery
	KindNotification      = FunctionTypeNotification
	KindBooking           = FunctionTypeBooking
	KindCheckAvailability = FunctionTypeCheckAvailability
	KindCancelAppointment = FunctionTypeCancelAppointment
	KindZoho              = TypeZoho
)

// Endpoint cố định theo kind mà agent gọi khi invoke tool. Compiler copy nguyên
// văn vào server.url, không diễn giải.
const (
	ServerURLNotification      = "https://tools.voicereception.app/v1/notification/send"
	ServerURLBooking           = "https://tools.voicereception.app/v1/calendar/book"
	ServerURLCheckAvailability = "https://tools.voicereception.app/v1/calendar/availability"
	ServerURLCancelAppointment = "https://tools.voicereception.app/v1/calendar/cancel"
	ServerURLZoho              = "https://tools.voicereception.app/v1/crm/zoho/push"
)

// Loại message đọc cho caller quanh một lần invoke tool.
const (
	MessageRequestStart    = "request-start"
	MessageRequestComplete = "request-complete"
	MessageRequestFailed   = "request-failed"
)

// Message là một câu thoại gắn với giai đoạn invoke.
// blocking chỉ có nghĩa trên request-start; end_call_after_spoken_enabled chỉ có
// nghĩa trên request-complete/request-failed — compiler không emit field ở vị trí
// không có nghĩa.
type Message struct {
	Type                      string `json:"type" bson:"type"`
	Content                   string `json:"content" bson:"content"`
	Blocking                  *bool  `json:"blocking,omitempty" bson:"blocking,omitempty"`
	EndCallAfterSpokenEnabled *bool  `json:"end_call_after_spoken_enabled,omitempty" bson:"end_call_after_spoken_enabled,omitempty"`
}

// FunctionDef là phần `function` của các kind dạng function.
type FunctionDef struct {
	Name        string            `json:"name" bson:"name"`
	Description string            `json:"description,omitempty" bson:"description,omitempty"`
	Parameters  schema.Parameters `json:"parameters" bson:"parameters"`
}

// Server chứa endpoint remote agent gọi khi invoke tool này.
type Server struct {
	URL string `json:"url" bson:"url"`
}

// TransferDestination là một đích chuyển cuộc gọi, number bắt buộc E.164.
type TransferDestination struct {
	Number  string `json:"number" bson:"number"`
	Message string `json:"message,omitempty" bson:"message,omitempty"`
}

// NotificationGroup là một nhóm người nhận trong notification action.
// Các field con trỏ serialize thành null khi kênh tương ứng tắt — null và ""
// KHÔNG tương đương với consumer nên không dùng omitempty.
type NotificationGroup struct {
	Name          string   `json:"name" bson:"name"`
	IsUserGroup   bool     `json:"is_user_group" bson:"is_user_group"`
	EmailEnabled  bool     `json:"email_enabled" bson:"email_enabled"`
	SmsEnabled    bool     `json:"sms_enabled" bson:"sms_enabled"`
	EmailSubject  *string  `json:"email_subject" bson:"email_subject"`
	EmailTemplate *string  `json:"email_template" bson:"email_template"`
	SmsTemplate   *string  `json:"sms_template" bson:"sms_template"`
	EmailCc       []string `json:"email_cc" bson:"email_cc"`
	Email         *string  `json:"email" bson:"email"`
	PhoneNumber   *string  `json:"phone_number" bson:"phone_number"`
}

// Document là Tool Definition chuẩn — tagged union theo Type (+ FunctionType khi
// Type=function). Mỗi section payload chỉ được set cho đúng kind của nó.
type Document struct {
	Name         string    `json:"name" bson:"name"`
	Type         string    `json:"type" bson:"type"`
	FunctionType string    `json:"function_type,omitempty" bson:"function_type,omitempty"`
	Messages     []Message `json:"messages,omitempty" bson:"messages,omitempty"`

	// apiRequest
	URL     string             `json:"url,omitempty" bson:"url,omitempty"`
	Method  string             `json:"method,omitempty" bson:"method,omitempty"`
	Headers map[string]string  `json:"headers,omitempty" bson:"headers,omitempty"`
	Body    *schema.Parameters `json:"body,omitempty" bson:"body,omitempty"`

	// transferCall
	Destinations []TransferDestination `json:"destinations,omitempty" bson:"destinations,omitempty"`

	// query
	KnowledgeBases []string `json:"knowledge_bases,omitempty" bson:"knowledge_bases,omitempty"`

	// function kinds (notification, booking, availability, cancel)
	Function           *FunctionDef        `json:"function,omitempty" bson:"function,omitempty"`
	Server             *Server             `json:"server,omitempty" bson:"server,omitempty"`
	FolderID           string              `json:"folder_id,omitempty" bson:"folder_id,omitempty"`
	NotificationGroups []NotificationGroup `json:"notification_groups,omitempty" bson:"notification_groups,omitempty"`

	// zoho
	Module   string            `json:"module,omitempty" bson:"module,omitempty"`
	Mappings map[string]string `json:"mappings,omitempty" bson:"mappings,omitempty"`
}

// Kind trả về khóa dispatch của document (type, hoặc function_type khi type=function).
func (d *Document) Kind() string {
	if d.Type == TypeFunction {
		return d.FunctionType
	}
	return d.Type
}
