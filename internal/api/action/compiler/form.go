package compiler

// FormState là trạng thái form operator soạn, đầu vào của compile và đầu ra của
// hydrate. Chỉ section ứng với Kind được đọc; các section khác bỏ qua.
type FormState struct {
	Name     string        `json:"name"`
	Kind     string        `json:"kind"`
	Messages MessagesForm  `json:"messages"`
	API      *APIForm      `json:"api,omitempty"`
	Transfer *TransferForm `json:"transfer,omitempty"`
	Query    *QueryForm    `json:"query,omitempty"`

	Notification *NotificationForm `json:"notification,omitempty"`
	Schedule     *ScheduleForm     `json:"schedule,omitempty"`
	Zoho         *ZohoForm         `json:"zoho,omitempty"`
}

// MessagesForm là ba câu thoại quanh một lần invoke. Content rỗng = không đọc gì
// ở giai đoạn đó (message không được emit).
type MessagesForm struct {
	RequestStartContent    string `json:"requestStartContent"`
	RequestStartBlocking   bool   `json:"requestStartBlocking"`
	RequestCompleteContent string `json:"requestCompleteContent"`
	RequestCompleteEndCall bool   `json:"requestCompleteEndCall"`
	RequestFailedContent   string `json:"requestFailedContent"`
	RequestFailedEndCall   bool   `json:"requestFailedEndCall"`
}

// HeaderRow là một dòng header trong form API request. RowID là khóa tạm của UI,
// không được persist; document cuối key theo Name.
type HeaderRow struct {
	RowID string `json:"rowId"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// BodyRow là một dòng body property trong form API request.
type BodyRow struct {
	RowID       string `json:"rowId"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// APIForm là form state của kind apiRequest.
type APIForm struct {
	URL      string      `json:"url"`
	Method   string      `json:"method"`
	Headers  []HeaderRow `json:"headers"`
	BodyRows []BodyRow   `json:"bodyRows"`
}

// TransferForm là form state của kind transferCall.
type TransferForm struct {
	Destinations []TransferDestination `json:"destinations"`
}

// QueryForm là form state của kind query.
type QueryForm struct {
	KnowledgeBases []string `json:"knowledgeBases"`
}

// NotificationGroupForm là form state một nhóm người nhận. Khác với document:
// field kênh ở đây là string thường — null-discipline chỉ áp ở compile.
type NotificationGroupForm struct {
	Name          string   `json:"name"`
	IsUserGroup   bool     `json:"isUserGroup"`
	EmailEnabled  bool     `json:"emailEnabled"`
	SmsEnabled    bool     `json:"smsEnabled"`
	EmailSubject  string   `json:"emailSubject"`
	EmailTemplate string   `json:"emailTemplate"`
	SmsTemplate   string   `json:"smsTemplate"`
	EmailCc       []string `json:"emailCc"`
	Email         string   `json:"email"`
	PhoneNumber   string   `json:"phoneNumber"`
}

// NotificationForm là form state của kind notification.
type NotificationForm struct {
	FolderID string                  `json:"folderId"`
	Groups   []NotificationGroupForm `json:"groups"`
}

// ScheduleForm là form state chung của booking_appointment / check_availability /
// cancel_appointment: chọn folder và các property đưa vào parameter schema.
type ScheduleForm struct {
	FolderID           string   `json:"folderId"`
	SelectedProperties []string `json:"selectedProperties" validate:"omitempty,dive,var_name"`
}

// ZohoForm là form state của kind zoho: map field CRM -> tên biến.
type ZohoForm struct {
	ConnectionID string            `json:"connectionId" validate:"omitempty,exists=crm_connections"`
	Module       string            `json:"module"`
	Mappings     map[string]string `json:"mappings"`
}
