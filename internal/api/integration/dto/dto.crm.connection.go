package integrationdto

// CrmConnectionCreateInput dữ liệu đầu vào khi tạo kết nối CRM.
// Kết nối mới luôn ở trạng thái disconnected cho tới khi gọi connect.
type CrmConnectionCreateInput struct {
	Name         string `json:"name" validate:"required,no_xss"`
	Provider     string `json:"provider,omitempty" validate:"omitempty,oneof=zoho" transform:"string,default=zoho"`
	AccountEmail string `json:"accountEmail,omitempty" validate:"omitempty,email"`
	APIDomain    string `json:"apiDomain,omitempty" validate:"omitempty,url"`
}

// CrmConnectionUpdateInput dữ liệu đầu vào khi cập nhật kết nối CRM.
type CrmConnectionUpdateInput struct {
	Name         string `json:"name,omitempty" validate:"omitempty,no_xss"`
	AccountEmail string `json:"accountEmail,omitempty" validate:"omitempty,email"`
	APIDomain    string `json:"apiDomain,omitempty" validate:"omitempty,url"`
}

// CrmConnectionIDParams params từ URL cho các thao tác theo connection id.
type CrmConnectionIDParams struct {
	ID string `uri:"id" validate:"required" transform:"str_objectid"`
}
