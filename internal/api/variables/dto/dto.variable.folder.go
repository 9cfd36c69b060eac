package variablesdto

// VariableFolderCreateInput dữ liệu đầu vào khi tạo variable folder.
// Folder mới luôn được seed đủ bộ property mặc định ở service.
type VariableFolderCreateInput struct {
	Name    string `json:"name" validate:"required,no_xss"`
	OwnerID string `json:"ownerId,omitempty" transform:"str_objectid_ptr,optional"`
}

// VariableFolderUpdateInput dữ liệu đầu vào khi đổi tên folder.
type VariableFolderUpdateInput struct {
	Name string `json:"name,omitempty" validate:"omitempty,no_xss"`
}

// VariableFolderCloneInput dữ liệu đầu vào khi clone folder.
type VariableFolderCloneInput struct {
	Name string `json:"name" validate:"required,no_xss"`
}

// VariableFolderIDParams params từ URL cho các thao tác theo folder id.
type VariableFolderIDParams struct {
	ID string `uri:"id" validate:"required" transform:"str_objectid"`
}

// PropertyUpsertInput dữ liệu đầu vào khi thêm/sửa một property của folder.
// Name được canonical hóa (lowercase + underscore) trước khi lưu.
type PropertyUpsertInput struct {
	Name        string   `json:"name" validate:"required"`
	Type        string   `json:"type" validate:"required,oneof=string number boolean array object"`
	Description string   `json:"description" validate:"required,no_xss"`
	Enum        []string `json:"enum,omitempty"`
}

// PropertyRemoveParams params từ URL khi xóa một property.
type PropertyRemoveParams struct {
	ID   string `uri:"id" validate:"required" transform:"str_objectid"`
	Name string `uri:"name" validate:"required"`
}
