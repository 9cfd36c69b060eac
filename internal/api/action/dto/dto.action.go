package actiondto

import "voice_reception/internal/api/action/compiler"

// ActionSaveInput là body của save: form state operator soạn.
// Validation nghiệp vụ nằm trong compiler theo kind; ở đây chỉ gate field chung.
type ActionSaveInput struct {
	compiler.FormState
}

// ActionIDParams params từ URL cho các thao tác theo action id.
type ActionIDParams struct {
	ID string `uri:"id" validate:"required" transform:"str_objectid"`
}

// ActionTestSendInput là body của test-send: người nhận và giá trị mẫu cho placeholder.
type ActionTestSendInput struct {
	Email        string            `json:"email,omitempty" validate:"omitempty,email"`
	PhoneNumber  string            `json:"phoneNumber,omitempty" validate:"omitempty,e164"`
	SampleValues map[string]string `json:"sampleValues,omitempty"`
}
