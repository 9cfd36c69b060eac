package compiler

import (
	"reflect"
	"testing"

	"voice_reception/internal/schema"
)

// Round-trip: hydrate(compile(form)) khôi phục đúng các field mà hydrate cam kết
// (folder đã chọn, property đã chọn, cờ kênh từng group, messages).

func TestRoundTripNotification(t *testing.T) {
	form := notificationForm()
	doc, err := Compile(form, nil)
	if err != nil {
		t.Fatalf("compile lỗi: %v", err)
	}

	restored, err := Hydrate(doc)
	if err != nil {
		t.Fatalf("hydrate lỗi: %v", err)
	}

	if restored.Name != form.Name || restored.Kind != form.Kind {
		t.Errorf("name/kind không khôi phục: %+v", restored)
	}
	if restored.Messages != form.Messages {
		t.Errorf("messages không khôi phục: %+v, muốn %+v", restored.Messages, form.Messages)
	}
	if restored.Notification.FolderID != form.Notification.FolderID {
		t.Errorf("folderId không khôi phục: %s", restored.Notification.FolderID)
	}

	got := restored.Notification.Groups[0]
	want := form.Notification.Groups[0]
	if got.Name != want.Name || got.IsUserGroup != want.IsUserGroup ||
		got.EmailEnabled != want.EmailEnabled || got.SmsEnabled != want.SmsEnabled {
		t.Errorf("cờ kênh không khôi phục: %+v", got)
	}
	if got.EmailSubject != want.EmailSubject || got.EmailTemplate != want.EmailTemplate {
		t.Errorf("template email không khôi phục: %+v", got)
	}
	if got.Email != want.Email {
		t.Errorf("email contact không khôi phục: %q", got.Email)
	}
	// Kênh SMS tắt: giá trị leftover trong form gốc không được khôi phục (document là null)
	if got.SmsTemplate != "" || got.PhoneNumber != "" {
		t.Errorf("field kênh tắt phải rỗng sau hydrate: %+v", got)
	}
}

func TestRoundTripBooking(t *testing.T) {
	form := FormState{
		Name: "Đặt lịch khám",
		Kind: KindBooking,
		Messages: MessagesForm{
			RequestStartContent:  "Đang kiểm tra lịch",
			RequestStartBlocking: true,
		},
		Schedule: &ScheduleForm{
			FolderID:           "65f000000000000000000002",
			SelectedProperties: []string{"first_name", "phone_number_alt"},
		},
	}
	folderProps := map[string]schema.PropertyDef{
		"first_name": {Type: schema.TypeString, Description: "Tên"},
	}

	doc, err := Compile(form, folderProps)
	if err != nil {
		t.Fatalf("compile lỗi: %v", err)
	}
	restored, err := Hydrate(doc)
	if err != nil {
		t.Fatalf("hydrate lỗi: %v", err)
	}

	if restored.Schedule.FolderID != form.Schedule.FolderID {
		t.Errorf("folderId không khôi phục: %s", restored.Schedule.FolderID)
	}
	if !reflect.DeepEqual(restored.Schedule.SelectedProperties, form.Schedule.SelectedProperties) {
		t.Errorf("selectedProperties = %v, muốn %v", restored.Schedule.SelectedProperties, form.Schedule.SelectedProperties)
	}
}

func TestRoundTripTransferCall(t *testing.T) {
	form := FormState{
		Name: "Chuyển máy lễ tân",
		Kind: KindTransferCall,
		Transfer: &TransferForm{
			Destinations: []TransferDestination{{Number: "+84241234567", Message: "đang chuyển máy"}},
		},
	}

	doc, err := Compile(form, nil)
	if err != nil {
		t.Fatalf("compile lỗi: %v", err)
	}
	restored, err := Hydrate(doc)
	if err != nil {
		t.Fatalf("hydrate lỗi: %v", err)
	}

	if !reflect.DeepEqual(restored.Transfer.Destinations, form.Transfer.Destinations) {
		t.Errorf("destinations = %+v, muốn %+v", restored.Transfer.Destinations, form.Transfer.Destinations)
	}
}

func TestRoundTripAPIRequest(t *testing.T) {
	form := FormState{
		Name: "Gọi API phòng khám",
		Kind: KindAPIRequest,
		API: &APIForm{
			URL:    "https://api.clinic.vn/patients",
			Method: "POST",
			Headers: []HeaderRow{
				{RowID: "r1", Name: "Authorization", Value: "Bearer abc"},
			},
			BodyRows: []BodyRow{
				{RowID: "b1", Name: "patient_name", Type: schema.TypeString, Description: "Tên bệnh nhân", Required: true},
			},
		},
	}

	doc, err := Compile(form, nil)
	if err != nil {
		t.Fatalf("compile lỗi: %v", err)
	}
	restored, err := Hydrate(doc)
	if err != nil {
		t.Fatalf("hydrate lỗi: %v", err)
	}

	if restored.API.URL != form.API.URL || restored.API.Method != "POST" {
		t.Errorf("url/method không khôi phục: %+v", restored.API)
	}
	if len(restored.API.Headers) != 1 || restored.API.Headers[0].Name != "Authorization" || restored.API.Headers[0].Value != "Bearer abc" {
		t.Errorf("headers không khôi phục: %+v", restored.API.Headers)
	}
	if len(restored.API.BodyRows) != 1 {
		t.Fatalf("bodyRows không khôi phục: %+v", restored.API.BodyRows)
	}
	row := restored.API.BodyRows[0]
	if row.Name != "patient_name" || !row.Required || row.Description != "Tên bệnh nhân" {
		t.Errorf("body row không khôi phục: %+v", row)
	}
}

// Hydrate nhiều lần cùng một document phải cho cùng thứ tự row: headers, body row
// không required và property optional của folder đều duyệt từ map nên phải sort.
func TestHydrateThuTuOnDinh(t *testing.T) {
	doc := &Document{
		Type:   KindAPIRequest,
		Name:   "Gọi API phòng khám",
		URL:    "https://api.clinic.vn/patients",
		Method: "POST",
		Headers: map[string]string{
			"X-Client":      "voice",
			"Authorization": "Bearer abc",
			"Content-Type":  "application/json",
		},
		Body: &schema.Parameters{
			Type: "object",
			Properties: map[string]schema.PropertyDef{
				"zeta":  {Type: schema.TypeString},
				"alpha": {Type: schema.TypeString},
				"mid":   {Type: schema.TypeString},
			},
		},
	}

	first, err := Hydrate(doc)
	if err != nil {
		t.Fatalf("hydrate lỗi: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Hydrate(doc)
		if err != nil {
			t.Fatalf("hydrate lần %d lỗi: %v", i, err)
		}
		if !reflect.DeepEqual(again.API.Headers, first.API.Headers) {
			t.Fatalf("thứ tự headers thay đổi giữa các lần hydrate: %+v != %+v", again.API.Headers, first.API.Headers)
		}
		if !reflect.DeepEqual(again.API.BodyRows, first.API.BodyRows) {
			t.Fatalf("thứ tự body rows thay đổi giữa các lần hydrate: %+v != %+v", again.API.BodyRows, first.API.BodyRows)
		}
	}

	wantHeaders := []string{"Authorization", "Content-Type", "X-Client"}
	for i, name := range wantHeaders {
		if first.API.Headers[i].Name != name {
			t.Errorf("headers[%d] = %s, muốn %s", i, first.API.Headers[i].Name, name)
		}
	}
	wantRows := []string{"alpha", "mid", "zeta"}
	for i, name := range wantRows {
		if first.API.BodyRows[i].Name != name {
			t.Errorf("bodyRows[%d] = %s, muốn %s", i, first.API.BodyRows[i].Name, name)
		}
	}
}

// Property optional của folder (không nằm trong Required) cũng phải ra theo thứ tự ổn định.
func TestHydrateScheduleThuTuOnDinh(t *testing.T) {
	doc := &Document{
		Type:         "function",
		FunctionType: FunctionTypeBooking,
		Name:         "Đặt lịch khám",
		FolderID:     "65f000000000000000000002",
		Function: &FunctionDef{
			Name: "book_appointment",
			Parameters: schema.Parameters{
				Type: "object",
				Properties: map[string]schema.PropertyDef{
					"start_time":  {Type: schema.TypeString},
					"end_time":    {Type: schema.TypeString},
					"calendar_id": {Type: schema.TypeString},
					"note_c":      {Type: schema.TypeString},
					"note_a":      {Type: schema.TypeString},
					"note_b":      {Type: schema.TypeString},
				},
				Required: []string{"start_time", "end_time", "calendar_id"},
			},
		},
	}

	restored, err := Hydrate(doc)
	if err != nil {
		t.Fatalf("hydrate lỗi: %v", err)
	}
	want := []string{"note_a", "note_b", "note_c"}
	if !reflect.DeepEqual(restored.Schedule.SelectedProperties, want) {
		t.Errorf("selectedProperties = %v, muốn %v", restored.Schedule.SelectedProperties, want)
	}
}

func TestHydrateKindKhongHoTro(t *testing.T) {
	if _, err := Hydrate(&Document{Type: "legacy-kind"}); err == nil {
		t.Fatal("hydrate document kind lạ phải trả lỗi")
	}
}

func TestRoundTripZoho(t *testing.T) {
	form := FormState{
		Name: "Đẩy lead Zoho",
		Kind: KindZoho,
		Zoho: &ZohoForm{
			Module:   "Leads",
			Mappings: map[string]string{"Phone": "phone_number"},
		},
	}

	doc, err := Compile(form, nil)
	if err != nil {
		t.Fatalf("compile lỗi: %v", err)
	}
	restored, err := Hydrate(doc)
	if err != nil {
		t.Fatalf("hydrate lỗi: %v", err)
	}

	if restored.Zoho.Module != "Leads" || !reflect.DeepEqual(restored.Zoho.Mappings, form.Zoho.Mappings) {
		t.Errorf("zoho không khôi phục: %+v", restored.Zoho)
	}
}
