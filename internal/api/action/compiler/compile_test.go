package compiler

import (
	"errors"
	"reflect"
	"testing"

	"voice_reception/internal/common"
	"voice_reception/internal/schema"
)

func notificationForm() FormState {
	return FormState{
		Name: "Notify reception",
		Kind: KindNotification,
		Messages: MessagesForm{
			RequestStartContent:  "Đang gửi thông báo",
			RequestStartBlocking: true,
		},
		Notification: &NotificationForm{
			FolderID: "65f000000000000000000001",
			Groups: []NotificationGroupForm{
				{
					Name:          "Front desk",
					IsUserGroup:   false,
					EmailEnabled:  true,
					SmsEnabled:    false,
					EmailSubject:  "New call from {first_name}",
					EmailTemplate: "Caller {first_name} needs {reason_for_visit}",
					SmsTemplate:   "leftover sms text",
					EmailCc:       []string{"a@clinic.vn", "  ", ""},
					Email:         "desk@clinic.vn",
					PhoneNumber:   "+84900000000",
				},
			},
		},
	}
}

func TestCompileKindKhongHoTro(t *testing.T) {
	_, err := Compile(FormState{Name: "x", Kind: "unknown"}, nil)
	if err == nil {
		t.Fatal("Compile với kind lạ phải trả lỗi")
	}
}

func TestCompileThieuTenAction(t *testing.T) {
	_, err := Compile(FormState{Kind: KindEndCall}, nil)
	var customErr *common.Error
	if !errors.As(err, &customErr) {
		t.Fatalf("muốn *common.Error, nhận %T", err)
	}
	if customErr.StatusCode != common.StatusBadRequest {
		t.Errorf("StatusCode = %d, muốn %d", customErr.StatusCode, common.StatusBadRequest)
	}
}

func TestCompileNotificationNullDiscipline(t *testing.T) {
	doc, err := Compile(notificationForm(), nil)
	if err != nil {
		t.Fatalf("compile notification lỗi: %v", err)
	}

	group := doc.NotificationGroups[0]

	// Kênh SMS tắt: field phụ thuộc phải null dù form còn giá trị cũ
	if group.SmsTemplate != nil {
		t.Errorf("sms_template = %v, muốn null khi smsEnabled=false", *group.SmsTemplate)
	}
	if group.PhoneNumber != nil {
		t.Errorf("phone_number = %v, muốn null khi smsEnabled=false", *group.PhoneNumber)
	}

	// Kênh email bật với contact tùy chỉnh: giữ giá trị
	if group.Email == nil || *group.Email != "desk@clinic.vn" {
		t.Errorf("email = %v, muốn desk@clinic.vn", group.Email)
	}

	// CC trống/khoảng trắng bị lọc
	if !reflect.DeepEqual(group.EmailCc, []string{"a@clinic.vn"}) {
		t.Errorf("email_cc = %v, muốn [a@clinic.vn]", group.EmailCc)
	}
}

func TestCompileNotificationUserGroupContactNull(t *testing.T) {
	form := notificationForm()
	form.Notification.Groups[0].IsUserGroup = true
	form.Notification.Groups[0].SmsEnabled = true

	doc, err := Compile(form, nil)
	if err != nil {
		t.Fatalf("compile lỗi: %v", err)
	}

	group := doc.NotificationGroups[0]
	// is_user_group: hỏi contact lúc gọi, giá trị tùy chỉnh trong form bị ép null
	if group.Email != nil {
		t.Errorf("email = %v, muốn null với is_user_group", *group.Email)
	}
	if group.PhoneNumber != nil {
		t.Errorf("phone_number = %v, muốn null với is_user_group", *group.PhoneNumber)
	}
}

func TestCompileNotificationThieuContactTuyChinh(t *testing.T) {
	form := notificationForm()
	form.Notification.Groups[0].Email = ""

	_, err := Compile(form, nil)
	if err == nil {
		t.Fatal("thiếu email contact tùy chỉnh phải trả lỗi validation")
	}
}

func TestCompileNotificationSynthesizeParameters(t *testing.T) {
	folderProps := map[string]schema.PropertyDef{
		"first_name": {Type: schema.TypeString, Description: "First name of the caller"},
	}

	doc, err := Compile(notificationForm(), folderProps)
	if err != nil {
		t.Fatalf("compile lỗi: %v", err)
	}

	params := doc.Function.Parameters
	// Skeleton + placeholder từ template (subject + body): first_name, reason_for_visit
	wantRequired := []string{"phone_number", "email", "first_name", "reason_for_visit"}
	if !reflect.DeepEqual(params.Required, wantRequired) {
		t.Fatalf("required = %v, muốn %v", params.Required, wantRequired)
	}
	// reason_for_visit không có trong folder snapshot: fallback string
	if params.Properties["reason_for_visit"].Description != "Variable: reason_for_visit" {
		t.Errorf("reason_for_visit không dùng fallback: %+v", params.Properties["reason_for_visit"])
	}
	if doc.Server == nil || doc.Server.URL != ServerURLNotification {
		t.Errorf("server.url = %+v, muốn %s", doc.Server, ServerURLNotification)
	}
	if doc.FolderID != "65f000000000000000000001" {
		t.Errorf("folder_id = %s, muốn giữ folder đã chọn", doc.FolderID)
	}
}

func TestCompileTransferCallE164(t *testing.T) {
	form := FormState{
		Name: "Chuyển máy",
		Kind: KindTransferCall,
		Transfer: &TransferForm{
			Destinations: []TransferDestination{{Number: "4165551234", Message: "chuyển tới lễ tân"}},
		},
	}

	// Thiếu dấu + phải fail
	if _, err := Compile(form, nil); err == nil {
		t.Fatal("số không có dấu + phải bị từ chối")
	}

	// Đúng định dạng E.164 phải thành công
	form.Transfer.Destinations[0].Number = "+14165551234"
	doc, err := Compile(form, nil)
	if err != nil {
		t.Fatalf("số E.164 hợp lệ bị từ chối: %v", err)
	}
	if doc.Destinations[0].Number != "+14165551234" {
		t.Errorf("destination = %+v", doc.Destinations[0])
	}
}

func TestCompileAPIRequestRows(t *testing.T) {
	form := FormState{
		Name: "Gọi API phòng khám",
		Kind: KindAPIRequest,
		API: &APIForm{
			URL:    "https://api.clinic.vn/patients",
			Method: "post",
			Headers: []HeaderRow{
				{RowID: "r1", Name: "Authorization", Value: "Bearer abc"},
				{RowID: "r2", Name: "", Value: "bị bỏ vì name trống"},
			},
			BodyRows: []BodyRow{
				{RowID: "b1", Name: "patient_name", Type: schema.TypeString, Description: "Tên bệnh nhân", Required: true},
				{RowID: "b2", Name: "", Description: "row name trống không required", Required: false},
				{RowID: "b3", Name: "note", Description: "Ghi chú", Required: false},
			},
		},
	}

	doc, err := Compile(form, nil)
	if err != nil {
		t.Fatalf("compile lỗi: %v", err)
	}

	if doc.Method != "POST" {
		t.Errorf("method = %s, muốn POST", doc.Method)
	}
	if len(doc.Headers) != 1 || doc.Headers["Authorization"] != "Bearer abc" {
		t.Errorf("headers = %v, row name trống phải bị bỏ", doc.Headers)
	}
	if len(doc.Body.Properties) != 2 {
		t.Fatalf("body properties = %v, muốn patient_name và note", doc.Body.Properties)
	}
	if !reflect.DeepEqual(doc.Body.Required, []string{"patient_name"}) {
		t.Errorf("body required = %v, muốn [patient_name]", doc.Body.Required)
	}
}

func TestCompileAPIRequestRowRequiredThieuValue(t *testing.T) {
	form := FormState{
		Name: "Gọi API",
		Kind: KindAPIRequest,
		API: &APIForm{
			URL:    "https://api.clinic.vn/x",
			Method: "GET",
			BodyRows: []BodyRow{
				{RowID: "b1", Name: "must_fill", Required: true}, // thiếu description
			},
		},
	}
	if _, err := Compile(form, nil); err == nil {
		t.Fatal("row required thiếu description phải trả lỗi validation")
	}
}

func TestCompileScheduleYeuCauFolderVaProperty(t *testing.T) {
	form := FormState{Name: "Đặt lịch", Kind: KindBooking, Schedule: &ScheduleForm{}}
	if _, err := Compile(form, nil); err == nil {
		t.Fatal("booking thiếu folder và property phải trả lỗi validation")
	}

	form.Schedule = &ScheduleForm{
		FolderID:           "65f000000000000000000002",
		SelectedProperties: []string{"first_name"},
	}
	doc, err := Compile(form, map[string]schema.PropertyDef{
		"first_name": {Type: schema.TypeString, Description: "Tên"},
	})
	if err != nil {
		t.Fatalf("booking hợp lệ bị từ chối: %v", err)
	}

	wantRequired := []string{"start_time", "end_time", "calendar_id", "first_name"}
	if !reflect.DeepEqual(doc.Function.Parameters.Required, wantRequired) {
		t.Errorf("required = %v, muốn %v", doc.Function.Parameters.Required, wantRequired)
	}
	if doc.Server.URL != ServerURLBooking {
		t.Errorf("server.url = %s, muốn %s", doc.Server.URL, ServerURLBooking)
	}
}

func TestCompileCancelAppointmentSkeleton(t *testing.T) {
	form := FormState{
		Name: "Hủy lịch",
		Kind: KindCancelAppointment,
		Schedule: &ScheduleForm{
			FolderID:           "65f000000000000000000003",
			SelectedProperties: []string{"phone_number"},
		},
	}
	doc, err := Compile(form, nil)
	if err != nil {
		t.Fatalf("compile lỗi: %v", err)
	}

	// reason thuộc skeleton nhưng optional, không nằm trong required
	if _, ok := doc.Function.Parameters.Properties["reason"]; !ok {
		t.Error("thiếu property reason trong skeleton hủy lịch")
	}
	wantRequired := []string{"booking_id", "phone_number"}
	if !reflect.DeepEqual(doc.Function.Parameters.Required, wantRequired) {
		t.Errorf("required = %v, muốn %v", doc.Function.Parameters.Required, wantRequired)
	}
}

func TestCompileZoho(t *testing.T) {
	form := FormState{
		Name: "Đẩy lead Zoho",
		Kind: KindZoho,
		Zoho: &ZohoForm{
			Module:   "Leads",
			Mappings: map[string]string{"Last_Name": "last_name", "Phone": "phone_number"},
		},
	}
	doc, err := Compile(form, nil)
	if err != nil {
		t.Fatalf("compile zoho lỗi: %v", err)
	}
	if doc.Type != TypeZoho || doc.Module != "Leads" || doc.Server.URL != ServerURLZoho {
		t.Errorf("document zoho sai: %+v", doc)
	}

	form.Zoho.Mappings = nil
	if _, err := Compile(form, nil); err == nil {
		t.Fatal("zoho không có mapping phải trả lỗi validation")
	}
}
