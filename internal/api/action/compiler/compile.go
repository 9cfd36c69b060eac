package compiler

import (
	"fmt"
	"regexp"
	"strings"

	"voice_reception/internal/common"
	"voice_reception/internal/placeholder"
	"voice_reception/internal/schema"
)

// e164Regex: số điện thoại quốc tế, dấu + và 2-15 chữ số.
var e164Regex = regexp.MustCompile(`^\+[0-9]{2,15}$`)

// CompileFunc là một compiler thuần theo kind: (form, snapshot folder) -> document.
// folderProps là snapshot properties của folder đang chọn tại thời điểm compile;
// nil với các kind không synthesize parameters.
type CompileFunc func(form FormState, folderProps map[string]schema.PropertyDef) (*Document, error)

// compilers là bảng dispatch theo kind.
var compilers = map[string]CompileFunc{
	KindAPIRequest:        compileAPIRequest,
	KindEndCall:           compileEndCall,
	KindTransferCall:      compileTransferCall,
	KindQuery:             compileQuery,
	KindNotification:      compileNotification,
	KindBooking:           compileBooking,
	KindCheckAvailability: compileCheckAvailability,
	KindCancelAppointment: compileCancelAppointment,
	KindZoho:              compileZoho,
}

// Compile dispatch form state tới compiler theo Kind.
func Compile(form FormState, folderProps map[string]schema.PropertyDef) (*Document, error) {
	if form.Name == "" {
		return nil, validationError(map[string]interface{}{"name": "required"})
	}
	compile, ok := compilers[form.Kind]
	if !ok {
		return nil, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Loại action '%s' không được hỗ trợ", form.Kind),
			common.StatusBadRequest,
			nil,
		)
	}
	return compile(form, folderProps)
}

// validationError gói lỗi validation per-field theo taxonomy chung.
func validationError(details map[string]interface{}) error {
	return common.NewError(
		common.ErrCodeValidationInput,
		"Dữ liệu action không hợp lệ",
		common.StatusBadRequest,
		details,
	)
}

// ---- apiRequest ----

func compileAPIRequest(form FormState, _ map[string]schema.PropertyDef) (*Document, error) {
	if form.API == nil {
		return nil, validationError(map[string]interface{}{"api": "required"})
	}
	details := map[string]interface{}{}
	if form.API.URL == "" {
		details["api.url"] = "required"
	}
	if form.API.Method == "" {
		details["api.method"] = "required"
	}

	// Header row: key theo name khai báo, bỏ row có name trống
	headers := make(map[string]string)
	for _, row := range form.API.Headers {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			continue
		}
		headers[name] = row.Value
	}

	// Body row: row required phải có name và description; row name trống bị bỏ
	properties := make(map[string]schema.PropertyDef)
	var required []string
	for i, row := range form.API.BodyRows {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			if row.Required {
				details[fmt.Sprintf("api.bodyRows[%d].name", i)] = "required"
			}
			continue
		}
		if row.Required && strings.TrimSpace(row.Description) == "" {
			details[fmt.Sprintf("api.bodyRows[%d].description", i)] = "required"
			continue
		}
		rowType := row.Type
		if rowType == "" {
			rowType = schema.TypeString
		}
		properties[name] = schema.PropertyDef{Type: rowType, Description: row.Description}
		if row.Required {
			required = append(required, name)
		}
	}

	if len(details) > 0 {
		return nil, validationError(details)
	}

	doc := &Document{
		Name:     form.Name,
		Type:     TypeAPIRequest,
		Messages: compileMessages(form.Messages),
		URL:      form.API.URL,
		Method:   strings.ToUpper(form.API.Method),
		Headers:  headers,
	}
	if len(properties) > 0 {
		doc.Body = &schema.Parameters{
			Type:       schema.TypeObject,
			Properties: properties,
			Required:   required,
		}
	}
	return doc, nil
}

// ---- endCall ----

func compileEndCall(form FormState, _ map[string]schema.PropertyDef) (*Document, error) {
	return &Document{
		Name:     form.Name,
		Type:     TypeEndCall,
		Messages: compileMessages(form.Messages),
	}, nil
}

// ---- transferCall ----

func compileTransferCall(form FormState, _ map[string]schema.PropertyDef) (*Document, error) {
	if form.Transfer == nil || len(form.Transfer.Destinations) == 0 {
		return nil, validationError(map[string]interface{}{"transfer.destinations": "required"})
	}

	details := map[string]interface{}{}
	for i, dest := range form.Transfer.Destinations {
		if !e164Regex.MatchString(dest.Number) {
			details[fmt.Sprintf("transfer.destinations[%d].number", i)] = "e164"
		}
	}
	if len(details) > 0 {
		return nil, validationError(details)
	}

	return &Document{
		Name:         form.Name,
		Type:         TypeTransferCall,
		Messages:     compileMessages(form.Messages),
		Destinations: form.Transfer.Destinations,
	}, nil
}

// ---- query ----

func compileQuery(form FormState, _ map[string]schema.PropertyDef) (*Document, error) {
	var knowledgeBases []string
	if form.Query != nil {
		knowledgeBases = form.Query.KnowledgeBases
	}
	return &Document{
		Name:           form.Name,
		Type:           TypeQuery,
		Messages:       compileMessages(form.Messages),
		KnowledgeBases: knowledgeBases,
	}, nil
}

// ---- notification ----

// notificationSkeleton: tham số luôn hỏi khi gửi notification.
func notificationSkeleton() []schema.SkeletonField {
	return []schema.SkeletonField{
		{Name: "phone_number", Def: schema.PropertyDef{Type: schema.TypeString, Description: "Phone number of the notification recipient"}, Required: true},
		{Name: "email", Def: schema.PropertyDef{Type: schema.TypeString, Description: "Email of the notification recipient"}, Required: true},
	}
}

func compileNotification(form FormState, folderProps map[string]schema.PropertyDef) (*Document, error) {
	if form.Notification == nil || len(form.Notification.Groups) == 0 {
		return nil, validationError(map[string]interface{}{"notification.groups": "required"})
	}

	details := map[string]interface{}{}
	groups := make([]NotificationGroup, 0, len(form.Notification.Groups))
	templates := make([]string, 0, len(form.Notification.Groups)*3)

	for i, groupForm := range form.Notification.Groups {
		group, groupDetails := compileNotificationGroup(i, groupForm)
		for field, rule := range groupDetails {
			details[field] = rule
		}
		groups = append(groups, group)
		if groupForm.EmailEnabled {
			templates = append(templates, groupForm.EmailSubject, groupForm.EmailTemplate)
		}
		if groupForm.SmsEnabled {
			templates = append(templates, groupForm.SmsTemplate)
		}
	}
	if len(details) > 0 {
		return nil, validationError(details)
	}

	placeholders := placeholder.ExtractAll(templates...)
	parameters := schema.BuildParameters(notificationSkeleton(), placeholders, folderProps)

	return &Document{
		Name:         form.Name,
		Type:         TypeFunction,
		FunctionType: FunctionTypeNotification,
		Messages:     compileMessages(form.Messages),
		Function: &FunctionDef{
			Name:       "send_notification",
			Parameters: parameters,
		},
		Server:             &Server{URL: ServerURLNotification},
		FolderID:           form.Notification.FolderID,
		NotificationGroups: groups,
	}, nil
}

// compileNotificationGroup áp null-discipline cho một nhóm người nhận:
// kênh tắt -> field phụ thuộc = null (kể cả khi form còn giá trị cũ);
// is_user_group = true -> contact tùy chỉnh luôn null (hỏi caller lúc gọi);
// is_user_group = false -> contact của kênh bật là bắt buộc.
func compileNotificationGroup(index int, form NotificationGroupForm) (NotificationGroup, map[string]interface{}) {
	details := map[string]interface{}{}
	group := NotificationGroup{
		Name:         form.Name,
		IsUserGroup:  form.IsUserGroup,
		EmailEnabled: form.EmailEnabled,
		SmsEnabled:   form.SmsEnabled,
	}
	if form.Name == "" {
		details[fmt.Sprintf("notification.groups[%d].name", index)] = "required"
	}

	if form.EmailEnabled {
		subject := form.EmailSubject
		template := form.EmailTemplate
		group.EmailSubject = &subject
		group.EmailTemplate = &template
		group.EmailCc = filterBlank(form.EmailCc)
		if !form.IsUserGroup {
			if form.Email == "" {
				details[fmt.Sprintf("notification.groups[%d].email", index)] = "required"
			} else {
				email := form.Email
				group.Email = &email
			}
		}
	}

	if form.SmsEnabled {
		template := form.SmsTemplate
		group.SmsTemplate = &template
		if !form.IsUserGroup {
			if form.PhoneNumber == "" {
				details[fmt.Sprintf("notification.groups[%d].phoneNumber", index)] = "required"
			} else {
				phone := form.PhoneNumber
				group.PhoneNumber = &phone
			}
		}
	}

	return group, details
}

// filterBlank bỏ các entry rỗng/toàn khoảng trắng. Trả về nil khi không còn gì
// để field serialize thành null thay vì [].
func filterBlank(values []string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

// ---- booking / availability / cancel ----

func calendarSkeleton() []schema.SkeletonField {
	return []schema.SkeletonField{
		{Name: "start_time", Def: schema.PropertyDef{Type: schema.TypeString, Description: "Start time of the appointment in ISO 8601"}, Required: true},
		{Name: "end_time", Def: schema.PropertyDef{Type: schema.TypeString, Description: "End time of the appointment in ISO 8601"}, Required: true},
		{Name: "calendar_id", Def: schema.PropertyDef{Type: schema.TypeString, Description: "Identifier of the target calendar"}, Required: true},
	}
}

func cancelSkeleton() []schema.SkeletonField {
	return []schema.SkeletonField{
		{Name: "booking_id", Def: schema.PropertyDef{Type: schema.TypeString, Description: "Identifier of the booking to cancel"}, Required: true},
		{Name: "reason", Def: schema.PropertyDef{Type: schema.TypeString, Description: "Reason for the cancellation"}, Required: false},
	}
}

func compileBooking(form FormState, folderProps map[string]schema.PropertyDef) (*Document, error) {
	return compileSchedule(form, folderProps, FunctionTypeBooking, "book_appointment", ServerURLBooking, calendarSkeleton())
}

func compileCheckAvailability(form FormState, folderProps map[string]schema.PropertyDef) (*Document, error) {
	return compileSchedule(form, folderProps, FunctionTypeCheckAvailability, "check_availability", ServerURLCheckAvailability, calendarSkeleton())
}

func compileCancelAppointment(form FormState, folderProps map[string]schema.PropertyDef) (*Document, error) {
	return compileSchedule(form, folderProps, FunctionTypeCancelAppointment, "cancel_appointment", ServerURLCancelAppointment, cancelSkeleton())
}

// compileSchedule là compile chung cho ba kind lịch hẹn: bắt buộc đã chọn folder
// và ít nhất một property (lỗi validation, không panic).
func compileSchedule(form FormState, folderProps map[string]schema.PropertyDef, functionType, functionName, serverURL string, skeleton []schema.SkeletonField) (*Document, error) {
	details := map[string]interface{}{}
	if form.Schedule == nil || form.Schedule.FolderID == "" {
		details["schedule.folderId"] = "required"
	}
	if form.Schedule == nil || len(form.Schedule.SelectedProperties) == 0 {
		details["schedule.selectedProperties"] = "min=1"
	}
	if len(details) > 0 {
		return nil, validationError(details)
	}

	parameters := schema.BuildParameters(skeleton, form.Schedule.SelectedProperties, folderProps)

	return &Document{
		Name:         form.Name,
		Type:         TypeFunction,
		FunctionType: functionType,
		Messages:     compileMessages(form.Messages),
		Function: &FunctionDef{
			Name:       functionName,
			Parameters: parameters,
		},
		Server:   &Server{URL: serverURL},
		FolderID: form.Schedule.FolderID,
	}, nil
}

// ---- zoho ----

func compileZoho(form FormState, _ map[string]schema.PropertyDef) (*Document, error) {
	if form.Zoho == nil {
		return nil, validationError(map[string]interface{}{"zoho": "required"})
	}
	details := map[string]interface{}{}
	if form.Zoho.Module == "" {
		details["zoho.module"] = "required"
	}
	if len(form.Zoho.Mappings) == 0 {
		details["zoho.mappings"] = "min=1"
	}
	if len(details) > 0 {
		return nil, validationError(details)
	}

	return &Document{
		Name:     form.Name,
		Type:     TypeZoho,
		Messages: compileMessages(form.Messages),
		Module:   form.Zoho.Module,
		Mappings: form.Zoho.Mappings,
		Server:   &Server{URL: ServerURLZoho},
	}, nil
}
