package compiler

import (
	"fmt"
	"sort"

	"voice_reception/internal/common"
	"voice_reception/internal/schema"
)

// HydrateFunc dựng lại form state từ document đã lưu (nghịch đảo của CompileFunc
// cho mọi field mà hydrate cam kết khôi phục).
type HydrateFunc func(doc *Document) *FormState

// hydrators là bảng dispatch hydrate theo kind.
var hydrators = map[string]HydrateFunc{
	KindAPIRequest:        hydrateAPIRequest,
	KindEndCall:           hydrateEndCall,
	KindTransferCall:      hydrateTransferCall,
	KindQuery:             hydrateQuery,
	KindNotification:      hydrateNotification,
	KindBooking:           hydrateSchedule,
	KindCheckAvailability: hydrateSchedule,
	KindCancelAppointment: hydrateSchedule,
	KindZoho:              hydrateZoho,
}

// Hydrate dispatch document tới hydrator theo kind. Document loại không nhận
// diện được (dữ liệu cũ hỏng) trả lỗi thay vì panic.
func Hydrate(doc *Document) (*FormState, error) {
	hydrate, ok := hydrators[doc.Kind()]
	if !ok {
		return nil, common.NewError(
			common.ErrCodeBusinessOperation,
			fmt.Sprintf("Document có loại '%s' không được hỗ trợ", doc.Kind()),
			common.StatusBadRequest,
			nil,
		)
	}
	return hydrate(doc), nil
}

func baseForm(doc *Document) *FormState {
	return &FormState{
		Name:     doc.Name,
		Kind:     doc.Kind(),
		Messages: hydrateMessages(doc.Messages),
	}
}

func hydrateAPIRequest(doc *Document) *FormState {
	form := baseForm(doc)
	api := &APIForm{
		URL:    doc.URL,
		Method: doc.Method,
	}
	// RowID là khóa tạm của UI nên sinh mới deterministic theo name.
	// Duyệt theo key đã sort để hai lần open cùng document cho cùng thứ tự row.
	for _, name := range sortedKeys(doc.Headers) {
		api.Headers = append(api.Headers, HeaderRow{RowID: "hdr_" + name, Name: name, Value: doc.Headers[name]})
	}
	if doc.Body != nil {
		requiredSet := make(map[string]bool, len(doc.Body.Required))
		for _, name := range doc.Body.Required {
			requiredSet[name] = true
		}
		// Duyệt theo Required trước để giữ thứ tự các row required ổn định
		emitted := make(map[string]bool, len(doc.Body.Properties))
		for _, name := range doc.Body.Required {
			if def, ok := doc.Body.Properties[name]; ok {
				api.BodyRows = append(api.BodyRows, bodyRowFromDef(name, def, true))
				emitted[name] = true
			}
		}
		for _, name := range sortedKeys(doc.Body.Properties) {
			if emitted[name] {
				continue
			}
			api.BodyRows = append(api.BodyRows, bodyRowFromDef(name, doc.Body.Properties[name], requiredSet[name]))
		}
	}
	form.API = api
	return form
}

func bodyRowFromDef(name string, def schema.PropertyDef, required bool) BodyRow {
	return BodyRow{
		RowID:       "body_" + name,
		Name:        name,
		Type:        def.Type,
		Description: def.Description,
		Required:    required,
	}
}

func hydrateEndCall(doc *Document) *FormState {
	return baseForm(doc)
}

func hydrateTransferCall(doc *Document) *FormState {
	form := baseForm(doc)
	form.Transfer = &TransferForm{Destinations: doc.Destinations}
	return form
}

func hydrateQuery(doc *Document) *FormState {
	form := baseForm(doc)
	form.Query = &QueryForm{KnowledgeBases: doc.KnowledgeBases}
	return form
}

func hydrateNotification(doc *Document) *FormState {
	form := baseForm(doc)
	notification := &NotificationForm{FolderID: doc.FolderID}
	for _, group := range doc.NotificationGroups {
		notification.Groups = append(notification.Groups, hydrateNotificationGroup(group))
	}
	form.Notification = notification
	return form
}

// hydrateNotificationGroup: null trong document trở thành string rỗng trong form
// (form không phân biệt null/"" — phân biệt chỉ tồn tại ở chiều compile).
func hydrateNotificationGroup(group NotificationGroup) NotificationGroupForm {
	form := NotificationGroupForm{
		Name:         group.Name,
		IsUserGroup:  group.IsUserGroup,
		EmailEnabled: group.EmailEnabled,
		SmsEnabled:   group.SmsEnabled,
		EmailCc:      group.EmailCc,
	}
	if group.EmailSubject != nil {
		form.EmailSubject = *group.EmailSubject
	}
	if group.EmailTemplate != nil {
		form.EmailTemplate = *group.EmailTemplate
	}
	if group.SmsTemplate != nil {
		form.SmsTemplate = *group.SmsTemplate
	}
	if group.Email != nil {
		form.Email = *group.Email
	}
	if group.PhoneNumber != nil {
		form.PhoneNumber = *group.PhoneNumber
	}
	return form
}

// hydrateSchedule khôi phục folder đã chọn và các property đã chọn: property chọn
// là các key trong parameters không thuộc skeleton, suy ra từ Required (skeleton
// required đứng trước, property chọn đứng sau theo thứ tự chọn).
func hydrateSchedule(doc *Document) *FormState {
	form := baseForm(doc)
	schedule := &ScheduleForm{FolderID: doc.FolderID}

	if doc.Function != nil {
		skeletonNames := scheduleSkeletonNames(doc.FunctionType)
		for _, name := range doc.Function.Parameters.Required {
			if skeletonNames[name] {
				continue
			}
			schedule.SelectedProperties = append(schedule.SelectedProperties, name)
		}
		// Property optional trong folder không nằm trong Required nhưng vẫn là lựa chọn
		for _, name := range sortedKeys(doc.Function.Parameters.Properties) {
			if skeletonNames[name] || contains(schedule.SelectedProperties, name) {
				continue
			}
			schedule.SelectedProperties = append(schedule.SelectedProperties, name)
		}
	}
	form.Schedule = schedule
	return form
}

func scheduleSkeletonNames(functionType string) map[string]bool {
	var skeleton []schema.SkeletonField
	if functionType == FunctionTypeCancelAppointment {
		skeleton = cancelSkeleton()
	} else {
		skeleton = calendarSkeleton()
	}
	names := make(map[string]bool, len(skeleton))
	for _, field := range skeleton {
		names[field.Name] = true
	}
	return names
}

// sortedKeys trả về key của map theo thứ tự alphabet để kết quả hydrate ổn định
// giữa các lần gọi (map Go không bảo đảm thứ tự duyệt).
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func hydrateZoho(doc *Document) *FormState {
	form := baseForm(doc)
	form.Zoho = &ZohoForm{
		Module:   doc.Module,
		Mappings: doc.Mappings,
	}
	return form
}
