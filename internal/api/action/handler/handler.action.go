package actionhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"voice_reception/internal/api/action/compiler"
	actiondto "voice_reception/internal/api/action/dto"
	"voice_reception/internal/api/action/models"
	actionsvc "voice_reception/internal/api/action/service"
	basehdl "voice_reception/internal/api/base/handler"
	"voice_reception/internal/common"
	"voice_reception/internal/delivery/channels"
	"voice_reception/internal/global"
	"voice_reception/internal/logger"
	"voice_reception/internal/placeholder"
	"voice_reception/internal/utility"
)

// ActionHandler xử lý các request liên quan đến Action.
// Ghi luôn đi qua Save/SaveByID (compile trước khi persist); các route generic
// chỉ dùng cho đọc và xóa.
type ActionHandler struct {
	*basehdl.BaseHandler[models.Action, actiondto.ActionSaveInput, actiondto.ActionSaveInput]
	ActionService *actionsvc.ActionService
}

// NewActionHandler tạo mới ActionHandler
func NewActionHandler() (*ActionHandler, error) {
	actionService, err := actionsvc.NewActionService()
	if err != nil {
		return nil, fmt.Errorf("create action service: %w", err)
	}
	hdl := &ActionHandler{
		ActionService: actionService,
	}
	hdl.BaseHandler = basehdl.NewBaseHandler[models.Action, actiondto.ActionSaveInput, actiondto.ActionSaveInput](actionService)
	hdl.SetFilterOptions(basehdl.FilterOptions{
		AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists", "$regex"},
		MaxFields:        10,
	})
	return hdl, nil
}

// Save compile form state và tạo action mới
func (h *ActionHandler) Save(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input actiondto.ActionSaveInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		saved, err := h.ActionService.SaveAction(c.Context(), input.FormState, nil)
		if err == nil {
			logger.LogCompile("create", saved.ID.Hex(), c, map[string]interface{}{
				"kind": input.Kind,
				"name": input.Name,
			})
		}
		h.HandleResponse(c, saved, err)
		return nil
	})
}

// SaveByID compile form state và ghi đè action đã có (replace, không patch)
func (h *ActionHandler) SaveByID(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var params actiondto.ActionIDParams
		if err := h.ParseRequestParams(c, &params); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input actiondto.ActionSaveInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		id := utility.String2ObjectID(params.ID)
		saved, err := h.ActionService.SaveAction(c.Context(), input.FormState, &id)
		if err == nil {
			logger.LogCompile("update", params.ID, c, map[string]interface{}{
				"kind": input.Kind,
				"name": input.Name,
			})
		}
		h.HandleResponse(c, saved, err)
		return nil
	})
}

// Open hydrate document về form state để operator sửa
func (h *ActionHandler) Open(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var params actiondto.ActionIDParams
		if err := h.ParseRequestParams(c, &params); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		form, err := h.ActionService.OpenAction(c.Context(), utility.String2ObjectID(params.ID))
		h.HandleResponse(c, form, err)
		return nil
	})
}

// TestSend render template của một notification action với giá trị mẫu rồi gửi
// thử tới email/số điện thoại chỉ định. Chỉ áp dụng cho kind notification.
func (h *ActionHandler) TestSend(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var params actiondto.ActionIDParams
		if err := h.ParseRequestParams(c, &params); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input actiondto.ActionTestSendInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if input.Email == "" && input.PhoneNumber == "" {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput,
				"Cần cung cấp email hoặc số điện thoại nhận thử", common.StatusBadRequest, nil))
			return nil
		}

		action, err := h.ActionService.FindOneById(c.Context(), utility.String2ObjectID(params.ID))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if action.Definition.Kind() != compiler.KindNotification {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeBusinessOperation,
				"Chỉ notification action mới hỗ trợ gửi thử", common.StatusBadRequest, nil))
			return nil
		}

		results := h.sendTestNotifications(c, &action.Definition, input)
		logger.LogCompile("test_send", params.ID, c, map[string]interface{}{
			"results": results,
		})
		h.HandleResponse(c, results, nil)
		return nil
	})
}

// sendTestNotifications gửi thử từng group theo kênh đang bật, trả kết quả từng lần gửi.
func (h *ActionHandler) sendTestNotifications(c fiber.Ctx, doc *compiler.Document, input actiondto.ActionTestSendInput) []map[string]interface{} {
	results := []map[string]interface{}{}
	for _, group := range doc.NotificationGroups {
		if group.EmailEnabled && input.Email != "" {
			subject := renderOrEmpty(group.EmailSubject, input.SampleValues)
			body := renderOrEmpty(group.EmailTemplate, input.SampleValues)
			err := channels.SendTestEmail(global.MongoDB_ServerConfig, input.Email, subject, body)
			results = append(results, testSendResult(group.Name, "email", err))
		}
		if group.SmsEnabled && input.PhoneNumber != "" {
			content := renderOrEmpty(group.SmsTemplate, input.SampleValues)
			err := channels.SendTestSms(c.Context(), global.MongoDB_ServerConfig.SMS_WebhookURL, input.PhoneNumber, content)
			results = append(results, testSendResult(group.Name, "sms", err))
		}
	}
	return results
}

func renderOrEmpty(template *string, values map[string]string) string {
	if template == nil {
		return ""
	}
	return placeholder.Render(*template, values)
}

func testSendResult(groupName, channel string, err error) map[string]interface{} {
	result := map[string]interface{}{
		"group":   groupName,
		"channel": channel,
		"success": err == nil,
	}
	if err != nil {
		result["error"] = err.Error()
	}
	return result
}
