package integrationhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "voice_reception/internal/api/base/handler"
	integrationdto "voice_reception/internal/api/integration/dto"
	"voice_reception/internal/api/integration/models"
	integrationsvc "voice_reception/internal/api/integration/service"
	"voice_reception/internal/utility"
)

// CrmConnectionHandler xử lý các request liên quan đến kết nối CRM
type CrmConnectionHandler struct {
	*basehdl.BaseHandler[models.CrmConnection, integrationdto.CrmConnectionCreateInput, integrationdto.CrmConnectionUpdateInput]
	ConnectionService *integrationsvc.CrmConnectionService
}

// NewCrmConnectionHandler tạo mới CrmConnectionHandler
func NewCrmConnectionHandler() (*CrmConnectionHandler, error) {
	connectionService, err := integrationsvc.NewCrmConnectionService()
	if err != nil {
		return nil, fmt.Errorf("create crm connection service: %w", err)
	}
	hdl := &CrmConnectionHandler{
		ConnectionService: connectionService,
	}
	// Truyền service (không phải base impl) để các override InsertOne/DeleteById có hiệu lực
	hdl.BaseHandler = basehdl.NewBaseHandler[models.CrmConnection, integrationdto.CrmConnectionCreateInput, integrationdto.CrmConnectionUpdateInput](connectionService)
	hdl.SetFilterOptions(basehdl.FilterOptions{
		AllowedOperators: []string{"$eq", "$in", "$exists", "$regex"},
		MaxFields:        10,
	})
	return hdl, nil
}

// Connect đánh dấu kết nối đang hoạt động
func (h *CrmConnectionHandler) Connect(c fiber.Ctx) error {
	return h.setStatus(c, models.StatusConnected)
}

// Disconnect ngắt kết nối, zoho action tham chiếu vẫn giữ nguyên
func (h *CrmConnectionHandler) Disconnect(c fiber.Ctx) error {
	return h.setStatus(c, models.StatusDisconnected)
}

func (h *CrmConnectionHandler) setStatus(c fiber.Ctx, status string) error {
	return h.SafeHandler(c, func() error {
		var params integrationdto.CrmConnectionIDParams
		if err := h.ParseRequestParams(c, &params); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		connection, err := h.ConnectionService.SetStatus(c.Context(), utility.String2ObjectID(params.ID), status)
		h.HandleResponse(c, connection, err)
		return nil
	})
}
