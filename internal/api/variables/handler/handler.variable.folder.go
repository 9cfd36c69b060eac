package variableshdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "voice_reception/internal/api/base/handler"
	variablesdto "voice_reception/internal/api/variables/dto"
	"voice_reception/internal/api/variables/models"
	variablessvc "voice_reception/internal/api/variables/service"
	"voice_reception/internal/schema"
	"voice_reception/internal/utility"
)

// VariableFolderHandler xử lý các request liên quan đến Variable Folder
type VariableFolderHandler struct {
	*basehdl.BaseHandler[models.VariableFolder, variablesdto.VariableFolderCreateInput, variablesdto.VariableFolderUpdateInput]
	FolderService *variablessvc.VariableFolderService
}

// NewVariableFolderHandler tạo mới VariableFolderHandler
func NewVariableFolderHandler() (*VariableFolderHandler, error) {
	folderService, err := variablessvc.NewVariableFolderService()
	if err != nil {
		return nil, fmt.Errorf("create variable folder service: %w", err)
	}
	hdl := &VariableFolderHandler{
		FolderService: folderService,
	}
	// Truyền service (không phải base impl) để InsertOne override seed property mặc định
	hdl.BaseHandler = basehdl.NewBaseHandler[models.VariableFolder, variablesdto.VariableFolderCreateInput, variablesdto.VariableFolderUpdateInput](folderService)
	hdl.SetFilterOptions(basehdl.FilterOptions{
		AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists", "$regex"},
		MaxFields:        10,
	})
	return hdl, nil
}

// Clone tạo folder mới deep-copy properties từ folder nguồn
func (h *VariableFolderHandler) Clone(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var params variablesdto.VariableFolderIDParams
		if err := h.ParseRequestParams(c, &params); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input variablesdto.VariableFolderCloneInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		clone, err := h.FolderService.CloneFolder(c.Context(), utility.String2ObjectID(params.ID), input.Name)
		h.HandleResponse(c, clone, err)
		return nil
	})
}

// UpsertProperty thêm hoặc sửa một property của folder
func (h *VariableFolderHandler) UpsertProperty(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var params variablesdto.VariableFolderIDParams
		if err := h.ParseRequestParams(c, &params); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input variablesdto.PropertyUpsertInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		def := schema.PropertyDef{
			Type:        input.Type,
			Description: input.Description,
			Enum:        input.Enum,
		}
		folder, err := h.FolderService.UpsertProperty(c.Context(), utility.String2ObjectID(params.ID), input.Name, def)
		h.HandleResponse(c, folder, err)
		return nil
	})
}

// RemoveProperty xóa một property khỏi folder (property mặc định bị từ chối)
func (h *VariableFolderHandler) RemoveProperty(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var params variablesdto.PropertyRemoveParams
		if err := h.ParseRequestParams(c, &params); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		folder, err := h.FolderService.RemoveProperty(c.Context(), utility.String2ObjectID(params.ID), params.Name)
		h.HandleResponse(c, folder, err)
		return nil
	})
}
