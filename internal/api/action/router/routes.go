// Package router đăng ký các route thuộc domain Action.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	actionhdl "voice_reception/internal/api/action/handler"
	apirouter "voice_reception/internal/api/router"
)

// actionCRUDConfig: action chỉ được ghi qua save (compile trước khi persist),
// nên các route generic insert/update đều tắt, chỉ giữ đọc và xóa.
var actionCRUDConfig = apirouter.CRUDConfig{
	Find: true, FindOne: true, FindById: true,
	FindIds: true, Paginate: true,
	DelById: true,
	Count:   true, Distinct: true, Exists: true,
}

// Register đăng ký tất cả route action lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	actionHandler, err := actionhdl.NewActionHandler()
	if err != nil {
		return fmt.Errorf("create action handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/action", actionHandler, actionCRUDConfig)
	apirouter.RegisterRouteWithMiddleware(v1, "/action", "POST", "/save", nil, actionHandler.Save)
	apirouter.RegisterRouteWithMiddleware(v1, "/action", "PUT", "/save/:id", nil, actionHandler.SaveByID)
	apirouter.RegisterRouteWithMiddleware(v1, "/action", "GET", "/open/:id", nil, actionHandler.Open)
	apirouter.RegisterRouteWithMiddleware(v1, "/action", "POST", "/test-send/:id", nil, actionHandler.TestSend)
	return nil
}
