// Package router đăng ký các route thuộc domain Integration: kết nối CRM.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	integrationhdl "voice_reception/internal/api/integration/handler"
	apirouter "voice_reception/internal/api/router"
)

// Register đăng ký tất cả route kết nối CRM lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	connectionHandler, err := integrationhdl.NewCrmConnectionHandler()
	if err != nil {
		return fmt.Errorf("create crm connection handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/crm-connection", connectionHandler, apirouter.ReadWriteConfig)
	apirouter.RegisterRouteWithMiddleware(v1, "/crm-connection", "POST", "/connect/:id", nil, connectionHandler.Connect)
	apirouter.RegisterRouteWithMiddleware(v1, "/crm-connection", "POST", "/disconnect/:id", nil, connectionHandler.Disconnect)
	return nil
}
