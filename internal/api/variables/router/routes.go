// Package router đăng ký các route thuộc domain Variables: folders và properties.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	apirouter "voice_reception/internal/api/router"
	variableshdl "voice_reception/internal/api/variables/handler"
)

// Register đăng ký tất cả route variable folder lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	folderHandler, err := variableshdl.NewVariableFolderHandler()
	if err != nil {
		return fmt.Errorf("create variable folder handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/variable-folder", folderHandler, apirouter.ReadWriteConfig)
	apirouter.RegisterRouteWithMiddleware(v1, "/variable-folder", "POST", "/clone/:id", nil, folderHandler.Clone)
	apirouter.RegisterRouteWithMiddleware(v1, "/variable-folder", "POST", "/property/:id", nil, folderHandler.UpsertProperty)
	apirouter.RegisterRouteWithMiddleware(v1, "/variable-folder", "DELETE", "/property/:id/:name", nil, folderHandler.RemoveProperty)
	return nil
}
