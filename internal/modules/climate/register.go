package climate

import (
	"net/http"

	"gorm.io/gorm"

	"climate-server/internal/modules/climate/controller"
	"climate-server/internal/modules/climate/repository"
	"climate-server/internal/modules/climate/service"
)

// NewService wires the repository and service over a shared gorm handle.
func NewService(db *gorm.DB) *service.Service {
	return service.NewService(repository.NewRepository(db))
}

func RegisterFeature(mux *http.ServeMux, db *gorm.DB) {
	climateController := controller.NewClimateController(NewService(db))
	climateController.RegisterRoutes(mux)
}
