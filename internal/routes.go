package internal

import (
	"net/http"
	"venued/internal/controllers"
	"venued/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/checkin", http.HandlerFunc(apiController.CheckIn))
	routers.Post("/checkout", http.HandlerFunc(apiController.CheckOut))
	routers.Get("/current", http.HandlerFunc(apiController.Current))
	routers.Get("/visited", http.HandlerFunc(apiController.Visited))
	routers.Post("/visited/hide", http.HandlerFunc(apiController.Hide))
	routers.Get("/exposure", http.HandlerFunc(apiController.Exposure))
	routers.Post("/app/state", http.HandlerFunc(apiController.SetAppState))
	routers.Post("/contact/status", http.HandlerFunc(apiController.SetContactStatus))
	routers.Post("/sync", http.HandlerFunc(apiController.TriggerSync))
	return routers
}
