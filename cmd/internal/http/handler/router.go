package handler

import "github.com/labstack/echo/v4"

type Routes struct {
	Base      *DefaultBaseRoute
	Companies *DefaultCompanyRoute
	Events    *DefaultEventRoute
	Market    *DefaultMarketRoute
	Analytics *DefaultAnalyticsRoute
	Registry  *DefaultRegistryRoute
	Exports   *DefaultExportRoute
}

// Register mounts every route on e. Requests that change state go through
// guard first.
func Register(e *echo.Echo, r *Routes, guard echo.MiddlewareFunc) {
	e.GET("/", r.Base.Root)
	e.GET("/health", r.Base.Health)
	e.GET("/resumo", r.Base.Summary)

	// Companies
	companies := e.Group("/empresas")
	companies.GET("", r.Companies.GetCompanies)
	companies.GET("/", r.Companies.GetCompanies)
	companies.GET("/estatisticas", r.Companies.GetStatistics)
	companies.GET("/setores", r.Companies.GetSectors)
	companies.GET("/cnaes", r.Companies.GetActivities)
	companies.GET("/por-setor/resumo", r.Companies.GetSectorSummary)
	companies.GET("/:id", r.Companies.GetCompany)
	companies.POST("", r.Companies.CreateCompany, guard)
	companies.POST("/", r.Companies.CreateCompany, guard)
	companies.PUT("/:id/status", r.Companies.UpdateStatus, guard)
	companies.DELETE("/:id", r.Companies.DeleteCompany, guard)

	// Events
	events := e.Group("/eventos")
	events.GET("", r.Events.GetEvents)
	events.GET("/", r.Events.GetEvents)
	events.GET("/resumo", r.Events.GetSummary)
	events.GET("/calendario", r.Events.GetCalendar)
	events.GET("/impacto-hotel", r.Events.GetImpact)
	events.GET("/:id", r.Events.GetEvent)

	// Competition
	market := e.Group("/concorrencia")
	market.GET("/hoteis", r.Market.GetHotels)
	market.GET("/analise-mercado", r.Market.GetMarketAnalysis)
	market.GET("/hotel-proposto", r.Market.GetProposedHotel)
	market.GET("/comparativo-tarifas", r.Market.GetRateComparison)
	market.GET("/gap-mercado", r.Market.GetMarketGap)
	market.GET("/:id", r.Market.GetHotel)

	// Analytics
	an := e.Group("/analytics")
	an.GET("/kpis", r.Analytics.GetKPIs)
	an.GET("/tendencias", r.Analytics.GetTrends)
	an.GET("/projecoes", r.Analytics.GetProjections)
	an.GET("/sazonalidade", r.Analytics.GetSeasonality)
	an.GET("/completo", r.Analytics.GetComplete)
	an.GET("/score-viabilidade", r.Analytics.GetScore)
	an.GET("/demanda-estimada", r.Analytics.GetDemand)

	// Registry lookups
	registry := e.Group("/cnpj")
	registry.GET("/info", r.Registry.GetInfo)
	registry.GET("/configuracao", r.Registry.GetConfig)
	registry.POST("/configuracao", r.Registry.UpdateConfig, guard)
	registry.GET("/consultar/:cnpj", r.Registry.Lookup)
	registry.POST("/consultar-lote", r.Registry.Batch, guard)
	registry.GET("/status", r.Registry.GetStatus)
	registry.GET("/cnaes-estrategicos", r.Registry.GetStrategicCodes)

	// Exports
	exports := e.Group("/exportar")
	exports.GET("/:file", r.Exports.Download)
	exports.POST("/:file", r.Exports.Publish, guard)
}
