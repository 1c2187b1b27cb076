package router

import (
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/interfaces/http/handler"
)

// Handlers bundles the HTTP handlers mounted under the API prefix
type Handlers struct {
	Auth        *handler.AuthHandler
	Property    *handler.PropertyHandler
	Tenant      *handler.TenantHandler
	Maintenance *handler.MaintenanceHandler
	Message     *handler.MessageHandler
	Dashboard   *handler.DashboardHandler
	System      *handler.SystemHandler
}

// PublicPaths lists the API paths reachable without a bearer token
func PublicPaths(basePath string) []string {
	return []string{
		basePath + "/auth/register",
		basePath + "/auth/login",
		basePath + "/auth/refresh",
		basePath + "/system/ping",
		basePath + "/system/info",
	}
}

// DomainGroups builds the route groups of the property management API
func DomainGroups(h Handlers) []*DomainGroup {
	auth := NewDomainGroup("auth", "/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)
	auth.POST("/logout", h.Auth.Logout)
	auth.GET("/me", h.Auth.GetCurrentUser)
	auth.PUT("/password", h.Auth.ChangePassword)

	properties := NewDomainGroup("properties", "/properties")
	properties.POST("", h.Property.Create)
	properties.GET("", h.Property.List)
	properties.GET("/:id", h.Property.GetByID)
	properties.PUT("/:id", h.Property.Update)
	properties.DELETE("/:id", h.Property.Delete)
	properties.POST("/:id/units", h.Property.AddUnit)
	properties.PUT("/:id/units/:unitNumber", h.Property.UpdateUnit)
	properties.DELETE("/:id/units/:unitNumber", h.Property.RemoveUnit)

	tenants := NewDomainGroup("tenants", "/tenants")
	tenants.POST("", h.Tenant.Create)
	tenants.GET("", h.Tenant.List)
	tenants.GET("/:id", h.Tenant.GetByID)
	tenants.PUT("/:id", h.Tenant.Update)
	tenants.DELETE("/:id", h.Tenant.Delete)
	tenants.POST("/:id/move-out", h.Tenant.MoveOut)
	tenants.POST("/:id/extend-lease", h.Tenant.ExtendLease)
	tenants.POST("/:id/payments", h.Tenant.RecordPayment)
	tenants.GET("/:id/payments", h.Tenant.ListPayments)
	tenants.GET("/:id/lease-document", h.Tenant.LeaseDocument)

	maintenance := NewDomainGroup("maintenance", "/maintenance-requests")
	maintenance.POST("", h.Maintenance.Create)
	maintenance.GET("", h.Maintenance.List)
	maintenance.GET("/:id", h.Maintenance.GetByID)
	maintenance.PUT("/:id", h.Maintenance.Update)
	maintenance.DELETE("/:id", h.Maintenance.Delete)
	maintenance.POST("/:id/schedule", h.Maintenance.Schedule)
	maintenance.POST("/:id/start", h.Maintenance.Start)
	maintenance.POST("/:id/resolve", h.Maintenance.Resolve)
	maintenance.POST("/:id/cancel", h.Maintenance.Cancel)

	messages := NewDomainGroup("messages", "/messages")
	messages.POST("", h.Message.Send)
	messages.GET("/inbox", h.Message.Inbox)
	messages.GET("/sent", h.Message.Sent)
	messages.GET("/unread-count", h.Message.UnreadCount)
	messages.GET("/:id", h.Message.GetByID)
	messages.POST("/:id/read", h.Message.MarkRead)
	messages.DELETE("/:id", h.Message.Delete)

	dashboard := NewDomainGroup("dashboard", "/dashboard")
	dashboard.GET("", h.Dashboard.Summary)

	system := NewDomainGroup("system", "/system")
	system.GET("/info", h.System.GetSystemInfo)
	system.GET("/ping", h.System.Ping)

	return []*DomainGroup{auth, properties, tenants, maintenance, messages, dashboard, system}
}

// RegisterAPI registers every domain group on r
func RegisterAPI(r *Router, h Handlers) *Router {
	for _, g := range DomainGroups(h) {
		r.Register(g)
	}
	return r
}
