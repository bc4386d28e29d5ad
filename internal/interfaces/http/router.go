package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/vacaciones-api/internal/application/auth"
	"github.com/jhoicas/vacaciones-api/internal/application/directory"
	"github.com/jhoicas/vacaciones-api/internal/application/notification"
	"github.com/jhoicas/vacaciones-api/internal/application/report"
	"github.com/jhoicas/vacaciones-api/internal/application/session"
	"github.com/jhoicas/vacaciones-api/internal/application/users"
	"github.com/jhoicas/vacaciones-api/internal/application/vacation"
	"github.com/jhoicas/vacaciones-api/internal/domain/entity"
	"github.com/jhoicas/vacaciones-api/pkg/config"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	Resolver       *session.Resolver
	DirectoryUC    *directory.DirectoryUseCase
	VacationUC     *vacation.VacationUseCase
	NotificationUC *notification.NotificationUseCase
	UsersUC        *users.UsersUseCase
	ReportUC       *report.ReportUseCase
	SessionCfg     config.SessionConfig
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// La sesión se resuelve una vez por request; el gate decide por ruta.
	app.Use(SessionMiddleware(deps.Resolver, deps.DirectoryUC, deps.SessionCfg))

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.DirectoryUC, deps.SessionCfg)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/logout", authHandler.Logout)

	api.Get("/me", RequireRole(entity.RoleEmployee, entity.RoleAdmin), authHandler.Me)

	// Vacations (empleado y admin; las operaciones de admin re-verifican rol
	// en el use case)
	vacations := api.Group("/vacations", RequireRole(entity.RoleEmployee, entity.RoleAdmin))
	vacationHandler := NewVacationHandler(deps.VacationUC)
	vacations.Get("/calendar", vacationHandler.Calendar)
	vacations.Get("/", vacationHandler.List)
	vacations.Post("/", vacationHandler.Create)
	vacations.Put("/:id", vacationHandler.Update)
	vacations.Delete("/:id", vacationHandler.Delete)
	vacations.Post("/:id/approve", RequireRole(entity.RoleAdmin), vacationHandler.Approve)
	vacations.Post("/:id/reject", RequireRole(entity.RoleAdmin), vacationHandler.Reject)

	// Notifications (solo el destinatario)
	notifications := api.Group("/notifications", RequireRole(entity.RoleEmployee, entity.RoleAdmin))
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", notificationHandler.List)
	notifications.Put("/:id/read", notificationHandler.MarkRead)

	// Endpoint privilegiado de usuarios: re-deriva identidad y rol por su
	// cuenta, no cuelga de RequireRole.
	adminUsersHandler := NewAdminUsersHandler(deps.UsersUC, deps.Resolver, deps.DirectoryUC, deps.SessionCfg)
	adminGroup := api.Group("/admin")
	adminGroup.Get("/users", adminUsersHandler.List)
	adminGroup.Post("/users", adminUsersHandler.Create)
	adminGroup.Delete("/users", adminUsersHandler.Delete)

	reportHandler := NewReportHandler(deps.ReportUC)
	adminGroup.Get("/reports/vacations.pdf", RequireRole(entity.RoleAdmin), reportHandler.VacationsPDF)

	// Entradas servidas como página: misma tabla del gate, en modo redirect.
	app.Get("/dashboard", RequirePage(entity.RoleEmployee, entity.RoleAdmin), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"view": "dashboard", "role": GetRole(c)})
	})
	app.Get("/dashboard/admin", RequirePage(entity.RoleAdmin), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"view": "admin", "role": GetRole(c)})
	})
}
