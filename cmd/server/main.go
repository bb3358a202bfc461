package main

import (
	"log"
	"strings"

	"burgerclub-backend/internal/audit"
	"burgerclub-backend/internal/auth"
	"burgerclub-backend/internal/config"
	"burgerclub-backend/internal/dashboard"
	"burgerclub-backend/internal/database"
	"burgerclub-backend/internal/kitchen"
	"burgerclub-backend/internal/ledger"
	"burgerclub-backend/internal/models"
	"burgerclub-backend/internal/movements"
	"burgerclub-backend/internal/nightsale"
	"burgerclub-backend/internal/payroll"
	"burgerclub-backend/internal/shopping"
	"burgerclub-backend/internal/tasks"
	"burgerclub-backend/internal/users"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Error inesperado:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error inesperado del servidor",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Auth pública
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Rutas protegidas
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Capital (lectura para ambos roles; corrección solo admin)
	protected.Get("/capital", ledger.GetCapitalHandler())

	// Listas de cocina: lado cocinero (el admin también puede crear; su
	// envío se auto-aprueba en el servicio)
	protected.Post("/kitchen-lists", kitchen.CreateListHandler())
	protected.Get("/kitchen-lists/mine", kitchen.ListMyListsHandler())
	protected.Delete("/kitchen-lists/mine/:id", kitchen.SoftDeleteListHandler())

	// Cortes de caja: lado cocinero
	protected.Post("/night-sales", nightsale.CreateSaleHandler())
	protected.Get("/night-sales/mine", nightsale.ListMySalesHandler())

	// Nómina: el cocinero consulta sus propios pagos
	protected.Get("/payroll/mine", payroll.ListMyPaymentsHandler())

	// Rutas de administración
	adminRoutes := protected.Group("")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	adminRoutes.Put("/capital", ledger.SetCapitalHandler())

	// Revisión de listas de cocina
	adminRoutes.Get("/kitchen-lists/pending", kitchen.ListPendingHandler())
	adminRoutes.Post("/kitchen-lists/:id/approve", kitchen.ApproveListHandler())
	adminRoutes.Post("/kitchen-lists/:id/reject", kitchen.RejectListHandler())
	adminRoutes.Delete("/kitchen-lists/:id", kitchen.HardDeleteListHandler())

	// Revisión de cortes de caja
	adminRoutes.Get("/night-sales", nightsale.ListSalesHandler())
	adminRoutes.Post("/night-sales/:id/accept", nightsale.AcceptSaleHandler())
	adminRoutes.Post("/night-sales/:id/reject", nightsale.RejectSaleHandler())
	adminRoutes.Delete("/night-sales/:id", nightsale.DeleteSaleHandler())

	// Lista de compras del día
	adminRoutes.Post("/shopping-items", shopping.CreateItemHandler())
	adminRoutes.Get("/shopping-items", shopping.ListItemsHandler())
	adminRoutes.Get("/shopping-items/summary", shopping.SummaryHandler())
	adminRoutes.Get("/shopping-items/period", shopping.PeriodHandler())
	adminRoutes.Put("/shopping-items/:id", shopping.UpdateItemHandler())
	adminRoutes.Post("/shopping-items/:id/toggle", shopping.ToggleItemHandler())
	adminRoutes.Delete("/shopping-items/:id", shopping.DeleteItemHandler())

	// Nómina
	adminRoutes.Post("/payroll", payroll.CreatePaymentHandler())
	adminRoutes.Get("/payroll", payroll.ListPaymentsHandler())
	adminRoutes.Delete("/payroll/:id", payroll.DeletePaymentHandler())

	// Pendientes del día
	adminRoutes.Post("/tasks", tasks.CreateTaskHandler())
	adminRoutes.Get("/tasks", tasks.ListTasksHandler())
	adminRoutes.Post("/tasks/:id/toggle", tasks.ToggleTaskHandler())
	adminRoutes.Delete("/tasks/:id", tasks.DeleteTaskHandler())

	// Historial unificado y tablero
	adminRoutes.Get("/movements", movements.ListMovementsHandler())
	adminRoutes.Get("/dashboard/summary", dashboard.SummaryHandler())

	// Cocineros
	adminRoutes.Post("/users/cooks", users.CreateCookHandler())
	adminRoutes.Get("/users/cooks", users.ListCooksHandler())
	adminRoutes.Delete("/users/cooks/:id", users.DeleteCookHandler())

	// Audit logs
	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler())
	adminRoutes.Post("/audit-logs/:id/undo", audit.UndoAuditLogHandler())

	log.Println("Servidor escuchando en el puerto:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
