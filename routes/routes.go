package routes

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	controller "crmdesk/controllers"
	"crmdesk/middleware"
	"crmdesk/models"
)

// Setup wires every route. Anything not explicitly public sits behind
// Protected(); admin-only surfaces additionally behind RequireRole, which
// answers 404 so the endpoints stay invisible to lower roles.
func Setup(app *fiber.App, db *gorm.DB, logger *logrus.Logger, feed *controller.LinkclickFeed) {
	userController := controller.NewUserController(db, logger)
	leadController := controller.NewLeadController(db, logger)
	clientController := controller.NewClientController(db, logger, feed)
	contactController := controller.NewContactController(db, logger)
	registrationController := controller.NewRegistrationController(db, logger)
	linkclickController := controller.NewLinkclickController(db, logger, feed)
	linkController := controller.NewLinkController(db, logger)
	sessionController := controller.NewSessionController(db, logger)
	dashboardController := controller.NewDashboardController(db, logger)

	adminOnly := middleware.RequireRole(models.RoleAdmin)
	publicLimiter := middleware.PublicRateLimiter()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Auth
	auth := app.Group("/auth")
	auth.Post("/login", publicLimiter, controller.Login)
	auth.Post("/logout", middleware.Protected(), controller.Logout)
	auth.Get("/me", middleware.Protected(), controller.GetCurrentUser)

	// Users (admin-managed; leader code validation is hit by the public funnel)
	app.Get("/users/validateLeaderCode/:code", publicLimiter, userController.ValidateLeaderCode)
	users := app.Group("/users", middleware.Protected(), adminOnly)
	users.Get("/getAllUser", userController.GetAllUsers)
	users.Get("/getUser/:id", userController.GetUser)
	users.Post("/addUser", userController.CreateUser)
	users.Put("/updateUser/:id", userController.UpdateUser)
	users.Delete("/deleteUser/:id", userController.DeleteUser)
	users.Post("/deleteManyUser", userController.DeleteManyUsers)
	users.Post("/importUser", userController.ImportUsers)
	users.Get("/exportUser", userController.ExportUsers)

	// Leads
	lead := app.Group("/lead", middleware.Protected(), adminOnly)
	lead.Get("/getAllLead", leadController.GetAllLeads)
	lead.Get("/getLead/:id", leadController.GetLead)
	lead.Get("/getLeadByTransactionId/:transactionId", leadController.GetLeadByTransactionID)
	lead.Post("/addLead", leadController.CreateLead)
	lead.Put("/updateLead/:id", leadController.UpdateLead)
	lead.Delete("/deleteLead/:id", leadController.DeleteLead)
	lead.Post("/importLead", leadController.ImportLeads)
	lead.Get("/exportLead", leadController.ExportLeads)

	// Clients; addClient is public for the referral funnel, search/claim are
	// open to every signed-in role but gated by the claim session window.
	app.Post("/clients/addClient", publicLimiter, clientController.CreateClient)
	clients := app.Group("/clients", middleware.Protected())
	clients.Get("/searchClient", clientController.SearchClient)
	clients.Put("/claimClient/:id", clientController.ClaimClient)
	clientsAdmin := clients.Group("", adminOnly)
	clientsAdmin.Get("/getAllClient", clientController.GetAllClients)
	clientsAdmin.Get("/getClient/:id", clientController.GetClient)
	clientsAdmin.Put("/updateClient/:id", clientController.UpdateClient)
	clientsAdmin.Delete("/deleteClient/:id", clientController.DeleteClient)
	clientsAdmin.Get("/exportClient", clientController.ExportClients)

	// Contacts
	app.Post("/contact/addContact", publicLimiter, contactController.CreateContact)
	contact := app.Group("/contact", middleware.Protected(), adminOnly)
	contact.Get("/getAllContact", contactController.GetAllContacts)
	contact.Put("/updateContact/:id", contactController.UpdateContact)
	contact.Delete("/deleteContact/:id", contactController.DeleteContact)

	// Registrations
	app.Post("/registers/addRegister", publicLimiter, registrationController.CreateRegistration)
	registers := app.Group("/registers", middleware.Protected(), adminOnly)
	registers.Get("/getAllRegister", registrationController.GetAllRegistrations)
	registers.Put("/updateRegister/:id", registrationController.UpdateRegistration)
	registers.Delete("/deleteRegister/:id", registrationController.DeleteRegistration)

	// Link clicks; addLinkclick is hit by the public funnel landing page
	app.Post("/linkclicks/addLinkclick", publicLimiter, linkclickController.CreateLinkclick)
	linkclicks := app.Group("/linkclicks", middleware.Protected(), adminOnly)
	linkclicks.Get("/getAllLinkclick", linkclickController.GetAllLinkclicks)
	linkclicks.Put("/updateLinkclick/:id", linkclickController.UpdateLinkclick)
	linkclicks.Delete("/deleteLinkclick/:id", linkclickController.DeleteLinkclick)
	linkclicks.Get("/ws", websocket.New(func(c *websocket.Conn) {
		feed.Handle(c)
	}))

	// Portal links; slug resolution is public for the funnel redirect
	app.Get("/links/getLinkBySlug/:slug", publicLimiter, linkController.GetLinkBySlug)
	links := app.Group("/links", middleware.Protected(), adminOnly)
	links.Get("/getAllLink", linkController.GetAllLinks)
	links.Post("/addLink", linkController.CreateLink)
	links.Put("/updateLink/:id", linkController.UpdateLink)
	links.Delete("/deleteLink/:id", linkController.DeleteLink)

	// Claim session window
	session := app.Group("/session", middleware.Protected())
	session.Get("/getSession", sessionController.GetSession)
	session.Put("/updateSession", adminOnly, sessionController.UpdateSession)

	// Dashboard
	dashboard := app.Group("/dashboard", middleware.Protected(), adminOnly)
	dashboard.Get("/stats", dashboardController.GetStats)

	logger.Info("routes initialized")
}
