package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/AtlasFacilities/service-desk-api/internal/audit"
	"github.com/AtlasFacilities/service-desk-api/internal/config"
	"github.com/AtlasFacilities/service-desk-api/internal/handlers"
	"github.com/AtlasFacilities/service-desk-api/internal/infra/notify"
	infraRepo "github.com/AtlasFacilities/service-desk-api/internal/infra/repository"
	"github.com/AtlasFacilities/service-desk-api/internal/infra/storage"
	"github.com/AtlasFacilities/service-desk-api/internal/middleware"
	ucAlerts "github.com/AtlasFacilities/service-desk-api/internal/usecase/alerts"
	ucBilling "github.com/AtlasFacilities/service-desk-api/internal/usecase/billing"
	ucChecklist "github.com/AtlasFacilities/service-desk-api/internal/usecase/checklist"
	ucProject "github.com/AtlasFacilities/service-desk-api/internal/usecase/project"
	ucWorkorder "github.com/AtlasFacilities/service-desk-api/internal/usecase/workorder"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	projectRepo := infraRepo.NewProjectGormRepository(db)
	workOrderRepo := infraRepo.NewWorkOrderGormRepository(db)
	billingRepo := infraRepo.NewBillingGormRepository(db)
	checklistRepo := infraRepo.NewChecklistGormRepository(db)
	complianceRepo := infraRepo.NewComplianceGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	var events notify.Publisher = notify.NopPublisher{}
	if cfg.AMQPUrl != "" {
		pub, err := notify.NewRabbitPublisher(cfg.AMQPUrl, cfg.AMQPExchange)
		if err != nil {
			log.Printf("broker unavailable, dropping events: %v", err)
		} else {
			events = pub
		}
	}

	var cache *redis.Client
	if cfg.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}

	store := storage.NewS3Store(storage.S3Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})

	// ======================================================
	// USE CASES — PROJECTS
	// ======================================================
	createProjectUC := ucProject.NewCreateProject(
		projectRepo,
		auditDispatcher,
	)

	approveProjectUC := ucProject.NewApproveProject(
		projectRepo,
		events,
		auditDispatcher,
	)

	addWorkOrderUC := ucProject.NewAddWorkOrder(
		projectRepo,
		auditDispatcher,
	)

	// ======================================================
	// USE CASES — WORK ORDERS
	// ======================================================
	advanceStageUC := ucWorkorder.NewAdvanceStage(
		workOrderRepo,
		auditDispatcher,
	)

	cancelWorkOrderUC := ucWorkorder.NewCancelWorkOrder(
		workOrderRepo,
		auditDispatcher,
	)

	setPriceUC := ucWorkorder.NewSetPrice(
		workOrderRepo,
		auditDispatcher,
	)

	submitProofUC := ucWorkorder.NewSubmitPaymentProof(
		workOrderRepo,
		events,
		auditDispatcher,
	)

	confirmPaymentUC := ucWorkorder.NewConfirmPayment(
		workOrderRepo,
		events,
		auditDispatcher,
	)

	rejectProofUC := ucWorkorder.NewRejectPaymentProof(
		workOrderRepo,
		events,
		auditDispatcher,
	)

	// ======================================================
	// USE CASES — BILLING / CHECKLISTS / ALERTS
	// ======================================================
	quotationUC := ucBilling.NewQuotationUseCase(
		billingRepo,
		events,
		auditDispatcher,
	)

	invoiceUC := ucBilling.NewInvoiceUseCase(
		billingRepo,
		events,
		auditDispatcher,
	)

	checklistUC := ucChecklist.NewUseCase(
		checklistRepo,
		auditDispatcher,
	)

	actionCenterUC := ucAlerts.NewActionCenter(
		complianceRepo,
		cache,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	clientCompanyHandler := handlers.NewClientCompanyHandler(db)
	branchHandler := handlers.NewBranchHandler(db)

	projectHandler := handlers.NewProjectHandler(
		db,
		createProjectUC,
		approveProjectUC,
		addWorkOrderUC,
	)

	workOrderHandler := handlers.NewWorkOrderHandler(
		db,
		store,
		advanceStageUC,
		cancelWorkOrderUC,
		setPriceUC,
		submitProofUC,
		confirmPaymentUC,
		rejectProofUC,
	)

	quotationHandler := handlers.NewQuotationHandler(db, quotationUC)
	invoiceHandler := handlers.NewInvoiceHandler(db, store, invoiceUC)
	checklistHandler := handlers.NewChecklistHandler(db, checklistUC)
	contractHandler := handlers.NewContractHandler(db, store, events, auditDispatcher)
	complianceHandler := handlers.NewComplianceHandler(db)
	actionCenterHandler := handlers.NewActionCenterHandler(actionCenterUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/client-companies", clientCompanyHandler.List)
			secured.POST("/client-companies", clientCompanyHandler.Create)
			secured.PATCH("/client-companies/:id", clientCompanyHandler.Update)
			secured.POST("/client-companies/:id/users", clientCompanyHandler.CreateUser)

			secured.GET("/branches", branchHandler.List)
			secured.POST("/branches", branchHandler.Create)
			secured.GET("/branches/:id", branchHandler.Get)
			secured.PATCH("/branches/:id", branchHandler.Update)
			secured.DELETE("/branches/:id", branchHandler.Deactivate)

			// ------------------------------
			// PROJECTS
			// ------------------------------
			secured.GET("/projects", projectHandler.List)
			secured.POST("/projects", projectHandler.Create)
			secured.GET("/projects/:id", projectHandler.Get)
			secured.PATCH("/projects/:id/approve", projectHandler.Approve)
			secured.POST("/projects/:id/work-orders", projectHandler.AddWorkOrder)
			secured.GET("/projects/:id/work-orders", workOrderHandler.ListByProject)
			secured.GET("/projects/:id/contract", contractHandler.GetByProject)

			// ------------------------------
			// WORK ORDERS
			// ------------------------------
			secured.PATCH("/work-orders/:id/advance", workOrderHandler.Advance)
			secured.PATCH("/work-orders/:id/cancel", workOrderHandler.Cancel)
			secured.PATCH("/work-orders/:id/price", workOrderHandler.SetPrice)
			secured.POST("/work-orders/:id/payment-proof", workOrderHandler.SubmitProof)
			secured.PATCH("/work-orders/:id/confirm-payment", workOrderHandler.ConfirmPayment)
			secured.PATCH("/work-orders/:id/reject-proof", workOrderHandler.RejectProof)

			// ------------------------------
			// QUOTATIONS
			// ------------------------------
			secured.GET("/quotations", quotationHandler.List)
			secured.POST("/quotations", quotationHandler.Create)
			secured.GET("/quotations/:id", quotationHandler.Get)
			secured.PATCH("/quotations/:id", quotationHandler.Update)
			secured.DELETE("/quotations/:id", quotationHandler.Delete)
			secured.PATCH("/quotations/:id/send", quotationHandler.Send)
			secured.PATCH("/quotations/:id/approve", quotationHandler.Approve)
			secured.PATCH("/quotations/:id/reject", quotationHandler.Reject)

			// ------------------------------
			// INVOICES
			// ------------------------------
			secured.GET("/invoices", invoiceHandler.List)
			secured.POST("/invoices", invoiceHandler.Create)
			secured.POST("/invoices/from-project", invoiceHandler.CreateFromProject)
			secured.GET("/invoices/:id", invoiceHandler.Get)
			secured.PATCH("/invoices/:id", invoiceHandler.Update)
			secured.DELETE("/invoices/:id", invoiceHandler.Delete)
			secured.PATCH("/invoices/:id/send", invoiceHandler.Send)
			secured.PATCH("/invoices/:id/cancel", invoiceHandler.Cancel)
			secured.POST("/invoices/:id/payment-proof", invoiceHandler.SubmitProof)
			secured.PATCH("/invoices/:id/confirm-payment", invoiceHandler.ConfirmPayment)
			secured.PATCH("/invoices/:id/reject-proof", invoiceHandler.RejectProof)
			secured.POST("/invoices/:id/payments", invoiceHandler.RecordPayment)

			// ------------------------------
			// CHECKLISTS
			// ------------------------------
			secured.GET("/checklists", checklistHandler.List)
			secured.POST("/checklists", checklistHandler.Create)
			secured.GET("/checklists/:id", checklistHandler.Get)
			secured.PATCH("/checklists/:id/start", checklistHandler.Start)
			secured.PATCH("/checklists/:id/items/:itemId", checklistHandler.TickItem)
			secured.PATCH("/checklists/:id/complete", checklistHandler.Complete)

			// ------------------------------
			// CONTRACTS
			// ------------------------------
			secured.GET("/contracts", contractHandler.List)
			secured.PATCH("/contracts/:id/send-for-signature", contractHandler.SendForSignature)
			secured.POST("/contracts/:id/sign", contractHandler.Sign)
			secured.PATCH("/contracts/:id/activate", contractHandler.Activate)
			secured.PATCH("/contracts/:id/terminate", contractHandler.Terminate)

			// ------------------------------
			// COMPLIANCE
			// ------------------------------
			secured.GET("/equipment", complianceHandler.ListEquipment)
			secured.POST("/equipment", complianceHandler.CreateEquipment)
			secured.PATCH("/equipment/:id", complianceHandler.UpdateEquipment)

			secured.GET("/certificates", complianceHandler.ListCertificates)
			secured.POST("/certificates", complianceHandler.CreateCertificate)
			secured.PATCH("/certificates/:id", complianceHandler.UpdateCertificate)

			secured.GET("/action-center", actionCenterHandler.List)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
