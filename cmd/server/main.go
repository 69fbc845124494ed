package main

import (
	"fmt"
	"log"

	"docflow/internal/config"
	"docflow/internal/email"
	"docflow/internal/email/noop"
	"docflow/internal/email/ses"
	"docflow/internal/handler"
	"docflow/internal/port"
	"docflow/internal/repository/postgres"
	"docflow/internal/router"
	"docflow/internal/service"
	"docflow/internal/workflow"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	areaRepo := postgres.NewBusinessAreaRepo(db)
	projectRepo := postgres.NewProjectRepo(db)
	docRepo := postgres.NewDocumentRepo(db)
	actionRepo := postgres.NewDocumentActionRepo(db)

	// Initialize email sender
	var sender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		sender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		sender = noop.NewNoopSender()
	}
	notifier := email.NewNotifier(sender, userRepo, areaRepo, cfg.Email.FrontendURL, cfg.Workflow.DirectorateAreaName)

	// Initialize services
	policy := workflow.NewPolicy(cfg.Workflow.DirectorateAreaName)
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	lifecycleSvc := service.NewLifecycleService(docRepo, projectRepo, actionRepo)
	workflowSvc := service.NewWorkflowService(docRepo, projectRepo, userRepo, areaRepo, actionRepo, lifecycleSvc, notifier, policy)
	documentSvc := service.NewDocumentService(docRepo, projectRepo, userRepo, lifecycleSvc, policy)
	projectSvc := service.NewProjectService(projectRepo, docRepo, userRepo, lifecycleSvc)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	docH := handler.NewDocumentHandler(documentSvc, workflowSvc)
	projectH := handler.NewProjectHandler(projectSvc, documentSvc, areaRepo)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, authSvc, authH, docH, projectH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
