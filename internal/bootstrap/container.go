package bootstrap

import (
	"log"

	"notevault-be/internal/config"
	"notevault-be/internal/controller"
	"notevault-be/internal/pkg/logger"
	"notevault-be/internal/pkg/serverutils"
	"notevault-be/internal/pkg/token"
	"notevault-be/internal/repository/unitofwork"
	"notevault-be/internal/service"
	pktNats "notevault-be/pkg/nats"

	"gorm.io/gorm"
)

type Container struct {
	AuthController controller.IAuthController
	NoteController controller.INoteController

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	uowFactory := unitofwork.NewRepositoryFactory(db)

	// NATS is best-effort infrastructure; the API stays up without it.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	return NewContainerWithFactory(uowFactory, cfg, natsPub)
}

// NewContainerWithFactory wires services and controllers against any
// repository factory. Tests pass the in-memory factory here.
func NewContainerWithFactory(uowFactory unitofwork.RepositoryFactory, cfg *config.Config, natsPub *pktNats.Publisher) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	tokenService := token.NewService([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)
	authMiddleware := serverutils.NewAuthMiddleware(tokenService)

	authService := service.NewAuthService(uowFactory, tokenService, natsPub, sysLogger)
	noteService := service.NewNoteService(uowFactory, natsPub, sysLogger)

	return &Container{
		AuthController: controller.NewAuthController(authService, authMiddleware),
		NoteController: controller.NewNoteController(noteService, authMiddleware),
		Logger:         sysLogger,
	}
}
