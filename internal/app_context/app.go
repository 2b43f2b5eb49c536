package appcontext

import (
	"github.com/minio/minio-go/v7"
	"github.com/sopheak-dev/agencyflow/internal/auth"
	"github.com/sopheak-dev/agencyflow/internal/cache"
	"github.com/sopheak-dev/agencyflow/internal/config"
	filestorage "github.com/sopheak-dev/agencyflow/internal/file_storage"
	"github.com/sopheak-dev/agencyflow/internal/mailer"
	"github.com/sopheak-dev/agencyflow/internal/repository"
	"github.com/sopheak-dev/agencyflow/internal/service"
	"go.uber.org/zap"
)

// Application contains core dependencies for the app.
type Application struct {
	// Config holds application settings provided from .env file.
	Config *config.Config

	Logger *zap.SugaredLogger

	// Repository provides access to data storage operations.
	Repository *repository.Repository

	// Mailer handles email-sending functions. Nil when mail is disabled.
	Mailer mailer.Client

	// JWTService manages JWT operations for authentication such as generate, verify, refresh token.
	JWTService auth.JWTInterface

	S3      *minio.Client
	Storage *filestorage.Storage

	// Cache is the fail-safe redis wrapper; may hold a nil client.
	Cache *cache.Client

	// Services carry the role-gated project and notification logic.
	ProjectService      *service.ProjectService
	NotificationService *service.NotificationService
	RelationService     *service.RelationService
}
