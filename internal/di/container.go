// Package di wires the application together: configuration, connections,
// stores, services and the HTTP layer.
package di

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"synagogue-manager/internal/auth/security"
	"synagogue-manager/internal/shared/database"
	"synagogue-manager/internal/shared/eventbus"
	"synagogue-manager/internal/shared/logger"
	"synagogue-manager/internal/shared/paths"
	"synagogue-manager/internal/synagogue/adapter/persistence/mongodb"
	"synagogue-manager/internal/synagogue/adapter/persistence/rediscache"
	"synagogue-manager/internal/synagogue/adapter/storage"
	"synagogue-manager/internal/synagogue/config"
	"synagogue-manager/internal/synagogue/domain/model"
	"synagogue-manager/internal/synagogue/domain/repository"
	"synagogue-manager/internal/synagogue/usecase"
)

// Container owns the application's shared dependencies and their
// lifecycle.
type Container struct {
	Config   *config.Config
	Logger   logger.Logger
	Bus      *eventbus.EventBus
	Verifier *security.TokenVerifier
	Storage  repository.FileStorage // nil when OSS is not configured
	Global   *usecase.GlobalServices

	mongoClient *mongo.Client
	mongoDB     *mongo.Database
	redisClient *redis.Client // nil when the cache is disabled

	mu      sync.Mutex
	tenants map[string]*usecase.TenantServices
}

// NewContainer builds every shared dependency and verifies the MongoDB
// connection. Close must be called on shutdown.
func NewContainer(ctx context.Context, cfg *config.Config, log logger.Logger) (*Container, error) {
	c := &Container{
		Config:  cfg,
		Logger:  log,
		Bus:     eventbus.NewEventBus(log),
		tenants: make(map[string]*usecase.TenantServices),
	}

	client, err := database.Connect(ctx, cfg.Mongo, log)
	if err != nil {
		return nil, err
	}
	c.mongoClient = client
	c.mongoDB = client.Database(cfg.Mongo.DatabaseName)

	if cfg.Redis.Enabled() {
		c.redisClient = cfg.Redis.NewClient()
		if err := c.redisClient.Ping(ctx).Err(); err != nil {
			// the cache degrades per operation anyway; a dead cache at
			// startup is worth surfacing
			log.Warnf("Redis unreachable at startup: %v", err)
		} else {
			log.Infof("Redis cache enabled at %s", cfg.Redis.Addr)
		}
	}

	verifier, err := security.NewTokenVerifier(cfg.JWT.SecretKey, cfg.JWT.Issuer, cfg.JWT.TokenTTL)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Verifier = verifier

	ossCfg, err := storage.LoadOSSConfig()
	if err != nil {
		c.Close()
		return nil, err
	}
	if ossCfg.Enabled() {
		fileStorage, err := storage.NewOSSFileStorage(ossCfg, log)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.Storage = fileStorage
		log.Infof("OSS file storage enabled on bucket %s", ossCfg.Bucket)
	} else {
		log.Warn("OSS not configured, report uploads disabled")
	}

	global, err := c.buildGlobalServices()
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Global = global

	return c, nil
}

func (c *Container) buildGlobalServices() (*usecase.GlobalServices, error) {
	synagogues, err := newService[model.Synagogue](c, usecase.CollectionSynagogues, model.SynagogueMapper)
	if err != nil {
		return nil, err
	}
	admins, err := newService[model.Admin](c, usecase.CollectionAdmins, model.AdminMapper)
	if err != nil {
		return nil, err
	}
	return &usecase.GlobalServices{Synagogues: synagogues, Admins: admins}, nil
}

// TenantServices returns the memoized service registry of one synagogue,
// building it on first use.
func (c *Container) TenantServices(synagogueID string) (*usecase.TenantServices, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if services, ok := c.tenants[synagogueID]; ok {
		return services, nil
	}
	services, err := c.buildTenantServices(synagogueID)
	if err != nil {
		return nil, err
	}
	c.tenants[synagogueID] = services
	return services, nil
}

func (c *Container) buildTenantServices(id string) (*usecase.TenantServices, error) {
	prayerTimes, err := newService[model.PrayerTimes](c, paths.Scoped(id, usecase.CollectionPrayerTimes), model.PrayerTimesMapper)
	if err != nil {
		return nil, err
	}
	donations, err := newService[model.Donation](c, paths.Scoped(id, usecase.CollectionDonations), model.DonationMapper)
	if err != nil {
		return nil, err
	}
	toraLessons, err := newService[model.ToraLesson](c, paths.Scoped(id, usecase.CollectionToraLessons), model.ToraLessonMapper)
	if err != nil {
		return nil, err
	}
	financialReports, err := newService[model.FinancialReport](c, paths.Scoped(id, usecase.CollectionFinancialReports), model.FinancialReportMapper)
	if err != nil {
		return nil, err
	}
	announcements, err := newService[model.Announcement](c, paths.Scoped(id, usecase.CollectionAnnouncements), model.AnnouncementMapper)
	if err != nil {
		return nil, err
	}
	memberships, err := newService[model.Membership](c, paths.Scoped(id, usecase.CollectionMemberships), model.MembershipMapper)
	if err != nil {
		return nil, err
	}
	gabbaiBoard, err := newService[model.GabbaiBoard](c, paths.Scoped(id, usecase.CollectionSettings), model.GabbaiBoardMapper)
	if err != nil {
		return nil, err
	}
	invitations, err := newService[model.Invitation](c, paths.Scoped(id, usecase.CollectionInvitations), model.InvitationMapper)
	if err != nil {
		return nil, err
	}
	families, err := newService[model.Family](c, paths.Scoped(id, usecase.CollectionFamilies), model.FamilyMapper)
	if err != nil {
		return nil, err
	}

	return &usecase.TenantServices{
		SynagogueID:      id,
		PrayerTimes:      prayerTimes,
		Donations:        donations,
		ToraLessons:      toraLessons,
		FinancialReports: financialReports,
		Announcements:    announcements,
		Memberships:      memberships,
		GabbaiBoard:      gabbaiBoard,
		Invitations:      invitations,
		Families:         families,
	}, nil
}

// newService builds one typed service over a MongoDB store, wrapped in the
// Redis cache when one is configured.
func newService[E any, D any](c *Container, path string, mapper repository.Mapper[E, D]) (*usecase.GenericService[E, D], error) {
	var store repository.DocumentStore[D]
	mongoStore, err := mongodb.NewDocumentStore[D](c.mongoDB, path, c.Bus, c.Logger)
	if err != nil {
		return nil, fmt.Errorf("store for %s: %w", path, err)
	}
	store = mongoStore

	if c.redisClient != nil {
		store = rediscache.NewCachedDocumentStore[D](store, c.redisClient, c.Config.Redis.CacheTTL, c.Logger)
	}
	return usecase.NewGenericService[E, D](store, mapper, c.Logger), nil
}

// HealthCheck pings the backing services.
func (c *Container) HealthCheck(ctx context.Context) error {
	if err := c.mongoClient.Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongodb: %w", err)
	}
	if c.redisClient != nil {
		if err := c.redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	return nil
}

// Close releases every connection the container owns.
func (c *Container) Close() {
	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			c.Logger.Errorf("Failed to close Redis client: %v", err)
		}
	}
	database.Disconnect(c.mongoClient, c.Logger)
}
