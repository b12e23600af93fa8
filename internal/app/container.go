package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MiluneSadakaChrispinus/househunter/domain"
	"github.com/MiluneSadakaChrispinus/househunter/internal/config"
	"github.com/MiluneSadakaChrispinus/househunter/internal/infrastructure/device"
	"github.com/MiluneSadakaChrispinus/househunter/internal/infrastructure/gcs"
	"github.com/MiluneSadakaChrispinus/househunter/internal/infrastructure/postgres"
	"github.com/MiluneSadakaChrispinus/househunter/internal/infrastructure/supabase"
	"github.com/MiluneSadakaChrispinus/househunter/internal/services"
)

// Container holds all dependencies.
type Container struct {
	// Config
	Config *config.Config
	Log    *zap.Logger

	// Infrastructure
	Device   *device.Store
	Supabase *supabase.Client
	DB       *gorm.DB
	GCS      *gcs.BlobStore

	// Gateway contracts
	Auth   domain.AuthAPI
	Tables domain.TableAPI
	Blobs  domain.BlobAPI

	// Services
	Sessions  *services.SessionStore
	Listings  *services.ListingRepository
	Favorites *services.FavoritesController
	Form      *services.PropertyFormController
	Policy    *services.AccessPolicy
	Router    *services.ViewRouter
}

// NewContainer creates and initializes all dependencies.
func NewContainer(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Container, error) {
	c := &Container{Config: cfg, Log: log}

	if err := c.initDevice(); err != nil {
		return nil, err
	}
	if err := c.initGateways(ctx); err != nil {
		return nil, err
	}
	if err := c.initServices(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) initDevice() error {
	store, err := device.Open(c.Config.DeviceStateDir)
	if err != nil {
		return err
	}
	c.Device = store
	return nil
}

// initGateways wires the remote gateway. Auth always talks to the remote
// provider; tables and blobs switch between the REST surface and the direct
// Postgres/GCS pair.
func (c *Container) initGateways(ctx context.Context) error {
	c.Supabase = supabase.NewClient(supabase.Config{
		URL:     c.Config.SupabaseURL,
		AnonKey: c.Config.SupabaseAnonKey,
		Timeout: c.Config.HTTPTimeout,
	}, c.Log)
	c.Auth = supabase.NewAuth(c.Supabase)

	switch c.Config.GatewayMode {
	case config.ModeSupabase:
		c.Tables = supabase.NewTable(c.Supabase)
		c.Blobs = supabase.NewStorage(c.Supabase)
	case config.ModeDirect:
		db, err := postgres.Open(c.Config.PostgresDSN)
		if err != nil {
			return err
		}
		c.DB = db
		c.Tables = postgres.NewTableGateway(db)

		blobs, err := gcs.NewBlobStore(ctx, c.Log)
		if err != nil {
			return err
		}
		c.GCS = blobs
		c.Blobs = blobs
	default:
		return fmt.Errorf("unknown gateway mode %q", c.Config.GatewayMode)
	}
	return nil
}

func (c *Container) initServices(ctx context.Context) error {
	policy, err := services.NewAccessPolicy()
	if err != nil {
		return err
	}
	c.Policy = policy
	c.Router = services.NewViewRouter(policy)

	c.Sessions = services.NewSessionStore(ctx, c.Auth, c.Device, c.Log)
	c.Listings = services.NewListingRepository(c.Tables, c.Log)
	c.Favorites = services.NewFavoritesController(c.Tables, c.Sessions, c.Log)

	bucket := c.Config.StorageBucket
	if c.Config.GatewayMode == config.ModeDirect && c.Config.GCSBucket != "" {
		bucket = c.Config.GCSBucket
	}
	c.Form = services.NewPropertyFormController(
		c.Tables, c.Blobs, c.Sessions, c.Listings, policy, bucket, c.Log,
	)
	return nil
}

// Close closes all connections.
func (c *Container) Close() error {
	if c.Sessions != nil {
		c.Sessions.Close()
	}
	if c.GCS != nil {
		c.GCS.Close()
	}
	if c.DB != nil {
		if err := postgres.Close(c.DB); err != nil {
			return err
		}
	}
	if c.Device != nil {
		return c.Device.Close()
	}
	return nil
}
