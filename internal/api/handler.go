package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/symptomap/internal/db"
	"github.com/terraincognita07/symptomap/internal/services"
	"gorm.io/gorm"
)

const (
	authTokenTTL   = 24 * time.Hour
	contextUserKey = "symptomap_user"
)

type Handler struct {
	auth      *services.AuthService
	catalog   *services.CatalogService
	entries   *services.EntryService
	geo       *services.GeoService
	secretKey []byte
}

type authClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

func NewHandler(database *gorm.DB, secretKey string) *Handler {
	repos := db.NewRepositories(database)
	catalog := services.NewCatalogService(repos.Symptoms)
	return &Handler{
		auth:      services.NewAuthService(repos.Users),
		catalog:   catalog,
		entries:   services.NewEntryService(repos.Entries, catalog),
		geo:       services.NewGeoService(repos.Entries),
		secretKey: []byte(secretKey),
	}
}
