package services

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/diewo77/go-artisans/internal/apperr"
	"github.com/diewo77/go-artisans/internal/identity"
	"github.com/diewo77/go-artisans/internal/kv"
	"github.com/diewo77/go-artisans/internal/models"
	"github.com/diewo77/go-artisans/internal/repository"
	"go.uber.org/zap"
)

// DemoPassword is shared by every seeded artisan account.
const DemoPassword = "demo1234"

type demoArtisan struct {
	email       string
	name        string
	phone       string
	trade       string
	skills      []string
	priceRange  string
	hourlyRate  string
	description string
	experience  string
	location    string
}

var demoArtisans = []demoArtisan{
	{
		email:       "patrick.kabamba@example.com",
		name:        "Patrick Kabamba",
		phone:       "+243 999 123 456",
		trade:       models.TradeElectrician,
		skills:      []string{"Installation électrique", "Dépannage", "Panneaux solaires", "Câblage"},
		priceRange:  models.PriceStandard,
		hourlyRate:  "25 USD/h",
		description: "Électricien professionnel avec 8 ans d'expérience. Spécialisé dans les installations résidentielles et commerciales.",
		experience:  "8 ans",
		location:    "Quartier Industriel, Lubumbashi",
	},
	{
		email:       "jean.mukendi@example.com",
		name:        "Jean Mukendi",
		phone:       "+243 999 234 567",
		trade:       models.TradePlumber,
		skills:      []string{"Plomberie générale", "Réparation fuites", "Installation sanitaire", "Débouchage"},
		priceRange:  models.PriceBudget,
		hourlyRate:  "20 USD/h",
		description: "Plombier expérimenté, disponible 7j/7 pour dépannages. Travail soigné et garantie sur toutes les interventions.",
		experience:  "6 ans",
		location:    "Quartier Kenya, Lubumbashi",
	},
	{
		email:       "marie.tshilombo@example.com",
		name:        "Marie Tshilombo",
		phone:       "+243 999 345 678",
		trade:       models.TradeCarpenter,
		skills:      []string{"Meubles sur mesure", "Portes et fenêtres", "Réparation", "Aménagement"},
		priceRange:  models.PricePremium,
		hourlyRate:  "35 USD/h",
		description: "Menuisière créative spécialisée dans le mobilier sur mesure. Qualité artisanale garantie.",
		experience:  "10 ans",
		location:    "Quartier Kampemba, Lubumbashi",
	},
}

// SeedResult is the body returned by the demo-data endpoint. Count is set
// when data already existed; Created and Note when seeding ran.
type SeedResult struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
	Created *int   `json:"created,omitempty"`
	Note    string `json:"note,omitempty"`
}

// DemoSeeder creates the demo artisans once.
type DemoSeeder struct {
	provider identity.Provider
	artisans *repository.ArtisanRepository
	accounts *repository.AccountWriter
	logger   *zap.Logger
	now      func() time.Time
}

func NewDemoSeeder(provider identity.Provider, store kv.Store, logger *zap.Logger) *DemoSeeder {
	return &DemoSeeder{
		provider: provider,
		artisans: repository.NewArtisanRepository(store),
		accounts: repository.NewAccountWriter(store),
		logger:   logger,
		now:      time.Now,
	}
}

// Seed is a no-op when any artisan profile exists. Individual artisan
// failures are logged and skipped.
func (d *DemoSeeder) Seed(ctx context.Context) (*SeedResult, error) {
	n, err := d.artisans.Count(ctx)
	if err != nil {
		return nil, apperr.Store("count artisans", err)
	}
	if n > 0 {
		return &SeedResult{Message: "Demo data already exists", Count: n}, nil
	}

	created := 0
	for _, demo := range demoArtisans {
		if err := d.seedOne(ctx, demo); err != nil {
			d.logger.Warn("demo artisan not created",
				zap.String("name", demo.name), zap.Error(err))
			continue
		}
		created++
		d.logger.Info("demo artisan created", zap.String("name", demo.name))
	}
	return &SeedResult{
		Message: "Demo data initialized successfully",
		Created: &created,
		Note:    "Demo accounts: password is '" + DemoPassword + "' for all artisans",
	}, nil
}

func (d *DemoSeeder) seedOne(ctx context.Context, demo demoArtisan) error {
	user, err := d.provider.CreateUser(ctx, identity.CreateUserParams{
		Email:    demo.email,
		Password: DemoPassword,
		Metadata: identity.Metadata{
			Name:     demo.name,
			UserType: string(models.UserTypeArtisan),
			Phone:    demo.phone,
		},
		EmailConfirm: true,
	})
	if err != nil {
		return err
	}

	now := d.now()
	account := models.UserAccount{
		ID:        user.ID,
		Email:     user.Email,
		Name:      demo.name,
		UserType:  models.UserTypeArtisan,
		Phone:     demo.phone,
		CreatedAt: now,
	}
	profile := models.NewArtisanProfile(account, demo.location, now)
	profile.Trade = demo.trade
	profile.Skills = append([]string{}, demo.skills...)
	profile.PriceRange = demo.priceRange
	profile.HourlyRate = demo.hourlyRate
	profile.Verified = true
	profile.Description = demo.description
	profile.Rating = 4.8 + rand.Float64()*0.2
	profile.ReviewCount = rand.IntN(50) + 20
	profile.Experience = demo.experience
	profile.CompletedJobs = rand.IntN(100) + 50
	profile.WhatsApp = strings.Join(strings.Fields(demo.phone), "")

	if err := d.accounts.Create(ctx, &account, &profile); err != nil {
		if derr := d.provider.DeleteUser(ctx, user.ID); derr != nil {
			d.logger.Error("demo compensation failed", zap.String("user_id", user.ID), zap.Error(derr))
		}
		return err
	}
	return nil
}
