// internal/app/bootstrap/seed.go
package bootstrap

import (
	"fmt"
	"time"

	contentstore "github.com/dalemusser/clubhub/internal/app/store/content"
	memberstore "github.com/dalemusser/clubhub/internal/app/store/members"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// seedIfEmpty installs the demo fixtures on a fresh database: a ready
// admin account, one leader and one member, three clubs, and three
// campus events. Stores that already hold data are left alone, so the
// seed runs once per database.
func seedIfEmpty(directory *memberstore.Store, content *contentstore.Store, logger *zap.Logger) error {
	clubs := seedClubs()
	if content.SeedIfEmpty(clubs, seedEvents()) {
		logger.Info("seeded club and event catalogs")
	}

	members, err := seedMembers(clubs)
	if err != nil {
		return err
	}
	if directory.SeedIfEmpty(members) {
		logger.Info("seeded membership directory",
			zap.String("admin_username", "admin"))
	}
	return nil
}

func seedClubs() []models.Club {
	mk := func(name, desc string) models.Club {
		return models.Club{
			ID:     uuid.NewString(),
			Name:   name,
			Desc:   desc,
			Events: []models.ClubEvent{},
		}
	}
	return []models.Club{
		mk("AI Club", "Exploring ML and AI with projects."),
		mk("Photography Club", "Capturing stories with light."),
		mk("Literary Society", "Writing, readings, and meetups."),
	}
}

func seedEvents() []models.Event {
	mk := func(title, date, desc string) models.Event {
		return models.Event{ID: uuid.NewString(), Title: title, Date: date, Desc: desc}
	}
	return []models.Event{
		mk("Tech Talk", "2025-09-21", "Trends in AI and mobile."),
		mk("Hackathon", "2025-10-05", "Build fast, learn faster."),
		mk("Design Sprint", "2025-10-12", "Rapid prototyping workshop."),
	}
}

// seedMembers builds the demo accounts. The leader and member belong to
// the first two seeded clubs.
func seedMembers(clubs []models.Club) ([]models.Member, error) {
	type account struct {
		name     string
		username string
		email    string
		password string
		role     models.Role
		clubID   string
	}

	accounts := []account{
		{"System Admin", "admin", "admin@campus.edu", "admin", models.RoleAdmin, ""},
		{"Alex Leader", "ailead", "leader@aiclub.edu", "leader123", models.RoleLeader, clubs[0].ID},
		{"Jamie Photo", "photofan", "jamie@photo.edu", "member123", models.RoleMember, clubs[1].ID},
	}

	now := time.Now().UTC()
	out := make([]models.Member, 0, len(accounts))
	for _, a := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash seed password for %q: %w", a.username, err)
		}
		out = append(out, models.Member{
			ID:           uuid.NewString(),
			Name:         a.name,
			Username:     a.username,
			Email:        a.email,
			PasswordHash: string(hash),
			Role:         a.role,
			Status:       models.StatusApproved,
			ClubID:       a.clubID,
			CreatedAt:    now,
		})
	}
	return out, nil
}
