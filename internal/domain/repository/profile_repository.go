package repository

import (
	"context"

	"github.com/oksasatya/timbr/internal/domain/entity"
)

type ProfileRepository interface {
	// ProfileForUser returns the profile variant owned by userID.
	ProfileForUser(ctx context.Context, userID string, role entity.Role) (entity.Profile, error)
	// AgentDetail loads an agent by profile id with its user and listings.
	AgentDetail(ctx context.Context, agentID string) (*entity.AgentDetail, error)
}
