package application

import (
	"context"
	"errors"

	"github.com/oksasatya/timbr/internal/domain/entity"
	repo "github.com/oksasatya/timbr/internal/domain/repository"
)

type AgentService struct {
	Profiles repo.ProfileRepository
}

func NewAgentService(profiles repo.ProfileRepository) *AgentService {
	return &AgentService{Profiles: profiles}
}

// Get loads the public agent page: profile, user and all listings.
func (s *AgentService) Get(ctx context.Context, id string) (*entity.AgentDetail, error) {
	d, err := s.Profiles.AgentDetail(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) || errors.Is(err, repo.ErrMalformed) {
			return nil, ErrAgentNotFound
		}
		return nil, err
	}
	return d, nil
}
