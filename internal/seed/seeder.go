// Package seed fills a database with synthetic agents, sellers, buyers,
// listings and swipe activity for local development.
package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/oksasatya/timbr/internal/domain/entity"
	"github.com/oksasatya/timbr/internal/domain/repository"
	"github.com/oksasatya/timbr/pkg/helpers"
)

// DefaultPassword is shared by every seeded account.
const DefaultPassword = "password123"

// AgentUpdater writes agent profile metadata after signup.
type AgentUpdater interface {
	UpdateAgent(ctx context.Context, p entity.AgentProfile) error
}

// Store groups the repositories the seeder writes through.
type Store struct {
	Users       repository.UserRepository
	Agents      AgentUpdater
	Preferences repository.PreferenceRepository
	Houses      repository.HouseRepository
	Swipes      repository.SwipeRepository
}

type Options struct {
	Agents      int
	Sellers     int
	Buyers      int
	Houses      int
	MaxSwipes   int // per house, inclusive
	Concurrency int
	Seed        uint64
}

func DefaultOptions() Options {
	return Options{Agents: 20, Sellers: 40, Buyers: 200, Houses: 500, MaxSwipes: 50, Concurrency: 8}
}

// Report counts what was written.
type Report struct {
	Agents          int
	Sellers         int
	Buyers          int
	Houses          int
	Swipes          int
	DuplicateSwipes int
}

type Seeder struct {
	Store  Store
	Logger *logrus.Logger
}

type plannedHouse struct {
	house  entity.House
	swipes []entity.Swipe // HouseID is filled in after the insert
}

// Run creates accounts first, then inserts listings concurrently. Random
// choices are drawn up front so a given Options.Seed always yields the same data.
func (s *Seeder) Run(ctx context.Context, opt Options) (Report, error) {
	var rep Report
	if opt.Concurrency <= 0 {
		opt.Concurrency = 1
	}
	r := rand.New(rand.NewPCG(opt.Seed, opt.Seed^0x9e3779b97f4a7c15))

	hash, err := helpers.HashPassword(DefaultPassword)
	if err != nil {
		return rep, err
	}

	agents, err := s.accounts(ctx, r, entity.RoleAgent, opt.Agents, hash)
	if err != nil {
		return rep, err
	}
	for _, p := range agents {
		a := p.(entity.AgentProfile)
		agentDetails(r, &a)
		if err := s.Store.Agents.UpdateAgent(ctx, a); err != nil {
			return rep, fmt.Errorf("seed agent details: %w", err)
		}
	}
	rep.Agents = len(agents)

	sellers, err := s.accounts(ctx, r, entity.RoleSeller, opt.Sellers, hash)
	if err != nil {
		return rep, err
	}
	rep.Sellers = len(sellers)

	buyers, err := s.accounts(ctx, r, entity.RoleBuyer, opt.Buyers, hash)
	if err != nil {
		return rep, err
	}
	for _, p := range buyers {
		if _, err := s.Store.Preferences.Upsert(ctx, p.ProfileID(), buyerPreferences(r)); err != nil {
			return rep, fmt.Errorf("seed preferences: %w", err)
		}
	}
	rep.Buyers = len(buyers)
	s.Logger.WithFields(logrus.Fields{"agents": rep.Agents, "sellers": rep.Sellers, "buyers": rep.Buyers}).Info("accounts seeded")

	plans := make([]plannedHouse, opt.Houses)
	for i := range plans {
		plans[i] = s.plan(r, opt, agents, sellers, buyers)
	}

	var houses, swipes, dupes atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opt.Concurrency)
	for i := range plans {
		p := &plans[i]
		g.Go(func() error {
			if err := s.Store.Houses.Create(gctx, &p.house); err != nil {
				return fmt.Errorf("seed house: %w", err)
			}
			houses.Add(1)
			for _, sw := range p.swipes {
				sw.HouseID = p.house.ID
				err := s.Store.Swipes.Create(gctx, &sw)
				switch {
				case errors.Is(err, repository.ErrConflict):
					dupes.Add(1)
				case err != nil:
					return fmt.Errorf("seed swipe: %w", err)
				default:
					swipes.Add(1)
				}
			}
			return nil
		})
	}
	err = g.Wait()
	rep.Houses, rep.Swipes, rep.DuplicateSwipes = int(houses.Load()), int(swipes.Load()), int(dupes.Load())
	return rep, err
}

func (s *Seeder) accounts(ctx context.Context, r *rand.Rand, role entity.Role, n int, hash string) ([]entity.Profile, error) {
	out := make([]entity.Profile, 0, n)
	for i := range n {
		u := newUser(r, role, i, hash)
		p, err := s.Store.Users.CreateAccount(ctx, &u)
		if err != nil {
			return nil, fmt.Errorf("seed %s %d: %w", role, i, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// plan draws one listing: an agent with probability 0.7, a seller with 0.6,
// and 0 to MaxSwipes swipes by random buyers.
func (s *Seeder) plan(r *rand.Rand, opt Options, agents, sellers, buyers []entity.Profile) plannedHouse {
	h := newHouse(r)
	if len(agents) > 0 && r.Float64() < 0.7 {
		id := pick(r, agents).ProfileID()
		h.AgentID = &id
	}
	if len(sellers) > 0 && r.Float64() < 0.6 {
		id := pick(r, sellers).ProfileID()
		h.SellerID = &id
	}
	p := plannedHouse{house: h}
	if len(buyers) == 0 || opt.MaxSwipes <= 0 {
		return p
	}
	n := r.IntN(opt.MaxSwipes + 1)
	for range n {
		dir := entity.DirectionLeft
		if r.IntN(2) == 0 {
			dir = entity.DirectionRight
		}
		dwell := between(r, 500, 15000)
		buyer := pick(r, buyers).(entity.BuyerProfile)
		p.swipes = append(p.swipes, entity.Swipe{UserID: buyer.UserID, Direction: dir, DwellMs: &dwell})
	}
	return p
}
