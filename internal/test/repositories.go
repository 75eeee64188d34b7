package test

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/pontobip/internal/domain/errors"
	"github.com/polkiloo/pontobip/internal/domain/model"
	"github.com/polkiloo/pontobip/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	mu      sync.Mutex
	Users   map[string]*model.User
	ByID    map[string]*model.User
	Next    int
	Err     error
	Updated map[string]string
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users:   make(map[string]*model.User),
		ByID:    make(map[string]*model.User),
		Updated: make(map[string]string),
	}
}

func (s *UserRepositoryStub) init() {
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[string]*model.User)
	}
	if s.Updated == nil {
		s.Updated = make(map[string]string)
	}
}

// Create registers user unless the login is taken or stub has explicit error.
func (s *UserRepositoryStub) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.init()
	if _, exists := s.Users[user.Login]; exists {
		return domainErrors.ErrAlreadyExists
	}
	s.Next++
	if user.ID == "" {
		user.ID = "u" + strconv.Itoa(s.Next)
	}
	if user.Role == "" {
		user.Role = model.DefaultRole
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	}
	stored := *user
	s.Users[user.Login] = &stored
	s.ByID[user.ID] = &stored
	return nil
}

// Put stores the user as is, bypassing uniqueness checks.
func (s *UserRepositoryStub) Put(user model.User) *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.init()
	stored := user
	s.Users[user.Login] = &stored
	s.ByID[user.ID] = &stored
	return &stored
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(_ context.Context, login string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(_ context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// UpdateAvatar stores the avatar url.
func (s *UserRepositoryStub) UpdateAvatar(_ context.Context, id, avatarURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.AvatarURL = avatarURL
	return nil
}

// UpdatePasswordHash stores the new hash and records the call.
func (s *UserRepositoryStub) UpdatePasswordHash(_ context.Context, id, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.init()
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.PasswordHash = passwordHash
	s.Updated[id] = passwordHash
	return nil
}

// ListByRole returns users of the role ordered by name.
func (s *UserRepositoryStub) ListByRole(_ context.Context, role model.Role) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	users := make([]model.User, 0)
	for _, u := range s.ByID {
		if u.Role == role {
			users = append(users, *u)
		}
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].Name == users[j].Name {
			return users[i].ID < users[j].ID
		}
		return users[i].Name < users[j].Name
	})
	return users, nil
}

// DeleteByRole removes the user only when it has the role.
func (s *UserRepositoryStub) DeleteByRole(_ context.Context, id string, role model.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[id]
	if !ok || user.Role != role {
		return domainErrors.ErrNotFound
	}
	delete(s.ByID, id)
	delete(s.Users, user.Login)
	return nil
}

// PointRepositoryStub keeps events and balances in memory. Fn fields override defaults.
type PointRepositoryStub struct {
	mu       sync.Mutex
	Events   []model.PointEvent
	Balances map[string]int64
	// Known restricts Register to listed user ids when non-nil.
	Known map[string]bool

	RegisterFn func(context.Context, string, int64, time.Time) (*model.ClockIn, error)
	ListFn     func(context.Context, string) ([]model.PointEvent, error)
	BalanceFn  func(context.Context, string) (int64, error)
	ResetFn    func(context.Context) (int64, error)
}

// NewPointRepositoryStub constructs stub repository with initialized maps.
func NewPointRepositoryStub() *PointRepositoryStub {
	return &PointRepositoryStub{Balances: make(map[string]int64)}
}

// Register appends an event and credits the balance.
func (s *PointRepositoryStub) Register(ctx context.Context, userID string, amount int64, at time.Time) (*model.ClockIn, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, userID, amount, at)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Known != nil && !s.Known[userID] {
		return nil, domainErrors.ErrNotFound
	}
	if s.Balances == nil {
		s.Balances = make(map[string]int64)
	}
	event := model.PointEvent{ID: int64(len(s.Events) + 1), UserID: userID, Amount: amount, RecordedAt: at.UTC()}
	s.Events = append(s.Events, event)
	s.Balances[userID] += amount
	return &model.ClockIn{Event: event, Balance: s.Balances[userID]}, nil
}

// ListByUser returns events newest first.
func (s *PointRepositoryStub) ListByUser(ctx context.Context, userID string) ([]model.PointEvent, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, userID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	events := make([]model.PointEvent, 0)
	for i := len(s.Events) - 1; i >= 0; i-- {
		if s.Events[i].UserID == userID {
			events = append(events, s.Events[i])
		}
	}
	return events, nil
}

// Balance returns the stored balance.
func (s *PointRepositoryStub) Balance(ctx context.Context, userID string) (int64, error) {
	if s.BalanceFn != nil {
		return s.BalanceFn(ctx, userID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Known != nil && !s.Known[userID] {
		return 0, domainErrors.ErrNotFound
	}
	return s.Balances[userID], nil
}

// ResetBalances zeroes every non-zero balance.
func (s *PointRepositoryStub) ResetBalances(ctx context.Context) (int64, error) {
	if s.ResetFn != nil {
		return s.ResetFn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var affected int64
	for id, balance := range s.Balances {
		if balance != 0 {
			s.Balances[id] = 0
			affected++
		}
	}
	return affected, nil
}

// RankingRepositoryStub returns configured entries and records requested limits.
type RankingRepositoryStub struct {
	mu      sync.Mutex
	Entries []model.RankingEntry
	Limits  []int
	Err     error
}

// Top returns at most limit entries.
func (s *RankingRepositoryStub) Top(_ context.Context, limit int) ([]model.RankingEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Limits = append(s.Limits, limit)
	if s.Err != nil {
		return nil, s.Err
	}
	entries := append([]model.RankingEntry(nil), s.Entries...)
	if entries == nil {
		entries = []model.RankingEntry{}
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// CampaignRepositoryStub stores campaigns in memory, newest first.
type CampaignRepositoryStub struct {
	mu        sync.Mutex
	Campaigns []model.Campaign
	Err       error
}

// Create assigns an id and stores the campaign.
func (s *CampaignRepositoryStub) Create(_ context.Context, campaign *model.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	campaign.ID = int64(len(s.Campaigns) + 1)
	if campaign.CreatedAt.IsZero() {
		campaign.CreatedAt = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	}
	s.Campaigns = append([]model.Campaign{*campaign}, s.Campaigns...)
	return nil
}

// List returns stored campaigns.
func (s *CampaignRepositoryStub) List(context.Context) ([]model.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]model.Campaign{}, s.Campaigns...), nil
}

// RewardRepositoryStub stores the reward catalog in memory.
type RewardRepositoryStub struct {
	mu      sync.Mutex
	Rewards []model.Reward
	Err     error
}

// List returns the catalog.
func (s *RewardRepositoryStub) List(context.Context) ([]model.Reward, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]model.Reward{}, s.Rewards...), nil
}

// ReplaceAll swaps the catalog and assigns sequential ids.
func (s *RewardRepositoryStub) ReplaceAll(_ context.Context, rewards []model.Reward) ([]model.Reward, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	stored := make([]model.Reward, len(rewards))
	for i, r := range rewards {
		r.ID = int64(i + 1)
		stored[i] = r
	}
	s.Rewards = stored
	return append([]model.Reward{}, stored...), nil
}

// FactoryStub bundles repository stubs behind repository.Factory.
type FactoryStub struct {
	UsersRepo     *UserRepositoryStub
	PointsRepo    *PointRepositoryStub
	RankingsRepo  *RankingRepositoryStub
	CampaignsRepo *CampaignRepositoryStub
	RewardsRepo   *RewardRepositoryStub
	HealthErr     error
	Closed        bool
}

// NewFactoryStub constructs a factory with empty stubs.
func NewFactoryStub() *FactoryStub {
	return &FactoryStub{
		UsersRepo:     NewUserRepositoryStub(),
		PointsRepo:    NewPointRepositoryStub(),
		RankingsRepo:  &RankingRepositoryStub{},
		CampaignsRepo: &CampaignRepositoryStub{},
		RewardsRepo:   &RewardRepositoryStub{},
	}
}

func (f *FactoryStub) Users() repository.UserRepository         { return f.UsersRepo }
func (f *FactoryStub) Points() repository.PointRepository       { return f.PointsRepo }
func (f *FactoryStub) Rankings() repository.RankingRepository   { return f.RankingsRepo }
func (f *FactoryStub) Campaigns() repository.CampaignRepository { return f.CampaignsRepo }
func (f *FactoryStub) Rewards() repository.RewardRepository     { return f.RewardsRepo }

// HealthCheck returns the configured error.
func (f *FactoryStub) HealthCheck(context.Context) error { return f.HealthErr }

// Close marks the factory closed.
func (f *FactoryStub) Close() error {
	f.Closed = true
	return nil
}

var (
	_ repository.UserRepository     = (*UserRepositoryStub)(nil)
	_ repository.PointRepository    = (*PointRepositoryStub)(nil)
	_ repository.RankingRepository  = (*RankingRepositoryStub)(nil)
	_ repository.CampaignRepository = (*CampaignRepositoryStub)(nil)
	_ repository.RewardRepository   = (*RewardRepositoryStub)(nil)
	_ repository.Factory            = (*FactoryStub)(nil)
)
