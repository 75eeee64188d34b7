package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/polkiloo/pontobip/internal/config"
	domainErrors "github.com/polkiloo/pontobip/internal/domain/errors"
	"github.com/polkiloo/pontobip/internal/domain/model"
	"github.com/polkiloo/pontobip/internal/metrics"
	testhelpers "github.com/polkiloo/pontobip/internal/test"
	"github.com/polkiloo/pontobip/internal/usecase"
)

func newFacade() (*AttendanceFacade, *testhelpers.FactoryStub) {
	factory := testhelpers.NewFactoryStub()
	cfg := &config.Config{RewardPerPoint: 5}
	cfg.Avatar.DefaultURL = "/avatars/default.png"
	cfg.Avatar.MaxBytes = 4096
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	hasher := testhelpers.HasherStub{}

	sessions := testhelpers.NewSessionStoreStub()
	authUC := usecase.NewAuthUseCase(factory.UsersRepo, hasher, testhelpers.StrategyStub{}, sessions, cfg, logger)
	pointUC := usecase.NewPointUseCase(factory.PointsRepo, factory.UsersRepo, cfg)
	rankingUC := usecase.NewRankingUseCase(factory.RankingsRepo, factory.PointsRepo, logger)
	avatarUC := usecase.NewAvatarUseCase(factory.UsersRepo, &testhelpers.AvatarStoreStub{}, cfg)
	managementUC := usecase.NewManagementUseCase(factory.UsersRepo, hasher, sessions, cfg, logger)
	catalogUC := usecase.NewCatalogUseCase(factory.CampaignsRepo, factory.RewardsRepo)

	facade := NewAttendanceFacade(authUC, pointUC, rankingUC, avatarUC, managementUC, catalogUC, factory)
	return facade, factory
}

func TestAttendanceFacadeAuth(t *testing.T) {
	facade, factory := newFacade()
	ctx := context.Background()

	user, err := facade.Register(ctx, "Ana", "123", "x")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if _, err := factory.UsersRepo.GetByLogin(ctx, "123"); err != nil {
		t.Fatalf("user not stored: %v", err)
	}

	logged, token, err := facade.Login(ctx, "123", "x")
	if err != nil {
		t.Fatalf("login returned error: %v", err)
	}
	if logged.ID != user.ID || token == "" {
		t.Fatalf("unexpected login result %+v %q", logged, token)
	}

	sess, err := facade.ResolveSession(ctx, token)
	if err != nil || sess.UserID != user.ID {
		t.Fatalf("unexpected session %+v %v", sess, err)
	}

	if err := facade.ChangePassword(ctx, user.ID, "x", "y"); err != nil {
		t.Fatalf("change password returned error: %v", err)
	}
	if _, _, err := facade.Login(ctx, "123", "x"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("old password must be rejected, got %v", err)
	}

	if err := facade.Logout(ctx, token); err != nil {
		t.Fatalf("logout returned error: %v", err)
	}
	if _, err := facade.ResolveSession(ctx, token); !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized after logout, got %v", err)
	}

	profile, err := facade.Profile(ctx, user.ID)
	if err != nil || profile.Name != "Ana" {
		t.Fatalf("unexpected profile %+v %v", profile, err)
	}

	created, err := facade.EnsureAdmin(ctx, "Administrador", "admin", "root")
	if err != nil || !created {
		t.Fatalf("expected admin to be created, got %v %v", created, err)
	}
}

func TestAttendanceFacadePoints(t *testing.T) {
	facade, factory := newFacade()
	ctx := context.Background()
	factory.UsersRepo.Put(model.User{ID: "u1", Name: "Ana", Login: "123", Role: model.RoleCollaborator})

	clockIn, err := facade.RegisterPoint(ctx, "u1")
	if err != nil {
		t.Fatalf("register point returned error: %v", err)
	}
	if clockIn.Balance != 5 || clockIn.Event.Amount != 5 {
		t.Fatalf("unexpected clock-in %+v", clockIn)
	}

	balance, err := facade.Balance(ctx, "u1")
	if err != nil || balance != 5 {
		t.Fatalf("unexpected balance %d %v", balance, err)
	}

	history, err := facade.History(ctx, "u1")
	if err != nil || len(history) != 1 {
		t.Fatalf("unexpected history %+v %v", history, err)
	}
	if _, err := facade.History(ctx, "ghost"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAttendanceFacadeRanking(t *testing.T) {
	facade, factory := newFacade()
	ctx := context.Background()
	factory.RankingsRepo.Entries = []model.RankingEntry{
		{UserID: "a", Balance: 9}, {UserID: "b", Balance: 7}, {UserID: "c", Balance: 5}, {UserID: "d", Balance: 1},
	}
	factory.PointsRepo.Balances["a"] = 9

	all, err := facade.Ranking(ctx, 0)
	if err != nil || len(all) != 4 {
		t.Fatalf("unexpected ranking %+v %v", all, err)
	}
	top, err := facade.Top3(ctx)
	if err != nil || len(top) != 3 {
		t.Fatalf("unexpected podium %+v %v", top, err)
	}

	affected, err := facade.ResetRanking(ctx, metrics.TriggerManual)
	if err != nil || affected != 1 {
		t.Fatalf("unexpected reset result %d %v", affected, err)
	}
}

func TestAttendanceFacadeAvatar(t *testing.T) {
	facade, factory := newFacade()
	ctx := context.Background()
	factory.UsersRepo.Put(model.User{ID: "u1", Name: "Ana", Login: "123"})
	gif := []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;")

	url, err := facade.UploadAvatar(ctx, "u1", gif)
	if err != nil || url != "/avatars/u1.gif" {
		t.Fatalf("unexpected upload result %q %v", url, err)
	}
	if _, err := facade.UploadAvatarBase64(ctx, "u1", "%%%"); !errors.Is(err, domainErrors.ErrUnsupportedImage) {
		t.Fatalf("expected unsupported image, got %v", err)
	}
	if facade.AvatarMaxBytes() != 4096 {
		t.Fatalf("unexpected max bytes %d", facade.AvatarMaxBytes())
	}
}

func TestAttendanceFacadeManagementAndCatalog(t *testing.T) {
	facade, _ := newFacade()
	ctx := context.Background()

	manager, err := facade.CreateManager(ctx, "Gestora", "g1", "pw")
	if err != nil || manager.Role != model.RoleManager {
		t.Fatalf("unexpected manager %+v %v", manager, err)
	}
	managers, err := facade.Managers(ctx)
	if err != nil || len(managers) != 1 {
		t.Fatalf("unexpected managers %+v %v", managers, err)
	}
	if err := facade.DeleteManager(ctx, manager.ID); err != nil {
		t.Fatalf("delete manager returned error: %v", err)
	}

	if _, err := facade.CreateCampaign(ctx, "", "Quiz", []string{"Q1"}); err != nil {
		t.Fatalf("create campaign returned error: %v", err)
	}
	campaigns, err := facade.Campaigns(ctx)
	if err != nil || len(campaigns) != 1 || campaigns[0].Type != usecase.DefaultCampaignType {
		t.Fatalf("unexpected campaigns %+v %v", campaigns, err)
	}

	rewards, err := facade.ReplaceRewards(ctx, []model.Reward{{Name: "Caneca", Quantity: 2}})
	if err != nil || len(rewards) != 1 {
		t.Fatalf("unexpected rewards %+v %v", rewards, err)
	}
	listed, err := facade.Rewards(ctx)
	if err != nil || len(listed) != 1 || listed[0].Name != "Caneca" {
		t.Fatalf("unexpected reward list %+v %v", listed, err)
	}
}

func TestAttendanceFacadeHealthCheck(t *testing.T) {
	facade, factory := newFacade()
	if err := facade.HealthCheck(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	factory.HealthErr = errors.New("down")
	if err := facade.HealthCheck(context.Background()); err == nil {
		t.Fatal("expected health error")
	}
}
