package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	domainErrors "github.com/polkiloo/pontobip/internal/domain/errors"
	"github.com/polkiloo/pontobip/internal/domain/model"
	testhelpers "github.com/polkiloo/pontobip/internal/test"
)

func newPointFixture(ids ...string) (*PointUseCase, *testhelpers.PointRepositoryStub) {
	users := testhelpers.NewUserRepositoryStub()
	points := testhelpers.NewPointRepositoryStub()
	points.Known = make(map[string]bool)
	for _, id := range ids {
		users.Put(model.User{ID: id, Name: id, Login: id, Role: model.RoleCollaborator})
		points.Known[id] = true
	}
	uc := NewPointUseCase(points, users, testConfig())
	uc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return uc, points
}

func TestPointUseCaseRegister(t *testing.T) {
	uc, _ := newPointFixture("ana")
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		clockIn, err := uc.Register(ctx, "ana")
		if err != nil {
			t.Fatalf("register %d failed: %v", i, err)
		}
		if clockIn.Event.Amount != 5 {
			t.Fatalf("expected amount 5, got %d", clockIn.Event.Amount)
		}
		if clockIn.Balance != int64(5*i) {
			t.Fatalf("expected balance %d, got %d", 5*i, clockIn.Balance)
		}
	}

	balance, err := uc.Balance(ctx, "ana")
	if err != nil || balance != 15 {
		t.Fatalf("expected balance 15, got %d %v", balance, err)
	}

	history, err := uc.History(ctx, "ana")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 events, got %d", len(history))
	}
	if history[0].ID < history[len(history)-1].ID {
		t.Fatalf("expected newest first, got %+v", history)
	}
}

func TestPointUseCaseRegisterValidation(t *testing.T) {
	uc, _ := newPointFixture()
	if _, err := uc.Register(context.Background(), "  "); !errors.Is(err, domainErrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := uc.Register(context.Background(), "ghost"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPointUseCaseRegisterUsesConfiguredReward(t *testing.T) {
	uc, points := newPointFixture("bia")
	uc.reward = 7

	if _, err := uc.Register(context.Background(), "bia"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if points.Balances["bia"] != 7 || uc.Reward() != 7 {
		t.Fatalf("expected reward 7 credited, got %d", points.Balances["bia"])
	}
	if !points.Events[0].RecordedAt.Equal(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected injected clock to be used, got %v", points.Events[0].RecordedAt)
	}
}

func TestPointUseCaseConcurrentRegister(t *testing.T) {
	uc, _ := newPointFixture("ana")
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := uc.Register(ctx, "ana"); err != nil {
				t.Errorf("register failed: %v", err)
			}
		}()
	}
	wg.Wait()

	balance, err := uc.Balance(ctx, "ana")
	if err != nil || balance != 250 {
		t.Fatalf("expected 250, got %d %v", balance, err)
	}
}

func TestPointUseCaseHistoryUnknownUser(t *testing.T) {
	uc, _ := newPointFixture()
	if _, err := uc.History(context.Background(), "ghost"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := uc.Balance(context.Background(), "ghost"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPointUseCaseHistoryEmpty(t *testing.T) {
	uc, _ := newPointFixture("new")
	history, err := uc.History(context.Background(), "new")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if history == nil || len(history) != 0 {
		t.Fatalf("expected empty non-nil history, got %#v", history)
	}
}

func TestPointUseCasePropagatesRepositoryError(t *testing.T) {
	uc, points := newPointFixture("ana")
	repoErr := errors.New("locked")
	points.RegisterFn = func(context.Context, string, int64, time.Time) (*model.ClockIn, error) {
		return nil, repoErr
	}
	if _, err := uc.Register(context.Background(), "ana"); !errors.Is(err, repoErr) {
		t.Fatalf("expected repository error, got %v", err)
	}
}
