package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/polkiloo/pontobip/internal/config"
	domainErrors "github.com/polkiloo/pontobip/internal/domain/errors"
	"github.com/polkiloo/pontobip/internal/domain/model"
	testhelpers "github.com/polkiloo/pontobip/internal/test"
)

func testConfig() *config.Config {
	cfg := &config.Config{RewardPerPoint: 5}
	cfg.Avatar.DefaultURL = "/avatars/default.png"
	cfg.Avatar.MaxBytes = 1024
	return cfg
}

func newAuthUseCase(repo *testhelpers.UserRepositoryStub, sessions *testhelpers.SessionStoreStub, hasher testhelpers.HasherStub) *AuthUseCase {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewAuthUseCase(repo, hasher, testhelpers.StrategyStub{}, sessions, testConfig(), logger)
}

func TestAuthUseCaseRegisterSuccess(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := newAuthUseCase(repo, testhelpers.NewSessionStoreStub(), testhelpers.HasherStub{})

	ctx := context.Background()
	user, err := uc.Register(ctx, RegisterInput{Name: " Ana ", Login: " 123 ", Password: "x"})
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected user to have ID assigned")
	}
	stored, err := repo.GetByLogin(ctx, "123")
	if err != nil {
		t.Fatalf("expected user in repository: %v", err)
	}
	if stored.Name != "Ana" || stored.PasswordHash != "hash:x" {
		t.Fatalf("unexpected stored user: %+v", stored)
	}
	if stored.Role != model.RoleCollaborator || stored.Balance != 0 {
		t.Fatalf("expected collaborator with zero balance, got %+v", stored)
	}
	if stored.AvatarURL != "/avatars/default.png" {
		t.Fatalf("expected default avatar, got %q", stored.AvatarURL)
	}
}

func TestAuthUseCaseRegisterValidation(t *testing.T) {
	uc := newAuthUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.NewSessionStoreStub(), testhelpers.HasherStub{})

	cases := []RegisterInput{
		{Login: "1", Password: "x"},
		{Name: "Ana", Password: "x"},
		{Name: "Ana", Login: "1"},
		{Name: "   ", Login: "1", Password: "x"},
		{Name: "Ana", Login: "1", Password: "  "},
	}
	for _, in := range cases {
		if _, err := uc.Register(context.Background(), in); !errors.Is(err, domainErrors.ErrInvalidInput) {
			t.Fatalf("expected invalid input for %+v, got %v", in, err)
		}
	}
}

func TestAuthUseCaseRegisterDuplicate(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := newAuthUseCase(repo, testhelpers.NewSessionStoreStub(), testhelpers.HasherStub{})

	ctx := context.Background()
	first, err := uc.Register(ctx, RegisterInput{Name: "Bob", Login: "bob", Password: "secret"})
	if err != nil {
		t.Fatalf("unexpected error on first register: %v", err)
	}
	if _, err := uc.Register(ctx, RegisterInput{Name: "Other", Login: "bob", Password: "other"}); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	stored, _ := repo.GetByLogin(ctx, "bob")
	if stored.ID != first.ID || stored.Name != "Bob" {
		t.Fatalf("store changed by duplicate: %+v", stored)
	}
}

func TestAuthUseCaseRegisterHasherError(t *testing.T) {
	hashErr := errors.New("hash failed")
	uc := newAuthUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.NewSessionStoreStub(), testhelpers.HasherStub{
		HashFn: func(string) (string, error) { return "", hashErr },
	})
	if _, err := uc.Register(context.Background(), RegisterInput{Name: "A", Login: "a", Password: "p"}); !errors.Is(err, hashErr) {
		t.Fatalf("expected hasher error, got %v", err)
	}
}

func TestAuthUseCaseAuthenticate(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := newAuthUseCase(repo, testhelpers.NewSessionStoreStub(), testhelpers.HasherStub{})

	ctx := context.Background()
	if _, err := uc.Register(ctx, RegisterInput{Name: "Carol", Login: "carol", Password: "123456"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := uc.Authenticate(ctx, "carol", "bad"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
	if _, err := uc.Authenticate(ctx, "nobody", "123456"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown login, got %v", err)
	}
	if _, err := uc.Authenticate(ctx, " ", "123456"); !errors.Is(err, domainErrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}

	user, err := uc.Authenticate(ctx, " carol ", "123456")
	if err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
	if user.Login != "carol" {
		t.Fatalf("unexpected user %+v", user)
	}
}

func TestAuthUseCaseAuthenticateRepositoryError(t *testing.T) {
	repoErr := errors.New("db down")
	repo := testhelpers.NewUserRepositoryStub()
	repo.Err = repoErr
	uc := newAuthUseCase(repo, testhelpers.NewSessionStoreStub(), testhelpers.HasherStub{})

	if _, err := uc.Authenticate(context.Background(), "carol", "x"); !errors.Is(err, repoErr) {
		t.Fatalf("expected repository error, got %v", err)
	}
}

func TestAuthUseCaseAuthenticateRehashes(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	repo.Put(model.User{ID: "u1", Name: "Dan", Login: "dan", PasswordHash: "old:pw", Role: model.RoleCollaborator})
	hasher := testhelpers.HasherStub{
		CompareFn: func(hash, password string) error {
			if hash == "old:"+password || hash == "hash:"+password {
				return nil
			}
			return errors.New("mismatch")
		},
		NeedsRehashFn: func(hash string) bool { return hash == "old:pw" },
	}
	uc := newAuthUseCase(repo, testhelpers.NewSessionStoreStub(), hasher)

	if _, err := uc.Authenticate(context.Background(), "dan", "pw"); err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
	if repo.Updated["u1"] != "hash:pw" {
		t.Fatalf("expected hash upgrade, got %q", repo.Updated["u1"])
	}
}

func TestAuthUseCaseLoginAndResolveSession(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	sessions := testhelpers.NewSessionStoreStub()
	uc := newAuthUseCase(repo, sessions, testhelpers.HasherStub{})

	ctx := context.Background()
	registered, err := uc.Register(ctx, RegisterInput{Name: "Eve", Login: "eve@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, token, err := uc.Login(ctx, "eve@example.com", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != registered.ID || token != "token:s1" {
		t.Fatalf("unexpected login result %+v %q", user, token)
	}

	sess, err := uc.ResolveSession(ctx, token)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if sess.UserID != registered.ID || sess.Role != model.RoleCollaborator {
		t.Fatalf("unexpected session %+v", sess)
	}

	if err := uc.Logout(ctx, token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := uc.ResolveSession(ctx, token); !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized after logout, got %v", err)
	}
	if err := uc.Logout(ctx, token); err != nil {
		t.Fatalf("second logout must be a no-op, got %v", err)
	}
}

func TestAuthUseCaseLoginSessionError(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	sessions := testhelpers.NewSessionStoreStub()
	sessions.CreateErr = errors.New("redis down")
	uc := newAuthUseCase(repo, sessions, testhelpers.HasherStub{})

	ctx := context.Background()
	if _, err := uc.Register(ctx, RegisterInput{Name: "F", Login: "f", Password: "pw"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, err := uc.Login(ctx, "f", "pw"); !errors.Is(err, sessions.CreateErr) {
		t.Fatalf("expected session error, got %v", err)
	}
}

func TestAuthUseCaseResolveSessionRejects(t *testing.T) {
	sessions := testhelpers.NewSessionStoreStub()
	uc := newAuthUseCase(testhelpers.NewUserRepositoryStub(), sessions, testhelpers.HasherStub{})
	ctx := context.Background()

	for _, token := range []string{"", "garbage", "token:missing"} {
		if _, err := uc.ResolveSession(ctx, token); !errors.Is(err, domainErrors.ErrUnauthorized) {
			t.Fatalf("expected unauthorized for %q, got %v", token, err)
		}
	}

	lookupErr := errors.New("lookup failed")
	sessions.LookupErr = lookupErr
	if _, err := uc.ResolveSession(ctx, "token:s1"); !errors.Is(err, lookupErr) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestAuthUseCaseLogoutIgnoresInvalidTokens(t *testing.T) {
	sessions := testhelpers.NewSessionStoreStub()
	uc := newAuthUseCase(testhelpers.NewUserRepositoryStub(), sessions, testhelpers.HasherStub{})

	if err := uc.Logout(context.Background(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := uc.Logout(context.Background(), "garbage"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions.Destroyed) != 0 {
		t.Fatalf("expected no destroy calls, got %v", sessions.Destroyed)
	}
}

func TestAuthUseCaseChangePassword(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := newAuthUseCase(repo, testhelpers.NewSessionStoreStub(), testhelpers.HasherStub{})
	ctx := context.Background()

	user, err := uc.Register(ctx, RegisterInput{Name: "Gil", Login: "gil", Password: "old"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := uc.ChangePassword(ctx, user.ID, "wrong", "new"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if err := uc.ChangePassword(ctx, user.ID, "old", " "); !errors.Is(err, domainErrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if err := uc.ChangePassword(ctx, "missing", "old", "new"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := uc.ChangePassword(ctx, user.ID, "old", "new"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	if _, err := uc.Authenticate(ctx, "gil", "new"); err != nil {
		t.Fatalf("expected new password to work: %v", err)
	}
}

func TestAuthUseCaseProfile(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	repo.Put(model.User{ID: "u9", Name: "Hana", Login: "hana", Balance: 10, Role: model.RoleManager})
	uc := newAuthUseCase(repo, testhelpers.NewSessionStoreStub(), testhelpers.HasherStub{})

	user, err := uc.Profile(context.Background(), "u9")
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if user.Name != "Hana" || user.Balance != 10 {
		t.Fatalf("unexpected profile %+v", user)
	}
	if _, err := uc.Profile(context.Background(), "nope"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAuthUseCaseEnsureAdmin(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := newAuthUseCase(repo, testhelpers.NewSessionStoreStub(), testhelpers.HasherStub{})
	ctx := context.Background()

	created, err := uc.EnsureAdmin(ctx, RegisterInput{})
	if err != nil || created {
		t.Fatalf("expected no-op without login, got %v %v", created, err)
	}

	in := RegisterInput{Name: "Administrador", Login: "admin", Password: "root"}
	created, err = uc.EnsureAdmin(ctx, in)
	if err != nil || !created {
		t.Fatalf("expected admin creation, got %v %v", created, err)
	}
	admin, err := repo.GetByLogin(ctx, "admin")
	if err != nil || admin.Role != model.RoleAdmin {
		t.Fatalf("expected admin role, got %+v %v", admin, err)
	}

	created, err = uc.EnsureAdmin(ctx, in)
	if err != nil || created {
		t.Fatalf("expected existing admin to be kept, got %v %v", created, err)
	}
}

func TestAuthUseCaseRandomAccountsRoundTrip(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := newAuthUseCase(repo, testhelpers.NewSessionStoreStub(), testhelpers.HasherStub{})
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		login := fmt.Sprintf("%d-%s", i, testhelpers.RandomASCIIString(6, 12))
		password := testhelpers.RandomASCIIString(8, 16)

		created, err := uc.Register(ctx, RegisterInput{Name: "User " + login, Login: login, Password: password})
		if err != nil {
			t.Fatalf("register %s: %v", login, err)
		}

		user, token, err := uc.Login(ctx, login, password)
		if err != nil {
			t.Fatalf("login %s: %v", login, err)
		}
		if user.ID != created.ID {
			t.Fatalf("login %s resolved to %s, want %s", login, user.ID, created.ID)
		}

		sess, err := uc.ResolveSession(ctx, token)
		if err != nil {
			t.Fatalf("resolve session for %s: %v", login, err)
		}
		if sess.UserID != created.ID {
			t.Fatalf("session bound to %s, want %s", sess.UserID, created.ID)
		}
	}
}

func TestAuthUseCaseUnknownLoginRunsComparison(t *testing.T) {
	var hashed int
	var compared []string
	hasher := testhelpers.HasherStub{
		HashFn: func(password string) (string, error) {
			hashed++
			return "hash:" + password, nil
		},
		CompareFn: func(hash, _ string) error {
			compared = append(compared, hash)
			return errors.New("mismatch")
		},
	}
	uc := newAuthUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.NewSessionStoreStub(), hasher)

	for i := 0; i < 2; i++ {
		if _, err := uc.Authenticate(context.Background(), "ghost", "pw"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
			t.Fatalf("expected invalid credentials, got %v", err)
		}
	}
	if hashed != 1 {
		t.Fatalf("expected the placeholder hash to be built once, got %d", hashed)
	}
	if len(compared) != 2 || compared[0] != "hash:"+dummyPassword || compared[1] != compared[0] {
		t.Fatalf("expected a comparison per unknown login, got %v", compared)
	}
}

func TestAuthUseCaseResolveSessionFollowsUserRecord(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	sessions := testhelpers.NewSessionStoreStub()
	uc := newAuthUseCase(repo, sessions, testhelpers.HasherStub{})
	ctx := context.Background()

	user, err := uc.Register(ctx, RegisterInput{Name: "Ivo", Login: "ivo", Password: "pw"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	_, token, err := uc.Login(ctx, "ivo", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	promoted := *user
	promoted.Role = model.RoleManager
	repo.Put(promoted)
	sess, err := uc.ResolveSession(ctx, token)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if sess.Role != model.RoleManager {
		t.Fatalf("expected role from user record, got %s", sess.Role)
	}

	repoErr := errors.New("db down")
	repo.Err = repoErr
	if _, err := uc.ResolveSession(ctx, token); !errors.Is(err, repoErr) {
		t.Fatalf("expected repository error, got %v", err)
	}
	repo.Err = nil

	if err := repo.DeleteByRole(ctx, user.ID, model.RoleManager); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := uc.ResolveSession(ctx, token); !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for deleted user, got %v", err)
	}
	if len(sessions.Destroyed) != 1 || sessions.Destroyed[0] != "s1" {
		t.Fatalf("expected orphaned session to be destroyed, got %v", sessions.Destroyed)
	}
}
