package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"
	"time"

	"filmshelf/internal/models"
	"filmshelf/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "unit-test-secret"

// mockAuthRepo is a lightweight in-test mock for repository.Authorization.
type mockAuthRepo struct {
	CreateUserFn    func(name, username, hash string) (int, error)
	GetByUsernameFn func(username string) (*models.User, error)

	createCalls []struct {
		name     string
		username string
		hash     string
	}
	getCalls []string
}

func (m *mockAuthRepo) CreateUser(_ context.Context, name, username, hash string) (int, error) {
	m.createCalls = append(m.createCalls, struct {
		name     string
		username string
		hash     string
	}{name: name, username: username, hash: hash})
	return m.CreateUserFn(name, username, hash)
}

func (m *mockAuthRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	m.getCalls = append(m.getCalls, username)
	return m.GetByUsernameFn(username)
}

func newTestAuthService(repo *mockAuthRepo) *AuthService {
	return NewAuthService(repo, testSecret, time.Hour)
}

// --- Register tests ---

func TestAuthService_Register_HashesPasswordAndCallsRepo(t *testing.T) {
	mock := &mockAuthRepo{
		CreateUserFn: func(name, username, hash string) (int, error) {
			return 42, nil
		},
	}
	svc := newTestAuthService(mock)

	id, err := svc.Register(context.Background(), "Ann", "ann", "secret1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected id 42, got %d", id)
	}

	if len(mock.createCalls) != 1 {
		t.Fatalf("expected 1 CreateUser call, got %d", len(mock.createCalls))
	}
	call := mock.createCalls[0]
	if call.hash == "secret1" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(call.hash), []byte("secret1")); err != nil {
		t.Fatalf("stored hash does not verify against password: %v", err)
	}
}

func TestAuthService_Register_BlankFieldsRejected(t *testing.T) {
	svc := newTestAuthService(&mockAuthRepo{
		CreateUserFn: func(name, username, hash string) (int, error) {
			t.Fatal("CreateUser must not be called for invalid input")
			return 0, nil
		},
	})

	cases := []struct {
		name     string
		fullName string
		username string
		password string
	}{
		{"empty name", "", "ann", "secret1"},
		{"empty username", "Ann", "", "secret1"},
		{"empty password", "Ann", "ann", ""},
		{"whitespace password", "Ann", "ann", "   "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.fullName, tc.username, tc.password)
			if !IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	svc := newTestAuthService(&mockAuthRepo{
		CreateUserFn: func(name, username, hash string) (int, error) {
			return 0, repository.ErrConflict
		},
	})

	_, err := svc.Register(context.Background(), "Ann", "ann", "secret1")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

// --- GenerateToken tests ---

func TestAuthService_GenerateToken_UnknownUserAndWrongPasswordLookTheSame(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	unknown := newTestAuthService(&mockAuthRepo{
		GetByUsernameFn: func(username string) (*models.User, error) { return nil, nil },
	})
	wrongPw := newTestAuthService(&mockAuthRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			return &models.User{ID: 1, Username: "ann", PasswordHash: string(hash)}, nil
		},
	})

	_, errUnknown := unknown.GenerateToken(context.Background(), "ghost", "whatever")
	_, errWrong := wrongPw.GenerateToken(context.Background(), "ann", "wrong")

	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", errUnknown)
	}
	if !errors.Is(errWrong, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrong)
	}
	if errUnknown.Error() != errWrong.Error() {
		t.Fatalf("the two failures must be indistinguishable: %q vs %q", errUnknown, errWrong)
	}
}

func TestAuthService_GenerateToken_BlankCredentialsRejected(t *testing.T) {
	svc := newTestAuthService(&mockAuthRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			t.Fatal("repo must not be called for blank credentials")
			return nil, nil
		},
	})
	_, err := svc.GenerateToken(context.Background(), "", "")
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	svc := newTestAuthService(&mockAuthRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			return &models.User{ID: 1, Username: "ann", PasswordHash: string(hash)}, nil
		},
	})

	token, err := svc.GenerateToken(context.Background(), "ann", "secret1")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	username, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if username != "ann" {
		t.Fatalf("expected username ann, got %q", username)
	}
}

// --- ParseToken tests ---

func signTestToken(t *testing.T, secret string, username string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(exp.Add(-time.Hour)),
		},
		Username: username,
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}
	return signed
}

func TestAuthService_ParseToken_RejectsExpired(t *testing.T) {
	svc := newTestAuthService(&mockAuthRepo{})
	expired := signTestToken(t, testSecret, "ann", time.Now().Add(-time.Minute))

	if _, err := svc.ParseToken(expired); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestAuthService_ParseToken_RejectsWrongSecret(t *testing.T) {
	svc := newTestAuthService(&mockAuthRepo{})
	forged := signTestToken(t, "some-other-secret", "ann", time.Now().Add(time.Hour))

	if _, err := svc.ParseToken(forged); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
}

func TestAuthService_ParseToken_RejectsForeignAlgorithm(t *testing.T) {
	// An RS256 token must not pass even with valid structure: the keyfunc
	// only accepts HMAC.
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate rsa key: %v", err)
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Username: "ann",
	})
	signed, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("sign rsa token: %v", err)
	}

	svc := newTestAuthService(&mockAuthRepo{})
	if _, err := svc.ParseToken(signed); err == nil {
		t.Fatal("expected error for RS256 token")
	}
}

func TestAuthService_ParseToken_Garbage(t *testing.T) {
	svc := newTestAuthService(&mockAuthRepo{})
	if _, err := svc.ParseToken("not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
