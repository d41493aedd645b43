package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-negocios/internal/application/dto"
	"github.com/jhoicas/inventario-negocios/internal/domain"
	"github.com/jhoicas/inventario-negocios/internal/domain/entity"
	"github.com/jhoicas/inventario-negocios/internal/domain/repository"
	"github.com/jhoicas/inventario-negocios/pkg/jwt"
	"github.com/jhoicas/inventario-negocios/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

const maxPasswordBytes = 72

// Session identidad resuelta a partir de un token válido.
type Session struct {
	AccountID string
	Username  string
	TokenID   string
	ExpiresAt time.Time
}

// AuthUseCase casos de uso de autenticación: registro, login, resolución de sesión y logout.
type AuthUseCase struct {
	accounts repository.AccountRepository
	sessions repository.SessionRepository
	jwtCfg   JWTConfig
	cost     int
	log      *logger.Logger
}

// Option ajusta el AuthUseCase.
type Option func(*AuthUseCase)

// WithBcryptCost cambia el costo de bcrypt (los tests usan bcrypt.MinCost).
func WithBcryptCost(cost int) Option {
	return func(uc *AuthUseCase) { uc.cost = cost }
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	accounts repository.AccountRepository,
	sessions repository.SessionRepository,
	jwtCfg JWTConfig,
	log *logger.Logger,
	opts ...Option,
) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	uc := &AuthUseCase{
		accounts: accounts,
		sessions: sessions,
		jwtCfg:   jwtCfg,
		cost:     bcrypt.DefaultCost,
		log:      log.Named("auth"),
	}
	for _, o := range opts {
		o(uc)
	}
	return uc
}

// Register crea una cuenta: valida, verifica unicidad del username, hashea con bcrypt y persiste.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AccountResponse, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.BusinessName = strings.TrimSpace(in.BusinessName)
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	// bcrypt limita a 72 bytes, no runas.
	if len(in.Password) > maxPasswordBytes {
		return nil, domain.NewValidationError("password", "no puede superar 72 bytes")
	}

	existing, err := uc.accounts.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("auth: buscar username: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicateUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash: %w", err)
	}
	name := in.BusinessName
	if name == "" {
		name = in.Username
	}
	currency := in.Currency
	if currency == "" {
		currency = entity.DefaultCurrency
	}
	account := &entity.Account{
		ID:           uuid.New().String(),
		Username:     in.Username,
		PasswordHash: string(hash),
		BusinessName: name,
		Currency:     currency,
		CreatedAt:    time.Now().UTC(),
	}
	// El índice único del store cubre la carrera entre la consulta y el insert.
	if err := uc.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			return nil, domain.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("auth: crear cuenta: %w", err)
	}

	uc.log.Info().Str("account_id", account.ID).Str("username", account.Username).Msg("cuenta registrada")
	resp := ToAccountResponse(account)
	return &resp, nil
}

// dummyHash se compara cuando el username no existe, para que ambos fallos tarden lo mismo.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("inventario-dummy-password"), bcrypt.DefaultCost)

// Login verifica username/password y emite un token de sesión.
// Usuario inexistente y contraseña incorrecta devuelven el mismo domain.ErrAuthentication.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrAuthentication
	}
	account, err := uc.accounts.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("auth: buscar username: %w", err)
	}
	if account == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(in.Password))
		return nil, domain.ErrAuthentication
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrAuthentication
	}

	tok, err := jwt.Generate(uc.jwtCfg.Secret, account.ID, account.Username, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("auth: token: %w", err)
	}
	uc.log.Info().Str("account_id", account.ID).Msg("inicio de sesión")
	return &dto.LoginResponse{
		Token:     tok.Value,
		ExpiresAt: tok.ExpiresAt,
		Account:   ToAccountResponse(account),
	}, nil
}

// Resolve valida el token y devuelve la sesión. Token inválido, expirado, revocado o
// de una cuenta inexistente → domain.ErrUnauthenticated.
func (uc *AuthUseCase) Resolve(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	revoked, err := uc.sessions.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("auth: consultar revocación: %w", err)
	}
	if revoked {
		return nil, domain.ErrUnauthenticated
	}
	account, err := uc.accounts.GetByID(ctx, claims.AccountID)
	if err != nil {
		return nil, fmt.Errorf("auth: buscar cuenta: %w", err)
	}
	if account == nil {
		return nil, domain.ErrUnauthenticated
	}
	s := &Session{AccountID: account.ID, Username: account.Username, TokenID: claims.ID}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}

// Logout revoca la sesión del token hasta su expiración.
func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	s, err := uc.Resolve(ctx, token)
	if err != nil {
		return err
	}
	if err := uc.sessions.Revoke(ctx, s.TokenID, s.AccountID, s.ExpiresAt); err != nil {
		return fmt.Errorf("auth: revocar sesión: %w", err)
	}
	uc.log.Info().Str("account_id", s.AccountID).Msg("sesión cerrada")
	return nil
}

// Account devuelve la cuenta indicada o domain.ErrNotFound.
func (uc *AuthUseCase) Account(ctx context.Context, accountID string) (*dto.AccountResponse, error) {
	account, err := uc.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrNotFound
	}
	resp := ToAccountResponse(account)
	return &resp, nil
}

// ToAccountResponse mapea la entidad a su DTO (sin hash).
func ToAccountResponse(a *entity.Account) dto.AccountResponse {
	return dto.AccountResponse{
		ID:           a.ID,
		Username:     a.Username,
		BusinessName: a.BusinessName,
		Currency:     a.Currency,
		CreatedAt:    a.CreatedAt,
	}
}
