package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Omar25092001/Backend-Ofertas/internal/apierror"
	"github.com/Omar25092001/Backend-Ofertas/internal/config"
	"github.com/Omar25092001/Backend-Ofertas/internal/dto"
	"github.com/Omar25092001/Backend-Ofertas/internal/model"
	"github.com/Omar25092001/Backend-Ofertas/internal/repository"
)

type AuthService interface {
	Registrar(ctx context.Context, req dto.RegistrarUsuarioRequest) (*dto.UsuarioResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	Perfil(ctx context.Context, id uuid.UUID) (*dto.UsuarioResponse, error)

	// Admin user management.
	Listar(ctx context.Context, filter dto.UsuarioFilter) (*dto.UsuarioListResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.UsuarioResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error)
	CambiarRol(ctx context.Context, id uuid.UUID, req dto.CambiarRolRequest) (*dto.UsuarioResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type authService struct {
	repo repository.UsuarioRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.UsuarioRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Registrar(ctx context.Context, req dto.RegistrarUsuarioRequest) (*dto.UsuarioResponse, error) {
	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, apierror.Validation("ya existe un usuario con ese email")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.Internal("error al verificar el email", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, apierror.Internal("error al generar el hash", err)
	}

	u := &model.Usuario{
		NombreCompleto: req.NombreCompleto,
		Email:          req.Email,
		PasswordHash:   string(hash),
		Rol:            model.RolUsuario,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Validation("ya existe un usuario con ese email")
		}
		return nil, apierror.Internal("error al crear el usuario", err)
	}
	resp := usuarioToResponse(u)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		// Same message for unknown email and bad password.
		return nil, apierror.Validation("credenciales invalidas")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apierror.Validation("credenciales invalidas")
	}
	return s.loginResponse(u)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, apierror.Validation("refresh token invalido o expirado")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apierror.Validation("token mal formado")
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, apierror.Validation("token mal formado")
	}
	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, apierror.Validation("token mal formado")
	}

	u, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return nil, apierror.Validation("usuario no encontrado")
	}
	return s.loginResponse(u)
}

func (s *authService) loginResponse(u *model.Usuario) (*dto.LoginResponse, error) {
	accessToken, err := s.generateToken(u, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, apierror.Internal("error al firmar el token", err)
	}
	refreshToken, err := s.generateToken(u, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, apierror.Internal("error al firmar el token", err)
	}
	return &dto.LoginResponse{
		Usuario:      usuarioToResponse(u),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *authService) Perfil(ctx context.Context, id uuid.UUID) (*dto.UsuarioResponse, error) {
	return s.ObtenerPorID(ctx, id)
}

func (s *authService) Listar(ctx context.Context, filter dto.UsuarioFilter) (*dto.UsuarioListResponse, error) {
	if filter.Rol != "" && !model.RolValido(filter.Rol) {
		return nil, apierror.Validation("rol desconocido")
	}
	page, limit := dto.ClampPage(filter.Page, filter.Limit)

	usuarios, total, err := s.repo.List(ctx, filter.Rol, page, limit)
	if err != nil {
		return nil, apierror.Internal("error al listar usuarios", err)
	}

	out := make([]dto.UsuarioResponse, len(usuarios))
	for i := range usuarios {
		out[i] = usuarioToResponse(&usuarios[i])
	}
	return &dto.UsuarioListResponse{
		Usuarios:   out,
		Pagination: dto.NewPaginacion(total, page, limit),
	}, nil
}

func (s *authService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.UsuarioResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("usuario no encontrado")
		}
		return nil, apierror.Internal("error al obtener el usuario", err)
	}
	resp := usuarioToResponse(u)
	return &resp, nil
}

func (s *authService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("usuario no encontrado")
		}
		return nil, apierror.Internal("error al obtener el usuario", err)
	}

	if req.NombreCompleto != nil {
		u.NombreCompleto = *req.NombreCompleto
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), 12)
		if err != nil {
			return nil, apierror.Internal("error al generar el hash", err)
		}
		u.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Validation("ya existe un usuario con ese email")
		}
		return nil, apierror.Internal("error al actualizar el usuario", err)
	}
	resp := usuarioToResponse(u)
	return &resp, nil
}

func (s *authService) CambiarRol(ctx context.Context, id uuid.UUID, req dto.CambiarRolRequest) (*dto.UsuarioResponse, error) {
	if !model.RolValido(req.Rol) {
		return nil, apierror.Validation("rol desconocido")
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("usuario no encontrado")
		}
		return nil, apierror.Internal("error al obtener el usuario", err)
	}

	u.Rol = req.Rol
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, apierror.Internal("error al actualizar el usuario", err)
	}
	resp := usuarioToResponse(u)
	return &resp, nil
}

func (s *authService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("usuario no encontrado")
		}
		return apierror.Internal("error al obtener el usuario", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apierror.Internal("error al eliminar el usuario", err)
	}
	return nil
}

func (s *authService) generateToken(u *model.Usuario, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": u.ID.String(),
		"email":   u.Email,
		"rol":     u.Rol,
		"exp":     time.Now().Add(duration).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
