package services

import (
	"errors"
	"fmt"

	"github.com/Hanu-soni/worklah-backend/internal/models"
	"github.com/Hanu-soni/worklah-backend/internal/repositories"
	"github.com/Hanu-soni/worklah-backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// --- Custom Service Errors for Auth ---
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already registered")
	ErrTokenGeneration    = errors.New("failed to generate token")
)

// --- Auth DTOs ---
type RegisterRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Worker       *models.Worker `json:"worker"`
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token,omitempty"`
}

// --- AuthService Interface ---
type AuthService interface {
	Register(req RegisterRequest) (*AuthResponse, error)
	Login(req LoginRequest) (*AuthResponse, error)
	GetProfile(workerID int64) (*models.Worker, error)
}

// --- authService Implementation ---
type authService struct {
	workerRepo repositories.WorkerRepository
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(wr repositories.WorkerRepository) AuthService {
	return &authService{workerRepo: wr}
}

func (s *authService) Register(req RegisterRequest) (*AuthResponse, error) {
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	worker := &models.Worker{
		FullName:     req.FullName,
		PhoneNumber:  req.PhoneNumber,
		Email:        req.Email,
		PasswordHash: string(hashedPasswordBytes),
		Role:         models.RoleUser,
	}
	if _, err = s.workerRepo.CreateWorker(worker); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create worker: %w", err)
	}
	return s.issueTokens(worker)
}

func (s *authService) Login(req LoginRequest) (*AuthResponse, error) {
	worker, err := s.workerRepo.GetWorkerByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch worker for login: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(worker.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	if err = s.workerRepo.UpdateLastLogin(worker.ID); err != nil {
		utils.LogError(err, "failed to record last login")
	}
	return s.issueTokens(worker)
}

func (s *authService) issueTokens(worker *models.Worker) (*AuthResponse, error) {
	accessToken, err := utils.GenerateAccessToken(worker.ID, worker.Email, worker.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	refreshToken, err := utils.GenerateRefreshToken(worker.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	return &AuthResponse{Worker: worker, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *authService) GetProfile(workerID int64) (*models.Worker, error) {
	worker, err := s.workerRepo.GetWorkerByID(workerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, fmt.Errorf("failed to fetch worker profile: %w", err)
	}
	return worker, nil
}
