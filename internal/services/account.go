package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"proeventos/internal/domain"
)

type accountService struct {
	userRepo     domain.UserRepository
	hasher       domain.PasswordHasher
	tokenIssuer  domain.TokenIssuer
	tokenExpiry  time.Duration
	imageStore   domain.ImageStore
	emailService domain.EmailService
}

// NewAccountService creates an AccountService with the given repository and
// auth ports. emailService may be nil; the welcome email is then skipped.
func NewAccountService(userRepo domain.UserRepository, hasher domain.PasswordHasher, tokenIssuer domain.TokenIssuer, tokenExpiry time.Duration, imageStore domain.ImageStore, emailService domain.EmailService) domain.AccountService {
	return &accountService{
		userRepo:     userRepo,
		hasher:       hasher,
		tokenIssuer:  tokenIssuer,
		tokenExpiry:  tokenExpiry,
		imageStore:   imageStore,
		emailService: emailService,
	}
}

func (s *accountService) Register(ctx context.Context, input domain.RegisterInput) (*domain.User, string, error) {
	userName := strings.TrimSpace(input.UserName)

	exists, err := s.userRepo.ExistsByUserName(ctx, userName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, "", domain.ErrDuplicateUserName
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, input.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.NewUser(userName, strings.TrimSpace(input.Email), strings.TrimSpace(input.FirstName), strings.TrimSpace(input.LastName), now, now)
	user.PasswordHash = hash
	user.Salt = salt
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUserName) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokenIssuer.Issue(user.ID, user.UserName, s.tokenExpiry)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}

	// The welcome email is best-effort; registration already succeeded.
	if s.emailService != nil {
		data := &domain.WelcomeEmailData{
			Email:     user.Email,
			UserName:  user.UserName,
			FirstName: user.FirstName,
		}
		if err := s.emailService.SendWelcome(ctx, data); err != nil {
			log.Printf("[EMAIL] Failed to send welcome email to %s: %v", user.Email, err)
		}
	}

	return user, token, nil
}

func (s *accountService) Login(ctx context.Context, userName, password string) (*domain.User, string, error) {
	user, err := s.userRepo.GetByUserName(ctx, strings.TrimSpace(userName))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrUserNotFound
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, user.Salt, password); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokenIssuer.Issue(user.ID, user.UserName, s.tokenExpiry)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}
	return user, token, nil
}

func (s *accountService) GetByUserName(ctx context.Context, userName string) (*domain.User, error) {
	user, err := s.userRepo.GetByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *accountService) Update(ctx context.Context, userID string, input domain.UpdateAccountInput) (*domain.User, string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	user.UserName = strings.TrimSpace(input.UserName)
	user.Email = strings.TrimSpace(input.Email)
	user.FirstName = strings.TrimSpace(input.FirstName)
	user.LastName = strings.TrimSpace(input.LastName)
	user.Title = strings.TrimSpace(input.Title)
	user.PhoneNumber = strings.TrimSpace(input.PhoneNumber)
	user.Description = strings.TrimSpace(input.Description)
	if input.Password != "" {
		salt, err := s.hasher.GenerateSalt()
		if err != nil {
			return nil, "", fmt.Errorf("failed to generate salt: %w", err)
		}
		hash, err := s.hasher.Hash(salt, input.Password)
		if err != nil {
			return nil, "", fmt.Errorf("failed to hash password: %w", err)
		}
		user.Salt = salt
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrDuplicateUserName) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("failed to update user: %w", err)
	}

	token, err := s.tokenIssuer.Issue(user.ID, user.UserName, s.tokenExpiry)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}
	return user, token, nil
}

func (s *accountService) SetProfileImage(ctx context.Context, userID, fileName string, size int64, contents io.Reader) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if size > 0 {
		// Removing the previous file is best-effort; the database row is
		// authoritative.
		if user.ImageURL != nil {
			if err := s.imageStore.Delete(domain.ProfileImageFolder, *user.ImageURL); err != nil {
				log.Printf("[STORAGE] Failed to delete old profile image %s: %v", *user.ImageURL, err)
			}
		}
		storedName, err := s.imageStore.Save(domain.ProfileImageFolder, fileName, contents)
		if err != nil {
			return nil, fmt.Errorf("failed to store profile image: %w", err)
		}
		user.ImageURL = &storedName
		user.UpdatedAt = time.Now()
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to persist profile image: %w", err)
		}
	}
	return user, nil
}
