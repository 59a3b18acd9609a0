package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/app/repository"
)

// CustomerService mirrors externally authenticated customers into the users
// table so carts, checkouts and reviews can reference them.
type CustomerService interface {
	EnsureCustomer(ctx context.Context, id uint, email string) error
}

type customerService struct {
	userRepo repository.UserRepository
}

func NewCustomerService(userRepo repository.UserRepository) CustomerService {
	return &customerService{userRepo: userRepo}
}

func (s *customerService) EnsureCustomer(ctx context.Context, id uint, email string) error {
	// email is unique in users; tokens without one get a per-id placeholder.
	if email == "" {
		email = fmt.Sprintf("customer-%d@users.invalid", id)
	}
	name := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		name = email[:at]
	}
	return s.userRepo.Ensure(ctx, &model.User{ID: id, Email: email, Name: name})
}
