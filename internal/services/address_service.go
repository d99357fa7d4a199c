package services

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// AddressInput is an address payload. Nil fields of an update are left unchanged.
type AddressInput struct {
	Province *string
	City     *string
	Street   *string
}

// AddressService manages the delivery addresses of users.
type AddressService struct {
	addresses repositories.AddressRepository
}

// NewAddressService creates a new AddressService.
func NewAddressService(addresses repositories.AddressRepository) *AddressService {
	return &AddressService{addresses: addresses}
}

func (s *AddressService) List(ctx context.Context, userID uint) ([]models.Address, error) {
	return s.addresses.ListByUser(ctx, userID)
}

func (s *AddressService) Get(ctx context.Context, id uint) (*models.Address, error) {
	return s.addresses.GetByID(ctx, id)
}

func (s *AddressService) Create(ctx context.Context, userID uint, in AddressInput) (*models.Address, error) {
	address := &models.Address{UserID: userID}
	applyAddress(address, in)
	if err := s.addresses.Create(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

// Update changes an address already loaded (and authorized) by the caller.
func (s *AddressService) Update(ctx context.Context, address *models.Address, in AddressInput) (*models.Address, error) {
	applyAddress(address, in)
	if err := s.addresses.Update(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *AddressService) Delete(ctx context.Context, id uint) error {
	return s.addresses.Delete(ctx, id)
}

func applyAddress(address *models.Address, in AddressInput) {
	if in.Province != nil {
		address.Province = *in.Province
	}
	if in.City != nil {
		address.City = *in.City
	}
	if in.Street != nil {
		address.Street = *in.Street
	}
}
