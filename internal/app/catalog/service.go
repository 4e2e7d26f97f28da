package catalog

import (
	"context"

	"github.com/Atash03/maestro-delivery-app-sub002/internal/adapter/logger"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/domain"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/interfaces"
)

// Service is the browsing surface over the catalog repository. Availability
// toggling is the one write path; the cart never mutates the catalog.
type Service struct {
	repo   interfaces.CatalogRepository
	logger logger.Logger
}

func NewService(repo interfaces.CatalogRepository, log logger.Logger) *Service {
	return &Service{repo: repo, logger: log}
}

func (s *Service) Restaurants(ctx context.Context) ([]*domain.Restaurant, error) {
	return s.repo.ListRestaurants(ctx)
}

func (s *Service) Menu(ctx context.Context, restaurantID string) ([]*domain.MenuItem, error) {
	if _, err := s.repo.RestaurantByID(ctx, restaurantID); err != nil {
		return nil, err
	}
	return s.repo.MenuByRestaurant(ctx, restaurantID)
}

func (s *Service) Item(ctx context.Context, id string) (*domain.MenuItem, error) {
	return s.repo.MenuItemByID(ctx, id)
}

func (s *Service) SetAvailability(ctx context.Context, id string, available bool) error {
	if err := s.repo.SetItemAvailability(ctx, id, available); err != nil {
		return err
	}
	s.logger.Info("availability_changed", "Menu item availability updated", "", map[string]any{
		"menu_item_id": id,
		"available":    available,
	})
	return nil
}
