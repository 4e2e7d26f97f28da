package reorder

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Atash03/maestro-delivery-app-sub002/internal/adapter/logger"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/app/cart"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/domain"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/interfaces"
)

// Callbacks are invoked at the corresponding points of the reorder flow.
// Nil callbacks are skipped.
type Callbacks struct {
	OnSuccess          func(domain.ReorderResult)
	OnUnavailableItems func(domain.AvailabilityCheckResult)
	OnError            func(message string)
}

// Service reconciles historical orders against current catalog truth and
// replays the valid part into a cart engine. ExecuteReorder never returns an
// error: every failure is folded into the ReorderResult.
type Service struct {
	catalog   interfaces.CatalogRepository
	logger    logger.Logger
	tracer    trace.Tracer
	callbacks Callbacks

	// One reorder at a time per session. A concurrent call is rejected with
	// a failure result rather than queued.
	mu       sync.Mutex
	inFlight map[string]bool
}

func NewService(catalog interfaces.CatalogRepository, log logger.Logger, tracer trace.Tracer, callbacks Callbacks) *Service {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("reorder")
	}
	return &Service{
		catalog:   catalog,
		logger:    log,
		tracer:    tracer,
		callbacks: callbacks,
		inFlight:  make(map[string]bool),
	}
}

// CheckAvailability classifies every line of the order against the current
// catalog. Available lines get their menu item snapshot refreshed (picking
// up price changes since the order was placed) and their total recomputed;
// unavailable or vanished lines keep the order-time snapshot untouched.
// Read-only: the cart is never mutated here.
func (s *Service) CheckAvailability(ctx context.Context, order *domain.Order) (domain.AvailabilityCheckResult, error) {
	ctx, span := s.tracer.Start(ctx, "reorder.check_availability")
	defer span.End()
	span.SetAttributes(attribute.String("order.id", order.ID))

	var result domain.AvailabilityCheckResult
	for _, line := range order.Items {
		current, err := s.catalog.MenuItemByID(ctx, line.MenuItem.ID)
		if errors.Is(err, domain.ErrMenuItemNotFound) {
			result.UnavailableItems = append(result.UnavailableItems, line)
			continue
		}
		if err != nil {
			return domain.AvailabilityCheckResult{}, fmt.Errorf("catalog lookup for %s: %w", line.MenuItem.ID, err)
		}
		if !current.IsAvailable {
			result.UnavailableItems = append(result.UnavailableItems, line)
			continue
		}

		refreshed := line
		refreshed.MenuItem = *current
		refreshed.RecalculateTotal()
		result.AvailableItems = append(result.AvailableItems, refreshed)
	}

	result.AllAvailable = len(result.UnavailableItems) == 0
	result.NoneAvailable = len(result.AvailableItems) == 0
	return result, nil
}

// IsItemAvailable reports whether a menu item currently exists and is
// marked available.
func (s *Service) IsItemAvailable(ctx context.Context, menuItemID string) bool {
	item, err := s.catalog.MenuItemByID(ctx, menuItemID)
	return err == nil && item.IsAvailable
}

// ExecuteReorder replays a historical order into the session's cart:
//
//  1. Re-validate every line against the catalog.
//  2. All lines unavailable: report failure, cart untouched.
//  3. Partial availability: report the unavailable lines, proceed with the
//     rest. includeUnavailable only widens what gets reported back, never
//     what gets added - unavailable lines are never added to the cart.
//  4. A cross-restaurant conflict clears the cart without prompting; the
//     explicit reorder action is taken as user intent.
//  5. Replay each valid line with its quantity, customizations and special
//     instructions preserved.
func (s *Service) ExecuteReorder(ctx context.Context, eng *cart.Engine, sessionID string, order *domain.Order, includeUnavailable bool) domain.ReorderResult {
	if !s.begin(sessionID) {
		return s.failure(domain.ErrReorderInProgress.Error())
	}
	defer s.end(sessionID)

	ctx, span := s.tracer.Start(ctx, "reorder.execute")
	defer span.End()
	span.SetAttributes(
		attribute.String("order.id", order.ID),
		attribute.Bool("reorder.include_unavailable", includeUnavailable),
	)

	availability, err := s.CheckAvailability(ctx, order)
	if err != nil {
		s.logger.Error("reorder_check_failed", "Availability check failed", "", map[string]any{
			"order_id": order.ID,
		}, err)
		return s.failure(err.Error())
	}

	if availability.NoneAvailable {
		return s.failure("none of the items from this order are currently available")
	}

	if !availability.AllAvailable {
		if s.callbacks.OnUnavailableItems != nil {
			s.callbacks.OnUnavailableItems(availability)
		}
		if !includeUnavailable {
			s.logger.Debug("reorder_partial", "Proceeding with available subset", "", map[string]any{
				"order_id":    order.ID,
				"unavailable": len(availability.UnavailableItems),
			})
		}
	}

	// Both includeUnavailable branches reduce to the same set: the lines the
	// check just validated against current catalog truth.
	toAdd := availability.AvailableItems

	if !eng.CanAddFromRestaurant(order.Restaurant.ID) {
		eng.Clear()
	}
	restaurant := order.Restaurant
	if err := eng.SetRestaurant(&restaurant); err != nil {
		return s.failure(err.Error())
	}

	added := 0
	for _, line := range toAdd {
		if _, err := eng.AddItem(line.MenuItem, line.Quantity, line.SelectedCustomizations, line.SpecialInstructions, &restaurant); err != nil {
			return s.failure(fmt.Sprintf("failed to add %s: %v", line.MenuItem.Name, err))
		}
		added++
	}

	result := domain.ReorderResult{
		Success:          true,
		ItemsAdded:       added,
		UnavailableCount: len(availability.UnavailableItems),
	}
	s.logger.Info("reorder_completed", "Order replayed into cart", "", map[string]any{
		"order_id":    order.ID,
		"items_added": added,
		"unavailable": result.UnavailableCount,
	})
	if s.callbacks.OnSuccess != nil {
		s.callbacks.OnSuccess(result)
	}
	return result
}

func (s *Service) begin(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[sessionID] {
		return false
	}
	s.inFlight[sessionID] = true
	return true
}

func (s *Service) end(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, sessionID)
}

func (s *Service) failure(message string) domain.ReorderResult {
	if s.callbacks.OnError != nil {
		s.callbacks.OnError(message)
	}
	return domain.ReorderResult{Error: message}
}
