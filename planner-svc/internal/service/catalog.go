package service

import (
	"context"
	"fmt"
	"sort"

	"foodplan/planner-svc/internal/domain"
)

type CatalogService struct {
	repo      CatalogRepository
	qrEncoder QRGenerator
}

func NewCatalogService(repo CatalogRepository, qr QRGenerator) *CatalogService {
	return &CatalogService{repo: repo, qrEncoder: qr}
}

func (s *CatalogService) GetDish(ctx context.Context, id int) (*domain.Dish, error) {
	return s.repo.GetDish(ctx, id)
}

func (s *CatalogService) ListAllergies(ctx context.Context) ([]domain.Allergy, error) {
	return s.repo.ListAllergies(ctx)
}

// ListEligibleDishes returns the dishes of the requested diet and meal types that contain
// none of the excluded allergies, distinct and ordered by id.
func (s *CatalogService) ListEligibleDishes(ctx context.Context, criteria domain.Criteria) ([]domain.Dish, error) {
	if len(criteria.MealTypes) == 0 {
		return []domain.Dish{}, nil
	}

	candidates, err := s.repo.ListDishes(ctx, criteria.DietType, criteria.MealTypes)
	if err != nil {
		return nil, fmt.Errorf("list dishes: %w", err)
	}

	excluded := make(map[int]struct{}, len(criteria.AllergyIDs))
	for _, id := range criteria.AllergyIDs {
		excluded[id] = struct{}{}
	}

	seen := make(map[int]struct{}, len(candidates))
	eligible := make([]domain.Dish, 0, len(candidates))
	for _, dish := range candidates {
		if _, dup := seen[dish.ID]; dup {
			continue
		}
		seen[dish.ID] = struct{}{}
		if dish.ContainsAllergen(excluded) {
			continue
		}
		eligible = append(eligible, dish)
	}

	sort.Slice(eligible, func(i, j int) bool { return eligible[i].ID < eligible[j].ID })
	return eligible, nil
}

func (s *CatalogService) DishQRCode(ctx context.Context, id int) ([]byte, error) {
	if _, err := s.repo.GetDish(ctx, id); err != nil {
		return nil, err
	}
	if s.qrEncoder == nil {
		return nil, fmt.Errorf("qr encoder is not configured")
	}
	return s.qrEncoder.Generate(id)
}
