package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"

	"github.com/DaDevFox/fridgemate/internal/domain"
	"github.com/DaDevFox/fridgemate/internal/events"
	"github.com/DaDevFox/fridgemate/internal/repository"
	"github.com/DaDevFox/fridgemate/internal/view"
)

// AddRecipeRequest describes a new recipe.
type AddRecipeRequest struct {
	Name         string `json:"name"`
	Ingredients  string `json:"ingredients"`
	Serving      int    `json:"serving"`
	Instructions string `json:"instructions"`
}

// RecipeQuery selects a page of recipes by name.
type RecipeQuery struct {
	Search   string `json:"search,omitempty"`
	PageSize int    `json:"page_size,omitempty"`
	Page     int    `json:"page,omitempty"`
}

// RecipeSuggestion is a recipe with its ingredients split by whether a
// usable item in the fridge covers them.
type RecipeSuggestion struct {
	Recipe  *domain.Recipe `json:"recipe"`
	Matched []string       `json:"matched"`
	Missing []string       `json:"missing"`
}

// RecipeService stores recipes and suggests them from the fridge contents
type RecipeService struct {
	repo      repository.InventoryRepository
	inventory *InventoryService
	bus       events.Publisher
	clock     Clock
	logger    *logrus.Logger
}

// NewRecipeService creates a new recipe service instance
func NewRecipeService(
	repo repository.InventoryRepository,
	inventory *InventoryService,
	bus events.Publisher,
	clock Clock,
	logger *logrus.Logger,
) *RecipeService {
	return &RecipeService{
		repo:      repo,
		inventory: inventory,
		bus:       bus,
		clock:     clock,
		logger:    logger,
	}
}

// AddRecipe validates and stores a recipe
func (s *RecipeService) AddRecipe(ctx context.Context, req AddRecipeRequest) (*domain.Recipe, error) {
	recipe := &domain.Recipe{
		Name:         domain.SanitizeName(req.Name),
		Ingredients:  strings.TrimSpace(req.Ingredients),
		Serving:      req.Serving,
		Instructions: strings.TrimSpace(req.Instructions),
		CreatedAt:    s.clock.Now(),
	}

	if err := recipe.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.AddRecipe(ctx, recipe); err != nil {
		s.logger.WithError(err).WithField("recipe_name", recipe.Name).Error("failed to add recipe")
		return nil, fmt.Errorf("failed to add recipe: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"recipe_id":   recipe.ID,
		"recipe_name": recipe.Name,
	}).Info("recipe added")

	s.bus.Publish(ctx, events.RecipeAdded, events.RecipePayload{RecipeID: recipe.ID, RecipeName: recipe.Name})
	return recipe, nil
}

// GetRecipe retrieves a single recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id string) (*domain.Recipe, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}
	return s.repo.GetRecipe(ctx, id)
}

// ListRecipes returns one page of the recipes whose name contains query.Search.
func (s *RecipeService) ListRecipes(ctx context.Context, query RecipeQuery) (view.PagedResult[*domain.Recipe], error) {
	recipes, err := s.repo.ListRecipes(ctx)
	if err != nil {
		return view.PagedResult[*domain.Recipe]{}, fmt.Errorf("failed to list recipes: %w", err)
	}

	matched := view.FilterByName(recipes, query.Search, func(r *domain.Recipe) string { return r.Name })
	return view.Paginate(matched, query.PageSize, query.Page), nil
}

// SuggestRecipes returns the recipes that use at least one item which is not
// expired, most covered first. Ties keep insertion order.
func (s *RecipeService) SuggestRecipes(ctx context.Context) ([]RecipeSuggestion, error) {
	recipes, err := s.repo.ListRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	available, err := s.inventory.AvailableItems(ctx)
	if err != nil {
		return nil, err
	}

	folder := cases.Fold()
	stock := make([]string, len(available))
	for i, item := range available {
		stock[i] = folder.String(item.Item.Name)
	}

	var suggestions []RecipeSuggestion
	for _, recipe := range recipes {
		suggestion := RecipeSuggestion{Recipe: recipe}
		for _, ingredient := range recipe.IngredientList() {
			if inStock(stock, folder.String(ingredient)) {
				suggestion.Matched = append(suggestion.Matched, ingredient)
			} else {
				suggestion.Missing = append(suggestion.Missing, ingredient)
			}
		}
		if len(suggestion.Matched) > 0 {
			suggestions = append(suggestions, suggestion)
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return len(suggestions[i].Matched) > len(suggestions[j].Matched)
	})

	s.logger.WithFields(logrus.Fields{
		"recipes":     len(recipes),
		"suggestions": len(suggestions),
	}).Debug("recipes suggested")

	return suggestions, nil
}

// inStock reports whether an item name and the ingredient contain one another.
// Both are case-folded.
func inStock(stock []string, ingredient string) bool {
	for _, name := range stock {
		if strings.Contains(name, ingredient) || strings.Contains(ingredient, name) {
			return true
		}
	}
	return false
}
