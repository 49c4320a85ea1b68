package grpcapi

import (
	"github.com/shopspring/decimal"

	"github.com/DaDevFox/fridgemate/internal/domain"
	"github.com/DaDevFox/fridgemate/internal/service"
	"github.com/DaDevFox/fridgemate/internal/view"
)

type AddItemRequest = service.AddItemRequest

type AddItemResponse struct {
	Item *domain.InventoryItem `json:"item"`
}

type GetItemRequest struct {
	ID string `json:"id"`
}

type GetItemResponse struct {
	Item *domain.InventoryItem `json:"item"`
}

type DeleteItemRequest struct {
	ID string `json:"id"`
}

type DeleteItemResponse struct{}

type DeleteExpiredRequest struct{}

type DeleteExpiredResponse struct {
	Deleted int `json:"deleted"`
}

// ListItemsRequest carries the caller's view state. A zero PageSize means the default.
type ListItemsRequest struct {
	State view.ViewState `json:"state"`
}

type ListItemsResponse struct {
	Page   view.PagedResult[view.AnnotatedItem] `json:"page"`
	Counts view.StatusCounts                    `json:"counts"`
}

type ListProductTypesRequest struct{}

type ListProductTypesResponse struct {
	Types []*domain.ProductType `json:"types"`
}

type AddProductTypeRequest struct {
	Type *domain.ProductType `json:"type"`
}

type AddProductTypeResponse struct {
	Type *domain.ProductType `json:"type"`
}

type GetBudgetRequest struct{}

type CreateBudgetRequest struct {
	Total decimal.Decimal `json:"total"`
}

type UpdateBudgetLimitRequest struct {
	Total decimal.Decimal `json:"total"`
}

type AddExpenseRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// BudgetResponse is returned by every budget method.
type BudgetResponse struct {
	Budget    *domain.Budget  `json:"budget"`
	Remaining decimal.Decimal `json:"remaining"`
}

type ListNotificationsRequest struct {
	Type domain.NotificationType `json:"type,omitempty"`
}

type ListNotificationsResponse struct {
	Notifications []*domain.Notification `json:"notifications"`
}

type DeleteNotificationRequest struct {
	ID string `json:"id"`
}

type DeleteNotificationResponse struct{}

type ScanNotificationsRequest struct{}

type ScanNotificationsResponse struct {
	Created []*domain.Notification `json:"created"`
}

func newBudgetResponse(budget *domain.Budget) *BudgetResponse {
	return &BudgetResponse{Budget: budget, Remaining: budget.Remaining()}
}

type AddRecipeRequest = service.AddRecipeRequest

type RecipeResponse struct {
	Recipe *domain.Recipe `json:"recipe"`
}

type GetRecipeRequest struct {
	ID string `json:"id"`
}

// ListRecipesRequest searches recipes by name. A zero PageSize means the default.
type ListRecipesRequest = service.RecipeQuery

type ListRecipesResponse struct {
	Page view.PagedResult[*domain.Recipe] `json:"page"`
}

type SuggestRecipesRequest struct{}

type SuggestRecipesResponse struct {
	Suggestions []service.RecipeSuggestion `json:"suggestions"`
}

type AddShoppingEntryRequest struct {
	Name string `json:"name"`
}

type ShoppingEntryResponse struct {
	Entry *domain.ShoppingEntry `json:"entry"`
}

type ListShoppingEntriesRequest struct{}

type ListShoppingEntriesResponse struct {
	Entries []*domain.ShoppingEntry `json:"entries"`
}

type ToggleShoppingEntryRequest struct {
	ID string `json:"id"`
}

type ClearShoppingListRequest struct{}

type ClearShoppingListResponse struct {
	Deleted int `json:"deleted"`
}

type MoveBoughtToFridgeRequest struct{}

type MoveBoughtToFridgeResponse struct {
	Items []*domain.InventoryItem `json:"items"`
}
