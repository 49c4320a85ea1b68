package grpcapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Client calls FridgeService over an existing connection
type Client struct {
	conn grpc.ClientConnInterface
}

// NewClient wraps conn. The caller keeps ownership of conn.
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// Dial connects to a FridgeService server without transport security.
func Dial(address string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	return grpc.NewClient(address, opts...)
}

func invoke[Resp any](ctx context.Context, c *Client, method string, req any) (*Resp, error) {
	resp := new(Resp)
	if err := c.conn.Invoke(ctx, fullMethod(method), req, resp, grpc.CallContentSubtype(codecName)); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) AddItem(ctx context.Context, req *AddItemRequest) (*AddItemResponse, error) {
	return invoke[AddItemResponse](ctx, c, "AddItem", req)
}

func (c *Client) GetItem(ctx context.Context, req *GetItemRequest) (*GetItemResponse, error) {
	return invoke[GetItemResponse](ctx, c, "GetItem", req)
}

func (c *Client) DeleteItem(ctx context.Context, req *DeleteItemRequest) (*DeleteItemResponse, error) {
	return invoke[DeleteItemResponse](ctx, c, "DeleteItem", req)
}

func (c *Client) DeleteExpired(ctx context.Context, req *DeleteExpiredRequest) (*DeleteExpiredResponse, error) {
	return invoke[DeleteExpiredResponse](ctx, c, "DeleteExpired", req)
}

func (c *Client) ListItems(ctx context.Context, req *ListItemsRequest) (*ListItemsResponse, error) {
	return invoke[ListItemsResponse](ctx, c, "ListItems", req)
}

func (c *Client) ListProductTypes(ctx context.Context, req *ListProductTypesRequest) (*ListProductTypesResponse, error) {
	return invoke[ListProductTypesResponse](ctx, c, "ListProductTypes", req)
}

func (c *Client) AddProductType(ctx context.Context, req *AddProductTypeRequest) (*AddProductTypeResponse, error) {
	return invoke[AddProductTypeResponse](ctx, c, "AddProductType", req)
}

func (c *Client) GetBudget(ctx context.Context, req *GetBudgetRequest) (*BudgetResponse, error) {
	return invoke[BudgetResponse](ctx, c, "GetBudget", req)
}

func (c *Client) CreateBudget(ctx context.Context, req *CreateBudgetRequest) (*BudgetResponse, error) {
	return invoke[BudgetResponse](ctx, c, "CreateBudget", req)
}

func (c *Client) UpdateBudgetLimit(ctx context.Context, req *UpdateBudgetLimitRequest) (*BudgetResponse, error) {
	return invoke[BudgetResponse](ctx, c, "UpdateBudgetLimit", req)
}

func (c *Client) AddExpense(ctx context.Context, req *AddExpenseRequest) (*BudgetResponse, error) {
	return invoke[BudgetResponse](ctx, c, "AddExpense", req)
}

func (c *Client) ListNotifications(ctx context.Context, req *ListNotificationsRequest) (*ListNotificationsResponse, error) {
	return invoke[ListNotificationsResponse](ctx, c, "ListNotifications", req)
}

func (c *Client) DeleteNotification(ctx context.Context, req *DeleteNotificationRequest) (*DeleteNotificationResponse, error) {
	return invoke[DeleteNotificationResponse](ctx, c, "DeleteNotification", req)
}

func (c *Client) ScanNotifications(ctx context.Context, req *ScanNotificationsRequest) (*ScanNotificationsResponse, error) {
	return invoke[ScanNotificationsResponse](ctx, c, "ScanNotifications", req)
}

func (c *Client) AddRecipe(ctx context.Context, req *AddRecipeRequest) (*RecipeResponse, error) {
	return invoke[RecipeResponse](ctx, c, "AddRecipe", req)
}

func (c *Client) GetRecipe(ctx context.Context, req *GetRecipeRequest) (*RecipeResponse, error) {
	return invoke[RecipeResponse](ctx, c, "GetRecipe", req)
}

func (c *Client) ListRecipes(ctx context.Context, req *ListRecipesRequest) (*ListRecipesResponse, error) {
	return invoke[ListRecipesResponse](ctx, c, "ListRecipes", req)
}

func (c *Client) SuggestRecipes(ctx context.Context, req *SuggestRecipesRequest) (*SuggestRecipesResponse, error) {
	return invoke[SuggestRecipesResponse](ctx, c, "SuggestRecipes", req)
}

func (c *Client) AddShoppingEntry(ctx context.Context, req *AddShoppingEntryRequest) (*ShoppingEntryResponse, error) {
	return invoke[ShoppingEntryResponse](ctx, c, "AddShoppingEntry", req)
}

func (c *Client) ListShoppingEntries(ctx context.Context, req *ListShoppingEntriesRequest) (*ListShoppingEntriesResponse, error) {
	return invoke[ListShoppingEntriesResponse](ctx, c, "ListShoppingEntries", req)
}

func (c *Client) ToggleShoppingEntry(ctx context.Context, req *ToggleShoppingEntryRequest) (*ShoppingEntryResponse, error) {
	return invoke[ShoppingEntryResponse](ctx, c, "ToggleShoppingEntry", req)
}

func (c *Client) ClearShoppingList(ctx context.Context, req *ClearShoppingListRequest) (*ClearShoppingListResponse, error) {
	return invoke[ClearShoppingListResponse](ctx, c, "ClearShoppingList", req)
}

func (c *Client) MoveBoughtToFridge(ctx context.Context, req *MoveBoughtToFridgeRequest) (*MoveBoughtToFridgeResponse, error) {
	return invoke[MoveBoughtToFridgeResponse](ctx, c, "MoveBoughtToFridge", req)
}
