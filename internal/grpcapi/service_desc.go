package grpcapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "fridgemate.v1.FridgeService"

// FridgeServiceServer is the server API for FridgeService.
type FridgeServiceServer interface {
	AddItem(context.Context, *AddItemRequest) (*AddItemResponse, error)
	GetItem(context.Context, *GetItemRequest) (*GetItemResponse, error)
	DeleteItem(context.Context, *DeleteItemRequest) (*DeleteItemResponse, error)
	DeleteExpired(context.Context, *DeleteExpiredRequest) (*DeleteExpiredResponse, error)
	ListItems(context.Context, *ListItemsRequest) (*ListItemsResponse, error)
	ListProductTypes(context.Context, *ListProductTypesRequest) (*ListProductTypesResponse, error)
	AddProductType(context.Context, *AddProductTypeRequest) (*AddProductTypeResponse, error)
	GetBudget(context.Context, *GetBudgetRequest) (*BudgetResponse, error)
	CreateBudget(context.Context, *CreateBudgetRequest) (*BudgetResponse, error)
	UpdateBudgetLimit(context.Context, *UpdateBudgetLimitRequest) (*BudgetResponse, error)
	AddExpense(context.Context, *AddExpenseRequest) (*BudgetResponse, error)
	ListNotifications(context.Context, *ListNotificationsRequest) (*ListNotificationsResponse, error)
	DeleteNotification(context.Context, *DeleteNotificationRequest) (*DeleteNotificationResponse, error)
	ScanNotifications(context.Context, *ScanNotificationsRequest) (*ScanNotificationsResponse, error)
	AddRecipe(context.Context, *AddRecipeRequest) (*RecipeResponse, error)
	GetRecipe(context.Context, *GetRecipeRequest) (*RecipeResponse, error)
	ListRecipes(context.Context, *ListRecipesRequest) (*ListRecipesResponse, error)
	SuggestRecipes(context.Context, *SuggestRecipesRequest) (*SuggestRecipesResponse, error)
	AddShoppingEntry(context.Context, *AddShoppingEntryRequest) (*ShoppingEntryResponse, error)
	ListShoppingEntries(context.Context, *ListShoppingEntriesRequest) (*ListShoppingEntriesResponse, error)
	ToggleShoppingEntry(context.Context, *ToggleShoppingEntryRequest) (*ShoppingEntryResponse, error)
	ClearShoppingList(context.Context, *ClearShoppingListRequest) (*ClearShoppingListResponse, error)
	MoveBoughtToFridge(context.Context, *MoveBoughtToFridgeRequest) (*MoveBoughtToFridgeResponse, error)
}

// ServiceDesc describes FridgeService for grpc.ServiceRegistrar.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FridgeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("AddItem", FridgeServiceServer.AddItem),
		unaryMethod("GetItem", FridgeServiceServer.GetItem),
		unaryMethod("DeleteItem", FridgeServiceServer.DeleteItem),
		unaryMethod("DeleteExpired", FridgeServiceServer.DeleteExpired),
		unaryMethod("ListItems", FridgeServiceServer.ListItems),
		unaryMethod("ListProductTypes", FridgeServiceServer.ListProductTypes),
		unaryMethod("AddProductType", FridgeServiceServer.AddProductType),
		unaryMethod("GetBudget", FridgeServiceServer.GetBudget),
		unaryMethod("CreateBudget", FridgeServiceServer.CreateBudget),
		unaryMethod("UpdateBudgetLimit", FridgeServiceServer.UpdateBudgetLimit),
		unaryMethod("AddExpense", FridgeServiceServer.AddExpense),
		unaryMethod("ListNotifications", FridgeServiceServer.ListNotifications),
		unaryMethod("DeleteNotification", FridgeServiceServer.DeleteNotification),
		unaryMethod("ScanNotifications", FridgeServiceServer.ScanNotifications),
		unaryMethod("AddRecipe", FridgeServiceServer.AddRecipe),
		unaryMethod("GetRecipe", FridgeServiceServer.GetRecipe),
		unaryMethod("ListRecipes", FridgeServiceServer.ListRecipes),
		unaryMethod("SuggestRecipes", FridgeServiceServer.SuggestRecipes),
		unaryMethod("AddShoppingEntry", FridgeServiceServer.AddShoppingEntry),
		unaryMethod("ListShoppingEntries", FridgeServiceServer.ListShoppingEntries),
		unaryMethod("ToggleShoppingEntry", FridgeServiceServer.ToggleShoppingEntry),
		unaryMethod("ClearShoppingList", FridgeServiceServer.ClearShoppingList),
		unaryMethod("MoveBoughtToFridge", FridgeServiceServer.MoveBoughtToFridge),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "fridgemate/v1/fridge.proto",
}

// RegisterFridgeServiceServer registers srv with s.
func RegisterFridgeServiceServer(s grpc.ServiceRegistrar, srv FridgeServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func fullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// unaryMethod builds the handler a protoc-generated stub would contain for method.
func unaryMethod[Req, Resp any](method string, call func(FridgeServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				// A request that does not decode is the caller's fault.
				return nil, status.Error(codes.InvalidArgument, status.Convert(err).Message())
			}
			if interceptor == nil {
				return call(srv.(FridgeServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod(method),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(FridgeServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
