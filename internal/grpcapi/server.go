package grpcapi

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/DaDevFox/fridgemate/internal/domain"
	"github.com/DaDevFox/fridgemate/internal/service"
	"github.com/DaDevFox/fridgemate/internal/view"
)

// Server implements FridgeServiceServer on top of the services
type Server struct {
	inventory       *service.InventoryService
	budgets         *service.BudgetService
	notifications   *service.NotificationService
	recipes         *service.RecipeService
	shopping        *service.ShoppingService
	defaultPageSize int
	logger          *logrus.Logger
}

var _ FridgeServiceServer = (*Server)(nil)

// NewServer creates a new FridgeService implementation. Requests without a
// page size use defaultPageSize.
func NewServer(
	inventory *service.InventoryService,
	budgets *service.BudgetService,
	notifications *service.NotificationService,
	recipes *service.RecipeService,
	shopping *service.ShoppingService,
	defaultPageSize int,
	logger *logrus.Logger,
) *Server {
	if defaultPageSize <= 0 {
		defaultPageSize = view.DefaultPageSize
	}
	return &Server{
		inventory:       inventory,
		budgets:         budgets,
		notifications:   notifications,
		recipes:         recipes,
		shopping:        shopping,
		defaultPageSize: defaultPageSize,
		logger:          logger,
	}
}

// NewGRPCServer builds a gRPC server with FridgeService, the health service
// and request logging registered.
func NewGRPCServer(srv *Server, logger *logrus.Logger, opts ...grpc.ServerOption) (*grpc.Server, *health.Server) {
	opts = append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(LoggingInterceptor(logger))}, opts...)
	grpcServer := grpc.NewServer(opts...)

	RegisterFridgeServiceServer(grpcServer, srv)

	healthServer := health.NewServer()
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	return grpcServer, healthServer
}

func (s *Server) AddItem(ctx context.Context, req *AddItemRequest) (*AddItemResponse, error) {
	item, err := s.inventory.AddItem(ctx, *req)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &AddItemResponse{Item: item}, nil
}

func (s *Server) GetItem(ctx context.Context, req *GetItemRequest) (*GetItemResponse, error) {
	item, err := s.inventory.GetItem(ctx, req.ID)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &GetItemResponse{Item: item}, nil
}

func (s *Server) DeleteItem(ctx context.Context, req *DeleteItemRequest) (*DeleteItemResponse, error) {
	if err := s.inventory.DeleteItem(ctx, req.ID); err != nil {
		return nil, s.toStatus(err)
	}
	return &DeleteItemResponse{}, nil
}

func (s *Server) DeleteExpired(ctx context.Context, req *DeleteExpiredRequest) (*DeleteExpiredResponse, error) {
	deleted, err := s.inventory.DeleteExpired(ctx)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &DeleteExpiredResponse{Deleted: deleted}, nil
}

func (s *Server) ListItems(ctx context.Context, req *ListItemsRequest) (*ListItemsResponse, error) {
	state := req.State
	if state.PageSize <= 0 {
		state.PageSize = s.defaultPageSize
	}

	page, err := s.inventory.ListView(ctx, state)
	if err != nil {
		return nil, s.toStatus(err)
	}

	counts, err := s.inventory.Summary(ctx)
	if err != nil {
		return nil, s.toStatus(err)
	}

	return &ListItemsResponse{Page: page, Counts: counts}, nil
}

func (s *Server) ListProductTypes(ctx context.Context, req *ListProductTypesRequest) (*ListProductTypesResponse, error) {
	types, err := s.inventory.ListProductTypes(ctx)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &ListProductTypesResponse{Types: types}, nil
}

func (s *Server) AddProductType(ctx context.Context, req *AddProductTypeRequest) (*AddProductTypeResponse, error) {
	if req.Type == nil {
		return nil, status.Error(codes.InvalidArgument, "type is required")
	}
	productType, err := s.inventory.AddProductType(ctx, req.Type)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &AddProductTypeResponse{Type: productType}, nil
}

func (s *Server) GetBudget(ctx context.Context, req *GetBudgetRequest) (*BudgetResponse, error) {
	budget, err := s.budgets.GetBudget(ctx)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return newBudgetResponse(budget), nil
}

func (s *Server) CreateBudget(ctx context.Context, req *CreateBudgetRequest) (*BudgetResponse, error) {
	budget, err := s.budgets.CreateBudget(ctx, req.Total)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return newBudgetResponse(budget), nil
}

func (s *Server) UpdateBudgetLimit(ctx context.Context, req *UpdateBudgetLimitRequest) (*BudgetResponse, error) {
	budget, err := s.budgets.UpdateLimit(ctx, req.Total)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return newBudgetResponse(budget), nil
}

func (s *Server) AddExpense(ctx context.Context, req *AddExpenseRequest) (*BudgetResponse, error) {
	budget, err := s.budgets.AddExpense(ctx, req.Amount)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return newBudgetResponse(budget), nil
}

func (s *Server) ListNotifications(ctx context.Context, req *ListNotificationsRequest) (*ListNotificationsResponse, error) {
	notifications, err := s.notifications.List(ctx, req.Type)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &ListNotificationsResponse{Notifications: notifications}, nil
}

func (s *Server) DeleteNotification(ctx context.Context, req *DeleteNotificationRequest) (*DeleteNotificationResponse, error) {
	if err := s.notifications.Delete(ctx, req.ID); err != nil {
		return nil, s.toStatus(err)
	}
	return &DeleteNotificationResponse{}, nil
}

func (s *Server) ScanNotifications(ctx context.Context, req *ScanNotificationsRequest) (*ScanNotificationsResponse, error) {
	created, err := s.notifications.Scan(ctx)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &ScanNotificationsResponse{Created: created}, nil
}

func (s *Server) AddRecipe(ctx context.Context, req *AddRecipeRequest) (*RecipeResponse, error) {
	recipe, err := s.recipes.AddRecipe(ctx, *req)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &RecipeResponse{Recipe: recipe}, nil
}

func (s *Server) GetRecipe(ctx context.Context, req *GetRecipeRequest) (*RecipeResponse, error) {
	recipe, err := s.recipes.GetRecipe(ctx, req.ID)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &RecipeResponse{Recipe: recipe}, nil
}

func (s *Server) ListRecipes(ctx context.Context, req *ListRecipesRequest) (*ListRecipesResponse, error) {
	query := *req
	if query.PageSize <= 0 {
		query.PageSize = s.defaultPageSize
	}

	page, err := s.recipes.ListRecipes(ctx, query)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &ListRecipesResponse{Page: page}, nil
}

func (s *Server) SuggestRecipes(ctx context.Context, req *SuggestRecipesRequest) (*SuggestRecipesResponse, error) {
	suggestions, err := s.recipes.SuggestRecipes(ctx)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &SuggestRecipesResponse{Suggestions: suggestions}, nil
}

func (s *Server) AddShoppingEntry(ctx context.Context, req *AddShoppingEntryRequest) (*ShoppingEntryResponse, error) {
	entry, err := s.shopping.Add(ctx, req.Name)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &ShoppingEntryResponse{Entry: entry}, nil
}

func (s *Server) ListShoppingEntries(ctx context.Context, req *ListShoppingEntriesRequest) (*ListShoppingEntriesResponse, error) {
	entries, err := s.shopping.List(ctx)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &ListShoppingEntriesResponse{Entries: entries}, nil
}

func (s *Server) ToggleShoppingEntry(ctx context.Context, req *ToggleShoppingEntryRequest) (*ShoppingEntryResponse, error) {
	entry, err := s.shopping.Toggle(ctx, req.ID)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &ShoppingEntryResponse{Entry: entry}, nil
}

func (s *Server) ClearShoppingList(ctx context.Context, req *ClearShoppingListRequest) (*ClearShoppingListResponse, error) {
	deleted, err := s.shopping.Clear(ctx)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &ClearShoppingListResponse{Deleted: deleted}, nil
}

func (s *Server) MoveBoughtToFridge(ctx context.Context, req *MoveBoughtToFridgeRequest) (*MoveBoughtToFridgeResponse, error) {
	items, err := s.shopping.MoveBoughtToFridge(ctx)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &MoveBoughtToFridgeResponse{Items: items}, nil
}

// toStatus maps service errors to gRPC status errors. Unexpected errors are
// logged and reported as Internal without details.
func (s *Server) toStatus(err error) error {
	var (
		validationErr *domain.ValidationError
		dateErr       *domain.InvalidDateError
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &dateErr), errors.Is(err, domain.ErrInvalidBudget):
		return status.Error(codes.InvalidArgument, err.Error())
	case domain.IsNotFound(err):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrBudgetExceeded):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	s.logger.WithError(err).Error("request failed")
	return status.Error(codes.Internal, "internal error")
}
