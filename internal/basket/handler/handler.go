package handler

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/auth"
	"github.com/fekuna/omnipos-catalog-service/internal/basket"
	"github.com/fekuna/omnipos-catalog-service/internal/basket/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/query"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/fekuna/omnipos-catalog-service/pkg/rpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var _ BasketServer = (*BasketHandler)(nil)

type BasketHandler struct {
	uc     basket.UseCase
	logger logger.ZapLogger
}

func NewBasketHandler(uc basket.UseCase, log logger.ZapLogger) *BasketHandler {
	return &BasketHandler{
		uc:     uc,
		logger: log,
	}
}

func session(ctx context.Context, explicit string) (string, error) {
	s := auth.GetSessionToken(ctx, explicit)
	if s == "" {
		return "", status.Error(codes.Unauthenticated, "session token is required")
	}
	return s, nil
}

func (h *BasketHandler) CreateBasket(ctx context.Context, req *SessionRequest) (*BasketResponse, error) {
	s, err := session(ctx, req.Session)
	if err != nil {
		return nil, err
	}
	b, err := h.uc.CreateBasket(ctx, s)
	if err != nil {
		return nil, rpc.ToStatus(err, h.logger)
	}
	return &BasketResponse{Basket: b}, nil
}

func (h *BasketHandler) GetBasket(ctx context.Context, req *SessionRequest) (*BasketResponse, error) {
	s, err := session(ctx, req.Session)
	if err != nil {
		return nil, err
	}
	b, err := h.uc.GetBasket(ctx, s)
	if err != nil {
		return nil, rpc.ToStatus(err, h.logger)
	}
	if b == nil {
		return nil, status.Error(codes.NotFound, "basket not found")
	}
	return &BasketResponse{Basket: b}, nil
}

func (h *BasketHandler) GetOrCreateBasket(ctx context.Context, req *SessionRequest) (*BasketResponse, error) {
	s, err := session(ctx, req.Session)
	if err != nil {
		return nil, err
	}
	b, err := h.uc.GetOrCreateBasket(ctx, s)
	if err != nil {
		return nil, rpc.ToStatus(err, h.logger)
	}
	return &BasketResponse{Basket: b}, nil
}

func (h *BasketHandler) AddItem(ctx context.Context, req *LineRequest) (*LineResponse, error) {
	s, err := session(ctx, req.Session)
	if err != nil {
		return nil, err
	}
	line, err := h.uc.AddItem(ctx, &dto.LineInput{Session: s, Code: req.Code, Count: req.Count})
	if err != nil {
		return nil, rpc.ToStatus(err, h.logger)
	}
	return &LineResponse{Line: line}, nil
}

func (h *BasketHandler) UpdateItemCount(ctx context.Context, req *LineRequest) (*LineResponse, error) {
	s, err := session(ctx, req.Session)
	if err != nil {
		return nil, err
	}
	line, err := h.uc.UpdateItemCount(ctx, &dto.LineInput{Session: s, Code: req.Code, Count: req.Count})
	if err != nil {
		return nil, rpc.ToStatus(err, h.logger)
	}
	return &LineResponse{Line: line}, nil
}

func (h *BasketHandler) RemoveItem(ctx context.Context, req *RemoveItemRequest) (*Empty, error) {
	s, err := session(ctx, req.Session)
	if err != nil {
		return nil, err
	}
	if err := h.uc.RemoveItem(ctx, s, req.Code); err != nil {
		return nil, rpc.ToStatus(err, h.logger)
	}
	return &Empty{}, nil
}

// ascending defaults to true when the request leaves it out.
func ascending(v *bool) bool {
	return v == nil || *v
}

func (h *BasketHandler) ListItems(ctx context.Context, req *ListItemsRequest) (*ListItemsResponse, error) {
	s, err := session(ctx, req.Session)
	if err != nil {
		return nil, err
	}
	sortKey := req.SortKey
	if sortKey == "" {
		sortKey = string(query.SortByDescription)
	}
	items, err := h.uc.ListItems(ctx, s, sortKey, ascending(req.Ascending))
	if err != nil {
		return nil, rpc.ToStatus(err, h.logger)
	}
	return &ListItemsResponse{Items: items}, nil
}

func (h *BasketHandler) ListItemsByPriceGroups(ctx context.Context, req *ListItemsByPriceGroupsRequest) (*ListItemsResponse, error) {
	s, err := session(ctx, req.Session)
	if err != nil {
		return nil, err
	}
	groups, err := query.ParsePriceGroupSpecs(req.Groups)
	if err != nil {
		return nil, rpc.ToStatus(err, h.logger)
	}
	items, err := h.uc.ListItemsByPriceGroups(ctx, s, groups, ascending(req.Ascending))
	if err != nil {
		return nil, rpc.ToStatus(err, h.logger)
	}
	return &ListItemsResponse{Items: items}, nil
}

func (h *BasketHandler) Total(ctx context.Context, req *SessionRequest) (*TotalResponse, error) {
	s, err := session(ctx, req.Session)
	if err != nil {
		return nil, err
	}
	total, err := h.uc.Total(ctx, s)
	if err != nil {
		return nil, rpc.ToStatus(err, h.logger)
	}
	return &TotalResponse{Total: total}, nil
}
