package handler

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/pkg/rpc"
	"google.golang.org/grpc"
)

const BasketServiceName = "omnipos.catalog.v1.BasketService"

type BasketServer interface {
	CreateBasket(context.Context, *SessionRequest) (*BasketResponse, error)
	GetBasket(context.Context, *SessionRequest) (*BasketResponse, error)
	GetOrCreateBasket(context.Context, *SessionRequest) (*BasketResponse, error)
	AddItem(context.Context, *LineRequest) (*LineResponse, error)
	UpdateItemCount(context.Context, *LineRequest) (*LineResponse, error)
	RemoveItem(context.Context, *RemoveItemRequest) (*Empty, error)
	ListItems(context.Context, *ListItemsRequest) (*ListItemsResponse, error)
	ListItemsByPriceGroups(context.Context, *ListItemsByPriceGroupsRequest) (*ListItemsResponse, error)
	Total(context.Context, *SessionRequest) (*TotalResponse, error)
}

var BasketServiceDesc = grpc.ServiceDesc{
	ServiceName: BasketServiceName,
	HandlerType: (*BasketServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.UnaryMethod(BasketServiceName, "CreateBasket", BasketServer.CreateBasket),
		rpc.UnaryMethod(BasketServiceName, "GetBasket", BasketServer.GetBasket),
		rpc.UnaryMethod(BasketServiceName, "GetOrCreateBasket", BasketServer.GetOrCreateBasket),
		rpc.UnaryMethod(BasketServiceName, "AddItem", BasketServer.AddItem),
		rpc.UnaryMethod(BasketServiceName, "UpdateItemCount", BasketServer.UpdateItemCount),
		rpc.UnaryMethod(BasketServiceName, "RemoveItem", BasketServer.RemoveItem),
		rpc.UnaryMethod(BasketServiceName, "ListItems", BasketServer.ListItems),
		rpc.UnaryMethod(BasketServiceName, "ListItemsByPriceGroups", BasketServer.ListItemsByPriceGroups),
		rpc.UnaryMethod(BasketServiceName, "Total", BasketServer.Total),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterBasketServiceServer(s grpc.ServiceRegistrar, srv BasketServer) {
	s.RegisterService(&BasketServiceDesc, srv)
}
