package memstore

import (
	"github.com/fekuna/omnipos-catalog-service/internal/basket"
	"github.com/fekuna/omnipos-catalog-service/internal/catalog"
	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/item"
	"github.com/fekuna/omnipos-catalog-service/internal/reservation"
	"github.com/fekuna/omnipos-catalog-service/internal/stock"
	"github.com/fekuna/omnipos-catalog-service/pkg/database/postgres"
)

var (
	_ category.Repository    = (*CategoryRepo)(nil)
	_ item.Repository        = (*ItemRepo)(nil)
	_ stock.Repository       = (*StockRepo)(nil)
	_ reservation.Repository = (*ReservationRepo)(nil)
	_ basket.Repository      = (*BasketRepo)(nil)
	_ catalog.Repository     = (*CatalogRepo)(nil)
	_ postgres.Transactor    = (*Tx)(nil)
)
