package services

import (
	"context"
	"errors"

	"github.com/Supermili365/expirapp/internal/domain"
	"github.com/Supermili365/expirapp/internal/upstream"
)

var ErrNotASeller = errors.New("session user has no store")

// InventoryService is the seller side: listing, publishing, hiding and
// deleting a store's products.
type InventoryService struct {
	API *upstream.Client
}

// ProductDraft is what a seller submits; the store id always comes from
// the session, never from the request body.
type ProductDraft struct {
	Name        string  `json:"nombre"`
	Description string  `json:"descripcion"`
	Price       float64 `json:"precio"`
	ExpiryDate  string  `json:"fecha_vencimiento"`
	Stock       *int    `json:"stock"`
	Status      string  `json:"estado"`
}

func (s *InventoryService) List(ctx context.Context, sess *Session) ([]domain.Product, error) {
	if !sess.User.IsSeller() {
		return nil, ErrNotASeller
	}
	return s.API.StoreProducts(ctx, sess.BearerToken, *sess.User.StoreID)
}

func (s *InventoryService) Create(ctx context.Context, sess *Session, draft ProductDraft) error {
	if !sess.User.IsSeller() {
		return ErrNotASeller
	}
	if draft.Name == "" || draft.Price < 0 || draft.ExpiryDate == "" {
		return errors.New("nombre, precio and fecha_vencimiento are required")
	}
	return s.API.CreateProduct(ctx, sess.BearerToken, upstream.CreateProductInput{
		Name:        draft.Name,
		Description: draft.Description,
		Price:       draft.Price,
		ExpiryDate:  draft.ExpiryDate,
		Stock:       draft.Stock,
		Status:      draft.Status,
		StoreID:     *sess.User.StoreID,
	})
}

func (s *InventoryService) ToggleVisibility(ctx context.Context, sess *Session, productID int) error {
	if !sess.User.IsSeller() {
		return ErrNotASeller
	}
	return s.API.ToggleProductVisibility(ctx, sess.BearerToken, productID)
}

func (s *InventoryService) Delete(ctx context.Context, sess *Session, productID int) error {
	if !sess.User.IsSeller() {
		return ErrNotASeller
	}
	return s.API.DeleteProduct(ctx, sess.BearerToken, productID)
}
