package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/Supermili365/expirapp/internal/domain"
	"github.com/Supermili365/expirapp/internal/upstream"
)

var ErrProductNotFound = errors.New("product not found")

// CatalogService proxies the backend catalog and applies the storefront's
// browse filters on the gateway side.
type CatalogService struct {
	API *upstream.Client
	// AssetBase prefixes relative image paths the backend sends.
	AssetBase string
}

func NewCatalogService(api *upstream.Client, assetBase string) *CatalogService {
	return &CatalogService{API: api, AssetBase: strings.TrimRight(assetBase, "/")}
}

type CatalogFilter struct {
	Query         string
	Category      string
	DonationsOnly bool
	OffersOnly    bool
	// ExpiringFirst orders results by expiry date, soonest first.
	ExpiringFirst bool
}

func (s *CatalogService) normalize(p *domain.Product) {
	if p.ImageURL == "" {
		return
	}
	img := strings.ReplaceAll(p.ImageURL, `\`, "/")
	if !strings.HasPrefix(img, "http") && s.AssetBase != "" {
		img = s.AssetBase + "/" + strings.TrimLeft(img, "/")
	}
	p.ImageURL = img
}

func matches(p domain.Product, f CatalogFilter) bool {
	if f.DonationsOnly && !p.IsDonation() {
		return false
	}
	if f.OffersOnly && p.Badge() != "Oferta" {
		return false
	}
	if f.Category != "" && !strings.EqualFold(p.CategoryName, f.Category) {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}
	return true
}

func (s *CatalogService) List(ctx context.Context, f CatalogFilter) ([]domain.Product, error) {
	all, err := s.API.Products(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if !matches(p, f) {
			continue
		}
		s.normalize(&p)
		out = append(out, p)
	}
	if f.ExpiringFirst {
		// ISO dates compare lexicographically; undated products sink.
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].ExpiryDate, out[j].ExpiryDate
			if (a == "") != (b == "") {
				return a != ""
			}
			return a < b
		})
	}
	return out, nil
}

func (s *CatalogService) Get(ctx context.Context, id int) (*domain.Product, error) {
	all, err := s.API.Products(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range all {
		if p.ID == id {
			s.normalize(&p)
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}
