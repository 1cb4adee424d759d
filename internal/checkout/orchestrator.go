// Package checkout turns a multi-store cart into one order per store and
// submits them sequentially against the backend, retrying server-side
// failures and aggregating per-store results into a single outcome.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Supermili365/expirapp/internal/domain"
	"github.com/Supermili365/expirapp/internal/upstream"
)

// Validation failures; terminal, nothing is sent upstream.
var (
	ErrEmptyCart  = errors.New("cart is empty")
	ErrNoIdentity = errors.New("client identity is not available")
	ErrNoToken    = errors.New("no active session")
)

// Identity is the session capability the orchestrator needs. It keeps the
// core free of any cookie or storage detail.
type Identity interface {
	Token() string
	CurrentUser() *domain.User
}

// OrderPoster is the slice of the upstream client used here.
type OrderPoster interface {
	PlaceOrder(ctx context.Context, token string, req upstream.OrderRequest) (*upstream.OrderReceipt, error)
}

type Orchestrator struct {
	Orders OrderPoster
	Retry  Policy
}

func New(orders OrderPoster) *Orchestrator {
	return &Orchestrator{Orders: orders, Retry: DefaultPolicy()}
}

// StoreResult is the settled result of one store's submission. StoreID is
// the canonical numeric identifier; Store is only for display.
type StoreResult struct {
	StoreID int    `json:"storeId"`
	Store   string `json:"store"`
	OK      bool   `json:"success"`
	OrderID int64  `json:"orderId,omitempty"`
	Err     string `json:"error,omitempty"`
}

type Outcome struct {
	Results   []StoreResult `json:"results"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Message   string        `json:"message"`
}

func (o Outcome) AllOK() bool     { return o.Failed == 0 && o.Succeeded > 0 }
func (o Outcome) Partial() bool   { return o.Failed > 0 && o.Succeeded > 0 }
func (o Outcome) AllFailed() bool { return o.Succeeded == 0 && o.Failed > 0 }

// ParseProductID extracts the numeric catalog id from a cart item id:
// "p-42" or a bare "42".
func ParseProductID(itemID string) (int, error) {
	s := strings.TrimSpace(itemID)
	if rest, ok := strings.CutPrefix(s, "p-"); ok {
		s = rest
	}
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("item %q has no valid product id", itemID)
	}
	return id, nil
}

// buildRequest assembles one store's order. A line with an unparsable
// product id invalidates the whole store order, not the checkout.
func buildRequest(clientID int, store domain.CartStore, paymentMethod string) (upstream.OrderRequest, error) {
	req := upstream.OrderRequest{
		ClientID:      clientID,
		StoreID:       store.ID,
		PaymentMethod: paymentMethod,
	}
	for _, it := range store.Items {
		if it.Quantity <= 0 {
			continue
		}
		pid, err := ParseProductID(it.ItemID)
		if err != nil {
			return upstream.OrderRequest{}, err
		}
		req.Items = append(req.Items, upstream.OrderItem{
			ProductID: pid,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice().InexactFloat64(),
		})
	}
	if len(req.Items) == 0 {
		return upstream.OrderRequest{}, errors.New("no orderable items")
	}
	return req, nil
}

// Submit runs one checkout attempt from scratch: validate, then submit one
// order per store in cart order, each through the retry policy. Stores are
// independent; one failure never aborts the rest. There is no cross-store
// transaction.
func (o *Orchestrator) Submit(ctx context.Context, id Identity, stores []domain.CartStore, paymentMethod string) (Outcome, error) {
	if len(stores) == 0 {
		return Outcome{}, ErrEmptyCart
	}
	user := id.CurrentUser()
	if user == nil || user.ID <= 0 {
		return Outcome{}, ErrNoIdentity
	}
	token := id.Token()
	if token == "" {
		return Outcome{}, ErrNoToken
	}

	out := Outcome{Results: make([]StoreResult, 0, len(stores))}
	for _, store := range stores {
		res := StoreResult{StoreID: store.ID, Store: store.Name}

		req, err := buildRequest(user.ID, store, paymentMethod)
		if err == nil {
			err = o.Retry.Do(ctx, func() error {
				receipt, perr := o.Orders.PlaceOrder(ctx, token, req)
				if perr != nil {
					return perr
				}
				res.OrderID = receipt.OrderID
				return nil
			})
		}

		if err != nil {
			res.Err = err.Error()
			out.Failed++
		} else {
			res.OK = true
			out.Succeeded++
		}
		out.Results = append(out.Results, res)
	}

	out.Message = summarize(out)
	return out, nil
}

func summarize(o Outcome) string {
	switch {
	case o.AllOK():
		ids := make([]string, 0, len(o.Results))
		for _, r := range o.Results {
			if r.OrderID > 0 {
				ids = append(ids, strconv.FormatInt(r.OrderID, 10))
			}
		}
		if len(ids) == 0 {
			return "Order placed successfully."
		}
		return "Order placed successfully. Order numbers: " + strings.Join(ids, ", ")
	case o.Partial():
		var okNames, failNames []string
		for _, r := range o.Results {
			if r.OK {
				okNames = append(okNames, r.Store)
			} else {
				failNames = append(failNames, fmt.Sprintf("%s (%s)", r.Store, r.Err))
			}
		}
		return fmt.Sprintf("Some orders went through: %s. Failed: %s.",
			strings.Join(okNames, ", "), strings.Join(failNames, "; "))
	default:
		var errs []string
		for _, r := range o.Results {
			errs = append(errs, fmt.Sprintf("%s: %s", r.Store, r.Err))
		}
		return "Could not place your order. " + strings.Join(errs, "; ")
	}
}
