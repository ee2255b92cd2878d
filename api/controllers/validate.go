package controllers

import (
	"net/http"

	"github.com/storeops/storefront-backend/api/responses"
	"github.com/storeops/storefront-backend/api/validators"
	cartsvc "github.com/storeops/storefront-backend/internal/cart"
	pkgerrors "github.com/storeops/storefront-backend/pkg/errors"
	"github.com/storeops/storefront-backend/pkg/logger"
)

type validateItemRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

type validateCartRequest struct {
	Items []validateItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CartValidate prices the submitted lines from the live catalog and returns
// a display-rounded preview. Nothing is persisted.
func CartValidate(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload validateCartRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		refs := make([]cartsvc.ItemRef, len(payload.Items))
		for i, item := range payload.Items {
			refs[i] = cartsvc.ItemRef{ProductID: item.ProductID, Quantity: item.Quantity}
		}

		report, err := svc.Validate(r.Context(), refs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}
