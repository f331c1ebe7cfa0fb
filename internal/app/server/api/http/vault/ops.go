package vault

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

var bearer = []map[string][]string{{"bearer": {}}}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "vault-list",
		Method:      http.MethodGet,
		Path:        "/api/vault",
		Summary:     "List the caller's items",
		Tags:        []string{"vault"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}

func (h *Handler) getOp() huma.Operation {
	return huma.Operation{
		OperationID: "vault-get",
		Method:      http.MethodGet,
		Path:        "/api/vault/{id}",
		Summary:     "Get one of the caller's items",
		Tags:        []string{"vault"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "vault-create",
		Method:        http.MethodPost,
		Path:          "/api/vault",
		Summary:       "Store a new item",
		Tags:          []string{"vault"},
		Security:      bearer,
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "vault-update",
		Method:      http.MethodPut,
		Path:        "/api/vault",
		Summary:     "Update an item by the _id in the body",
		Tags:        []string{"vault"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "vault-delete",
		Method:      http.MethodDelete,
		Path:        "/api/vault",
		Summary:     "Delete an item by the _id in the body",
		Tags:        []string{"vault"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}
