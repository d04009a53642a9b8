package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/bytebank-server/internal/entry"
)

// Category is the API model of one selectable category.
type Category struct {
	ID    string `json:"id" doc:"Category id sent back on submission"`
	Name  string `json:"name" doc:"Display name"`
	Icon  string `json:"icon" doc:"Icon name"`
	Color string `json:"color" doc:"Hex color"`
}

// ListCategoriesInput is the Huma input for listing categories.
type ListCategoriesInput struct {
	Kind string `path:"kind" doc:"expense or income"`
}

// ListCategoriesResponse describes the entry screen of one kind.
type ListCategoriesResponse struct {
	Kind       string     `json:"kind" doc:"Transaction kind"`
	Title      string     `json:"title" doc:"Screen title"`
	Accent     string     `json:"accent" doc:"Accent color"`
	Categories []Category `json:"categories" doc:"Selectable categories, in display order"`
}

// ListCategoriesOutput is the Huma output for listing categories.
type ListCategoriesOutput struct {
	Body ListCategoriesResponse
}

// ListCategoriesHandler handles GET /v1/categories/{kind}.
type ListCategoriesHandler struct{}

func NewListCategoriesHandler() *ListCategoriesHandler {
	return &ListCategoriesHandler{}
}

// Register registers the list categories endpoint with the Huma API.
func (h *ListCategoriesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/v1/categories/{kind}",
		Summary:     "List categories",
		Description: "Returns the category set and display settings of an entry kind.",
		Tags:        []string{"Entries"},
	}, h.handle)
}

func (h *ListCategoriesHandler) handle(ctx context.Context, input *ListCategoriesInput) (*ListCategoriesOutput, error) {
	cfg, ok := entry.ConfigFor(entry.Kind(input.Kind))
	if !ok {
		return nil, huma.NewError(http.StatusNotFound, "unknown kind "+input.Kind)
	}

	resp := ListCategoriesResponse{
		Kind:       string(cfg.Kind),
		Title:      cfg.Title,
		Accent:     cfg.Accent,
		Categories: make([]Category, len(cfg.Categories)),
	}
	for i, c := range cfg.Categories {
		resp.Categories[i] = Category{ID: c.ID, Name: c.Name, Icon: c.Icon, Color: c.Color}
	}
	return &ListCategoriesOutput{Body: resp}, nil
}
