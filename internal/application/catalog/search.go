package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/estantedev/estante/internal/domain/catalog"
	"github.com/estantedev/estante/internal/domain/specification"
)

// Sortable column whitelists. Order strings reference request-level field
// names; anything outside the whitelist falls back to ascending id instead
// of failing the request.
var (
	bookSortColumns = map[string]string{
		"id":        "id",
		"title":     "title",
		"author":    "author",
		"isbn":      "isbn",
		"createdat": "created_at",
		"updatedat": "updated_at",
	}

	nameSortColumns = map[string]string{
		"id":        "id",
		"name":      "name",
		"createdat": "created_at",
		"updatedat": "updated_at",
	}
)

// parseOrder maps an "<Field> asc|desc" string onto a whitelisted column.
func parseOrder(order string, columns map[string]string) *catalog.Sort {
	fields := strings.Fields(strings.TrimSpace(order))
	if len(fields) == 0 || len(fields) > 2 {
		return nil
	}

	column, ok := columns[strings.ToLower(fields[0])]
	if !ok {
		return nil
	}

	desc := false
	if len(fields) == 2 {
		switch strings.ToLower(fields[1]) {
		case "asc":
		case "desc":
			desc = true
		default:
			return nil
		}
	}

	return &catalog.Sort{Column: column, Desc: desc}
}

// supplied treats empty and whitespace-only filter values as absent.
func supplied(value string) bool {
	return strings.TrimSpace(value) != ""
}

func buildBookSpecification(query SearchBooksQuery) specification.Specification {
	specs := []specification.Specification{specification.All()}

	if supplied(query.Filter) {
		specs = append(specs, specification.Or(
			specification.Contains("title", query.Filter),
			specification.Contains("author", query.Filter),
			specification.Contains("isbn", query.Filter),
			specification.Contains("synopsis", query.Filter),
		))
	}
	if supplied(query.Title) {
		specs = append(specs, specification.Contains("title", query.Title))
	}
	if supplied(query.Author) {
		specs = append(specs, specification.Contains("author", query.Author))
	}
	if supplied(query.ISBN) {
		specs = append(specs, specification.Contains("isbn", query.ISBN))
	}
	if query.ID != nil {
		specs = append(specs, specification.Eq("id", *query.ID))
	}
	if query.GenderID != nil {
		specs = append(specs, specification.Eq("gender_id", *query.GenderID))
	}
	if query.PublisherID != nil {
		specs = append(specs, specification.Eq("publisher_id", *query.PublisherID))
	}
	if query.IsDeleted != nil {
		specs = append(specs, specification.Eq("is_deleted", *query.IsDeleted))
	}
	if query.CreatedAt != nil {
		specs = append(specs, specification.Eq("created_at", *query.CreatedAt))
	}

	return specification.And(specs...)
}

func buildGenderSpecification(query SearchGendersQuery) specification.Specification {
	return buildNamedSpecification(namedFilters{
		Filter:      query.Filter,
		Name:        query.Name,
		Description: query.Description,
		ID:          query.ID,
		IsDeleted:   query.IsDeleted,
		CreatedAt:   query.CreatedAt,
	})
}

func buildPublisherSpecification(query SearchPublishersQuery) specification.Specification {
	return buildNamedSpecification(namedFilters{
		Filter:      query.Filter,
		Name:        query.Name,
		Description: query.Description,
		ID:          query.ID,
		IsDeleted:   query.IsDeleted,
		CreatedAt:   query.CreatedAt,
	})
}

// namedFilters is the shared filter shape of the name/description
// aggregates.
type namedFilters struct {
	Filter      string
	Name        string
	Description string
	ID          *uuid.UUID
	IsDeleted   *bool
	CreatedAt   *time.Time
}

func buildNamedSpecification(filters namedFilters) specification.Specification {
	specs := []specification.Specification{specification.All()}

	if supplied(filters.Filter) {
		specs = append(specs, specification.Or(
			specification.Contains("name", filters.Filter),
			specification.Contains("description", filters.Filter),
		))
	}
	if supplied(filters.Name) {
		specs = append(specs, specification.Contains("name", filters.Name))
	}
	if supplied(filters.Description) {
		specs = append(specs, specification.Contains("description", filters.Description))
	}
	if filters.ID != nil {
		specs = append(specs, specification.Eq("id", *filters.ID))
	}
	if filters.IsDeleted != nil {
		specs = append(specs, specification.Eq("is_deleted", *filters.IsDeleted))
	}
	if filters.CreatedAt != nil {
		specs = append(specs, specification.Eq("created_at", *filters.CreatedAt))
	}

	return specification.And(specs...)
}
