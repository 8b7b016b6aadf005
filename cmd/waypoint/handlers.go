package main

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/logger"
	"github.com/dmitrymomot/waypoint/core/response"
	"github.com/dmitrymomot/waypoint/middleware"
)

type item struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

type itemStore struct {
	mu    sync.RWMutex
	items map[string]item
}

func newItemStore() *itemStore {
	return &itemStore{items: make(map[string]item)}
}

func (s *itemStore) list() []item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]item, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it)
	}
	slices.SortFunc(out, func(a, b item) int { return strings.Compare(a.Name, b.Name) })
	return out
}

func (s *itemStore) get(id string) (item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.items[id]
	return it, ok
}

func (s *itemStore) put(it item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[it.ID] = it
}

func (s *itemStore) delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	return true
}

func listItems(store *itemStore) handler.HandlerFunc {
	return func(ctx *handler.Context) error {
		all := store.list()

		if limit, err := strconv.Atoi(ctx.Query.Get("limit")); err == nil && limit >= 0 && limit < len(all) {
			all = all[:limit]
		}
		return ctx.Reply.JSON(map[string]any{"items": all})
	}
}

func createItem(store *itemStore, log *slog.Logger) handler.HandlerFunc {
	return func(ctx *handler.Context) error {
		body, ok := middleware.Body[map[string]any](ctx)
		if !ok {
			return response.ErrBadRequest.WithMessage("JSON body required")
		}

		name, _ := body["name"].(string)
		price, _ := body["price"].(float64)
		if strings.TrimSpace(name) == "" {
			return response.ErrUnprocessableEntity.WithDetails(map[string]any{"name": "required"})
		}

		it := item{ID: uuid.NewString(), Name: name, Price: int(price)}
		store.put(it)

		log.InfoContext(ctx, "item created", logger.Component("items"), slog.String("item_id", it.ID))
		return ctx.Reply.Status(http.StatusCreated).JSON(it)
	}
}

func getItem(store *itemStore) handler.HandlerFunc {
	return func(ctx *handler.Context) error {
		it, ok := store.get(ctx.Param("id"))
		if !ok {
			return response.ErrNotFound.WithMessage("item not found")
		}
		return ctx.Reply.JSON(it)
	}
}

func deleteItem(store *itemStore, log *slog.Logger) handler.HandlerFunc {
	return func(ctx *handler.Context) error {
		id := ctx.Param("id")
		if !store.delete(id) {
			return response.ErrNotFound.WithMessage("item not found")
		}

		log.InfoContext(ctx, "item deleted", logger.Component("items"), slog.String("item_id", id))
		return ctx.Reply.Status(http.StatusNoContent).Send(nil)
	}
}

// requireToken rejects requests without the bearer token. An empty token
// rejects everything.
func requireToken(token string) handler.BeforeFunc {
	return func(ctx *handler.Context, next handler.Next) error {
		got, ok := strings.CutPrefix(ctx.Header("Authorization"), "Bearer ")
		if !ok || token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			return response.ErrUnauthorized
		}
		next(ctx)
		return nil
	}
}

// apiVersion tags API responses.
func apiVersion(ctx *handler.Context, next handler.Next) error {
	ctx.Reply.SetHeader("X-API-Version", "1")
	next(ctx)
	return nil
}
