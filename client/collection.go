package client

import (
	"context"
	"net/http"
	"net/url"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection binds one entity endpoint to its local ListState. F is the
// form type submitted on create and update.
type Collection[T Identifiable, F any] struct {
	client *Client
	path   string
	single string
	plural string

	mu    sync.Mutex
	state ListState[T]
}

func newCollection[T Identifiable, F any](c *Client, path, single, plural string) *Collection[T, F] {
	return &Collection[T, F]{client: c, path: path, single: single, plural: plural}
}

// State returns a copy of the current list and selection.
func (col *Collection[T, F]) State() ListState[T] {
	col.mu.Lock()
	defer col.mu.Unlock()
	return col.state.clone()
}

func (col *Collection[T, F]) Select(id primitive.ObjectID) bool {
	col.mu.Lock()
	defer col.mu.Unlock()
	return col.state.Select(id)
}

func (col *Collection[T, F]) ClearSelection() {
	col.mu.Lock()
	defer col.mu.Unlock()
	col.state.ClearSelection()
}

// Load fetches the list with the given query and replaces local state.
func (col *Collection[T, F]) Load(ctx context.Context, query url.Values) ([]T, error) {
	path := col.path
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	data, err := col.client.do(ctx, request{method: http.MethodGet, path: path})
	if err != nil {
		return nil, err
	}
	var items []T
	if err := decodeField(data, col.plural, &items); err != nil {
		return nil, err
	}

	col.mu.Lock()
	col.state.Reset(items)
	col.mu.Unlock()
	return items, nil
}

// Get fetches a single entity. Local state is not changed.
func (col *Collection[T, F]) Get(ctx context.Context, id primitive.ObjectID) (T, error) {
	var item T
	data, err := col.client.do(ctx, request{method: http.MethodGet, path: col.path + "/" + id.Hex()})
	if err != nil {
		return item, err
	}
	err = decodeField(data, col.single, &item)
	return item, err
}

// Create validates form, submits it and inserts the result at the head of
// the list.
func (col *Collection[T, F]) Create(ctx context.Context, form F) (T, error) {
	var item T
	if err := checkForm(col.client.validate, form); err != nil {
		return item, err
	}
	req, err := jsonRequest(http.MethodPost, col.path, form, true)
	if err != nil {
		return item, err
	}
	data, err := col.client.do(ctx, req)
	if err != nil {
		return item, err
	}
	if err := decodeField(data, col.single, &item); err != nil {
		return item, err
	}

	col.mu.Lock()
	col.state.Insert(item)
	col.mu.Unlock()
	return item, nil
}

// Update validates form, submits every field and replaces the local copy.
func (col *Collection[T, F]) Update(ctx context.Context, id primitive.ObjectID, form F) (T, error) {
	var item T
	if err := checkForm(col.client.validate, form); err != nil {
		return item, err
	}
	req, err := jsonRequest(http.MethodPut, col.path+"/"+id.Hex(), form, true)
	if err != nil {
		return item, err
	}
	data, err := col.client.do(ctx, req)
	if err != nil {
		return item, err
	}
	if err := decodeField(data, col.single, &item); err != nil {
		return item, err
	}

	col.mu.Lock()
	col.state.Replace(item)
	col.mu.Unlock()
	return item, nil
}

// Delete removes the entity on the server, then locally.
func (col *Collection[T, F]) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := col.client.do(ctx, request{method: http.MethodDelete, path: col.path + "/" + id.Hex(), notifySuccess: true})
	if err != nil {
		return err
	}

	col.mu.Lock()
	col.state.Remove(id)
	col.mu.Unlock()
	return nil
}
