package xaman

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/xrpl-community/xaman-go/pkg/log"
)

// Storage is the per-application JSON document the platform keeps under
// platform/app-storage.
type Storage struct {
	Application StorageApplication `json:"application"`
	Data        json.RawMessage    `json:"data,omitempty"`
}

type StorageApplication struct {
	Name   string `json:"name"`
	UUIDv4 string `json:"uuidv4"`
}

// StorageUpdate is the answer to a store or clear operation.
type StorageUpdate struct {
	Storage
	Stored bool `json:"stored"`
}

// StorageClient reads and writes the application storage document.
type StorageClient struct {
	http *httpClient
	lg   log.Logger
}

func newStorageClient(http *httpClient, lg log.Logger) *StorageClient {
	return &StorageClient{
		http: http,
		lg:   lg.WithName("storage"),
	}
}

// Get fetches the stored document.
func (c *StorageClient) Get(ctx context.Context) (*Storage, error) {
	var out Storage
	if err := c.http.do(ctx, http.MethodGet, "platform/app-storage", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Store replaces the stored document with the given JSON.
func (c *StorageClient) Store(ctx context.Context, data json.RawMessage) (*StorageUpdate, error) {
	var out StorageUpdate
	if err := c.http.do(ctx, http.MethodPost, "platform/app-storage", data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Clear deletes the stored document.
func (c *StorageClient) Clear(ctx context.Context) (*StorageUpdate, error) {
	var out StorageUpdate
	if err := c.http.do(ctx, http.MethodDelete, "platform/app-storage", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
