package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"fieldservice-golang/internal/storage"
)

// Client es el fetch service del dashboard contra la API. Todas las
// operaciones llevan el bearer de la sesión. No hay retry: reenviar el
// mismo request produce efectos duplicados del lado del servidor.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	cache   *Cache
}

func New(baseURL, token string, cache *Cache) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{},
		cache:   cache,
	}
}

func (c *Client) Cache() *Cache { return c.cache }

// FetchForest trae {areas, tree}. El resultado queda cacheado bajo
// QueryOrganigrama hasta que una mutación lo invalide.
func (c *Client) FetchForest(ctx context.Context) (*storage.HierarchyForest, error) {
	const op = "FetchForest"

	if cached, ok := c.cache.Get(QueryOrganigrama); ok {
		return cached.(*storage.HierarchyForest), nil
	}

	var forest storage.HierarchyForest
	if err := c.do(ctx, op, http.MethodGet, "/api/organigrama", nil, &forest); err != nil {
		return nil, err
	}

	c.cache.Set(QueryOrganigrama, &forest)

	return &forest, nil
}

// CreateNode da de alta un puesto. Parent vacío crea una raíz nueva.
func (c *Client) CreateNode(ctx context.Context, req storage.CreateNodeRequest) (*storage.CreatedNode, error) {
	const op = "CreateNode"

	var node storage.CreatedNode
	if err := c.do(ctx, op, http.MethodPost, "/api/organigrama/node", req, &node); err != nil {
		return nil, err
	}

	return &node, nil
}

func (c *Client) BindPerson(ctx context.Context, nodeID, personID string) error {
	const op = "BindPerson"
	path := fmt.Sprintf("/api/organigrama/node/%s/user/%s", nodeID, personID)
	return c.do(ctx, op, http.MethodPost, path, nil, nil)
}

func (c *Client) UnbindPerson(ctx context.Context, nodeID, personID string) error {
	const op = "UnbindPerson"
	path := fmt.Sprintf("/api/organigrama/node/%s/user/%s", nodeID, personID)
	return c.do(ctx, op, http.MethodDelete, path, nil, nil)
}

func (c *Client) DeleteNode(ctx context.Context, nodeID string) error {
	const op = "DeleteNode"
	return c.do(ctx, op, http.MethodDelete, "/api/organigrama/node/"+nodeID, nil, nil)
}

func (c *Client) UpdateNode(ctx context.Context, nodeID string, req storage.UpdateNodeRequest) error {
	const op = "UpdateNode"
	return c.do(ctx, op, http.MethodPut, "/api/organigrama/node/"+nodeID, req, nil)
}

// do arma el request, clasifica la falla según la taxonomía (red / auth /
// servidor) y decodifica la respuesta si out no es nil.
func (c *Client) do(ctx context.Context, op, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshal: %w", op, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: new request: %w", op, err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return &AuthError{Op: op}
	}

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		return &ServerError{
			Op:      op,
			Status:  resp.StatusCode,
			Message: messageOrDefault(op, serverMessage(raw)),
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s: decode response: %w", op, err)
		}
	}

	return nil
}

// serverMessage saca el mensaje del body de error: {"error": "..."} o
// texto plano de http.Error.
func serverMessage(raw []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}

	return strings.TrimSpace(string(raw))
}
