// Package poster implementa el cliente HTTP del POS externo (API estilo
// joinposter.com: token por query param, envoltorio {"response": ...}).
package poster

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// defaultBaseURL es la plantilla por cuenta; el %s es el nombre de cuenta.
const defaultBaseURL = "https://%s.joinposter.com/api"

// maxBodySize limita la lectura de respuestas para no tragar cuerpos absurdos.
const maxBodySize = 8 << 20

var _ API = (*Client)(nil)

// Client implementa API sobre net/http. Cada llamada lleva el timeout del
// http.Client además del deadline del ctx del caller.
type Client struct {
	baseURL    string // si no está vacío, reemplaza a la plantilla por cuenta (tests, proxies)
	httpClient *http.Client
}

// NewClient construye el cliente. baseURL vacío usa la URL por cuenta de
// Poster; timeout acota cada petición individual.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// envelope es el sobre estándar de la API: response con el resultado, o bien
// error + message cuando la llamada falla a nivel de aplicación.
type envelope struct {
	Response json.RawMessage `json:"response"`
	ErrCode  int             `json:"error"`
	Message  string          `json:"message"`
}

func (c *Client) endpoint(creds Credentials, method string) string {
	base := c.baseURL
	if base == "" {
		base = fmt.Sprintf(defaultBaseURL, creds.Account)
	}
	return base + "/" + method + "?token=" + url.QueryEscape(creds.Token)
}

// get ejecuta un GET y decodifica el sobre en out.
func (c *Client) get(ctx context.Context, creds Credentials, method string, params url.Values, out any) error {
	u := c.endpoint(creds, method)
	if len(params) > 0 {
		u += "&" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &FetchError{Method: method, Err: err}
	}
	return c.do(req, method, out)
}

// post ejecuta un POST JSON y decodifica el sobre en out.
func (c *Client) post(ctx context.Context, creds Credentials, method string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &FetchError{Method: method, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(creds, method), bytes.NewReader(payload))
	if err != nil {
		return &FetchError{Method: method, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, method, out)
}

func (c *Client) do(req *http.Request, method string, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{Method: method, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return &FetchError{Method: method, StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &FetchError{Method: method, StatusCode: resp.StatusCode, Err: errors.New("respuesta no exitosa del POS")}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &FetchError{Method: method, StatusCode: resp.StatusCode, Err: fmt.Errorf("cuerpo malformado: %w", err)}
	}
	if env.ErrCode != 0 {
		return &FetchError{Method: method, StatusCode: resp.StatusCode, Err: fmt.Errorf("error de aplicación %d: %s", env.ErrCode, env.Message)}
	}
	if env.Response == nil {
		// Un 2xx sin campo response sigue siendo malformado, nunca "vacío".
		return &FetchError{Method: method, StatusCode: resp.StatusCode, Err: errors.New("sobre sin campo response")}
	}
	if err := json.Unmarshal(env.Response, out); err != nil {
		return &FetchError{Method: method, StatusCode: resp.StatusCode, Err: fmt.Errorf("response malformado: %w", err)}
	}
	return nil
}

// Storages implementa API.
func (c *Client) Storages(ctx context.Context, creds Credentials) ([]Storage, error) {
	var out []Storage
	if err := c.get(ctx, creds, "storage.getStorages", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Ingredients implementa API.
func (c *Client) Ingredients(ctx context.Context, creds Credentials) ([]Ingredient, error) {
	var out []Ingredient
	if err := c.get(ctx, creds, "menu.getIngredients", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// StorageLeftovers implementa API.
func (c *Client) StorageLeftovers(ctx context.Context, creds Credentials, storageID int64) ([]StockItem, error) {
	params := url.Values{"storage_id": {fmt.Sprintf("%d", storageID)}}
	var out []StockItem
	if err := c.get(ctx, creds, "storage.getStorageLeftovers", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Suppliers implementa API.
func (c *Client) Suppliers(ctx context.Context, creds Credentials) ([]Supplier, error) {
	var out []Supplier
	if err := c.get(ctx, creds, "storage.getSuppliers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateSupply implementa API. El ID de confirmación llega como número o
// string según la versión del POS.
func (c *Client) CreateSupply(ctx context.Context, creds Credentials, supply SupplyRequest) (string, error) {
	var out json.RawMessage
	if err := c.post(ctx, creds, "storage.createSupply", map[string]any{"supply": supply}, &out); err != nil {
		return "", err
	}
	return string(bytes.Trim(out, `"`)), nil
}
