// Package upstream implementa los puertos de lectura y de tareas sobre la API REST
// del backend de inventario.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/infrastructure/telemetry"
	"github.com/jhoicas/Backoffice-api/pkg/logger"
)

const (
	defaultTimeout  = 15 * time.Second
	defaultPageSize = 100
	// maxPages tope de páginas por colección.
	maxPages = 500
	// maxBody límite de lectura por respuesta.
	maxBody = 32 << 20
)

// Config parámetros de conexión al backend.
type Config struct {
	BaseURL  string
	Token    string
	Timeout  time.Duration
	PageSize int
	// Log recibe los avisos de registros parciales; nil descarta.
	Log *logger.Logger
}

// Client cliente HTTP del backend. Cada request genera un span y una métrica.
type Client struct {
	baseURL    *url.URL
	token      string
	pageSize   int
	httpClient *http.Client
	metrics    *telemetry.Metrics
	tracer     trace.Tracer
	log        *logger.Logger
}

// NewClient construye el cliente. metrics puede ser nil.
func NewClient(cfg Config, metrics *telemetry.Metrics) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("upstream: base URL inválida %q", cfg.BaseURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		log:        log,
		baseURL:    base,
		token:      cfg.Token,
		pageSize:   pageSize,
		httpClient: &http.Client{Timeout: timeout},
		metrics:    metrics,
		tracer:     otel.Tracer("github.com/jhoicas/Backoffice-api/upstream"),
	}, nil
}

// StatusError respuesta no 2xx del backend.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream: %s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Unwrap traduce 404 a domain.ErrNotFound y el resto a domain.ErrUpstream.
func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ErrInvalidInput
	}
	return domain.ErrUpstream
}

// envelope forma paginada del backend: {"data": [...], "total": n}.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Items json.RawMessage `json:"items"`
	Total flexInt         `json:"total"`
}

// listPage una página decodificada. Total es -1 cuando el backend no lo informa.
type listPage[T any] struct {
	Items   []T
	Total   int
	First   json.RawMessage
	Dropped int
	Coerced int
}

// decodeList acepta un arreglo plano o el envelope {data,total}. Cada elemento se
// decodifica por separado: un registro ilegible se descarta sin perder el resto.
func decodeList[T any](raw []byte) (listPage[T], error) {
	page := listPage[T]{Items: []T{}, Total: -1}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return page, nil
	}

	data := raw
	if raw[0] != '[' {
		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return page, fmt.Errorf("upstream: decodificar envelope: %w", err)
		}
		data = env.Data
		if len(data) == 0 {
			data = env.Items
		}
		if env.Total.Valid {
			page.Total = env.Total.N
		}
	}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return page, nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return page, fmt.Errorf("upstream: decodificar arreglo: %w", err)
	}
	if len(elems) > 0 {
		page.First = elems[0]
	}
	for _, el := range elems {
		var item T
		if err := json.Unmarshal(el, &item); err != nil {
			page.Dropped++
			continue
		}
		if c, ok := any(item).(coercible); ok {
			page.Coerced += c.coerced()
		}
		page.Items = append(page.Items, item)
	}
	return page, nil
}

// listAll recorre todas las páginas de una colección con skip/take. Termina con una
// página corta, al alcanzar el total informado, o cuando el backend ignora skip/take
// (página más larga que take, o la misma primera fila que la página anterior).
func listAll[T any](ctx context.Context, c *Client, collection string, params url.Values) ([]T, error) {
	all := []T{}
	var prevFirst json.RawMessage
	for n := 0; n < maxPages; n++ {
		q := cloneValues(params)
		q.Set("skip", strconv.Itoa(n*c.pageSize))
		q.Set("take", strconv.Itoa(c.pageSize))

		raw, err := c.do(ctx, collection, http.MethodGet, "/"+collection, q, nil)
		if err != nil {
			return nil, err
		}
		page, err := decodeList[T](raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", collection, err)
		}
		if n > 0 && len(page.First) > 0 && bytes.Equal(page.First, prevFirst) {
			c.log.Warn().Str("collection", collection).Int("skip", n*c.pageSize).
				Msg("el backend repite la página; se ignora skip/take")
			break
		}
		prevFirst = page.First
		c.warnPartial(collection, page.Dropped, page.Coerced)
		all = append(all, page.Items...)

		got := len(page.Items) + page.Dropped
		if got != c.pageSize || (page.Total >= 0 && len(all) >= page.Total) {
			break
		}
	}
	return all, nil
}

func (c *Client) warnPartial(collection string, dropped, coerced int) {
	if dropped == 0 && coerced == 0 {
		return
	}
	c.log.Warn().Str("collection", collection).Int("dropped", dropped).Int("coerced_fields", coerced).
		Msg("registros parciales del backend")
}

// do ejecuta un request y devuelve el cuerpo si la respuesta es 2xx.
func (c *Client) do(ctx context.Context, collection, method, path string, q url.Values, body any) (_ []byte, err error) {
	start := time.Now()
	ctx, span := c.tracer.Start(ctx, "upstream "+method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
			attribute.String("backoffice.collection", collection),
		),
	)
	defer func() {
		c.metrics.ObserveUpstream(collection, err, time.Since(start))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("upstream: serializar request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("upstream: crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("upstream: %s %s: %w", method, path, ctx.Err())
		}
		return nil, fmt.Errorf("upstream: %s %s: %w: %v", method, path, domain.ErrUpstream, err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("upstream: leer respuesta: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       truncate(string(raw), 256),
		}
	}
	return raw, nil
}

// IsNotFound indica si err es un 404 del backend.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v)+2)
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
