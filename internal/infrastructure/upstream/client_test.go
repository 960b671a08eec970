package upstream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
	"github.com/jhoicas/Backoffice-api/pkg/logger"
)

func newTestClient(t *testing.T, h http.HandlerFunc, pageSize int) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(Config{BaseURL: srv.URL + "/api/", Token: "secreto", PageSize: pageSize, Timeout: 2 * time.Second}, nil)
	require.NoError(t, err)
	return c
}

func TestNewClient_URLInvalida(t *testing.T) {
	_, err := NewClient(Config{BaseURL: "no-es-url"}, nil)
	assert.Error(t, err)
}

func TestListInventory_PaginaYAplicaDefaults(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/api/inventory", r.URL.Path)
		assert.Equal(t, "Bearer secreto", r.Header.Get("Authorization"))
		assert.Equal(t, "2", r.URL.Query().Get("take"))

		switch r.URL.Query().Get("skip") {
		case "0":
			fmt.Fprint(w, `[{"id":"a","productId":"p1","warehouseId":"w1","quantity":"5"},{"id":2,"productId":"p2","quantity":7,"reorderPoint":0}]`)
		case "2":
			fmt.Fprint(w, `[{"id":"c","productId":"p3","quantity":null,"reorderPoint":"25"}]`)
		default:
			t.Errorf("skip inesperado %s", r.URL.Query().Get("skip"))
		}
	}, 2)

	items, err := NewSource(c).ListInventory(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load(), "la página corta termina la paginación")
	require.Len(t, items, 3)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, entity.DefaultReorderPoint, items[0].ReorderPoint, "reorderPoint ausente toma el default")
	assert.Equal(t, "2", items[1].ID)
	assert.Equal(t, 0, items[1].ReorderPoint, "un 0 explícito se respeta")
	assert.Equal(t, 0, items[2].Quantity)
	assert.Equal(t, 25, items[2].ReorderPoint)
}

func TestListInventory_RegistroIlegibleNoBorraLaColeccion(t *testing.T) {
	var logs bytes.Buffer
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"id":"a","quantity":5},
			{"id":"b","quantity":"n/a","reorderPoint":"alto","updatedAt":"ayer"},
			{"id":"c","quantity":{"v":1}},
			{"id":"d","quantity":"3","reorderPoint":4}
		]`)
	}))
	t.Cleanup(srv.Close)
	c, err := NewClient(Config{
		BaseURL:  srv.URL,
		PageSize: 50,
		Log:      logger.New(logger.Config{Env: "production", Level: "warn", Output: &logs}),
	}, nil)
	require.NoError(t, err)

	items, err := NewSource(c).ListInventory(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 0, items[1].Quantity, "cantidad ilegible queda en 0")
	assert.Equal(t, entity.DefaultReorderPoint, items[1].ReorderPoint, "reorderPoint ilegible toma el default")
	assert.True(t, items[1].UpdatedAt.IsZero())
	assert.Equal(t, 0, items[2].Quantity)
	assert.Equal(t, 3, items[3].Quantity)
	assert.Equal(t, 4, items[3].ReorderPoint)
	assert.Contains(t, logs.String(), `"coerced_fields":4`)
}

func TestListOrders_RegistroConFormaInvalidaSeDescarta(t *testing.T) {
	var logs bytes.Buffer
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[
			{"id":"o1","status":"PENDING","totalAmount":"12"},
			{"id":"o2","status":{"code":"X"},"totalAmount":"abc"},
			{"id":"o3","status":"DELIVERED","totalAmount":"sin monto","orderDate":"2026-13-45"}
		]}`)
	}))
	t.Cleanup(srv.Close)
	c, err := NewClient(Config{
		BaseURL:  srv.URL,
		PageSize: 50,
		Log:      logger.New(logger.Config{Env: "production", Level: "warn", Output: &logs}),
	}, nil)
	require.NoError(t, err)

	orders, err := NewSource(c).ListOrders(context.Background(), repository.OrderQuery{})

	require.NoError(t, err)
	require.Len(t, orders, 2, "solo se pierde el registro que no tiene forma de orden")
	assert.Equal(t, "o1", orders[0].ID)
	assert.Equal(t, "12", orders[0].TotalAmount.String())
	assert.Equal(t, "o3", orders[1].ID)
	assert.True(t, orders[1].TotalAmount.IsZero())
	assert.True(t, orders[1].OrderDate.IsZero())
	assert.Contains(t, logs.String(), `"dropped":1`)
}

func TestListWarehouses_BackendQueIgnoraPaginacion(t *testing.T) {
	cases := map[string]struct {
		body      string
		wantCalls int32
		wantItems int
	}{
		"arreglo más largo que take": {`[{"id":"w1"},{"id":"w2"},{"id":"w3"}]`, 1, 3},
		"arreglo igual a take":       {`[{"id":"w1"},{"id":"w2"}]`, 2, 2},
		"envelope sin total":         {`{"data":[{"id":"w1"},{"id":"w2"}]}`, 2, 2},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var calls atomic.Int32
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				fmt.Fprint(w, tc.body)
			}, 2)

			items, err := NewSource(c).ListWarehouses(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tc.wantCalls, calls.Load())
			assert.Len(t, items, tc.wantItems, "sin registros repetidos")
		})
	}
}

func TestListProducts_EnvelopeConTotal(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
		fmt.Fprintf(w, `{"data":[{"id":"p%d","name":"N%d","category":{"name":"Ferretería"}},{"id":"p%d"}],"total":4}`, skip, skip, skip+1)
	}, 2)

	items, err := NewSource(c).ListProducts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load(), "se detiene al alcanzar total")
	require.Len(t, items, 4)
	assert.Equal(t, "Ferretería", items[0].Category)
}

func TestListOrders_ParametrosYFallbacks(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "2026-01-01T00:00:00Z", q.Get("startDate"))
		assert.Empty(t, q.Get("endDate"))
		assert.Equal(t, "PENDING", q.Get("status"))
		fmt.Fprint(w, `{"data":[
			{"id":"o1","orderNumber":"SO-1","status":"pending","totalAmount":"10.50","createdAt":"2026-01-05T10:00:00",
			 "customer":{"id":"c9","name":"Acme"},"items":[{"product":{"id":"p1"},"quantity":"3"}]},
			{"id":"o2","status":"DELIVERED","totalAmount":4,"orderDate":"2026-01-06","lines":[{"productId":"p2","quantity":1}]}
		]}`)
	}, 50)

	orders, err := NewSource(c).ListOrders(context.Background(), repository.OrderQuery{StartDate: start, Status: entity.OrderPending})

	require.NoError(t, err)
	require.Len(t, orders, 2)
	o1 := orders[0]
	assert.Equal(t, entity.OrderPending, o1.Status)
	assert.Equal(t, "10.5", o1.TotalAmount.String())
	assert.Equal(t, time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC), o1.OrderDate, "orderDate cae a createdAt")
	assert.Equal(t, "c9", o1.CustomerID)
	assert.Equal(t, "Acme", o1.CustomerName)
	assert.Equal(t, []entity.OrderLine{{ProductID: "p1", Quantity: 3}}, o1.Lines)

	assert.Equal(t, time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC), orders[1].OrderDate)
	assert.Equal(t, []entity.OrderLine{{ProductID: "p2", Quantity: 1}}, orders[1].Lines)
}

func TestListReturns_CreatedAtCaeAReturnDate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id":"r1","status":"approved","returnDate":"2026-02-01T08:00:00Z"}]`)
	}, 50)

	rets, err := NewSource(c).ListReturns(context.Background())

	require.NoError(t, err)
	require.Len(t, rets, 1)
	assert.Equal(t, entity.ReturnApproved, rets[0].Status)
	assert.Equal(t, time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC), rets[0].CreatedAt)
}

func TestList_RespuestaVaciaONull(t *testing.T) {
	for _, body := range []string{"", "null", "[]", `{"data":null}`} {
		t.Run(strconv.Quote(body), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, body)
			}, 10)
			items, err := NewSource(c).ListWarehouses(context.Background())
			require.NoError(t, err)
			assert.NotNil(t, items)
			assert.Empty(t, items)
		})
	}
}

func TestList_ErrorHTTP(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "caído", http.StatusServiceUnavailable)
	}, 10)

	_, err := NewSource(c).ListCustomers(context.Background())

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusServiceUnavailable, se.StatusCode)
	assert.Equal(t, "/customers", se.Path)
	assert.True(t, errors.Is(err, domain.ErrUpstream))
}

func TestList_JSONInvalido(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": [`)
	}, 10)

	_, err := NewSource(c).ListInvoices(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "proforma-invoices")
}

func TestList_ContextoCancelado(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}, 10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSource(c).ListInventory(ctx)

	assert.True(t, errors.Is(err, context.Canceled))
}

func TestTaskRepository_CRUD(t *testing.T) {
	due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/tasks":
			assert.Equal(t, "HIGH", r.URL.Query().Get("priority"))
			assert.Equal(t, "5", r.URL.Query().Get("skip"))
			fmt.Fprint(w, `{"data":[{"id":"t1","title":"Contar","status":"pending","priority":"high","dueDate":"2026-04-01"}],"total":6}`)
		case r.Method == http.MethodGet && r.URL.Path == "/api/tasks/t1":
			fmt.Fprint(w, `{"data":{"id":"t1","title":"Contar","status":"PENDING","priority":"HIGH"}}`)
		case r.Method == http.MethodGet && r.URL.Path == "/api/tasks/nope":
			w.WriteHeader(http.StatusNotFound)
		case r.Method == http.MethodPost:
			body, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"title":"Nueva","status":"PENDING","priority":"MEDIUM","dueDate":"2026-04-01T00:00:00Z"}`, string(body))
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"id":"t9","createdAt":"2026-03-01T00:00:00Z"}`)
		case r.Method == http.MethodPatch:
			assert.Equal(t, "/api/tasks/t9", r.URL.Path)
			fmt.Fprint(w, `{"id":"t9","updatedAt":"2026-03-02T00:00:00Z"}`)
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("request inesperado %s %s", r.Method, r.URL.Path)
		}
	}, 10)
	repo := NewTaskRepository(c)
	ctx := context.Background()

	tasks, total, err := repo.List(ctx, repository.TaskQuery{Priority: entity.PriorityHigh, Limit: 5, Offset: 5})
	require.NoError(t, err)
	assert.Equal(t, 6, total)
	require.Len(t, tasks, 1)
	assert.Equal(t, entity.TaskPending, tasks[0].Status)
	require.NotNil(t, tasks[0].DueDate)
	assert.Equal(t, due, *tasks[0].DueDate)

	got, err := repo.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Contar", got.Title)

	_, err = repo.Get(ctx, "nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.True(t, IsNotFound(err))

	task := &entity.Task{Title: "Nueva", Status: entity.TaskPending, Priority: entity.PriorityMedium, DueDate: &due}
	require.NoError(t, repo.Create(ctx, task))
	assert.Equal(t, "t9", task.ID)
	assert.False(t, task.CreatedAt.IsZero())

	require.NoError(t, repo.Update(ctx, task))
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), task.UpdatedAt)

	assert.NoError(t, repo.Delete(ctx, "t9"))
}
