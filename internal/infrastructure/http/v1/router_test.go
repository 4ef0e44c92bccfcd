package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockdash/internal/core/role"
	"stockdash/internal/core/types"
	"stockdash/internal/domain/audit"
	"stockdash/internal/domain/inventory"
	"stockdash/internal/infrastructure/upstream"
	"stockdash/pkg/logger"
)

type testEnv struct {
	router    http.Handler
	inv       *inventory.Service
	roleStore *role.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	upstreamSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":"Widget","category":"tools","price":"$2.00","quantity":5,"value":"$10.00"}]`))
	}))
	t.Cleanup(upstreamSrv.Close)

	inv := inventory.NewService()
	inv.Replace(context.Background(), []inventory.Item{{
		Name:     "Widget",
		Category: "tools",
		Price:    types.MustMoney("2.00"),
		Quantity: types.NewQuantity(5),
		Value:    types.MustMoney("10.00"),
	}})

	roleStore := role.NewStore()
	roleStore.OnChange(func(r role.Role) {
		if !role.CanMutate(r) {
			inv.DiscardDraftIfAny(context.Background())
		}
	})

	health := &upstream.Health{}
	client := upstream.New(upstream.DefaultConfig(upstreamSrv.URL))
	refresher := upstream.NewRefresher(client, inv, health, 0)

	trail, err := audit.NewTrail(100)
	require.NoError(t, err)

	router := NewRouter(RouterConfig{
		Logger:    logger.Default(),
		RoleStore: roleStore,
		Inventory: inv,
		Refresher: refresher,
		Health:    health,
		Trail:     trail,
		Version:   "test",
	})

	return &testEnv{router: router, inv: inv, roleStore: roleStore}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestDashboard_ReadableByAnyRole(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.roleStore.Set(role.User))

	w := env.do(t, http.MethodGet, "/api/v1/dashboard", "")
	require.Equal(t, http.StatusOK, w.Code)

	var view struct {
		Rows []struct {
			Name    string `json:"name"`
			CanEdit bool   `json:"canEdit"`
		} `json:"rows"`
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "user", view.Role)
	assert.False(t, view.Rows[0].CanEdit)
}

func TestMutations_ForbiddenForUserRole(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.roleStore.Set(role.User))

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/items/Widget/edit"},
		{http.MethodDelete, "/api/v1/items/Widget"},
		{http.MethodPost, "/api/v1/items/Widget/hide"},
		{http.MethodPost, "/api/v1/refresh"},
	}

	for _, p := range paths {
		w := env.do(t, p.method, p.path, "")
		assert.Equal(t, http.StatusForbidden, w.Code, "%s %s", p.method, p.path)
	}

	// the reconciler was never reached
	snap, hidden := env.inv.View()
	assert.Len(t, snap, 1)
	assert.Empty(t, hidden.Names())
}

func TestEditFlow_OverHTTP(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/items/Widget/edit", "")
	require.Equal(t, http.StatusOK, w.Code)

	var draft inventory.EditDraft
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &draft))
	assert.Equal(t, "2.00", draft.Price)
	assert.Equal(t, "5", draft.Quantity)

	w = env.do(t, http.MethodPut, "/api/v1/items/Widget/edit", `{"field":"price","value":"3"}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodPut, "/api/v1/items/Widget/edit", `{"field":"quantity","value":"4"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/items/Widget/save", "")
	require.Equal(t, http.StatusOK, w.Code)

	snap, _ := env.inv.View()
	it, ok := snap.Find("Widget")
	require.True(t, ok)
	assert.Equal(t, "12.00", it.Value.StringFixed(2))
}

func TestDelete_ComposesDeleteAndHide(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodDelete, "/api/v1/items/Widget", "")
	require.Equal(t, http.StatusOK, w.Code)

	snap, hidden := env.inv.View()
	assert.Empty(t, snap)
	assert.True(t, hidden.Has("Widget"))
}

func TestBeginEdit_UnknownItem(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/items/Missing/edit", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRoleToggle_DiscardsOpenDraft(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/items/Widget/edit", "")
	require.Equal(t, http.StatusOK, w.Code)
	_, open := env.inv.Draft()
	require.True(t, open)

	w = env.do(t, http.MethodPost, "/api/v1/role/toggle", "")
	require.Equal(t, http.StatusOK, w.Code)

	_, open = env.inv.Draft()
	assert.False(t, open)
}

func TestRefresh_ReplacesSnapshot(t *testing.T) {
	env := newTestEnv(t)

	// mutate, then refresh restores the upstream collection
	w := env.do(t, http.MethodDelete, "/api/v1/items/Widget", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/refresh", "")
	require.Equal(t, http.StatusOK, w.Code)

	snap, hidden := env.inv.View()
	require.Len(t, snap, 1)
	assert.Equal(t, "Widget", snap[0].Name)
	// hidden survives the refresh
	assert.True(t, hidden.Has("Widget"))
}

func TestAuditTrail_RecordsMutations(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/api/v1/items/Widget/hide", "")

	w := env.do(t, http.MethodGet, "/api/v1/audit", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Entries []struct {
			Action   string `json:"action"`
			ItemName string `json:"itemName"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Entries)
	assert.Equal(t, "hide", resp.Entries[0].Action)
	assert.Equal(t, "Widget", resp.Entries[0].ItemName)
}

func TestHealthReady_WaitsForInitialFetch(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/v1/refresh", "").Code)

	w = env.do(t, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
