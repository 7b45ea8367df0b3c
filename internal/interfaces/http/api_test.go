package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/sipp-api/internal/application/analytics"
	"github.com/jhoicas/sipp-api/internal/application/auth"
	"github.com/jhoicas/sipp-api/internal/application/dto"
	"github.com/jhoicas/sipp-api/internal/application/ordering"
	"github.com/jhoicas/sipp-api/internal/application/reporting"
	"github.com/jhoicas/sipp-api/internal/application/usecase"
	"github.com/jhoicas/sipp-api/internal/domain/entity"
	"github.com/jhoicas/sipp-api/internal/infrastructure/excel"
	"github.com/jhoicas/sipp-api/internal/infrastructure/memory"
	"github.com/jhoicas/sipp-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/sipp-api/internal/interfaces/http"
)

// newTestAPI arma el router completo sobre el store en memoria.
func newTestAPI(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	workbook := excel.NewWorkbook()

	authUC := auth.NewAuthUseCase(store.Users(), store.Sessions(), auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	})
	reportUC := reporting.NewReportUseCase(reporting.Repositories{
		Orders:   store.Orders(),
		Projects: store.Projects(),
		Users:    store.Users(),
		Acts:     store.Acts(),
		Reports:  store.Reports(),
	}, pdf.NewRenderer(), workbook, nil, nil, "Departamento de Pruebas")

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      authUC,
		UserUC:      usecase.NewUserUseCase(store.Users(), store.Sessions()),
		ProjectUC:   usecase.NewProjectUseCase(store.Projects()),
		CatalogUC:   usecase.NewCatalogUseCase(store.Catalogs(), workbook),
		MessageUC:   usecase.NewMessageUseCase(store.Messages(), store.Users()),
		OrderUC:     ordering.NewOrderUseCase(store, store.Orders(), store.Catalogs(), nil),
		ReportUC:    reportUC,
		DashboardUC: appanalytics.NewDashboardUseCase(store.Projects(), store.Orders()),
		JWTSecret:   testJWTSecret,
	})
	return app, store
}

func seed(t *testing.T, store *memory.Store, id, email, password, role string) {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	require.NoError(t, store.Users().Create(context.Background(), &entity.User{
		ID: id, FullName: "Usuario " + id, Email: email, Role: role,
		Status: entity.UserStatusActive, PasswordHash: hash,
	}))
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[dto.LoginResponse](t, resp).Token
}

func TestAPI_LoginCredencialesVacias_400(t *testing.T) {
	app, _ := newTestAPI(t)

	resp := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)
}

func TestAPI_LoginUsuarioSembrado(t *testing.T) {
	app, store := newTestAPI(t)
	seed(t, store, "adm", "admin@sipp.local", "admin1234", entity.RoleAdmin)

	token := login(t, app, "admin@sipp.local", "admin1234")
	require.NotEmpty(t, token)

	me := decode[dto.UserResponse](t, call(t, app, http.MethodGet, "/api/me", token, nil))
	assert.Equal(t, "adm", me.ID)
	assert.Equal(t, entity.RoleAdmin, me.Role)
}

func TestAPI_LoginPasswordIncorrecto_401(t *testing.T) {
	app, store := newTestAPI(t)
	seed(t, store, "adm", "admin@sipp.local", "admin1234", entity.RoleAdmin)

	resp := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "admin@sipp.local", Password: "otra-clave"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "nadie@sipp.local", Password: "x"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_RegistroValidaCampos(t *testing.T) {
	app, _ := newTestAPI(t)

	resp := call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Email: "ana@uni.edu", Password: "corta"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "min", body.Fields["password"])
	assert.Equal(t, "required", body.Fields["full_name"])
}

func TestAPI_LogoutInvalidaToken(t *testing.T) {
	app, store := newTestAPI(t)
	seed(t, store, "u1", "ana@uni.edu", "clave-segura", entity.RoleUser)
	token := login(t, app, "ana@uni.edu", "clave-segura")

	resp := call(t, app, http.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_EliminarUsuarioCierraSusSesiones(t *testing.T) {
	app, store := newTestAPI(t)
	seed(t, store, "adm", "admin@sipp.local", "admin1234", entity.RoleAdmin)
	seed(t, store, "u1", "ana@uni.edu", "clave-segura", entity.RoleUser)
	adminToken := login(t, app, "admin@sipp.local", "admin1234")
	userToken := login(t, app, "ana@uni.edu", "clave-segura")

	resp := call(t, app, http.MethodDelete, "/api/users/u1", adminToken, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/me", userToken, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_CambioDeRolCierraSesiones(t *testing.T) {
	app, store := newTestAPI(t)
	seed(t, store, "a1", "jefe@sipp.local", "admin1234", entity.RoleAdmin)
	seed(t, store, "a2", "otro@sipp.local", "admin5678", entity.RoleAdmin)
	token1 := login(t, app, "jefe@sipp.local", "admin1234")
	token2 := login(t, app, "otro@sipp.local", "admin5678")

	resp := call(t, app, http.MethodPut, "/api/users/a2", token1, map[string]any{"role": entity.RoleUser})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/users", token2, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp = call(t, app, http.MethodDelete, "/api/users/a1", token2, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token2 = login(t, app, "otro@sipp.local", "admin5678")
	resp = call(t, app, http.MethodGet, "/api/users", token2, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAPI_UsuariosSoloAdmin(t *testing.T) {
	app, store := newTestAPI(t)
	seed(t, store, "u1", "ana@uni.edu", "clave-segura", entity.RoleUser)
	token := login(t, app, "ana@uni.edu", "clave-segura")

	resp := call(t, app, http.MethodGet, "/api/users", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAPI_ProyectoCreadoSeRecuperaYPresupuesto(t *testing.T) {
	app, store := newTestAPI(t)
	seed(t, store, "u1", "ana@uni.edu", "clave-segura", entity.RoleUser)
	token := login(t, app, "ana@uni.edu", "clave-segura")

	resp := call(t, app, http.MethodPost, "/api/projects", token, map[string]any{
		"name": "Laboratorio de redes", "project_number": "P-1", "budget": 100,
		"start_date": "2026-01-01", "end_date": "2026-12-31",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.ProjectResponse](t, resp)
	assert.Equal(t, "u1", created.OwnerID)

	got := decode[dto.ProjectResponse](t, call(t, app, http.MethodGet, "/api/projects/"+created.ID, token, nil))
	assert.Equal(t, "Laboratorio de redes", got.Name)

	b := decode[dto.ProjectBudgetResponse](t, call(t, app, http.MethodGet, "/api/projects/"+created.ID+"/budget", token, nil))
	assert.Equal(t, 0, b.Percentage)
	assert.Equal(t, "100", b.Available.String())
}

func TestAPI_PedidoSuperaPresupuesto_409(t *testing.T) {
	app, store := newTestAPI(t)
	seed(t, store, "u1", "ana@uni.edu", "clave-segura", entity.RoleUser)
	token := login(t, app, "ana@uni.edu", "clave-segura")

	resp := call(t, app, http.MethodPost, "/api/projects", token, map[string]any{
		"name": "Pequeño", "project_number": "P-2", "budget": 100,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	project := decode[dto.ProjectResponse](t, resp)

	resp = call(t, app, http.MethodPost, "/api/orders", token, map[string]any{
		"project_id": project.ID,
		"type":       entity.OrderTypeSpecial,
		"items":      []map[string]any{{"name": "Silla", "quantity": 2, "unit_price": 80}},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "BUDGET_EXCEEDED", decode[dto.ErrorResponse](t, resp).Code)
}

func TestAPI_InformeSinPedidosEsDocumentoVacio(t *testing.T) {
	app, store := newTestAPI(t)
	seed(t, store, "u1", "ana@uni.edu", "clave-segura", entity.RoleUser)
	token := login(t, app, "ana@uni.edu", "clave-segura")

	resp := call(t, app, http.MethodGet, "/api/reports/orders.pdf?from=2026-01-01&to=2026-01-31", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	assert.Equal(t, "true", resp.Header.Get("X-Report-Empty"))
	assert.Equal(t, reporting.ContentTypePDF, resp.Header.Get(fiber.HeaderContentType))
	assert.True(t, strings.Contains(resp.Header.Get(fiber.HeaderContentDisposition), "informe_pedidos_"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestAPI_InformeFechaInvalida_400(t *testing.T) {
	app, store := newTestAPI(t)
	seed(t, store, "u1", "ana@uni.edu", "clave-segura", entity.RoleUser)
	token := login(t, app, "ana@uni.edu", "clave-segura")

	resp := call(t, app, http.MethodGet, "/api/reports/orders.pdf?from=01-01-2026", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_MensajeADestinatarioInexistente_404(t *testing.T) {
	app, store := newTestAPI(t)
	seed(t, store, "u1", "ana@uni.edu", "clave-segura", entity.RoleUser)
	token := login(t, app, "ana@uni.edu", "clave-segura")

	resp := call(t, app, http.MethodPost, "/api/messages", token, dto.SendMessageRequest{
		RecipientID: "fantasma", Subject: "Hola", Body: "¿Llegó el pedido?",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
