package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/application/auth"
	"github.com/jhoicas/catalogo-api/internal/application/catalog"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
	apphttp "github.com/jhoicas/catalogo-api/internal/interfaces/http"
)

// testEnv monta la aplicación completa sobre los fakes en memoria.
type testEnv struct {
	app      *fiber.App
	users    *memUserRepo
	products *memProductRepo
}

func newTestEnv() *testEnv {
	users := newMemUserRepo()
	products := newMemProductRepo()

	authUC := auth.NewAuthUseCase(users, memMailer{}, auth.JWTConfig{
		Secret: testJWTSecret, ExpHours: 24, Issuer: testIssuer,
	})
	productUC := catalog.NewProductUseCase(products)
	purchaseUC := catalog.NewPurchaseUseCase(&memTxRunner{repo: products})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     authUC,
		ProductUC:  productUC,
		PurchaseUC: purchaseUC,
	})
	return &testEnv{app: app, users: users, products: products}
}

// do lanza una petición JSON y decodifica la respuesta en out (si no es nil).
func (e *testEnv) do(t *testing.T, method, path, token string, body, out interface{}) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// register registra un usuario verificado y devuelve su token de sesión.
func (e *testEnv) registerVerified(t *testing.T, email, role string) (string, string) {
	t.Helper()
	var user dto.UserResponse
	code := e.do(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email: email, FirstName: "Nombre", LastName: "Apellido",
		Password: "secreto123", Role: role,
	}, &user)
	require.Equal(t, http.StatusCreated, code)

	otp := e.users.otpFor(user.UserID)
	require.Len(t, otp, 6, "el registro debe dejar un código de 6 dígitos persistido")
	code = e.do(t, http.MethodPost, "/api/auth/verify-email/"+user.UserID, "",
		dto.VerifyEmailRequest{OTP: otp}, nil)
	require.Equal(t, http.StatusOK, code)

	var login dto.LoginResponse
	code = e.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email: email, Password: "secreto123",
	}, &login)
	require.Equal(t, http.StatusOK, code)
	return login.Token, user.UserID
}

func qty(n int64) *int64 { return &n }

// seedCatalogProduct publica un producto vía un admin y devuelve su ID
// junto con el token de un comprador verificado.
func (e *testEnv) seedCatalogProduct(t *testing.T, stock int64) (productID, buyerToken string) {
	t.Helper()
	adminToken, _ := e.registerVerified(t, "vendedor@tienda.com", "admin")
	var product dto.ProductResponse
	code := e.do(t, http.MethodPost, "/api/products/", adminToken, dto.CreateProductRequest{
		Name: "Mouse óptico", Description: "USB",
		Price: decimal.RequireFromString("9.50"), Category: "periféricos", Stock: stock,
	}, &product)
	require.Equal(t, http.StatusCreated, code)

	buyerToken, _ = e.registerVerified(t, "comprador@tienda.com", "")
	return product.ID, buyerToken
}

// stockOf consulta el stock actual del producto vía la API.
func (e *testEnv) stockOf(t *testing.T, token, productID string) int64 {
	t.Helper()
	var p dto.ProductResponse
	code := e.do(t, http.MethodGet, "/api/products/"+productID, token, nil, &p)
	require.Equal(t, http.StatusOK, code)
	return p.Stock
}

// Escenario completo: registro → verificación (con un intento fallido) →
// login → compra que excede el stock → compra válida.
func TestRouter_EscenarioCompleto(t *testing.T) {
	env := newTestEnv()

	// Registro de un usuario normal.
	var user dto.UserResponse
	code := env.do(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email: "cliente@tienda.com", FirstName: "Ana", LastName: "García",
		Password: "secreto123",
	}, &user)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "cliente@tienda.com", user.Email)
	assert.False(t, user.IsVerified)

	// Login antes de verificar → 403 y se rota el código.
	var errResp dto.ErrorResponse
	code = env.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email: "cliente@tienda.com", Password: "secreto123",
	}, &errResp)
	require.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "EMAIL_NOT_VERIFIED", errResp.Code)

	// Verificación con código equivocado → 400 OTP_INVALID.
	real := env.users.otpFor(user.UserID)
	wrong := "000000"
	if wrong == real {
		wrong = "999999"
	}
	code = env.do(t, http.MethodPost, "/api/auth/verify-email/"+user.UserID, "",
		dto.VerifyEmailRequest{OTP: wrong}, &errResp)
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "OTP_INVALID", errResp.Code)

	// Verificación con el código real → 200 y queda verificado.
	var verified dto.UserResponse
	code = env.do(t, http.MethodPost, "/api/auth/verify-email/"+user.UserID, "",
		dto.VerifyEmailRequest{OTP: real}, &verified)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, verified.IsVerified)

	// Login ya verificado → token de sesión.
	var login dto.LoginResponse
	code = env.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email: "cliente@tienda.com", Password: "secreto123",
	}, &login)
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, login.Token)

	// Un admin publica un producto con stock 50.
	adminToken, _ := env.registerVerified(t, "admin@tienda.com", "admin")
	var product dto.ProductResponse
	code = env.do(t, http.MethodPost, "/api/products/", adminToken, dto.CreateProductRequest{
		Name: "Auriculares BT", Description: "Inalámbricos",
		Price: decimal.RequireFromString("19.99"), Category: "audio", Stock: 50,
	}, &product)
	require.Equal(t, http.StatusCreated, code)

	// Compra que excede el stock → 400 INSUFFICIENT_STOCK y stock intacto.
	code = env.do(t, http.MethodPost, "/api/products/buy", login.Token, dto.BuyProductRequest{
		ProductID: product.ID, Quantity: qty(1000),
	}, &errResp)
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INSUFFICIENT_STOCK", errResp.Code)

	var after dto.ProductResponse
	code = env.do(t, http.MethodGet, "/api/products/"+product.ID, login.Token, nil, &after)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(50), after.Stock, "una compra rechazada no toca el stock")

	// Compra válida de 3 unidades → total 59.97 y stock 47.
	var purchase dto.PurchaseResponse
	code = env.do(t, http.MethodPost, "/api/products/buy", login.Token, dto.BuyProductRequest{
		ProductID: product.ID, Quantity: qty(3),
	}, &purchase)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, purchase.TotalPrice.Equal(decimal.RequireFromString("59.97")),
		"total esperado 59.97, obtenido %s", purchase.TotalPrice)
	assert.Equal(t, int64(47), purchase.Product.Stock)
}

// Una compra con cantidad 0 explícita se rechaza con 400 y no toca el stock;
// solo el campo ausente toma el default de 1 unidad.
func TestRouter_CompraCantidadCeroExplicita(t *testing.T) {
	env := newTestEnv()
	productID, buyerToken := env.seedCatalogProduct(t, 5)

	var errResp dto.ErrorResponse
	code := env.do(t, http.MethodPost, "/api/products/buy", buyerToken, dto.BuyProductRequest{
		ProductID: productID, Quantity: qty(0),
	}, &errResp)
	require.Equal(t, http.StatusBadRequest, code, "cantidad 0 explícita nunca compra")
	assert.Equal(t, "VALIDATION", errResp.Code)
	assert.Equal(t, int64(5), env.stockOf(t, buyerToken, productID),
		"la compra rechazada no debe escribir en el almacén")

	// Cantidad negativa → mismo rechazo.
	code = env.do(t, http.MethodPost, "/api/products/buy", buyerToken, dto.BuyProductRequest{
		ProductID: productID, Quantity: qty(-3),
	}, &errResp)
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, int64(5), env.stockOf(t, buyerToken, productID))

	// Sin el campo quantity en el body → default de 1 unidad.
	var purchase dto.PurchaseResponse
	code = env.do(t, http.MethodPost, "/api/products/buy", buyerToken,
		map[string]string{"productId": productID}, &purchase)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(1), purchase.Quantity)
	assert.Equal(t, int64(4), env.stockOf(t, buyerToken, productID))
}

// Un usuario sin rol admin no puede crear, modificar ni eliminar productos.
func TestRouter_ProductosSoloAdmin(t *testing.T) {
	env := newTestEnv()
	userToken, _ := env.registerVerified(t, "normal@tienda.com", "")

	var errResp dto.ErrorResponse
	code := env.do(t, http.MethodPost, "/api/products/", userToken, dto.CreateProductRequest{
		Name: "Teclado", Price: decimal.RequireFromString("10"), Category: "periféricos", Stock: 5,
	}, &errResp)
	require.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "FORBIDDEN", errResp.Code)

	// Pero sí puede listar.
	var list dto.ProductListResponse
	code = env.do(t, http.MethodGet, "/api/products/", userToken, nil, &list)
	assert.Equal(t, http.StatusOK, code)
}

// Logout revoca el token: la siguiente petición con el mismo token → 401.
func TestRouter_LogoutRevocaToken(t *testing.T) {
	env := newTestEnv()
	token, _ := env.registerVerified(t, "saliente@tienda.com", "")

	code := env.do(t, http.MethodPost, "/api/auth/logout", token, nil, nil)
	require.Equal(t, http.StatusOK, code)

	var errResp dto.ErrorResponse
	code = env.do(t, http.MethodGet, "/api/products/", token, nil, &errResp)
	assert.Equal(t, http.StatusUnauthorized, code)
}

// Registro con payloads inválidos → 400 con código VALIDATION.
func TestRouter_RegistroValidaciones(t *testing.T) {
	env := newTestEnv()

	cases := []struct {
		name string
		in   dto.RegisterRequest
	}{
		{"email vacío", dto.RegisterRequest{FirstName: "A", LastName: "B", Password: "secreto123"}},
		{"email mal formado", dto.RegisterRequest{Email: "no-es-email", FirstName: "A", LastName: "B", Password: "secreto123"}},
		{"password corta", dto.RegisterRequest{Email: "ok@x.com", FirstName: "A", LastName: "B", Password: "123"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var errResp dto.ErrorResponse
			code := env.do(t, http.MethodPost, "/api/auth/register", "", tc.in, &errResp)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, "VALIDATION", errResp.Code)
		})
	}
}

// Registrar dos veces el mismo email (con distinta capitalización) → 409.
func TestRouter_RegistroEmailDuplicado(t *testing.T) {
	env := newTestEnv()
	_, _ = env.registerVerified(t, "dup@tienda.com", "")

	var errResp dto.ErrorResponse
	code := env.do(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email: "DUP@tienda.com", FirstName: "Otro", LastName: "Usuario", Password: "secreto123",
	}, &errResp)
	require.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "EMAIL_EXISTS", errResp.Code)
}
