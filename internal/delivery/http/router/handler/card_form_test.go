package handler

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartContext(t *testing.T, build func(w *multipart.Writer)) echo.Context {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	build(writer)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/cards", &body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())

	return echo.New().NewContext(req, httptest.NewRecorder())
}

func jsonContext(t *testing.T, payload string) echo.Context {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/cards", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestDecodeCardInput_JSONBody(t *testing.T) {
	c := jsonContext(t, `{
		"business_name": "Acme Corp",
		"tagline": "Everything for coyotes",
		"social_links": [{"platform": "instagram", "url": "https://instagram.com/acme"}],
		"payment_methods": [{"type": "upi", "details": {"vpa": "acme@upi"}}]
	}`)

	input, err := decodeCardInput(c)
	require.NoError(t, err)

	assert.Equal(t, "Acme Corp", input.BusinessName)
	require.NotNil(t, input.Tagline)
	assert.Equal(t, "Everything for coyotes", *input.Tagline)
	require.Len(t, input.SocialLinks, 1)
	assert.Equal(t, "instagram", input.SocialLinks[0].Platform)
	require.Len(t, input.PaymentMethods, 1)
	assert.Equal(t, "acme@upi", input.PaymentMethods[0].Details["vpa"])
	assert.Nil(t, input.Products)
}

func TestDecodeCardInput_IndexedMultipartKeys(t *testing.T) {
	c := multipartContext(t, func(w *multipart.Writer) {
		w.WriteField("business_name", "Acme Corp")
		w.WriteField("latitude", "12.97")
		w.WriteField("years_of_experience", "7")
		w.WriteField("founded_at", "2019-04-01")
		w.WriteField("social_links[0][platform]", "instagram")
		w.WriteField("social_links[0][url]", "https://instagram.com/acme")
		w.WriteField("social_links[1][platform]", "facebook")
		w.WriteField("social_links[1][url]", "https://facebook.com/acme")
		w.WriteField("products[0][name]", "Anvil")
		w.WriteField("products[0][price]", "99.5")
		w.WriteField("payment_methods[0][type]", "upi")
		w.WriteField("payment_methods[0][details]", `{"vpa":"acme@upi"}`)
		w.WriteField("payment_methods[0][is_active]", "false")
	})

	input, err := decodeCardInput(c)
	require.NoError(t, err)

	assert.Equal(t, "Acme Corp", input.BusinessName)
	require.NotNil(t, input.Latitude)
	assert.InDelta(t, 12.97, *input.Latitude, 0.0001)
	require.NotNil(t, input.YearsOfExperience)
	assert.Equal(t, 7, *input.YearsOfExperience)
	require.NotNil(t, input.FoundedAt)
	assert.Equal(t, 2019, input.FoundedAt.Year())

	require.Len(t, input.SocialLinks, 2)
	assert.Equal(t, "instagram", input.SocialLinks[0].Platform)
	assert.Equal(t, "facebook", input.SocialLinks[1].Platform)

	require.Len(t, input.Products, 1)
	assert.Equal(t, "Anvil", input.Products[0].Name)
	require.NotNil(t, input.Products[0].Price)
	assert.InDelta(t, 99.5, *input.Products[0].Price, 0.0001)

	require.Len(t, input.PaymentMethods, 1)
	assert.Equal(t, "acme@upi", input.PaymentMethods[0].Details["vpa"])
	require.NotNil(t, input.PaymentMethods[0].IsActive)
	assert.False(t, *input.PaymentMethods[0].IsActive)

	// Untouched collections stay nil, they were absent from the request.
	assert.Nil(t, input.Proprietors)
}

func TestDecodeCardInput_JSONStringItems(t *testing.T) {
	c := multipartContext(t, func(w *multipart.Writer) {
		w.WriteField("business_name", "Acme Corp")
		w.WriteField("social_links[0]", `{"platform":"instagram","url":"https://instagram.com/acme"}`)
		w.WriteField("products[]", `{"name":"Anvil","price":99.5}`)
		w.WriteField("products[]", `{"name":"Rocket Skates"}`)
	})

	input, err := decodeCardInput(c)
	require.NoError(t, err)

	require.Len(t, input.SocialLinks, 1)
	assert.Equal(t, "instagram", input.SocialLinks[0].Platform)

	require.Len(t, input.Products, 2)
	assert.Equal(t, "Anvil", input.Products[0].Name)
	assert.Equal(t, "Rocket Skates", input.Products[1].Name)
}

func TestDecodeCardInput_FilesAttached(t *testing.T) {
	c := multipartContext(t, func(w *multipart.Writer) {
		w.WriteField("business_name", "Acme Corp")
		w.WriteField("products[0][name]", "Anvil")
		w.WriteField("proprietors[0][name]", "Wile E.")

		part, _ := w.CreateFormFile("profile_photo", "profile.png")
		part.Write([]byte("profile-bytes"))

		part, _ = w.CreateFormFile("products[0][imageFile]", "anvil.png")
		part.Write([]byte("anvil-bytes"))

		part, _ = w.CreateFormFile("proprietors[0][photoFile]", "wile.png")
		part.Write([]byte("wile-bytes"))
	})

	input, err := decodeCardInput(c)
	require.NoError(t, err)

	require.NotNil(t, input.ProfilePhotoFile)
	assert.Equal(t, "profile.png", input.ProfilePhotoFile.Filename)
	content, err := io.ReadAll(input.ProfilePhotoFile.Content)
	require.NoError(t, err)
	assert.Equal(t, "profile-bytes", string(content))

	require.Len(t, input.Products, 1)
	require.NotNil(t, input.Products[0].ImageFile)
	assert.Equal(t, "anvil.png", input.Products[0].ImageFile.Filename)

	require.Len(t, input.Proprietors, 1)
	require.NotNil(t, input.Proprietors[0].PhotoFile)
	assert.Nil(t, input.CoverPhotoFile)
}

func TestDecodeCardInput_SparseIndicesKeepFileBinding(t *testing.T) {
	c := multipartContext(t, func(w *multipart.Writer) {
		w.WriteField("business_name", "Acme Corp")
		w.WriteField("products[0][name]", "Anvil")
		w.WriteField("products[2][name]", "Rocket Skates")
		w.WriteField("proprietors[1][name]", "Wile E.")

		part, _ := w.CreateFormFile("products[2][imageFile]", "skates.png")
		part.Write([]byte("skates-bytes"))

		part, _ = w.CreateFormFile("proprietors[1][photoFile]", "wile.png")
		part.Write([]byte("wile-bytes"))
	})

	input, err := decodeCardInput(c)
	require.NoError(t, err)

	// Gaps in the form indices collapse, yet each file still lands on the
	// item the client indexed it against.
	require.Len(t, input.Products, 2)
	assert.Equal(t, "Anvil", input.Products[0].Name)
	assert.Nil(t, input.Products[0].ImageFile)
	assert.Equal(t, "Rocket Skates", input.Products[1].Name)
	require.NotNil(t, input.Products[1].ImageFile)
	assert.Equal(t, "skates.png", input.Products[1].ImageFile.Filename)

	require.Len(t, input.Proprietors, 1)
	require.NotNil(t, input.Proprietors[0].PhotoFile)
	assert.Equal(t, "wile.png", input.Proprietors[0].PhotoFile.Filename)
}

func TestDecodeCardInput_InvalidFieldValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad latitude", "latitude", "north"},
		{"bad product price", "products[0][price]", "cheap"},
		{"bad details JSON", "payment_methods[0][details]", "{broken"},
		{"bad founded_at", "founded_at", "one day"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := multipartContext(t, func(w *multipart.Writer) {
				w.WriteField("business_name", "Acme")
				w.WriteField(tt.key, tt.value)
			})

			_, err := decodeCardInput(c)
			assert.Error(t, err)
		})
	}
}
