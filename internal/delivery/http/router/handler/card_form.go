package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"tapcard/internal/domain/entity"
	"tapcard/internal/domain/service"
	"tapcard/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// itemKeyPattern matches indexed collection keys like products[0][name].
var itemKeyPattern = regexp.MustCompile(`^(social_links|products|proprietors|payment_methods)\[(\d+)\]\[([a-zA-Z_]+)\]$`)

// rawItemPattern matches whole-item keys carrying a JSON-encoded object,
// either indexed (products[0]) or appended (products[]).
var rawItemPattern = regexp.MustCompile(`^(social_links|products|proprietors|payment_methods)\[(\d*)\]$`)

// collectionItems accumulates one collection's incoming items before they are
// built into typed inputs. Indexed field keys and JSON-encoded whole items can
// mix freely in one request; field keys win when both target the same index.
type collectionItems struct {
	fields   map[int]map[string]string
	raw      map[int]string
	appended []string
}

func newCollectionItems() *collectionItems {
	return &collectionItems{
		fields: make(map[int]map[string]string),
		raw:    make(map[int]string),
	}
}

func (ci *collectionItems) setField(index int, field, value string) {
	if ci.fields[index] == nil {
		ci.fields[index] = make(map[string]string)
	}
	ci.fields[index][field] = value
}

// indices returns every referenced index in ascending order, preserving the
// client's item ordering.
func (ci *collectionItems) indices() []int {
	seen := make(map[int]struct{}, len(ci.fields)+len(ci.raw))
	for i := range ci.fields {
		seen[i] = struct{}{}
	}
	for i := range ci.raw {
		seen[i] = struct{}{}
	}

	out := make([]int, 0, len(seen))
	for i := range seen {
		out = append(out, i)
	}
	sort.Ints(out)

	return out
}

// empty reports whether the collection was entirely absent from the request.
func (ci *collectionItems) empty() bool {
	return len(ci.fields) == 0 && len(ci.raw) == 0 && len(ci.appended) == 0
}

// decodeCardInput builds a CardInput from either a JSON body or a multipart
// form. Multipart is the upload path; the JSON path carries no files.
func decodeCardInput(c echo.Context) (*usecase.CardInput, error) {
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		var input usecase.CardInput
		if err := c.Bind(&input); err != nil {
			return nil, err
		}

		return &input, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse multipart form")
	}

	input := &usecase.CardInput{}
	if err := decodeRootFields(form, input); err != nil {
		return nil, err
	}
	productIndices, proprietorIndices, err := decodeChildCollections(form, input)
	if err != nil {
		return nil, err
	}
	if err := decodeFiles(form, input, productIndices, proprietorIndices); err != nil {
		return nil, err
	}

	return input, nil
}

func decodeRootFields(form *multipart.Form, input *usecase.CardInput) error {
	if v, ok := formValue(form, "business_name"); ok {
		input.BusinessName = v
	}

	input.Tagline = strField(form, "tagline")
	input.SubHeader = strField(form, "sub_header")
	input.Description = strField(form, "description")
	input.Category = strField(form, "category")
	input.SubCategory = strField(form, "sub_category")
	input.Phone = strField(form, "phone")
	input.Email = strField(form, "email")
	input.Website = strField(form, "website")
	input.Address = strField(form, "address")
	input.City = strField(form, "city")
	input.State = strField(form, "state")
	input.Country = strField(form, "country")
	input.Pincode = strField(form, "pincode")
	input.MapURL = strField(form, "map_url")
	input.GoogleMapEmbedURL = strField(form, "google_map_embed_url")
	input.ThemeColor = strField(form, "theme_color")
	input.PrimaryContactDesignation = strField(form, "primary_contact_designation")

	var err error
	if input.Latitude, err = floatField(form, "latitude"); err != nil {
		return err
	}
	if input.Longitude, err = floatField(form, "longitude"); err != nil {
		return err
	}
	if input.YearsOfExperience, err = intField(form, "years_of_experience"); err != nil {
		return err
	}
	if input.FoundedAt, err = dateField(form, "founded_at"); err != nil {
		return err
	}

	if v, ok := formValue(form, "bank_details"); ok && v != "" {
		details := &entity.BankDetails{}
		if err := json.Unmarshal([]byte(v), details); err != nil {
			return errors.Wrap(err, "invalid bank_details JSON")
		}
		input.BankDetails = details
	}

	if v, ok := formValue(form, "business_hours"); ok && v != "" {
		hours := &entity.BusinessHours{}
		if err := json.Unmarshal([]byte(v), hours); err != nil {
			return errors.Wrap(err, "invalid business_hours JSON")
		}
		input.BusinessHours = hours
	}

	return nil
}

// decodeChildCollections fills the four child collections and returns the
// original form index of each built product and proprietor. Form indices may
// be sparse (products[0], products[2]) while the built slices are dense, and
// per-item file keys are written against the form index.
func decodeChildCollections(form *multipart.Form, input *usecase.CardInput) (productIndices, proprietorIndices []int, err error) {
	collections := map[string]*collectionItems{
		"social_links":    newCollectionItems(),
		"products":        newCollectionItems(),
		"proprietors":     newCollectionItems(),
		"payment_methods": newCollectionItems(),
	}

	for key, values := range form.Value {
		if len(values) == 0 {
			continue
		}
		value := values[len(values)-1]

		if match := itemKeyPattern.FindStringSubmatch(key); match != nil {
			index, err := strconv.Atoi(match[2])
			if err != nil {
				continue
			}
			collections[match[1]].setField(index, match[3], value)
			continue
		}

		if match := rawItemPattern.FindStringSubmatch(key); match != nil {
			ci := collections[match[1]]
			if match[2] == "" {
				ci.appended = append(ci.appended, values...)
				continue
			}
			index, err := strconv.Atoi(match[2])
			if err != nil {
				continue
			}
			ci.raw[index] = value
		}
	}

	if input.SocialLinks, _, err = buildItems[usecase.SocialLinkInput](collections["social_links"], applySocialLinkField); err != nil {
		return nil, nil, err
	}
	if input.Products, productIndices, err = buildItems[usecase.ProductInput](collections["products"], applyProductField); err != nil {
		return nil, nil, err
	}
	if input.Proprietors, proprietorIndices, err = buildItems[usecase.ProprietorInput](collections["proprietors"], applyProprietorField); err != nil {
		return nil, nil, err
	}
	if input.PaymentMethods, _, err = buildItems[usecase.PaymentMethodInput](collections["payment_methods"], applyPaymentMethodField); err != nil {
		return nil, nil, err
	}

	return productIndices, proprietorIndices, nil
}

// buildItems turns the collected form data of one collection into typed
// inputs. Absent collections stay nil; present-but-empty and absent both mean
// the persisted set gets wiped on sync. The returned indices parallel the
// items: the original form index for indexed items, -1 for appended ones,
// which never carry per-item files.
func buildItems[T any](ci *collectionItems, apply func(*T, string, string) error) ([]*T, []int, error) {
	if ci.empty() {
		return nil, nil, nil
	}

	items := make([]*T, 0, len(ci.fields)+len(ci.raw)+len(ci.appended))
	indices := make([]int, 0, cap(items))
	for _, index := range ci.indices() {
		item := new(T)

		if raw, ok := ci.raw[index]; ok {
			if err := json.Unmarshal([]byte(raw), item); err != nil {
				return nil, nil, errors.Wrap(err, "invalid JSON collection item")
			}
		}
		for field, value := range ci.fields[index] {
			if err := apply(item, field, value); err != nil {
				return nil, nil, err
			}
		}

		items = append(items, item)
		indices = append(indices, index)
	}

	for _, raw := range ci.appended {
		item := new(T)
		if err := json.Unmarshal([]byte(raw), item); err != nil {
			return nil, nil, errors.Wrap(err, "invalid JSON collection item")
		}
		items = append(items, item)
		indices = append(indices, -1)
	}

	return items, indices, nil
}

func applySocialLinkField(item *usecase.SocialLinkInput, field, value string) error {
	switch field {
	case "platform":
		item.Platform = value
	case "url":
		item.URL = value
	}

	return nil
}

func applyProductField(item *usecase.ProductInput, field, value string) error {
	switch field {
	case "id":
		id, err := uuid.Parse(value)
		if err != nil {
			return errors.Wrap(err, "invalid product id")
		}
		item.ID = &id
	case "name":
		item.Name = value
	case "price":
		price, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return errors.Wrap(err, "invalid product price")
		}
		item.Price = &price
	case "description":
		item.Description = &value
	case "link":
		item.Link = &value
	case "category":
		item.Category = &value
	}

	return nil
}

func applyProprietorField(item *usecase.ProprietorInput, field, value string) error {
	switch field {
	case "id":
		id, err := uuid.Parse(value)
		if err != nil {
			return errors.Wrap(err, "invalid proprietor id")
		}
		item.ID = &id
	case "name":
		item.Name = value
	case "designation":
		item.Designation = &value
	case "phone":
		item.Phone = &value
	case "email":
		item.Email = &value
	case "bio":
		item.Bio = &value
	case "linkedin_url":
		item.LinkedinURL = &value
	}

	return nil
}

func applyPaymentMethodField(item *usecase.PaymentMethodInput, field, value string) error {
	switch field {
	case "id":
		id, err := uuid.Parse(value)
		if err != nil {
			return errors.Wrap(err, "invalid payment method id")
		}
		item.ID = &id
	case "type":
		item.Type = value
	case "details":
		details := make(map[string]any)
		if err := json.Unmarshal([]byte(value), &details); err != nil {
			return errors.Wrap(err, "invalid payment method details JSON")
		}
		item.Details = details
	case "is_active":
		active, err := strconv.ParseBool(value)
		if err != nil {
			return errors.Wrap(err, "invalid payment method is_active")
		}
		item.IsActive = &active
	}

	return nil
}

func decodeFiles(form *multipart.Form, input *usecase.CardInput, productIndices, proprietorIndices []int) error {
	var err error
	if input.ProfilePhotoFile, err = fileUpload(form, "profile_photo"); err != nil {
		return err
	}
	if input.CoverPhotoFile, err = fileUpload(form, "cover_photo"); err != nil {
		return err
	}
	if input.PaymentQRCodeFile, err = fileUpload(form, "payment_qr_code"); err != nil {
		return err
	}

	for i, product := range input.Products {
		if productIndices[i] < 0 {
			continue
		}
		key := "products[" + strconv.Itoa(productIndices[i]) + "][imageFile]"
		if product.ImageFile, err = fileUpload(form, key); err != nil {
			return err
		}
	}

	for i, proprietor := range input.Proprietors {
		if proprietorIndices[i] < 0 {
			continue
		}
		key := "proprietors[" + strconv.Itoa(proprietorIndices[i]) + "][photoFile]"
		if proprietor.PhotoFile, err = fileUpload(form, key); err != nil {
			return err
		}
	}

	return nil
}

// fileUpload reads one uploaded file fully into memory. The server's body
// limit bounds the size, so buffering is safe and lets the multipart form be
// released before the upload is stored.
func fileUpload(form *multipart.Form, key string) (*service.Upload, error) {
	headers := form.File[key]
	if len(headers) == 0 {
		return nil, nil
	}
	header := headers[0]

	file, err := header.Open()
	if err != nil {
		return nil, errors.Wrap(err, "failed to open uploaded file")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read uploaded file")
	}

	return &service.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     bytes.NewReader(content),
	}, nil
}

// decodeProductInput builds a single product input from a JSON body or a flat
// multipart form with an optional imageFile upload.
func decodeProductInput(c echo.Context) (*usecase.ProductInput, error) {
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		var input usecase.ProductInput
		if err := c.Bind(&input); err != nil {
			return nil, err
		}

		return &input, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse multipart form")
	}

	input := &usecase.ProductInput{}
	for _, field := range []string{"id", "name", "price", "description", "link", "category"} {
		if v, ok := formValue(form, field); ok {
			if err := applyProductField(input, field, v); err != nil {
				return nil, err
			}
		}
	}
	if input.ImageFile, err = fileUpload(form, "imageFile"); err != nil {
		return nil, err
	}

	return input, nil
}

// decodeProprietorInput builds a single proprietor input from a JSON body or
// a flat multipart form with an optional photoFile upload.
func decodeProprietorInput(c echo.Context) (*usecase.ProprietorInput, error) {
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		var input usecase.ProprietorInput
		if err := c.Bind(&input); err != nil {
			return nil, err
		}

		return &input, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse multipart form")
	}

	input := &usecase.ProprietorInput{}
	for _, field := range []string{"id", "name", "designation", "phone", "email", "bio", "linkedin_url"} {
		if v, ok := formValue(form, field); ok {
			if err := applyProprietorField(input, field, v); err != nil {
				return nil, err
			}
		}
	}
	if input.PhotoFile, err = fileUpload(form, "photoFile"); err != nil {
		return nil, err
	}

	return input, nil
}

func formValue(form *multipart.Form, key string) (string, bool) {
	values := form.Value[key]
	if len(values) == 0 {
		return "", false
	}

	return values[len(values)-1], true
}

func strField(form *multipart.Form, key string) *string {
	if v, ok := formValue(form, key); ok {
		return &v
	}

	return nil
}

func floatField(form *multipart.Form, key string) (*float64, error) {
	v, ok := formValue(form, key)
	if !ok || v == "" {
		return nil, nil
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %s", key)
	}

	return &f, nil
}

func intField(form *multipart.Form, key string) (*int, error) {
	v, ok := formValue(form, key)
	if !ok || v == "" {
		return nil, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %s", key)
	}

	return &n, nil
}

// dateField accepts both plain dates and RFC 3339 timestamps.
func dateField(form *multipart.Form, key string) (*time.Time, error) {
	v, ok := formValue(form, key)
	if !ok || v == "" {
		return nil, nil
	}

	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, v); err == nil {
			return &t, nil
		}
	}

	return nil, errors.Errorf("invalid %s date", key)
}
