package postgres

import (
	"encoding/json"

	"tapcard/internal/domain/entity"
	"tapcard/internal/infra/persistence/model"

	"gorm.io/datatypes"
)

func fromCardDomain(card *entity.Card) *model.CardModel {
	return &model.CardModel{
		ID:                        card.ID,
		OwnerID:                   card.OwnerID,
		BusinessName:              card.BusinessName,
		Slug:                      card.Slug,
		Tagline:                   card.Tagline,
		SubHeader:                 card.SubHeader,
		Description:               card.Description,
		FoundedAt:                 card.FoundedAt,
		Category:                  card.Category,
		SubCategory:               card.SubCategory,
		Phone:                     card.Phone,
		Email:                     card.Email,
		Website:                   card.Website,
		Address:                   card.Address,
		City:                      card.City,
		State:                     card.State,
		Country:                   card.Country,
		Pincode:                   card.Pincode,
		Latitude:                  card.Latitude,
		Longitude:                 card.Longitude,
		MapURL:                    card.MapURL,
		GoogleMapEmbedURL:         card.GoogleMapEmbedURL,
		ThemeColor:                card.ThemeColor,
		YearsOfExperience:         card.YearsOfExperience,
		PrimaryContactDesignation: card.PrimaryContactDesignation,
		ProfilePhoto:              card.ProfilePhoto,
		CoverPhoto:                card.CoverPhoto,
		PaymentQRCode:             card.PaymentQRCode,
		BankDetails:               toJSON(card.BankDetails),
		BusinessHours:             toJSON(card.BusinessHours),
		CreatedAt:                 card.CreatedAt,
		UpdatedAt:                 card.UpdatedAt,
	}
}

func toCardDomain(cardM *model.CardModel) *entity.Card {
	card := &entity.Card{
		ID:                        cardM.ID,
		OwnerID:                   cardM.OwnerID,
		BusinessName:              cardM.BusinessName,
		Slug:                      cardM.Slug,
		Tagline:                   cardM.Tagline,
		SubHeader:                 cardM.SubHeader,
		Description:               cardM.Description,
		FoundedAt:                 cardM.FoundedAt,
		Category:                  cardM.Category,
		SubCategory:               cardM.SubCategory,
		Phone:                     cardM.Phone,
		Email:                     cardM.Email,
		Website:                   cardM.Website,
		Address:                   cardM.Address,
		City:                      cardM.City,
		State:                     cardM.State,
		Country:                   cardM.Country,
		Pincode:                   cardM.Pincode,
		Latitude:                  cardM.Latitude,
		Longitude:                 cardM.Longitude,
		MapURL:                    cardM.MapURL,
		GoogleMapEmbedURL:         cardM.GoogleMapEmbedURL,
		ThemeColor:                cardM.ThemeColor,
		YearsOfExperience:         cardM.YearsOfExperience,
		PrimaryContactDesignation: cardM.PrimaryContactDesignation,
		ProfilePhoto:              cardM.ProfilePhoto,
		CoverPhoto:                cardM.CoverPhoto,
		PaymentQRCode:             cardM.PaymentQRCode,
		CreatedAt:                 cardM.CreatedAt,
		UpdatedAt:                 cardM.UpdatedAt,
	}

	fromJSON(cardM.BankDetails, &card.BankDetails)
	fromJSON(cardM.BusinessHours, &card.BusinessHours)

	card.SocialLinks = make([]*entity.SocialLink, 0, len(cardM.SocialLinks))
	for i := range cardM.SocialLinks {
		card.SocialLinks = append(card.SocialLinks, toSocialLinkDomain(&cardM.SocialLinks[i]))
	}
	card.Products = make([]*entity.Product, 0, len(cardM.Products))
	for i := range cardM.Products {
		card.Products = append(card.Products, toProductDomain(&cardM.Products[i]))
	}
	card.Proprietors = make([]*entity.Proprietor, 0, len(cardM.Proprietors))
	for i := range cardM.Proprietors {
		card.Proprietors = append(card.Proprietors, toProprietorDomain(&cardM.Proprietors[i]))
	}
	card.PaymentMethods = make([]*entity.PaymentMethod, 0, len(cardM.PaymentMethods))
	for i := range cardM.PaymentMethods {
		card.PaymentMethods = append(card.PaymentMethods, toPaymentMethodDomain(&cardM.PaymentMethods[i]))
	}

	return card
}

func fromSocialLinkDomain(link *entity.SocialLink) *model.SocialLinkModel {
	return &model.SocialLinkModel{
		ID:        link.ID,
		CardID:    link.CardID,
		Platform:  link.Platform,
		URL:       link.URL,
		CreatedAt: link.CreatedAt,
		UpdatedAt: link.UpdatedAt,
	}
}

func toSocialLinkDomain(linkM *model.SocialLinkModel) *entity.SocialLink {
	return &entity.SocialLink{
		ID:        linkM.ID,
		CardID:    linkM.CardID,
		Platform:  linkM.Platform,
		URL:       linkM.URL,
		CreatedAt: linkM.CreatedAt,
		UpdatedAt: linkM.UpdatedAt,
	}
}

func fromProductDomain(product *entity.Product) *model.ProductModel {
	return &model.ProductModel{
		ID:          product.ID,
		CardID:      product.CardID,
		Name:        product.Name,
		Price:       product.Price,
		Description: product.Description,
		Link:        product.Link,
		Category:    product.Category,
		Image:       product.Image,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

func toProductDomain(productM *model.ProductModel) *entity.Product {
	return &entity.Product{
		ID:          productM.ID,
		CardID:      productM.CardID,
		Name:        productM.Name,
		Price:       productM.Price,
		Description: productM.Description,
		Link:        productM.Link,
		Category:    productM.Category,
		Image:       productM.Image,
		CreatedAt:   productM.CreatedAt,
		UpdatedAt:   productM.UpdatedAt,
	}
}

func fromProprietorDomain(proprietor *entity.Proprietor) *model.ProprietorModel {
	return &model.ProprietorModel{
		ID:          proprietor.ID,
		CardID:      proprietor.CardID,
		Name:        proprietor.Name,
		Designation: proprietor.Designation,
		Phone:       proprietor.Phone,
		Email:       proprietor.Email,
		Bio:         proprietor.Bio,
		LinkedinURL: proprietor.LinkedinURL,
		Photo:       proprietor.Photo,
		CreatedAt:   proprietor.CreatedAt,
		UpdatedAt:   proprietor.UpdatedAt,
	}
}

func toProprietorDomain(proprietorM *model.ProprietorModel) *entity.Proprietor {
	return &entity.Proprietor{
		ID:          proprietorM.ID,
		CardID:      proprietorM.CardID,
		Name:        proprietorM.Name,
		Designation: proprietorM.Designation,
		Phone:       proprietorM.Phone,
		Email:       proprietorM.Email,
		Bio:         proprietorM.Bio,
		LinkedinURL: proprietorM.LinkedinURL,
		Photo:       proprietorM.Photo,
		CreatedAt:   proprietorM.CreatedAt,
		UpdatedAt:   proprietorM.UpdatedAt,
	}
}

func fromPaymentMethodDomain(method *entity.PaymentMethod) *model.PaymentMethodModel {
	return &model.PaymentMethodModel{
		ID:        method.ID,
		CardID:    method.CardID,
		Type:      method.Type,
		Details:   toJSON(method.Details),
		IsActive:  method.IsActive,
		CreatedAt: method.CreatedAt,
		UpdatedAt: method.UpdatedAt,
	}
}

func toPaymentMethodDomain(methodM *model.PaymentMethodModel) *entity.PaymentMethod {
	method := &entity.PaymentMethod{
		ID:        methodM.ID,
		CardID:    methodM.CardID,
		Type:      methodM.Type,
		IsActive:  methodM.IsActive,
		CreatedAt: methodM.CreatedAt,
		UpdatedAt: methodM.UpdatedAt,
	}
	fromJSON(methodM.Details, &method.Details)

	return method
}

func fromVisitDomain(visit *entity.Visit) *model.VisitModel {
	return &model.VisitModel{
		ID:        visit.ID,
		CardID:    visit.CardID,
		Type:      visit.Type,
		Metadata:  toJSON(visit.Metadata),
		IPAddress: visit.IPAddress,
		UserAgent: visit.UserAgent,
		VisitedAt: visit.VisitedAt,
	}
}

func toVisitDomain(visitM *model.VisitModel) *entity.Visit {
	visit := &entity.Visit{
		ID:        visitM.ID,
		CardID:    visitM.CardID,
		Type:      visitM.Type,
		IPAddress: visitM.IPAddress,
		UserAgent: visitM.UserAgent,
		VisitedAt: visitM.VisitedAt,
	}
	fromJSON(visitM.Metadata, &visit.Metadata)

	return visit
}

func fromLeadDomain(lead *entity.Lead) *model.LeadModel {
	return &model.LeadModel{
		ID:        lead.ID,
		CardID:    lead.CardID,
		Name:      lead.Name,
		Phone:     lead.Phone,
		Message:   lead.Message,
		IsRead:    lead.IsRead,
		CreatedAt: lead.CreatedAt,
	}
}

func toLeadDomain(leadM *model.LeadModel) *entity.Lead {
	return &entity.Lead{
		ID:        leadM.ID,
		CardID:    leadM.CardID,
		Name:      leadM.Name,
		Phone:     leadM.Phone,
		Message:   leadM.Message,
		IsRead:    leadM.IsRead,
		CreatedAt: leadM.CreatedAt,
	}
}

// toJSON marshals a structured value into a JSON column; nil values (including
// typed nil pointers and nil maps) produce a NULL column. Marshal errors cannot
// occur for the map/struct shapes used here.
func toJSON(v any) datatypes.JSON {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil || string(data) == "null" {
		return nil
	}

	return datatypes.JSON(data)
}

// fromJSON unmarshals a JSON column into dest, leaving it zero on NULL.
func fromJSON(data datatypes.JSON, dest any) {
	if len(data) == 0 {
		return
	}
	_ = json.Unmarshal(data, dest)
}
