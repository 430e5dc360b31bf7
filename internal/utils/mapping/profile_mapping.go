package mapping

import (
	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	"github.com/SscSPs/zimmr_backend/internal/models"
)

func ToModelCraftsman(d domain.Craftsman) models.Craftsman {
	return models.Craftsman{
		CraftsmanID:    d.CraftsmanID,
		UserID:         d.UserID,
		Name:           d.Name,
		Email:          d.Email,
		Phone:          NullString(d.Phone),
		Specialty:      NullString(d.Specialty),
		DefaultTaxRate: d.DefaultTaxRate,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainCraftsman(m models.Craftsman) domain.Craftsman {
	return domain.Craftsman{
		CraftsmanID:    m.CraftsmanID,
		UserID:         m.UserID,
		Name:           m.Name,
		Email:          m.Email,
		Phone:          m.Phone.String,
		Specialty:      m.Specialty.String,
		DefaultTaxRate: m.DefaultTaxRate,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		CustomerID:  d.CustomerID,
		CraftsmanID: d.CraftsmanID,
		Name:        d.Name,
		Email:       NullString(d.Email),
		Phone:       NullString(d.Phone),
		Address:     NullString(d.Address),
		ServiceType: NullString(d.ServiceType),
		Notes:       NullString(d.Notes),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:  m.CustomerID,
		CraftsmanID: m.CraftsmanID,
		Name:        m.Name,
		Email:       m.Email.String,
		Phone:       m.Phone.String,
		Address:     m.Address.String,
		ServiceType: m.ServiceType.String,
		Notes:       m.Notes.String,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelCustomerSpace(d domain.CustomerSpace) models.CustomerSpace {
	return models.CustomerSpace{
		SpaceID:         d.SpaceID,
		CustomerID:      d.CustomerID,
		CraftsmanID:     d.CraftsmanID,
		AccessTokenHash: d.AccessTokenHash,
		IsActive:        d.IsActive,
		ExpiresAt:       NullTime(d.ExpiresAt),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainCustomerSpace(m models.CustomerSpace) domain.CustomerSpace {
	return domain.CustomerSpace{
		SpaceID:         m.SpaceID,
		CustomerID:      m.CustomerID,
		CraftsmanID:     m.CraftsmanID,
		AccessTokenHash: m.AccessTokenHash,
		IsActive:        m.IsActive,
		ExpiresAt:       TimePtr(m.ExpiresAt),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelMaterial(d domain.Material) models.Material {
	return models.Material{
		MaterialID:    d.MaterialID,
		CraftsmanID:   d.CraftsmanID,
		Name:          d.Name,
		Description:   NullString(d.Description),
		Unit:          d.Unit,
		UnitPrice:     d.UnitPrice,
		StockQuantity: d.StockQuantity,
		IsActive:      d.IsActive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainMaterial(m models.Material) domain.Material {
	return domain.Material{
		MaterialID:    m.MaterialID,
		CraftsmanID:   m.CraftsmanID,
		Name:          m.Name,
		Description:   m.Description.String,
		Unit:          m.Unit,
		UnitPrice:     m.UnitPrice,
		StockQuantity: m.StockQuantity,
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
