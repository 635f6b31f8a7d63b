package model

// CatalogKind names the simple unique-named lookup tables.
type CatalogKind string

const (
	CatalogField          CatalogKind = "field"
	CatalogMedication     CatalogKind = "medication"
	CatalogRecordType     CatalogKind = "record_type"
	CatalogSpecialization CatalogKind = "specialization"
	CatalogPurpose        CatalogKind = "purpose"
)

// CatalogEntry is a lookup-table row with no behavior beyond name uniqueness.
type CatalogEntry struct {
	Base
	Name string `db:"name" json:"name"`
}

type CreateCatalogEntryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
}

type UpdateCatalogEntryRequest struct {
	Name *string `json:"name,omitempty" binding:"omitempty,min=1,max=200"`
}
