package domain

import "time"

type CustomerStatus string

const (
	CustomerStatusActive  CustomerStatus = "ACTIVE"
	CustomerStatusDeleted CustomerStatus = "DELETED"
)

// Customer is never hard-deleted: rentals keep referencing the row forever,
// so delete is a tombstone flip and history joins stay resolvable.
type Customer struct {
	ID      int32  `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`

	PhotoURL      string `json:"photo_url"`
	IDProofURL    string `json:"id_proof_url"`
	MediatorName  string `json:"mediator_name"`
	MediatorPhone string `json:"mediator_phone"`

	Status    CustomerStatus `json:"status"`
	CreatedOn time.Time      `json:"created_on"`
	UpdatedOn time.Time      `json:"updated_on"`
}
