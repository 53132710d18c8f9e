package models

import "time"

// IssueDateLayout is the wire format for issuance dates.
const IssueDateLayout = "2006-01-02"

// Fallback display labels used when a record's item or category reference
// points at a deleted entity. Records are never cascade-deleted.
const (
	DeletedItemLabel   = "Deleted Item"
	UncategorizedLabel = "Uncategorized"
)

// IssuanceRecord is the model for the 'uniform_issuances' collection. A
// record is written once by a successful issue and afterwards only changed
// by an explicit correction or delete.
type IssuanceRecord struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	ItemID      string    `json:"uniform_id" bson:"uniform_id"`
	StudentName string    `json:"student_name" bson:"student_name"`
	Quantity    int       `json:"quantity_taken" bson:"quantity_taken"`
	IssueDate   string    `json:"issue_date" bson:"issue_date"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// IssuanceView is a record joined with live item fields for display. The
// name fields carry the fallback labels when the references dangle.
type IssuanceView struct {
	IssuanceRecord
	ItemName     string `json:"uniform_name"`
	CategoryName string `json:"uniform_category"`
}

// Movement projects a ledger record into the recent-activity feed.
type Movement struct {
	ID          string    `json:"id"`
	ItemName    string    `json:"item_name"`
	Type        string    `json:"movement_type"`
	Quantity    int       `json:"quantity"`
	StudentName string    `json:"student_name"`
	CreatedAt   time.Time `json:"created_at"`
}
