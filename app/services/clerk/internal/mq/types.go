package mq

import "ClerkAI/app/services/clerk/clerk"

const (
	TaskCheckoutExpire = "clerk:checkout:expire"

	canalInsert = "INSERT"
	canalUpdate = "UPDATE"
	canalDelete = "DELETE"
)

// ProductRow is one products row as canal serializes it: every column as a string.
type ProductRow struct {
	ID          int64   `json:"id,string"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Picture     string  `json:"picture"`
	Price       float64 `json:"price,string"`
	Rating      float64 `json:"rating,string"`
	Category    string  `json:"category"`
	Colors      string  `json:"colors"`
	Stock       int64   `json:"stock,string"`
	CreatedAt   string  `json:"created_at"` // e.g. "2025-10-29 12:52:34"
	UpdatedAt   string  `json:"updated_at"`
}

// CanalMessageProducts is one canal flat message for the products table.
type CanalMessageProducts struct {
	Data      []ProductRow      `json:"data"`
	Database  string            `json:"database"`
	Es        int64             `json:"es"`
	ID        int64             `json:"id"`
	IsDdl     bool              `json:"isDdl"`
	MysqlType map[string]string `json:"mysqlType"`
	Old       []map[string]any  `json:"old"`
	PkNames   []string          `json:"pkNames"`
	SQL       string            `json:"sql"`
	Table     string            `json:"table"`
	Ts        int64             `json:"ts"`
	Type      string            `json:"type"` // INSERT / UPDATE / DELETE
}

// ClerkEvent is published once per turn that emitted actions.
type ClerkEvent struct {
	SessionId  string         `json:"sessionId"`
	Message    string         `json:"message"`
	Branch     string         `json:"branch"`
	Actions    []clerk.Action `json:"actions"`
	ProductIds []int64        `json:"productIds"`
	At         int64          `json:"at"`
}

// CheckoutExpirePayload identifies the confirmation a delayed task may clear.
type CheckoutExpirePayload struct {
	SessionId string `json:"sessionId"`
	ArmedAt   int64  `json:"armedAt"`
}
