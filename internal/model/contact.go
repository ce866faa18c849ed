package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Contact is an address-book entry. Every contact belongs to exactly
// one user and is only reachable through operations scoped to that
// owner.
type Contact struct {
	bun.BaseModel `bun:"table:contacts,alias:ct"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string     `bun:"name,notnull" json:"name"`
	Email         string     `bun:"email,notnull" json:"email"`
	Phone         string     `bun:"phone,notnull" json:"phone"`
	Favorite      bool       `bun:"favorite,notnull,default:false" json:"favorite"`
	OwnerID       uuid.UUID  `bun:"owner_id,notnull,type:uuid" json:"owner,omitempty"`
	Owner         *User      `bun:"rel:belongs-to,join:owner_id=id" json:"-"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}
