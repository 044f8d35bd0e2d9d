package domain

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RolePatient  UserRole = "PATIENT"
	RoleDoctor   UserRole = "DOCTOR"
	RolePharmacy UserRole = "PHARMACY"
	RoleLab      UserRole = "LAB"
	RoleHospital UserRole = "HOSPITAL"
	RoleAdmin    UserRole = "ADMIN"
)

type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "ACTIVE"
	AccountStatusSuspended AccountStatus = "SUSPENDED"
)

type User struct {
	ID            uuid.UUID     `db:"id"`
	PhoneNumber   string        `db:"phone_number"`
	Role          UserRole      `db:"role"`
	AccountStatus AccountStatus `db:"account_status"`
	CreatedAt     time.Time     `db:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at"`
	DeletedAt     *time.Time    `db:"deleted_at"`
}
