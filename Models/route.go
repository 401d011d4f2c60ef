package Models

import (
	"gorm.io/gorm"
)

type Route struct {
	gorm.Model
	RouteCode        string `json:"route_code" gorm:"size:30;not null;uniqueIndex"`
	RouteName        string `json:"route_name" gorm:"size:255;not null;index"`
	RouteDescription string `json:"route_description" gorm:"type:text"`
	IsActive         bool   `json:"is_active" gorm:"not null;default:true"`
}

// RouteCustomerMapping keeps one route per customer. The one-active-row rule
// is enforced by AssignCustomerRoute, not by a database constraint.
type RouteCustomerMapping struct {
	gorm.Model
	RouteID    uint `json:"route_id" gorm:"not null;index"`
	CustomerID uint `json:"customer_id" gorm:"not null;index"`
	IsActive   bool `json:"is_active" gorm:"not null;default:true"`

	Route    Route    `json:"route,omitempty" gorm:"foreignKey:RouteID"`
	Customer Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
}

// UserRouteMapping assigns field staff to routes, many-to-many.
type UserRouteMapping struct {
	gorm.Model
	RouteID  uint `json:"route_id" gorm:"not null;index"`
	UserID   uint `json:"user_id" gorm:"not null;index"`
	IsActive bool `json:"is_active" gorm:"not null;default:true"`

	Route Route `json:"route,omitempty" gorm:"foreignKey:RouteID"`
	User  User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

type RouteRequest struct {
	RouteCode        string `json:"route_code" validate:"required"`
	RouteName        string `json:"route_name" validate:"required"`
	RouteDescription string `json:"route_description"`
	IsActive         bool   `json:"is_active"`
}

type RouteCustomerMappingRequest struct {
	RouteID    uint `json:"route_id" validate:"required"`
	CustomerID uint `json:"customer_id" validate:"required"`
	IsActive   bool `json:"is_active"`
}

type UserRouteMappingRequest struct {
	RouteID  uint `json:"route_id" validate:"required"`
	UserID   uint `json:"user_id" validate:"required"`
	IsActive bool `json:"is_active"`
}

// AssignCustomerRoute upserts the customer's route mapping: an existing row is
// re-pointed and reactivated instead of inserting a second one.
func AssignCustomerRoute(db *gorm.DB, customerID, routeID uint, active bool) error {
	var existing RouteCustomerMapping
	err := db.Where("customer_id = ?", customerID).First(&existing).Error
	if err == nil {
		return db.Model(&existing).Updates(map[string]interface{}{
			"route_id":  routeID,
			"is_active": active,
		}).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return db.Create(&RouteCustomerMapping{
		RouteID:    routeID,
		CustomerID: customerID,
		IsActive:   active,
	}).Error
}

// ActiveCustomerRoute returns the customer's active route mapping, or nil.
func ActiveCustomerRoute(db *gorm.DB, customerID uint) (*RouteCustomerMapping, error) {
	var mapping RouteCustomerMapping
	err := db.Preload("Route").
		Where("customer_id = ? AND is_active = ?", customerID, true).
		First(&mapping).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &mapping, nil
}
