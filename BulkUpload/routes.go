package BulkUpload

import (
	"Meridian/Models"
)

// runRouteCustomers upserts customer/route assignments. A customer already
// on a route gets moved, not duplicated.
func (e *Engine) runRouteCustomers(doc document, res *Result) error {
	customers, err := e.customersByName()
	if err != nil {
		return err
	}
	routes, err := e.routesByName()
	if err != nil {
		return err
	}

	for _, r := range doc.Rows {
		customerName, routeName := r.field(0), r.field(1)
		if customerName == "" || routeName == "" {
			res.Failed++
			res.addError("Line %d: Missing required fields", r.LineNo)
			continue
		}
		customerID, ok := customers.id(customerName)
		if !ok {
			res.Failed++
			res.addError("Line %d: Customer \"%s\" not found", r.LineNo, customerName)
			continue
		}
		routeID, ok := routes.id(routeName)
		if !ok {
			res.Failed++
			res.addError("Line %d: Route \"%s\" not found", r.LineNo, routeName)
			continue
		}
		if err := Models.AssignCustomerRoute(e.DB, customerID, routeID, true); err != nil {
			res.Failed++
			res.addError("Line %d: Database error: %v", r.LineNo, err)
			continue
		}
		res.Success++
	}
	return nil
}

// runRouteUsers assigns field staff to routes by mobile number. An existing
// assignment is left alone.
func (e *Engine) runRouteUsers(doc document, res *Result) error {
	users, err := e.usersByMobile()
	if err != nil {
		return err
	}
	routes, err := e.routesByName()
	if err != nil {
		return err
	}

	for _, r := range doc.Rows {
		mobile, routeName := r.field(0), r.field(1)
		if mobile == "" || routeName == "" {
			res.Failed++
			res.addError("Line %d: Missing required fields", r.LineNo)
			continue
		}
		userID, ok := users.id(mobile)
		if !ok {
			res.Failed++
			res.addError("Line %d: User \"%s\" not found", r.LineNo, mobile)
			continue
		}
		routeID, ok := routes.id(routeName)
		if !ok {
			res.Failed++
			res.addError("Line %d: Route \"%s\" not found", r.LineNo, routeName)
			continue
		}
		var existing Models.UserRouteMapping
		err := e.DB.Where("user_id = ? AND route_id = ?", userID, routeID).First(&existing).Error
		if err == nil {
			res.Success++
			continue
		}
		mapping := Models.UserRouteMapping{UserID: userID, RouteID: routeID, IsActive: true}
		if err := e.DB.Create(&mapping).Error; err != nil {
			res.Failed++
			res.addError("Line %d: Database error: %v", r.LineNo, err)
			continue
		}
		res.Success++
	}
	return nil
}
