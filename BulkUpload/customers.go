package BulkUpload

import (
	"Meridian/Models"
)

// runCustomers maps columns by header name, so reordered customer files
// still load. customer_code and customer_name are mandatory; a route_code
// cell, when present and known, also creates the route mapping.
func (e *Engine) runCustomers(doc document, uploadedBy *uint, res *Result) error {
	routes, err := e.routesByCode()
	if err != nil {
		return err
	}
	idx := doc.headerIndex()
	col := func(r row, name string) string {
		i, ok := idx[name]
		if !ok {
			return ""
		}
		return r.field(i)
	}

	type pendingRoute struct {
		customerIdx int
		routeID     uint
	}
	var customers []Models.Customer
	var mappings []pendingRoute

	for _, r := range doc.Rows {
		code := col(r, "customer_code")
		name := col(r, "customer_name")
		if code == "" || name == "" {
			res.Failed++
			res.addError("Line %d: Missing required fields", r.LineNo)
			continue
		}

		c := Models.Customer{
			CustomerCode:    code,
			CustomerName:    name,
			ShopName:        col(r, "shop_name"),
			OwnerName:       col(r, "owner_name"),
			BillingAddress1: col(r, "billing_address_1"),
			BillingAddress2: col(r, "billing_address_2"),
			BillingAddress3: col(r, "billing_address_3"),
			BillingCity:     col(r, "billing_city"),
			District:        col(r, "district"),
			MobileNo:        col(r, "mobile_no"),
			PhoneNo2:        col(r, "phone_no_2"),
			GstNo:           col(r, "gst_no"),
			BulkUploadRefNo: res.ReferenceNo,
			IsActive:        true,
			CreatedBy:       uploadedBy,
		}

		if routeCode := col(r, "route_code"); routeCode != "" {
			routeID, ok := routes.id(routeCode)
			if !ok {
				res.addError("Line %d: Route \"%s\" not found", r.LineNo, routeCode)
			} else {
				mappings = append(mappings, pendingRoute{customerIdx: len(customers), routeID: routeID})
			}
		}
		customers = append(customers, c)
	}

	if len(customers) == 0 {
		return nil
	}
	if err := e.DB.Create(&customers).Error; err != nil {
		res.Failed += len(customers)
		res.addError("Database error: %v", err)
		return nil
	}
	res.Success += len(customers)

	for _, m := range mappings {
		if err := Models.AssignCustomerRoute(e.DB, customers[m.customerIdx].ID, m.routeID, true); err != nil {
			res.addError("Route mapping for \"%s\" failed: %v", customers[m.customerIdx].CustomerName, err)
		}
	}
	return nil
}
