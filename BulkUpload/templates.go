package BulkUpload

import "fmt"

// templates holds the downloadable header row for each upload type. Column
// order here is the contract the positional strategies parse against.
var templates = map[string]string{
	TypeCustomers:      "customer_code,customer_name,shop_name,owner_name,billing_address_1,billing_address_2,billing_address_3,billing_city,district,mobile_no,phone_no_2,gst_no,route_code",
	TypeProducts:       "product_code,product_name,brand_name,category,unit_of_measure,hsn_code,gst_rate,qty_in_ltr,description",
	TypeDailyStock:     "branch_name,product_code,quantity,uploaded_date",
	TypeOutstanding:    "as_on_date,branch_name,customer_name,dr_amount,cr_amount,balance,less_than_45,greater_than_45,greater_than_60,greater_than_90,greater_than_120",
	TypeInvoices:       "invoice_no,invoice_date,order_no,customer_name,branch_name,product_name,quantity,unit_rate,discount_pct,gst_rate,taxable_value,inclusive_tax_amt",
	TypeRouteCustomers: "customer_name,route_name",
	TypeRouteUsers:     "user_mobile,route_name",
}

// Template returns the header row for an upload type, or an error for a type
// the engine does not know.
func Template(uploadType string) (string, error) {
	t, ok := templates[uploadType]
	if !ok {
		return "", fmt.Errorf("unknown upload type %q", uploadType)
	}
	return t, nil
}

// Types lists the supported upload types.
func Types() []string {
	return []string{
		TypeCustomers,
		TypeProducts,
		TypeDailyStock,
		TypeOutstanding,
		TypeInvoices,
		TypeRouteCustomers,
		TypeRouteUsers,
	}
}
