package BulkUpload

import (
	"strings"

	"Meridian/Models"
)

// lookup resolves human-entered names and codes to primary keys. Keys are
// lower-cased and trimmed so uploads survive casing and padding differences.
type lookup map[string]uint

func (l lookup) id(key string) (uint, bool) {
	id, ok := l[strings.ToLower(strings.TrimSpace(key))]
	return id, ok
}

type refRow struct {
	ID    uint
	Value string
}

// buildLookup loads one id/value projection of a table into a lookup. Each
// upload type calls this once per referenced table instead of querying per
// row.
func (e *Engine) buildLookup(model interface{}, column string) (lookup, error) {
	var rows []refRow
	err := e.DB.Model(model).Select(column + " as value, id").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	l := make(lookup, len(rows))
	for _, r := range rows {
		l[strings.ToLower(strings.TrimSpace(r.Value))] = r.ID
	}
	return l, nil
}

func (e *Engine) branchesByName() (lookup, error) {
	return e.buildLookup(&Models.Branch{}, "branch_name")
}

func (e *Engine) brandsByName() (lookup, error) {
	return e.buildLookup(&Models.Brand{}, "brand_name")
}

func (e *Engine) productsByCode() (lookup, error) {
	return e.buildLookup(&Models.Product{}, "product_code")
}

func (e *Engine) productsByName() (lookup, error) {
	return e.buildLookup(&Models.Product{}, "product_name")
}

func (e *Engine) customersByName() (lookup, error) {
	return e.buildLookup(&Models.Customer{}, "customer_name")
}

func (e *Engine) routesByName() (lookup, error) {
	return e.buildLookup(&Models.Route{}, "route_name")
}

func (e *Engine) routesByCode() (lookup, error) {
	return e.buildLookup(&Models.Route{}, "route_code")
}

func (e *Engine) usersByMobile() (lookup, error) {
	return e.buildLookup(&Models.User{}, "mobile_no")
}

// ordersByNo loads full order headers keyed by order number so invoice rows
// can inherit route and field staff context from the order they bill.
func (e *Engine) ordersByNo(orderNos []string) (map[string]Models.SaleOrderHeader, error) {
	out := make(map[string]Models.SaleOrderHeader, len(orderNos))
	if len(orderNos) == 0 {
		return out, nil
	}
	var orders []Models.SaleOrderHeader
	if err := e.DB.Where("order_no IN ?", orderNos).Find(&orders).Error; err != nil {
		return nil, err
	}
	for _, o := range orders {
		out[strings.ToLower(strings.TrimSpace(o.OrderNo))] = o
	}
	return out, nil
}
