// Package report aggregates orders and the catalog into the admin dashboard,
// the sales report and the customer list.
package report

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wichananm65/soko-storefront/internal/category"
	"github.com/wichananm65/soko-storefront/internal/order"
	"github.com/wichananm65/soko-storefront/internal/product"
)

const (
	RecentOrders = 3
	TopProducts  = 5
)

type Dashboard struct {
	TodaysOrders int             `json:"todaysOrders"`
	Pending      int             `json:"pending"`
	Processing   int             `json:"processing"`
	Delivered    int             `json:"delivered"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	RecentOrders []order.Order   `json:"recentOrders"`
}

type CategorySales struct {
	CategoryID string          `json:"categoryId"`
	Name       string          `json:"name"`
	Sales      decimal.Decimal `json:"sales"`
	Orders     int             `json:"orders"`
}

type ProductSales struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	TotalSold int             `json:"totalSold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type Report struct {
	TotalRevenue      decimal.Decimal      `json:"totalRevenue"`
	AverageOrderValue decimal.Decimal      `json:"averageOrderValue"`
	TotalOrders       int                  `json:"totalOrders"`
	TotalProducts     int                  `json:"totalProducts"`
	TotalCategories   int                  `json:"totalCategories"`
	ItemsSold         int                  `json:"itemsSold"`
	StatusBreakdown   map[order.Status]int `json:"statusBreakdown"`
	SalesByCategory   []CategorySales      `json:"salesByCategory"`
	TopProducts       []ProductSales       `json:"topProducts"`
	LowStock          []product.Product    `json:"lowStock"`
}

type Customer struct {
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	TotalOrders   int             `json:"totalOrders"`
	TotalSpent    decimal.Decimal `json:"totalSpent"`
	LastOrderDate time.Time       `json:"lastOrderDate"`
}

// revenue counts every order that was not cancelled.
func revenue(orders []order.Order) (decimal.Decimal, int) {
	total := decimal.Zero
	n := 0
	for _, o := range orders {
		if o.Status == order.StatusCancelled {
			continue
		}
		total = total.Add(o.Total)
		n++
	}
	return total, n
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// BuildDashboard expects orders newest first.
func BuildDashboard(orders []order.Order, now time.Time) Dashboard {
	d := Dashboard{RecentOrders: []order.Order{}}
	for _, o := range orders {
		if sameDay(o.CreatedAt.In(now.Location()), now) {
			d.TodaysOrders++
		}
		switch o.Status {
		case order.StatusPending:
			d.Pending++
		case order.StatusProcessing:
			d.Processing++
		case order.StatusDelivered:
			d.Delivered++
		}
	}
	d.TotalRevenue, _ = revenue(orders)
	n := len(orders)
	if n > RecentOrders {
		n = RecentOrders
	}
	d.RecentOrders = append(d.RecentOrders, orders[:n]...)
	return d
}

// BuildReport ties order lines to categories through the product id.
func BuildReport(orders []order.Order, products []product.Product, categories []category.Category) Report {
	r := Report{
		TotalOrders:     len(orders),
		TotalProducts:   len(products),
		TotalCategories: len(categories),
		StatusBreakdown: map[order.Status]int{},
		SalesByCategory: make([]CategorySales, 0, len(categories)),
		TopProducts:     []ProductSales{},
		LowStock:        []product.Product{},
	}
	var counted int
	r.TotalRevenue, counted = revenue(orders)
	r.AverageOrderValue = decimal.Zero
	if counted > 0 {
		r.AverageOrderValue = r.TotalRevenue.Div(decimal.NewFromInt(int64(counted))).Round(2)
	}

	productCategory := make(map[string]string, len(products))
	for _, p := range products {
		productCategory[p.ID] = p.CategoryID
		if p.LowStock() {
			r.LowStock = append(r.LowStock, p)
		}
	}

	byCategory := map[string]*CategorySales{}
	for _, c := range categories {
		byCategory[c.ID] = &CategorySales{CategoryID: c.ID, Name: c.Name, Sales: decimal.Zero}
	}
	sold := map[string]*ProductSales{}
	var soldOrder []string

	for _, o := range orders {
		r.StatusBreakdown[o.Status]++
		if o.Status == order.StatusCancelled {
			continue
		}
		touched := map[string]bool{}
		for _, it := range o.Items {
			r.ItemsSold += it.Quantity
			ps, ok := sold[it.ProductID]
			if !ok {
				ps = &ProductSales{ProductID: it.ProductID, Name: it.Name, Revenue: decimal.Zero}
				sold[it.ProductID] = ps
				soldOrder = append(soldOrder, it.ProductID)
			}
			ps.TotalSold += it.Quantity
			ps.Revenue = ps.Revenue.Add(it.Total())

			cat, ok := byCategory[productCategory[it.ProductID]]
			if !ok {
				continue
			}
			cat.Sales = cat.Sales.Add(it.Total())
			if !touched[cat.CategoryID] {
				touched[cat.CategoryID] = true
				cat.Orders++
			}
		}
	}

	for _, c := range categories {
		r.SalesByCategory = append(r.SalesByCategory, *byCategory[c.ID])
	}
	sort.SliceStable(r.SalesByCategory, func(i, j int) bool {
		return r.SalesByCategory[i].Sales.GreaterThan(r.SalesByCategory[j].Sales)
	})

	for _, id := range soldOrder {
		r.TopProducts = append(r.TopProducts, *sold[id])
	}
	sort.SliceStable(r.TopProducts, func(i, j int) bool {
		return r.TopProducts[i].TotalSold > r.TopProducts[j].TotalSold
	})
	if len(r.TopProducts) > TopProducts {
		r.TopProducts = r.TopProducts[:TopProducts]
	}
	return r
}

// Customers groups orders by customer email (phone when the email is blank)
// and sorts by total spent, highest first. q filters on name, email or phone.
func Customers(orders []order.Order, q string) []Customer {
	index := map[string]int{}
	out := make([]Customer, 0)
	for _, o := range orders {
		key := strings.ToLower(o.Customer.Email)
		if key == "" {
			key = o.Customer.Phone
		}
		i, ok := index[key]
		if !ok {
			index[key] = len(out)
			out = append(out, Customer{
				Name:          o.Customer.Name,
				Email:         o.Customer.Email,
				Phone:         o.Customer.Phone,
				TotalSpent:    decimal.Zero,
				LastOrderDate: o.CreatedAt,
			})
			i = len(out) - 1
		}
		c := &out[i]
		c.TotalOrders++
		c.TotalSpent = c.TotalSpent.Add(o.Total)
		if o.CreatedAt.After(c.LastOrderDate) {
			c.LastOrderDate = o.CreatedAt
		}
	}

	q = strings.ToLower(strings.TrimSpace(q))
	if q != "" {
		filtered := out[:0]
		for _, c := range out {
			if strings.Contains(strings.ToLower(c.Name), q) ||
				strings.Contains(strings.ToLower(c.Email), q) ||
				strings.Contains(c.Phone, q) {
				filtered = append(filtered, c)
			}
		}
		out = filtered
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalSpent.GreaterThan(out[j].TotalSpent) })
	return out
}
